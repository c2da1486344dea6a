package app

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type createAppointmentReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

// GET /api/appointments?date=YYYY-MM-DD
func (a *App) ListAppointmentsHandler(c *gin.Context) {
	var filter AppointmentFilter
	if dateStr := c.Query("date"); dateStr != "" {
		day, err := parseWhen(dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		// half-open window covering one calendar day
		next := day.AddDate(0, 0, 1)
		filter.From = &day
		filter.To = &next
	}

	appts, err := a.ListAppointments(c.Request.Context(), currentUserID(c), filter)
	if err != nil {
		log.Printf("appointments: list: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if appts == nil {
		appts = []Appointment{}
	}
	c.JSON(http.StatusOK, appts)
}

// POST /api/appointments
func (a *App) CreateAppointmentHandler(c *gin.Context) {
	var req createAppointmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Title == "" || req.Date == "" || req.StartTime == "" || req.EndTime == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, date, startTime and endTime are required"})
		return
	}

	date, err := parseWhen(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	start, err := parseWhen(req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startTime"})
		return
	}
	end, err := parseWhen(req.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endTime"})
		return
	}
	if !end.After(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endTime must be after startTime"})
		return
	}

	apt := &Appointment{
		ID:          uuid.New().String(),
		UserID:      currentUserID(c),
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		Status:      StatusScheduled,
	}
	if err := a.InsertAppointment(c.Request.Context(), apt); err != nil {
		log.Printf("appointments: insert: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, apt)
}

// GET /api/appointments/:id
func (a *App) GetAppointmentHandler(c *gin.Context) {
	apt, err := a.GetAppointment(c.Request.Context(), currentUserID(c), c.Param("id"))
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		return
	}
	if err != nil {
		log.Printf("appointments: get: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, apt)
}

// PUT /api/appointments/:id
// Applies the supplied fields only; anything omitted keeps its stored value.
func (a *App) UpdateAppointmentHandler(c *gin.Context) {
	var patch AppointmentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	apt, err := a.GetAppointment(ctx, currentUserID(c), c.Param("id"))
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		return
	}
	if err != nil {
		log.Printf("appointments: get: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if msg := applyPatch(apt, &patch); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if err := a.UpdateAppointment(ctx, apt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// deleted between the read and the write
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
			return
		}
		log.Printf("appointments: update: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, apt)
}

// DELETE /api/appointments/:id
func (a *App) DeleteAppointmentHandler(c *gin.Context) {
	err := a.DeleteAppointment(c.Request.Context(), currentUserID(c), c.Param("id"))
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		return
	}
	if err != nil {
		log.Printf("appointments: delete: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "appointment deleted"})
}

// applyPatch merges present fields into apt and re-checks the invariants over
// the merged record. It returns a client-facing message on validation failure.
func applyPatch(apt *Appointment, p *AppointmentPatch) string {
	if p.Title != nil {
		if *p.Title == "" {
			return "title must not be empty"
		}
		apt.Title = *p.Title
	}
	if p.Description != nil {
		apt.Description = *p.Description
	}
	if p.Date != nil {
		d, err := parseWhen(*p.Date)
		if err != nil {
			return "invalid date"
		}
		apt.Date = d
	}
	if p.StartTime != nil {
		t, err := parseWhen(*p.StartTime)
		if err != nil {
			return "invalid startTime"
		}
		apt.StartTime = t
	}
	if p.EndTime != nil {
		t, err := parseWhen(*p.EndTime)
		if err != nil {
			return "invalid endTime"
		}
		apt.EndTime = t
	}
	if p.Status != nil {
		if !ValidStatus(*p.Status) {
			return "status must be one of SCHEDULED, COMPLETED, CANCELLED"
		}
		apt.Status = *p.Status
	}
	if !apt.EndTime.After(apt.StartTime) {
		return "endTime must be after startTime"
	}
	return ""
}
