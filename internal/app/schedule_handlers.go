package app

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type upsertScheduleReq struct {
	DayOfWeek string `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsActive  *bool  `json:"isActive"`
}

// GET /api/schedules
func (a *App) ListSchedulesHandler(c *gin.Context) {
	schedules, err := a.ListSchedules(c.Request.Context(), currentUserID(c))
	if err != nil {
		log.Printf("schedules: list: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if schedules == nil {
		schedules = []Schedule{}
	}
	c.JSON(http.StatusOK, schedules)
}

// POST /api/schedules
// Create-or-replace keyed on (user, dayOfWeek). Toggling a day's active flag
// re-sends the stored times with isActive flipped, so there is no separate
// update route.
func (a *App) UpsertScheduleHandler(c *gin.Context) {
	var req upsertScheduleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.DayOfWeek == "" || req.StartTime == "" || req.EndTime == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dayOfWeek, startTime and endTime are required"})
		return
	}
	if !ValidDayOfWeek(req.DayOfWeek) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dayOfWeek"})
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	s := &Schedule{
		ID:        uuid.New().String(),
		UserID:    currentUserID(c),
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsActive:  active,
	}
	if err := a.UpsertSchedule(c.Request.Context(), s); err != nil {
		log.Printf("schedules: upsert: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, s)
}

// DELETE /api/schedules/:id
func (a *App) DeleteScheduleHandler(c *gin.Context) {
	err := a.DeleteSchedule(c.Request.Context(), currentUserID(c), c.Param("id"))
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "schedule not found"})
		return
	}
	if err != nil {
		log.Printf("schedules: delete: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "schedule deleted"})
}
