package app

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ahmvdd/gestion-rdv/internal/calendar"
)

type monthCell struct {
	Date         time.Time     `json:"date"`
	InMonth      bool          `json:"isCurrentMonth"`
	Appointments []Appointment `json:"appointments"`
}

// GET /api/calendar/month?year=2024&month=6
// Returns the 42-cell grid with the user's appointments bucketed per day.
func (a *App) MonthViewHandler(c *gin.Context) {
	now := time.Now().UTC()
	year := now.Year()
	month := int(now.Month())

	var err error
	if y := c.Query("year"); y != "" {
		if year, err = strconv.Atoi(y); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
	}
	if m := c.Query("month"); m != "" {
		if month, err = strconv.Atoi(m); err != nil || month < 1 || month > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
			return
		}
	}

	grid := calendar.MonthGrid(year, time.Month(month))

	// one query covering the whole grid window
	from := grid[0].Date
	to := grid[len(grid)-1].Date.AddDate(0, 0, 1)
	appts, err := a.ListAppointments(c.Request.Context(), currentUserID(c), AppointmentFilter{From: &from, To: &to})
	if err != nil {
		log.Printf("calendar: list: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	cells := make([]monthCell, len(grid))
	for i, cell := range grid {
		day := calendar.ForDay(appts, cell.Date)
		if day == nil {
			day = []Appointment{}
		}
		cells[i] = monthCell{Date: cell.Date, InMonth: cell.InMonth, Appointments: day}
	}

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"cells": cells,
	})
}

// GET /api/appointments/upcoming?limit=5
func (a *App) UpcomingAppointmentsHandler(c *gin.Context) {
	limit := 5
	if l := c.Query("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	appts, err := a.ListAppointments(c.Request.Context(), currentUserID(c), AppointmentFilter{})
	if err != nil {
		log.Printf("upcoming: list: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	out := calendar.Upcoming(appts, time.Now(), limit)
	if out == nil {
		out = []Appointment{}
	}
	c.JSON(http.StatusOK, out)
}
