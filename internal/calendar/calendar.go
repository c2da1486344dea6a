// Package calendar projects flat appointment lists onto month and upcoming
// views. Everything here is pure; callers fetch the data first.
package calendar

import (
	"sort"
	"time"
)

// Cells in a month grid: 6 full weeks.
const GridSize = 42

// Cell is one day slot in a month grid. InMonth is false for the leading and
// trailing days borrowed from the adjacent months.
type Cell struct {
	Date    time.Time `json:"date"`
	InMonth bool      `json:"isCurrentMonth"`
}

// Event is anything with a calendar date and a start timestamp.
type Event interface {
	EventDate() time.Time
	EventStart() time.Time
}

// MonthGrid returns exactly GridSize cells covering the given month,
// Sunday-first. Leading cells walk back from the 1st to the previous Sunday,
// then the month's own days, then days from the next month until the grid is
// full. Cell dates are midnight UTC.
func MonthGrid(year int, month time.Month) []Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lead := int(first.Weekday()) // Sunday = 0

	cells := make([]Cell, 0, GridSize)
	for i := lead; i > 0; i-- {
		cells = append(cells, Cell{Date: first.AddDate(0, 0, -i)})
	}

	daysIn := first.AddDate(0, 1, -1).Day()
	for d := 1; d <= daysIn; d++ {
		cells = append(cells, Cell{Date: time.Date(year, month, d, 0, 0, 0, 0, time.UTC), InMonth: true})
	}

	next := first.AddDate(0, 1, 0)
	for d := 0; len(cells) < GridSize; d++ {
		cells = append(cells, Cell{Date: next.AddDate(0, 0, d)})
	}
	return cells
}

// SameDay reports calendar-day equality, ignoring time of day. Both sides are
// compared in UTC, matching how appointment dates are stored.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// ForDay returns the events whose date falls on day, preserving input order.
func ForDay[E Event](events []E, day time.Time) []E {
	var out []E
	for _, e := range events {
		if SameDay(e.EventDate(), day) {
			out = append(out, e)
		}
	}
	return out
}

// Upcoming filters events dated today or later (day-level comparison against
// now), sorts them by start time ascending, and keeps at most limit entries.
// A limit <= 0 means no cap.
func Upcoming[E Event](events []E, now time.Time, limit int) []E {
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	var out []E
	for _, e := range events {
		if !e.EventDate().UTC().Before(today) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EventStart().Before(out[j].EventStart())
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
