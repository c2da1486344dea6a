package calendar

import (
	"testing"
	"time"
)

type testEvent struct {
	name  string
	date  time.Time
	start time.Time
}

func (e testEvent) EventDate() time.Time  { return e.date }
func (e testEvent) EventStart() time.Time { return e.start }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthGridSize(t *testing.T) {
	months := []struct {
		year  int
		month time.Month
	}{
		{2024, time.January},
		{2024, time.February}, // leap
		{2025, time.February},
		{2024, time.June},
		{2024, time.December},
		{2023, time.September},
	}
	for _, m := range months {
		cells := MonthGrid(m.year, m.month)
		if len(cells) != GridSize {
			t.Errorf("%d-%02d: got %d cells, want %d", m.year, m.month, len(cells), GridSize)
		}
	}
}

func TestMonthGridStartsOnSunday(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		cells := MonthGrid(2024, month)
		if cells[0].Date.Weekday() != time.Sunday {
			t.Errorf("2024-%02d: first cell is %v, want Sunday", month, cells[0].Date.Weekday())
		}
	}
}

func TestMonthGridAlignment(t *testing.T) {
	// June 1st 2024 is a Saturday, so six leading cells from May.
	cells := MonthGrid(2024, time.June)

	first := day(2024, time.June, 1)
	lead := int(first.Weekday())
	if lead != 6 {
		t.Fatalf("sanity: June 1st 2024 weekday offset = %d, want 6", lead)
	}
	for i := 0; i < lead; i++ {
		if cells[i].InMonth {
			t.Errorf("cell %d: leading cell marked as current month", i)
		}
	}
	if !cells[lead].Date.Equal(first) {
		t.Errorf("cell %d: got %v, want %v", lead, cells[lead].Date, first)
	}
	if !cells[lead].InMonth {
		t.Errorf("cell %d: first of month not marked as current month", lead)
	}
	// leading cells count back from the 1st
	if want := day(2024, time.May, 26); !cells[0].Date.Equal(want) {
		t.Errorf("cell 0: got %v, want %v", cells[0].Date, want)
	}
}

func TestMonthGridInMonthCount(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		days  int
	}{
		{2024, time.February, 29},
		{2025, time.February, 28},
		{2024, time.June, 30},
		{2024, time.July, 31},
	}
	for _, tt := range tests {
		count := 0
		for _, cell := range MonthGrid(tt.year, tt.month) {
			if cell.InMonth {
				count++
			}
		}
		if count != tt.days {
			t.Errorf("%d-%02d: %d in-month cells, want %d", tt.year, tt.month, count, tt.days)
		}
	}
}

func TestMonthGridTrailingDays(t *testing.T) {
	// February 2025: Feb 1st is a Saturday -> 6 leading + 28 + 8 trailing.
	cells := MonthGrid(2025, time.February)
	if want := day(2025, time.March, 1); !cells[34].Date.Equal(want) {
		t.Errorf("cell 34: got %v, want %v", cells[34].Date, want)
	}
	if cells[41].InMonth {
		t.Error("last cell marked as current month")
	}
	if want := day(2025, time.March, 8); !cells[41].Date.Equal(want) {
		t.Errorf("cell 41: got %v, want %v", cells[41].Date, want)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, time.June, 10, 9, 30, 0, 0, time.UTC)
	b := time.Date(2024, time.June, 10, 23, 59, 59, 0, time.UTC)
	if !SameDay(a, b) {
		t.Error("same calendar day with different times should match")
	}
	if SameDay(a, a.AddDate(0, 0, 1)) {
		t.Error("adjacent days should not match")
	}
}

func TestForDay(t *testing.T) {
	d := day(2024, time.June, 10)
	events := []testEvent{
		{"before", d.AddDate(0, 0, -1), d.AddDate(0, 0, -1)},
		{"first", d.Add(9 * time.Hour), d.Add(9 * time.Hour)},
		{"second", d.Add(14 * time.Hour), d.Add(14 * time.Hour)},
		{"after", d.AddDate(0, 0, 1), d.AddDate(0, 0, 1)},
	}

	got := ForDay(events, d)
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	// input order preserved
	if got[0].name != "first" || got[1].name != "second" {
		t.Errorf("order not preserved: %s, %s", got[0].name, got[1].name)
	}
}

func TestForDayEmpty(t *testing.T) {
	if got := ForDay([]testEvent{}, day(2024, time.June, 10)); len(got) != 0 {
		t.Errorf("got %d events from empty input", len(got))
	}
}

func TestUpcoming(t *testing.T) {
	now := time.Date(2024, time.June, 10, 15, 0, 0, 0, time.UTC)
	events := []testEvent{
		{"yesterday", day(2024, time.June, 9), day(2024, time.June, 9).Add(10 * time.Hour)},
		{"tomorrow", day(2024, time.June, 11), day(2024, time.June, 11).Add(9 * time.Hour)},
		// earlier today: the comparison is day-level, so it stays in
		{"today", day(2024, time.June, 10), day(2024, time.June, 10).Add(8 * time.Hour)},
		{"nextweek", day(2024, time.June, 17), day(2024, time.June, 17).Add(9 * time.Hour)},
	}

	got := Upcoming(events, now, 5)
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	want := []string{"today", "tomorrow", "nextweek"}
	for i, name := range want {
		if got[i].name != name {
			t.Errorf("position %d: got %s, want %s", i, got[i].name, name)
		}
	}
}

func TestUpcomingLimit(t *testing.T) {
	now := day(2024, time.June, 1)
	var events []testEvent
	for i := 0; i < 10; i++ {
		d := now.AddDate(0, 0, i+1)
		events = append(events, testEvent{date: d, start: d.Add(9 * time.Hour)})
	}

	if got := Upcoming(events, now, 5); len(got) != 5 {
		t.Errorf("limit 5: got %d events", len(got))
	}
	if got := Upcoming(events, now, 0); len(got) != 10 {
		t.Errorf("limit 0 (no cap): got %d events", len(got))
	}
}
