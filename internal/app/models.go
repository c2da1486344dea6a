package app

import "time"

// Appointment statuses. SCHEDULED is the only state assigned at creation;
// COMPLETED and CANCELLED are set by the owner through updates.
const (
	StatusScheduled = "SCHEDULED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

// Days of week in calendar order. The day_of_week Postgres enum is declared
// in the same order so ORDER BY day_of_week sorts Monday first.
var DaysOfWeek = []string{
	"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY",
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

type Appointment struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

type Schedule struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	DayOfWeek string    `json:"dayOfWeek"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// AppointmentFilter narrows a listing to a window on the appointment's
// calendar date. Nil bounds are ignored; the window is half-open [From, To).
type AppointmentFilter struct {
	From *time.Time
	To   *time.Time
}

// AppointmentPatch carries a partial update. Nil fields are left untouched
// when the patch is applied, so a PUT never nulls out an omitted value.
type AppointmentPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	Status      *string `json:"status"`
}

func ValidStatus(s string) bool {
	return s == StatusScheduled || s == StatusCompleted || s == StatusCancelled
}

func ValidDayOfWeek(d string) bool {
	for _, day := range DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

// EventDate and EventStart satisfy calendar.Event so projection helpers can
// run directly over appointment slices.
func (a Appointment) EventDate() time.Time  { return a.Date }
func (a Appointment) EventStart() time.Time { return a.StartTime }
