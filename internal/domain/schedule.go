package domain

import (
	"time"

	"github.com/bitebooking/booking-engine/pkg/types"
)

// WeeklySchedule describes the opening pattern of a restaurant for one day of
// the week. At most one row exists per (restaurant, day). When IsOpen is
// false, all time fields are ignored for slot generation.
type WeeklySchedule struct {
	ID           int64
	RestaurantID int64
	DayOfWeek    time.Weekday

	IsOpen bool

	OpenTime  *types.TimeString
	CloseTime *types.TimeString

	// Optional split-service sub-windows
	LunchStart  *types.TimeString
	LunchEnd    *types.TimeString
	DinnerStart *types.TimeString
	DinnerEnd   *types.TimeString

	// Whole-restaurant ceiling, informational
	MaxCapacity *int

	MaxCapacityPerSlot  int
	SlotIntervalMinutes int
	MinAdvanceHours     int
	MaxAdvanceDays      int

	AcceptsOnlineBookings bool
	Notes                 *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasLunchWindow returns true if the lunch sub-window is configured
func (s *WeeklySchedule) HasLunchWindow() bool {
	return s.LunchStart != nil && s.LunchEnd != nil
}

// HasDinnerWindow returns true if the dinner sub-window is configured
func (s *WeeklySchedule) HasDinnerWindow() bool {
	return s.DinnerStart != nil && s.DinnerEnd != nil
}

// HasGeneralWindow returns true if plain open/close hours are configured
func (s *WeeklySchedule) HasGeneralWindow() bool {
	return s.OpenTime != nil && s.CloseTime != nil
}

// IsTimeWithinOpenHours returns true if t falls inside [open, close]
func (s *WeeklySchedule) IsTimeWithinOpenHours(t types.TimeString) bool {
	if !s.IsOpen || !s.HasGeneralWindow() {
		return false
	}
	return !t.IsBefore(*s.OpenTime) && !t.IsAfter(*s.CloseTime)
}

// ClosedDate marks a one-off closure of a restaurant (holidays, vacations).
// A row here always overrides the weekly schedule for that date.
type ClosedDate struct {
	ID           int64
	RestaurantID int64
	Date         time.Time
	Reason       string

	// Stored but not applied to lookups: yearly recurrence matching awaits
	// product confirmation (lookup compares the exact date only).
	IsRecurringYearly bool

	CreatedAt time.Time
}

// spanishDayNames названия дней недели для пользовательских сообщений
var spanishDayNames = map[time.Weekday]string{
	time.Monday:    "lunes",
	time.Tuesday:   "martes",
	time.Wednesday: "miércoles",
	time.Thursday:  "jueves",
	time.Friday:    "viernes",
	time.Saturday:  "sábados",
	time.Sunday:    "domingos",
}

// SpanishDayName returns the lowercase Spanish name of the weekday,
// as used in closure reasons ("Cerrado los lunes")
func SpanishDayName(d time.Weekday) string {
	return spanishDayNames[d]
}

// dayOfWeekNames canonical storage names for weekdays
var dayOfWeekNames = map[time.Weekday]string{
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
	time.Sunday:    "sunday",
}

// DayOfWeekName returns the canonical lowercase name used in storage and APIs
func DayOfWeekName(d time.Weekday) string {
	return dayOfWeekNames[d]
}

// ParseDayOfWeek parses a canonical lowercase day name.
// Returns false for anything that is not one of the seven names.
func ParseDayOfWeek(name string) (time.Weekday, bool) {
	for day, n := range dayOfWeekNames {
		if n == name {
			return day, true
		}
	}
	return 0, false
}
