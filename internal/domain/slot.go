package domain

import "github.com/bitebooking/booking-engine/pkg/types"

// SlotPeriod labels the service window a slot belongs to
type SlotPeriod string

const (
	PeriodLunch   SlotPeriod = "LUNCH"
	PeriodDinner  SlotPeriod = "DINNER"
	PeriodGeneral SlotPeriod = "GENERAL"
)

// TimeSlot represents a candidate booking time with its capacity ceiling
type TimeSlot struct {
	Time              types.TimeString
	Period            SlotPeriod
	MaxCapacity       int
	AvailableCapacity int
	IsAvailable       bool // true if AvailableCapacity covers the requested party size
}

// IsFull returns true if the slot has no remaining seats
func (s *TimeSlot) IsFull() bool {
	return s.AvailableCapacity <= 0
}

// HasRoomFor returns true if the slot can admit a party of numPeople
func (s *TimeSlot) HasRoomFor(numPeople int) bool {
	return s.AvailableCapacity >= numPeople
}
