package domain

import (
	"time"

	"github.com/bitebooking/booking-engine/pkg/types"
)

// BookingStatus represents the status of a table reservation
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"   // waiting for the restaurant to confirm
	StatusConfirmed BookingStatus = "confirmed" // confirmed by the restaurant
	StatusCancelled BookingStatus = "cancelled" // cancelled by the requester, the owner or an admin
	StatusRejected  BookingStatus = "rejected"  // rejected by the restaurant
	StatusCompleted BookingStatus = "completed" // the guests showed up
	StatusNoShow    BookingStatus = "no_show"   // the guests did not show up
)

// IsValid returns true if the status is one of the canonical six states
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusRejected, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// IsTerminal returns true if no further transition is allowed from the status
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case StatusCancelled, StatusRejected, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// legalTransitions is the booking lifecycle:
// pending → confirmed | rejected | cancelled
// confirmed → completed | no_show | cancelled
var legalTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusNoShow, StatusCancelled},
}

// CanTransitionTo returns true if moving from s to target is a legal transition
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Booking represents a table reservation in the system
type Booking struct {
	ID           int64
	RestaurantID int64
	UserID       int64

	BookingDate time.Time
	BookingTime types.TimeString
	NumPeople   int

	Status BookingStatus

	Observations    string
	SpecialRequests string
	ContactName     *string
	ContactPhone    *string

	CancellationReason *string

	// Owned by the notification collaborator, persisted here for its sweep
	ReminderSent     bool
	ConfirmationSent bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ConsumesCapacity returns true if the booking counts against slot capacity.
// Only pending and confirmed bookings hold seats; completed bookings are
// history and never block future admission for the same recurring slot.
func (b *Booking) ConsumesCapacity() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if the booking reached a terminal status
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// RestaurantBookingsFilter фильтр для получения бронирований ресторана
type RestaurantBookingsFilter struct {
	RestaurantID    int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли брони, не занимающие места (отменённые и т.д.)
}

// UserBookingsFilter фильтр для получения бронирований пользователя
type UserBookingsFilter struct {
	UserID int64
	Status *BookingStatus // Фильтр по статусу (опционально)
	From   *time.Time     // Только брони начиная с даты (предстоящие)
	Until  *time.Time     // Только брони до даты (история)
}
