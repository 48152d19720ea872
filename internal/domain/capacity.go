package domain

import "github.com/bitebooking/booking-engine/pkg/types"

// CommittedPeople sums the party sizes of capacity-consuming bookings
// (pending or confirmed) at the exact time t. The caller passes all bookings
// of the restaurant for the date; одного запроса на дату хватает и для чтения,
// и для повторной проверки в транзакции создания.
func CommittedPeople(bookings []*Booking, t types.TimeString) int {
	total := 0
	for _, b := range bookings {
		if !b.ConsumesCapacity() {
			continue
		}
		if b.BookingTime.Equal(t) {
			total += b.NumPeople
		}
	}
	return total
}

// RemainingCapacity returns maxCapacity - committed, floored at zero.
// A negative true value means the slot is already oversold; callers treat it
// as zero remaining, never as an error.
func RemainingCapacity(maxCapacity, committed int) int {
	remaining := maxCapacity - committed
	if remaining < 0 {
		return 0
	}
	return remaining
}
