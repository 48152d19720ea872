package get_availability

import (
	"time"

	"github.com/bitebooking/booking-engine/internal/domain"
	"github.com/bitebooking/booking-engine/pkg/types"
)

// generateTimeSlots генерирует кандидатов-слоты по расписанию на день.
// Если настроены окна обеда/ужина, слоты идут только внутри них, иначе
// используется общее окно open..close. Окна полуоткрытые: слот на границе
// закрытия не создаётся.
func generateTimeSlots(schedule *domain.WeeklySchedule) []domain.TimeSlot {
	if !schedule.IsOpen {
		return []domain.TimeSlot{}
	}

	interval := schedule.SlotIntervalMinutes
	if interval <= 0 {
		interval = domain.DefaultSlotIntervalMinutes
	}

	slots := make([]domain.TimeSlot, 0)

	if schedule.HasLunchWindow() || schedule.HasDinnerWindow() {
		if schedule.HasLunchWindow() {
			slots = append(slots, walkWindow(*schedule.LunchStart, *schedule.LunchEnd, interval, domain.PeriodLunch, schedule.MaxCapacityPerSlot)...)
		}
		if schedule.HasDinnerWindow() {
			slots = append(slots, walkWindow(*schedule.DinnerStart, *schedule.DinnerEnd, interval, domain.PeriodDinner, schedule.MaxCapacityPerSlot)...)
		}
		return slots
	}

	if schedule.HasGeneralWindow() {
		return walkWindow(*schedule.OpenTime, *schedule.CloseTime, interval, domain.PeriodGeneral, schedule.MaxCapacityPerSlot)
	}

	return slots
}

// walkWindow идёт от start к end с шагом interval, не включая end
func walkWindow(start, end types.TimeString, interval int, period domain.SlotPeriod, maxCapacity int) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0)

	t := start
	for t.IsBefore(end) {
		slots = append(slots, domain.TimeSlot{
			Time:        t,
			Period:      period,
			MaxCapacity: maxCapacity,
		})

		next, err := t.AddMinutes(interval)
		if err != nil {
			// Дошли до конца суток
			break
		}
		t = next
	}

	return slots
}

// filterSameDaySlots убирает слоты, до которых осталось меньше minAdvanceHours.
// Применяется только когда запрошенная дата - сегодня.
func filterSameDaySlots(slots []domain.TimeSlot, now time.Time, minAdvanceHours int) []domain.TimeSlot {
	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minAdvanceHours * 60)
	if err != nil {
		// Минимальное время ушло за полночь, сегодня слотов не осталось
		return []domain.TimeSlot{}
	}

	filtered := make([]domain.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		if !slot.Time.IsBefore(minAllowedTime) {
			filtered = append(filtered, slot)
		}
	}

	return filtered
}

// applyCapacity вычисляет свободные места для каждого слота по активным
// броням. Слот доступен, если в него помещается вся группа.
func applyCapacity(slots []domain.TimeSlot, bookings []*domain.Booking, numPeople int) []domain.TimeSlot {
	for i := range slots {
		committed := domain.CommittedPeople(bookings, slots[i].Time)
		slots[i].AvailableCapacity = domain.RemainingCapacity(slots[i].MaxCapacity, committed)
		slots[i].IsAvailable = slots[i].AvailableCapacity >= numPeople
	}
	return slots
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

// isBeyondAdvanceLimit проверяет, что дата дальше maxAdvanceDays от сегодня
func isBeyondAdvanceLimit(date, now time.Time, maxAdvanceDays int) bool {
	if maxAdvanceDays <= 0 {
		return false
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, maxAdvanceDays)
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	return dateOnly.After(maxDate)
}
