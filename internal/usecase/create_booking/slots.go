package create_booking

import (
	"github.com/bitebooking/booking-engine/internal/domain"
	"github.com/bitebooking/booking-engine/pkg/types"
)

// generateTimeSlots генерирует кандидатов-слоты по расписанию на день.
// Логика совпадает с выдачей доступности: окна обеда/ужина при наличии,
// иначе общее окно open..close, окна полуоткрытые.
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
