package get_availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitebooking/booking-engine/internal/domain"
	"github.com/bitebooking/booking-engine/pkg/types"
)

func TestGenerateTimeSlots_ZeroWidthLunchWindow(t *testing.T) {
	schedule := &domain.WeeklySchedule{
		IsOpen:              true,
		LunchStart:          timePtr("12:00"),
		LunchEnd:            timePtr("12:00"),
		DinnerStart:         timePtr("20:00"),
		DinnerEnd:           timePtr("22:00"),
		MaxCapacityPerSlot:  10,
		SlotIntervalMinutes: 30,
	}

	slots := generateTimeSlots(schedule)

	// Окно нулевой ширины не даёт ни одного обеденного слота
	times := make([]types.TimeString, len(slots))
	for i, s := range slots {
		assert.Equal(t, domain.PeriodDinner, s.Period)
		times[i] = s.Time
	}
	assert.Equal(t, []types.TimeString{"20:00", "20:30", "21:00", "21:30"}, times)
}

func TestGenerateTimeSlots_Deterministic(t *testing.T) {
	schedule := splitSchedule(testDate.Weekday())

	first := generateTimeSlots(schedule)
	second := generateTimeSlots(schedule)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}
