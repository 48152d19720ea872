package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitebooking/booking-engine/pkg/types"
)

func ts(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}

func TestWeeklySchedule_Windows(t *testing.T) {
	s := &WeeklySchedule{
		IsOpen:     true,
		LunchStart: ts("13:00"),
		LunchEnd:   ts("16:00"),
	}

	assert.True(t, s.HasLunchWindow())
	assert.False(t, s.HasDinnerWindow())
	assert.False(t, s.HasGeneralWindow())

	s.DinnerStart = ts("20:00")
	s.DinnerEnd = ts("23:30")
	assert.True(t, s.HasDinnerWindow())

	// Окно задаётся только парой
	s.OpenTime = ts("09:00")
	assert.False(t, s.HasGeneralWindow())
	s.CloseTime = ts("23:00")
	assert.True(t, s.HasGeneralWindow())
}

func TestWeeklySchedule_IsTimeWithinOpenHours(t *testing.T) {
	s := &WeeklySchedule{
		IsOpen:    true,
		OpenTime:  ts("09:00"),
		CloseTime: ts("23:00"),
	}

	assert.True(t, s.IsTimeWithinOpenHours("09:00"))
	assert.True(t, s.IsTimeWithinOpenHours("15:30"))
	assert.True(t, s.IsTimeWithinOpenHours("23:00"))
	assert.False(t, s.IsTimeWithinOpenHours("08:59"))
	assert.False(t, s.IsTimeWithinOpenHours("23:01"))

	closed := &WeeklySchedule{IsOpen: false, OpenTime: ts("09:00"), CloseTime: ts("23:00")}
	assert.False(t, closed.IsTimeWithinOpenHours("12:00"))
}

func TestParseDayOfWeek(t *testing.T) {
	day, ok := ParseDayOfWeek("monday")
	assert.True(t, ok)
	assert.Equal(t, time.Monday, day)

	day, ok = ParseDayOfWeek("sunday")
	assert.True(t, ok)
	assert.Equal(t, time.Sunday, day)

	_, ok = ParseDayOfWeek("Monday")
	assert.False(t, ok)
	_, ok = ParseDayOfWeek("lunes")
	assert.False(t, ok)
	_, ok = ParseDayOfWeek("")
	assert.False(t, ok)
}

func TestDayOfWeekName_RoundTrip(t *testing.T) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := DayOfWeekName(d)
		assert.NotEmpty(t, name)

		parsed, ok := ParseDayOfWeek(name)
		assert.True(t, ok)
		assert.Equal(t, d, parsed)
	}
}

func TestSpanishDayName(t *testing.T) {
	assert.Equal(t, "lunes", SpanishDayName(time.Monday))
	assert.Equal(t, "miércoles", SpanishDayName(time.Wednesday))
	assert.Equal(t, "domingos", SpanishDayName(time.Sunday))
}

func TestPrincipal_CanManageRestaurant(t *testing.T) {
	owner := Principal{UserID: 10, Role: RoleOwner}
	admin := Principal{UserID: 99, Role: RoleAdmin}
	user := Principal{UserID: 20, Role: RoleUser}

	assert.True(t, owner.CanManageRestaurant(10))
	assert.False(t, owner.CanManageRestaurant(11))
	assert.True(t, admin.CanManageRestaurant(10))
	assert.False(t, user.CanManageRestaurant(10))
}
