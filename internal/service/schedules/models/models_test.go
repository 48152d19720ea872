package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitebooking/booking-engine/internal/domain"
	"github.com/bitebooking/booking-engine/pkg/ptr"
	"github.com/bitebooking/booking-engine/pkg/types"
)

func strPtr(s string) *string {
	return &s
}

func TestUpsertScheduleRequest_ToDomain_Defaults(t *testing.T) {
	req := &UpsertScheduleRequest{
		DayOfWeek: "tuesday",
		IsOpen:    true,
		OpenTime:  strPtr("09:00"),
		CloseTime: strPtr("23:00"),
	}

	schedule, err := req.ToDomain(1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), schedule.RestaurantID)
	assert.Equal(t, time.Tuesday, schedule.DayOfWeek)
	assert.True(t, schedule.IsOpen)
	assert.Equal(t, types.TimeString("09:00"), *schedule.OpenTime)
	assert.Equal(t, types.TimeString("23:00"), *schedule.CloseTime)

	// Незаполненные параметры слотов получают дефолты
	assert.Equal(t, domain.DefaultMaxCapacityPerSlot, schedule.MaxCapacityPerSlot)
	assert.Equal(t, domain.DefaultSlotIntervalMinutes, schedule.SlotIntervalMinutes)
	assert.Equal(t, domain.DefaultMinAdvanceHours, schedule.MinAdvanceHours)
	assert.Equal(t, domain.DefaultMaxAdvanceDays, schedule.MaxAdvanceDays)
	assert.True(t, schedule.AcceptsOnlineBookings)
	assert.Nil(t, schedule.MaxCapacity)
}

func TestUpsertScheduleRequest_ToDomain_ExplicitValues(t *testing.T) {
	req := &UpsertScheduleRequest{
		DayOfWeek:             "friday",
		IsOpen:                true,
		LunchStart:            strPtr("13:00"),
		LunchEnd:              strPtr("16:00"),
		DinnerStart:           strPtr("20:00"),
		DinnerEnd:             strPtr("23:30"),
		MaxCapacity:           ptr.Ptr(80),
		MaxCapacityPerSlot:    ptr.Ptr(12),
		SlotIntervalMinutes:   ptr.Ptr(15),
		MinAdvanceHours:       ptr.Ptr(4),
		MaxAdvanceDays:        ptr.Ptr(14),
		AcceptsOnlineBookings: ptr.Ptr(false),
	}

	schedule, err := req.ToDomain(1)
	require.NoError(t, err)

	assert.Equal(t, 12, schedule.MaxCapacityPerSlot)
	assert.Equal(t, 15, schedule.SlotIntervalMinutes)
	assert.Equal(t, 4, schedule.MinAdvanceHours)
	assert.Equal(t, 14, schedule.MaxAdvanceDays)
	assert.False(t, schedule.AcceptsOnlineBookings)
	require.NotNil(t, schedule.MaxCapacity)
	assert.Equal(t, 80, *schedule.MaxCapacity)
	assert.True(t, schedule.HasLunchWindow())
	assert.True(t, schedule.HasDinnerWindow())
}

func TestUpsertScheduleRequest_ToDomain_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     UpsertScheduleRequest
		wantErr error
	}{
		{
			name:    "invalid day",
			req:     UpsertScheduleRequest{DayOfWeek: "someday", IsOpen: false},
			wantErr: ErrInvalidDayOfWeek,
		},
		{
			name: "invalid time format",
			req: UpsertScheduleRequest{
				DayOfWeek: "monday", IsOpen: true,
				OpenTime: strPtr("9am"), CloseTime: strPtr("23:00"),
			},
			wantErr: ErrInvalidTime,
		},
		{
			name: "half-set window",
			req: UpsertScheduleRequest{
				DayOfWeek: "monday", IsOpen: true,
				OpenTime: strPtr("09:00"),
			},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name: "end before start",
			req: UpsertScheduleRequest{
				DayOfWeek: "monday", IsOpen: true,
				OpenTime: strPtr("23:00"), CloseTime: strPtr("09:00"),
			},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name: "zero-length window",
			req: UpsertScheduleRequest{
				DayOfWeek: "monday", IsOpen: true,
				LunchStart: strPtr("13:00"), LunchEnd: strPtr("13:00"),
			},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name: "open day without windows",
			req: UpsertScheduleRequest{
				DayOfWeek: "monday", IsOpen: true,
			},
			wantErr: ErrMissingOpenHours,
		},
		{
			name: "non-positive slot capacity",
			req: UpsertScheduleRequest{
				DayOfWeek: "monday", IsOpen: true,
				OpenTime: strPtr("09:00"), CloseTime: strPtr("23:00"),
				MaxCapacityPerSlot: ptr.Ptr(0),
			},
			wantErr: ErrInvalidCapacity,
		},
		{
			name: "non-positive interval",
			req: UpsertScheduleRequest{
				DayOfWeek: "monday", IsOpen: true,
				OpenTime: strPtr("09:00"), CloseTime: strPtr("23:00"),
				SlotIntervalMinutes: ptr.Ptr(-5),
			},
			wantErr: ErrInvalidCapacity,
		},
		{
			name: "non-positive max capacity",
			req: UpsertScheduleRequest{
				DayOfWeek: "monday", IsOpen: true,
				OpenTime: strPtr("09:00"), CloseTime: strPtr("23:00"),
				MaxCapacity: ptr.Ptr(0),
			},
			wantErr: ErrInvalidCapacity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.req.ToDomain(1)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpsertScheduleRequest_ToDomain_ClosedDayWithoutWindows(t *testing.T) {
	req := &UpsertScheduleRequest{DayOfWeek: "monday", IsOpen: false}

	schedule, err := req.ToDomain(1)
	require.NoError(t, err)
	assert.False(t, schedule.IsOpen)
}

func TestAddClosedDateRequest_ToDomain(t *testing.T) {
	req := &AddClosedDateRequest{
		Date:              "2026-12-25",
		Reason:            "Navidad",
		IsRecurringYearly: true,
	}

	cd, err := req.ToDomain(1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), cd.RestaurantID)
	assert.Equal(t, time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC), cd.Date)
	assert.Equal(t, "Navidad", cd.Reason)
	assert.True(t, cd.IsRecurringYearly)

	_, err = (&AddClosedDateRequest{Date: "25/12/2026"}).ToDomain(1)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestFromDomainSchedule(t *testing.T) {
	open := types.TimeString("09:00")
	closeT := types.TimeString("23:00")

	resp := FromDomainSchedule(&domain.WeeklySchedule{
		ID:                    3,
		DayOfWeek:             time.Wednesday,
		IsOpen:                true,
		OpenTime:              &open,
		CloseTime:             &closeT,
		MaxCapacityPerSlot:    20,
		SlotIntervalMinutes:   30,
		MinAdvanceHours:       2,
		MaxAdvanceDays:        30,
		AcceptsOnlineBookings: true,
	})

	require.NotNil(t, resp)
	assert.Equal(t, "wednesday", resp.DayOfWeek)
	require.NotNil(t, resp.OpenTime)
	assert.Equal(t, "09:00", *resp.OpenTime)
	assert.Nil(t, resp.LunchStart)

	assert.Nil(t, FromDomainSchedule(nil))
}
