package schedules

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitebooking/booking-engine/internal/domain"
	closedDateRepo "github.com/bitebooking/booking-engine/internal/infra/storage/closeddate"
	scheduleRepo "github.com/bitebooking/booking-engine/internal/infra/storage/schedule"
	restaurantClient "github.com/bitebooking/booking-engine/internal/integrations/restaurantservice"
	"github.com/bitebooking/booking-engine/internal/service/schedules/models"
	"github.com/bitebooking/booking-engine/pkg/ptr"
)

var (
	owner    = domain.Principal{UserID: 10, Role: domain.RoleOwner}
	admin    = domain.Principal{UserID: 99, Role: domain.RoleAdmin}
	stranger = domain.Principal{UserID: 55, Role: domain.RoleUser}

	testNow = time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
)

type fakeScheduleRepo struct {
	schedules map[time.Weekday]*domain.WeeklySchedule
	upserted  []*domain.WeeklySchedule
	nextID    int64
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{schedules: make(map[time.Weekday]*domain.WeeklySchedule)}
}

func (f *fakeScheduleRepo) GetByRestaurantAndDay(_ context.Context, _ int64, day time.Weekday) (*domain.WeeklySchedule, error) {
	if s, ok := f.schedules[day]; ok {
		return s, nil
	}
	return nil, scheduleRepo.ErrScheduleNotFound
}

func (f *fakeScheduleRepo) ListByRestaurant(_ context.Context, _ int64) ([]*domain.WeeklySchedule, error) {
	result := make([]*domain.WeeklySchedule, 0, len(f.schedules))
	for _, s := range f.schedules {
		result = append(result, s)
	}
	return result, nil
}

func (f *fakeScheduleRepo) Upsert(_ context.Context, schedule *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	f.nextID++
	saved := *schedule
	saved.ID = f.nextID
	f.schedules[schedule.DayOfWeek] = &saved
	f.upserted = append(f.upserted, &saved)
	return &saved, nil
}

func (f *fakeScheduleRepo) DeleteByDay(_ context.Context, _ int64, day time.Weekday) error {
	if _, ok := f.schedules[day]; !ok {
		return scheduleRepo.ErrScheduleNotFound
	}
	delete(f.schedules, day)
	return nil
}

type fakeClosedDateRepo struct {
	closedDates []*domain.ClosedDate
	nextID      int64
}

func (f *fakeClosedDateRepo) ListUpcoming(_ context.Context, _ int64, from time.Time) ([]*domain.ClosedDate, error) {
	result := make([]*domain.ClosedDate, 0)
	for _, cd := range f.closedDates {
		if !cd.Date.Before(from) {
			result = append(result, cd)
		}
	}
	return result, nil
}

func (f *fakeClosedDateRepo) Create(_ context.Context, closedDate *domain.ClosedDate) (*domain.ClosedDate, error) {
	f.nextID++
	saved := *closedDate
	saved.ID = f.nextID
	f.closedDates = append(f.closedDates, &saved)
	return &saved, nil
}

func (f *fakeClosedDateRepo) Delete(_ context.Context, _ int64, date time.Time) error {
	for i, cd := range f.closedDates {
		if cd.Date.Equal(date) {
			f.closedDates = append(f.closedDates[:i], f.closedDates[i+1:]...)
			return nil
		}
	}
	return closedDateRepo.ErrClosedDateNotFound
}

type fakeRestaurantClient struct {
	restaurant *restaurantClient.Restaurant
	err        error
}

func (f *fakeRestaurantClient) GetRestaurant(_ context.Context, _ int64) (*restaurantClient.Restaurant, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.restaurant, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type testEnv struct {
	svc          *Service
	scheduleRepo *fakeScheduleRepo
	closedRepo   *fakeClosedDateRepo
}

func newTestEnv() *testEnv {
	scheduleRepository := newFakeScheduleRepo()
	closedRepository := &fakeClosedDateRepo{}
	restaurant := &restaurantClient.Restaurant{ID: 1, OwnerID: owner.UserID, Name: "La Tasca", IsActive: true}

	svc := NewService(
		scheduleRepository,
		closedRepository,
		&fakeRestaurantClient{restaurant: restaurant},
		fakeTxManager{},
		&fixedTimeProvider{now: testNow},
		nopLogger{},
	)

	return &testEnv{svc: svc, scheduleRepo: scheduleRepository, closedRepo: closedRepository}
}

func openDay(day string) models.UpsertScheduleRequest {
	return models.UpsertScheduleRequest{
		DayOfWeek: day,
		IsOpen:    true,
		OpenTime:  ptr.Ptr("09:00"),
		CloseTime: ptr.Ptr("23:00"),
	}
}

func TestUpsertSchedule(t *testing.T) {
	env := newTestEnv()

	req := openDay("tuesday")
	resp, err := env.svc.UpsertSchedule(context.Background(), 1, &req, owner)
	require.NoError(t, err)

	assert.Equal(t, "tuesday", resp.DayOfWeek)
	assert.True(t, resp.IsOpen)
	require.Len(t, env.scheduleRepo.upserted, 1)
}

func TestUpsertSchedule_AccessDenied(t *testing.T) {
	env := newTestEnv()

	req := openDay("tuesday")
	_, err := env.svc.UpsertSchedule(context.Background(), 1, &req, stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, env.scheduleRepo.upserted)
}

func TestUpsertSchedule_InvalidInput(t *testing.T) {
	env := newTestEnv()

	req := models.UpsertScheduleRequest{DayOfWeek: "someday", IsOpen: true}
	_, err := env.svc.UpsertSchedule(context.Background(), 1, &req, owner)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBulkUpsertSchedules(t *testing.T) {
	env := newTestEnv()

	req := &models.BulkUpsertSchedulesRequest{Schedules: []models.UpsertScheduleRequest{
		openDay("monday"),
		openDay("tuesday"),
		{DayOfWeek: "sunday", IsOpen: false},
	}}

	resp, err := env.svc.BulkUpsertSchedules(context.Background(), 1, req, admin)
	require.NoError(t, err)
	assert.Len(t, resp.Schedules, 3)
	assert.Len(t, env.scheduleRepo.upserted, 3)
}

func TestBulkUpsertSchedules_ValidatesBeforeWriting(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name      string
		schedules []models.UpsertScheduleRequest
	}{
		{name: "empty list", schedules: nil},
		{name: "invalid entry", schedules: []models.UpsertScheduleRequest{
			openDay("monday"),
			{DayOfWeek: "monday", IsOpen: true}, // без окон
		}},
		{name: "duplicate day", schedules: []models.UpsertScheduleRequest{
			openDay("monday"),
			openDay("monday"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &models.BulkUpsertSchedulesRequest{Schedules: tt.schedules}
			_, err := env.svc.BulkUpsertSchedules(context.Background(), 1, req, owner)
			assert.ErrorIs(t, err, ErrInvalidInput)
			// Ни одна строка не записана
			assert.Empty(t, env.scheduleRepo.upserted)
		})
	}
}

func TestDeleteScheduleDay(t *testing.T) {
	env := newTestEnv()

	req := openDay("tuesday")
	_, err := env.svc.UpsertSchedule(context.Background(), 1, &req, owner)
	require.NoError(t, err)

	err = env.svc.DeleteScheduleDay(context.Background(), 1, "tuesday", owner)
	require.NoError(t, err)

	err = env.svc.DeleteScheduleDay(context.Background(), 1, "tuesday", owner)
	assert.ErrorIs(t, err, ErrScheduleNotFound)

	err = env.svc.DeleteScheduleDay(context.Background(), 1, "someday", owner)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListClosedDates_OnlyUpcoming(t *testing.T) {
	env := newTestEnv()
	env.closedRepo.closedDates = []*domain.ClosedDate{
		{ID: 1, RestaurantID: 1, Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Reason: "Año Nuevo"},
		{ID: 2, RestaurantID: 1, Date: time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC), Reason: "Navidad"},
	}

	resp, err := env.svc.ListClosedDates(context.Background(), 1)
	require.NoError(t, err)

	// Прошедшие даты не возвращаются
	require.Len(t, resp.ClosedDates, 1)
	assert.Equal(t, "2026-12-25", resp.ClosedDates[0].Date)
}

func TestAddClosedDate(t *testing.T) {
	env := newTestEnv()

	req := &models.AddClosedDateRequest{Date: "2026-12-25", Reason: "Navidad"}
	resp, err := env.svc.AddClosedDate(context.Background(), 1, req, owner)
	require.NoError(t, err)

	assert.Equal(t, "2026-12-25", resp.Date)
	assert.Equal(t, "Navidad", resp.Reason)

	_, err = env.svc.AddClosedDate(context.Background(), 1, req, stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = env.svc.AddClosedDate(context.Background(), 1, &models.AddClosedDateRequest{Date: "bad"}, owner)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBulkAddClosedDates(t *testing.T) {
	env := newTestEnv()

	req := &models.BulkAddClosedDatesRequest{ClosedDates: []models.AddClosedDateRequest{
		{Date: "2026-12-24", Reason: "Nochebuena"},
		{Date: "2026-12-25", Reason: "Navidad"},
	}}

	resp, err := env.svc.BulkAddClosedDates(context.Background(), 1, req, owner)
	require.NoError(t, err)
	assert.Len(t, resp.ClosedDates, 2)

	_, err = env.svc.BulkAddClosedDates(context.Background(), 1, &models.BulkAddClosedDatesRequest{}, owner)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRemoveClosedDate(t *testing.T) {
	env := newTestEnv()

	req := &models.AddClosedDateRequest{Date: "2026-12-25", Reason: "Navidad"}
	_, err := env.svc.AddClosedDate(context.Background(), 1, req, owner)
	require.NoError(t, err)

	err = env.svc.RemoveClosedDate(context.Background(), 1, "2026-12-25", owner)
	require.NoError(t, err)

	err = env.svc.RemoveClosedDate(context.Background(), 1, "2026-12-25", owner)
	assert.ErrorIs(t, err, ErrClosedDateNotFound)

	err = env.svc.RemoveClosedDate(context.Background(), 1, "bad-date", owner)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
