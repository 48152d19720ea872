package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitebooking/booking-engine/internal/domain"
	closedDateRepo "github.com/bitebooking/booking-engine/internal/infra/storage/closeddate"
	scheduleRepo "github.com/bitebooking/booking-engine/internal/infra/storage/schedule"
	"github.com/bitebooking/booking-engine/internal/integrations/notifyservice"
	restaurantClient "github.com/bitebooking/booking-engine/internal/integrations/restaurantservice"
	"github.com/bitebooking/booking-engine/pkg/types"
)

// Вторник 2026-09-15, 10:00 утра
var (
	testNow  = time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC) // среда
)

type fakeBookingRepo struct {
	existing []*domain.Booking
	created  []*domain.Booking
	nextID   int64
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	saved := *booking
	saved.ID = f.nextID
	saved.CreatedAt = testNow
	saved.UpdatedAt = testNow
	f.created = append(f.created, &saved)
	return &saved, nil
}

func (f *fakeBookingRepo) ListForDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Booking, error) {
	all := make([]*domain.Booking, 0, len(f.existing)+len(f.created))
	all = append(all, f.existing...)
	all = append(all, f.created...)
	return all, nil
}

type fakeScheduleRepo struct {
	schedules map[time.Weekday]*domain.WeeklySchedule
}

func (f *fakeScheduleRepo) GetByRestaurantAndDay(_ context.Context, _ int64, day time.Weekday) (*domain.WeeklySchedule, error) {
	if s, ok := f.schedules[day]; ok {
		return s, nil
	}
	return nil, scheduleRepo.ErrScheduleNotFound
}

type fakeClosedDateRepo struct {
	closed map[string]*domain.ClosedDate
}

func (f *fakeClosedDateRepo) GetByRestaurantAndDate(_ context.Context, _ int64, date time.Time) (*domain.ClosedDate, error) {
	if cd, ok := f.closed[date.Format(domain.DateFormat)]; ok {
		return cd, nil
	}
	return nil, closedDateRepo.ErrClosedDateNotFound
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

type fakeNotifyClient struct {
	created []notifyservice.BookingEvent
}

func (f *fakeNotifyClient) NotifyBookingCreated(_ context.Context, event notifyservice.BookingEvent) {
	f.created = append(f.created, event)
}

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct {
	serializableCalls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.serializableCalls++
	return fn(ctx)
}

func (f *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
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

func timePtr(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}

func testRestaurant() *restaurantClient.Restaurant {
	return &restaurantClient.Restaurant{
		ID:          1,
		OwnerID:     10,
		Name:        "La Tasca",
		OpeningTime: timePtr("09:00"),
		ClosingTime: timePtr("23:00"),
		IsActive:    true,
	}
}

func splitSchedule(day time.Weekday) *domain.WeeklySchedule {
	return &domain.WeeklySchedule{
		ID:                    1,
		RestaurantID:          1,
		DayOfWeek:             day,
		IsOpen:                true,
		LunchStart:            timePtr("13:00"),
		LunchEnd:              timePtr("16:00"),
		DinnerStart:           timePtr("20:00"),
		DinnerEnd:             timePtr("23:30"),
		MaxCapacityPerSlot:    20,
		SlotIntervalMinutes:   30,
		MinAdvanceHours:       2,
		MaxAdvanceDays:        30,
		AcceptsOnlineBookings: true,
	}
}

type testEnv struct {
	uc          *UseCase
	bookingRepo *fakeBookingRepo
	notify      *fakeNotifyClient
	txManager   *fakeTxManager
}

func newTestEnv(schedule *domain.WeeklySchedule, existing []*domain.Booking, closed map[string]*domain.ClosedDate) *testEnv {
	bookingRepo := &fakeBookingRepo{existing: existing}
	notify := &fakeNotifyClient{}
	txManager := &fakeTxManager{}

	schedules := map[time.Weekday]*domain.WeeklySchedule{}
	if schedule != nil {
		schedules[schedule.DayOfWeek] = schedule
	}

	uc := NewUseCase(
		bookingRepo,
		&fakeScheduleRepo{schedules: schedules},
		&fakeClosedDateRepo{closed: closed},
		&fakeRestaurantClient{restaurant: testRestaurant()},
		notify,
		txManager,
		nopLogger{},
	).WithTimeProvider(&fixedTimeProvider{now: testNow})

	return &testEnv{uc: uc, bookingRepo: bookingRepo, notify: notify, txManager: txManager}
}

func validRequest() *Request {
	return &Request{
		UserID:       7,
		RestaurantID: 1,
		Date:         testDate,
		Time:         "13:30",
		NumPeople:    4,
	}
}

func TestExecute_Success(t *testing.T) {
	env := newTestEnv(splitSchedule(testDate.Weekday()), nil, nil)

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, types.TimeString("13:30"), resp.BookingTime)
	assert.Equal(t, 4, resp.NumPeople)

	// Бронь создана внутри сериализуемой транзакции
	assert.Equal(t, 1, env.txManager.serializableCalls)
	require.Len(t, env.bookingRepo.created, 1)
	assert.Equal(t, domain.StatusPending, env.bookingRepo.created[0].Status)

	// Ресторан уведомлён после коммита
	require.Len(t, env.notify.created, 1)
	assert.Equal(t, int64(1), env.notify.created[0].BookingID)
	assert.Equal(t, "13:30", env.notify.created[0].BookingTime)
}

func TestExecute_ValidationErrors(t *testing.T) {
	longText := make([]byte, domain.MaxObservationsLength+1)
	for i := range longText {
		longText[i] = 'x'
	}

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "zero user", mutate: func(r *Request) { r.UserID = 0 }},
		{name: "zero restaurant", mutate: func(r *Request) { r.RestaurantID = 0 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "empty time", mutate: func(r *Request) { r.Time = "" }},
		{name: "bad time format", mutate: func(r *Request) { r.Time = "25:99" }},
		{name: "zero people", mutate: func(r *Request) { r.NumPeople = 0 }},
		{name: "too many people", mutate: func(r *Request) { r.NumPeople = domain.MaxPartySize + 1 }},
		{name: "observations too long", mutate: func(r *Request) { r.Observations = string(longText) }},
		{name: "special requests too long", mutate: func(r *Request) { r.SpecialRequests = string(longText) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(splitSchedule(testDate.Weekday()), nil, nil)

			req := validRequest()
			tt.mutate(req)

			_, err := env.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, env.bookingRepo.created)
		})
	}
}

func TestExecute_RestaurantNotFound(t *testing.T) {
	env := newTestEnv(splitSchedule(testDate.Weekday()), nil, nil)
	env.uc.restaurantClient = &fakeRestaurantClient{err: restaurantClient.ErrRestaurantNotFound}

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestExecute_ClosedDate(t *testing.T) {
	closed := map[string]*domain.ClosedDate{
		testDate.Format(domain.DateFormat): {RestaurantID: 1, Date: testDate, Reason: "Navidad"},
	}
	env := newTestEnv(splitSchedule(testDate.Weekday()), nil, closed)

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRestaurantClosed)
	assert.Empty(t, env.bookingRepo.created)
}

func TestExecute_ClosedWeekday(t *testing.T) {
	schedule := splitSchedule(testDate.Weekday())
	schedule.IsOpen = false
	env := newTestEnv(schedule, nil, nil)

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRestaurantClosed)
}

func TestExecute_OnlineBookingsDisabled(t *testing.T) {
	schedule := splitSchedule(testDate.Weekday())
	schedule.AcceptsOnlineBookings = false
	env := newTestEnv(schedule, nil, nil)

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrOnlineBookingsDisabled)
}

func TestExecute_PastDate(t *testing.T) {
	env := newTestEnv(splitSchedule(time.Monday), nil, nil)

	req := validRequest()
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DateTooFarInFuture(t *testing.T) {
	farDate := testNow.AddDate(0, 0, 31)
	env := newTestEnv(splitSchedule(farDate.Weekday()), nil, nil)

	req := validRequest()
	req.Date = farDate

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_TooLateToBookToday(t *testing.T) {
	today := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(splitSchedule(today.Weekday()), nil, nil)

	// Сейчас 12:30, minAdvanceHours=2: слот на 13:30 уже недоступен
	env.uc.WithTimeProvider(&fixedTimeProvider{now: time.Date(2026, 9, 15, 12, 30, 0, 0, time.UTC)})

	req := validRequest()
	req.Date = today

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_InvalidTimeSlot(t *testing.T) {
	tests := []struct {
		name string
		time types.TimeString
	}{
		{name: "between slots", time: "13:45"},
		{name: "outside windows", time: "17:00"},
		{name: "at window close", time: "16:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(splitSchedule(testDate.Weekday()), nil, nil)

			req := validRequest()
			req.Time = tt.time

			_, err := env.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidTimeSlot)
		})
	}
}

func TestExecute_CapacityExceeded(t *testing.T) {
	existing := []*domain.Booking{
		{BookingTime: "13:30", NumPeople: 12, Status: domain.StatusConfirmed},
		{BookingTime: "13:30", NumPeople: 6, Status: domain.StatusPending},
	}
	env := newTestEnv(splitSchedule(testDate.Weekday()), existing, nil)

	req := validRequest()
	req.NumPeople = 4 // свободно только 2 места

	_, err := env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrCapacityExceeded)

	var capErr *CapacityExceededError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, 2, capErr.Available)
	assert.Equal(t, 4, capErr.Requested)

	assert.Empty(t, env.bookingRepo.created)
	assert.Empty(t, env.notify.created)
}

func TestExecute_DoubleSubmitSecondRejected(t *testing.T) {
	schedule := splitSchedule(testDate.Weekday())
	schedule.MaxCapacityPerSlot = 6
	env := newTestEnv(schedule, nil, nil)

	_, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Перепроверка внутри транзакции видит первую бронь
	_, err = env.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrCapacityExceeded)

	var capErr *CapacityExceededError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, 2, capErr.Available)
	assert.Equal(t, 4, capErr.Requested)

	assert.Len(t, env.bookingRepo.created, 1)
	assert.Equal(t, 2, env.txManager.serializableCalls)
	assert.Len(t, env.notify.created, 1)
}

func TestExecute_InactiveBookingsDoNotBlock(t *testing.T) {
	existing := []*domain.Booking{
		{BookingTime: "13:30", NumPeople: 20, Status: domain.StatusCancelled},
		{BookingTime: "13:30", NumPeople: 20, Status: domain.StatusCompleted},
	}
	env := newTestEnv(splitSchedule(testDate.Weekday()), existing, nil)

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_FallbackScheduleFromRestaurantHours(t *testing.T) {
	// Без строки расписания время валидируется по часам работы ресторана
	env := newTestEnv(nil, nil, nil)

	req := validRequest()
	req.Time = "13:30"

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)

	// Горизонт maxAdvanceDays без расписания не применяется
	req = validRequest()
	req.Date = testNow.AddDate(0, 0, 60)
	_, err = env.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}
