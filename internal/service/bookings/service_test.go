package bookings

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitebooking/booking-engine/internal/domain"
	bookingRepo "github.com/bitebooking/booking-engine/internal/infra/storage/booking"
	"github.com/bitebooking/booking-engine/internal/integrations/notifyservice"
	restaurantClient "github.com/bitebooking/booking-engine/internal/integrations/restaurantservice"
	"github.com/bitebooking/booking-engine/internal/service/bookings/models"
)

var (
	guest    = domain.Principal{UserID: 7, Role: domain.RoleUser}
	owner    = domain.Principal{UserID: 10, Role: domain.RoleOwner}
	admin    = domain.Principal{UserID: 99, Role: domain.RoleAdmin}
	stranger = domain.Principal{UserID: 55, Role: domain.RoleUser}
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	updatedStatus map[int64]domain.BookingStatus
	updatedReason map[int64]string
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{
		bookings:      make(map[int64]*domain.Booking),
		updatedStatus: make(map[int64]domain.BookingStatus),
		updatedReason: make(map[int64]string),
	}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if b, ok := f.bookings[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) GetByUserWithFilter(_ context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.UserID == filter.UserID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) GetByRestaurantWithFilter(_ context.Context, filter domain.RestaurantBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.RestaurantID == filter.RestaurantID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.bookings[id].Status = status
	f.updatedStatus[id] = status
	return nil
}

func (f *fakeBookingRepo) UpdateStatusWithReason(_ context.Context, id int64, status domain.BookingStatus, reason string) error {
	if err := f.UpdateStatus(nil, id, status); err != nil {
		return err
	}
	f.updatedReason[id] = reason
	return nil
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
	confirmed []notifyservice.BookingEvent
	rejected  []notifyservice.BookingEvent
	cancelled []notifyservice.BookingEvent
}

func (f *fakeNotifyClient) NotifyBookingConfirmed(_ context.Context, event notifyservice.BookingEvent) {
	f.confirmed = append(f.confirmed, event)
}

func (f *fakeNotifyClient) NotifyBookingRejected(_ context.Context, event notifyservice.BookingEvent) {
	f.rejected = append(f.rejected, event)
}

func (f *fakeNotifyClient) NotifyBookingCancelled(_ context.Context, event notifyservice.BookingEvent) {
	f.cancelled = append(f.cancelled, event)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBooking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:           id,
		RestaurantID: 1,
		UserID:       guest.UserID,
		BookingDate:  time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
		BookingTime:  "13:30",
		NumPeople:    4,
		Status:       status,
	}
}

func newTestService(repo *fakeBookingRepo, notify *fakeNotifyClient) *Service {
	restaurant := &restaurantClient.Restaurant{ID: 1, OwnerID: owner.UserID, Name: "La Tasca", IsActive: true}
	return NewService(repo, &fakeRestaurantClient{restaurant: restaurant}, notify, nopLogger{})
}

func TestGetByID_Access(t *testing.T) {
	tests := []struct {
		name      string
		principal domain.Principal
		wantErr   error
	}{
		{name: "booking owner", principal: guest},
		{name: "restaurant owner", principal: owner},
		{name: "admin", principal: admin},
		{name: "stranger denied", principal: stranger, wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeBookingRepo(testBooking(1, domain.StatusPending))
			svc := newTestService(repo, &fakeNotifyClient{})

			resp, err := svc.GetByID(context.Background(), 1, tt.principal)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), resp.ID)
			assert.Equal(t, "pending", resp.Status)
		})
	}
}

func TestGetByID_RestaurantLookupFailure(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusPending))
	svc := NewService(repo, &fakeRestaurantClient{err: errors.New("connection refused")}, &fakeNotifyClient{}, nopLogger{})

	// Сбой поиска ресторана не должен выглядеть как запрет доступа
	_, err := svc.GetByID(context.Background(), 1, stranger)
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeNotifyClient{})

	_, err := svc.GetByID(context.Background(), 404, guest)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_Access(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusPending), testBooking(2, domain.StatusConfirmed))
	svc := newTestService(repo, &fakeNotifyClient{})

	// Пользователь видит свои брони
	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: guest.UserID}, guest)
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	// Чужие брони недоступны
	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: guest.UserID}, stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Администратор видит любые
	resp, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: guest.UserID}, admin)
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeNotifyClient{})

	badStatus := "archived"
	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: guest.UserID, Status: &badStatus}, guest)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetRestaurantBookings_Access(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusPending))
	svc := newTestService(repo, &fakeNotifyClient{})

	resp, err := svc.GetRestaurantBookings(context.Background(), &models.GetRestaurantBookingsRequest{RestaurantID: 1}, owner)
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = svc.GetRestaurantBookings(context.Background(), &models.GetRestaurantBookingsRequest{RestaurantID: 1}, stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetRestaurantBookings(context.Background(), &models.GetRestaurantBookingsRequest{RestaurantID: 1}, admin)
	assert.NoError(t, err)
}

func TestConfirm(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusPending))
	notify := &fakeNotifyClient{}
	svc := newTestService(repo, notify)

	err := svc.Confirm(context.Background(), 1, owner)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, repo.updatedStatus[1])
	require.Len(t, notify.confirmed, 1)
	assert.Equal(t, int64(1), notify.confirmed[0].BookingID)
}

func TestConfirm_OnlyOwnerOrAdmin(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusPending))
	svc := newTestService(repo, &fakeNotifyClient{})

	// Даже владелец брони не может подтверждать за ресторан
	err := svc.Confirm(context.Background(), 1, guest)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.Confirm(context.Background(), 1, admin)
	assert.NoError(t, err)
}

func TestConfirm_InvalidTransition(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCancelled, domain.StatusRejected, domain.StatusCompleted, domain.StatusNoShow, domain.StatusConfirmed} {
		t.Run(string(status), func(t *testing.T) {
			repo := newFakeBookingRepo(testBooking(1, status))
			svc := newTestService(repo, &fakeNotifyClient{})

			err := svc.Confirm(context.Background(), 1, owner)
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestReject_WithReason(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusPending))
	notify := &fakeNotifyClient{}
	svc := newTestService(repo, notify)

	err := svc.Reject(context.Background(), 1, &models.RejectBookingRequest{Reason: "sin mesas"}, owner)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusRejected, repo.updatedStatus[1])
	assert.Equal(t, "sin mesas", repo.updatedReason[1])
	require.Len(t, notify.rejected, 1)
	assert.Equal(t, "sin mesas", notify.rejected[0].Reason)
}

func TestReject_ReasonTooLong(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusPending))
	svc := newTestService(repo, &fakeNotifyClient{})

	reason := strings.Repeat("x", domain.MaxCancellationReasonLength+1)
	err := svc.Reject(context.Background(), 1, &models.RejectBookingRequest{Reason: reason}, owner)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.updatedStatus)
}

func TestCancel(t *testing.T) {
	tests := []struct {
		name      string
		status    domain.BookingStatus
		principal domain.Principal
		wantErr   error
	}{
		{name: "guest cancels pending", status: domain.StatusPending, principal: guest},
		{name: "guest cancels confirmed", status: domain.StatusConfirmed, principal: guest},
		{name: "owner cancels", status: domain.StatusPending, principal: owner},
		{name: "admin cancels", status: domain.StatusConfirmed, principal: admin},
		{name: "stranger denied", status: domain.StatusPending, principal: stranger, wantErr: ErrAccessDenied},
		{name: "completed is terminal", status: domain.StatusCompleted, principal: guest, wantErr: ErrInvalidTransition},
		{name: "already cancelled", status: domain.StatusCancelled, principal: guest, wantErr: ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeBookingRepo(testBooking(1, tt.status))
			notify := &fakeNotifyClient{}
			svc := newTestService(repo, notify)

			err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{CancellationReason: "cambio de planes"}, tt.principal)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, notify.cancelled)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.StatusCancelled, repo.updatedStatus[1])
			assert.Equal(t, "cambio de planes", repo.updatedReason[1])
			assert.Len(t, notify.cancelled, 1)
		})
	}
}

func TestComplete(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
	svc := newTestService(repo, &fakeNotifyClient{})

	err := svc.Complete(context.Background(), 1, owner)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, repo.updatedStatus[1])

	// Из pending завершить нельзя
	repo = newFakeBookingRepo(testBooking(2, domain.StatusPending))
	svc = newTestService(repo, &fakeNotifyClient{})

	err = svc.Complete(context.Background(), 2, owner)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestMarkNoShow(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
	svc := newTestService(repo, &fakeNotifyClient{})

	err := svc.MarkNoShow(context.Background(), 1, owner)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNoShow, repo.updatedStatus[1])

	repo = newFakeBookingRepo(testBooking(2, domain.StatusPending))
	svc = newTestService(repo, &fakeNotifyClient{})

	err = svc.MarkNoShow(context.Background(), 2, owner)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
