package create_booking

import (
	"time"

	"github.com/bitebooking/booking-engine/internal/domain"
	createBooking "github.com/bitebooking/booking-engine/internal/usecase/create_booking"
	"github.com/bitebooking/booking-engine/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RestaurantID    int64   `json:"restaurantId"`
	BookingDate     string  `json:"bookingDate"` // "2025-10-15"
	BookingTime     string  `json:"bookingTime"` // "13:30"
	NumPeople       int     `json:"numPeople"`
	Observations    string  `json:"observations,omitempty"`
	SpecialRequests string  `json:"specialRequests,omitempty"`
	ContactName     *string `json:"contactName,omitempty"`
	ContactPhone    *string `json:"contactPhone,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	RestaurantID    int64   `json:"restaurantId"`
	UserID          int64   `json:"userId"`
	BookingDate     string  `json:"bookingDate"`
	BookingTime     string  `json:"bookingTime"`
	NumPeople       int     `json:"numPeople"`
	Status          string  `json:"status"`
	Observations    string  `json:"observations,omitempty"`
	SpecialRequests string  `json:"specialRequests,omitempty"`
	ContactName     *string `json:"contactName,omitempty"`
	ContactPhone    *string `json:"contactPhone,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	bookingTime, err := types.NewTimeStringFromString(r.BookingTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:          userID,
		RestaurantID:    r.RestaurantID,
		Date:            bookingDate,
		Time:            bookingTime,
		NumPeople:       r.NumPeople,
		Observations:    r.Observations,
		SpecialRequests: r.SpecialRequests,
		ContactName:     r.ContactName,
		ContactPhone:    r.ContactPhone,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		RestaurantID:    resp.RestaurantID,
		UserID:          resp.UserID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		BookingTime:     resp.BookingTime.String(),
		NumPeople:       resp.NumPeople,
		Status:          resp.Status,
		Observations:    resp.Observations,
		SpecialRequests: resp.SpecialRequests,
		ContactName:     resp.ContactName,
		ContactPhone:    resp.ContactPhone,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
