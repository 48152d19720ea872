package notifyservice

// Типы событий, которые понимает NotifyService
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingRejected  = "booking.rejected"
	EventBookingCancelled = "booking.cancelled"
)

// BookingEvent событие о смене состояния бронирования.
// EventID нужен NotifyService для дедупликации при ретраях.
type BookingEvent struct {
	EventID      string `json:"event_id"`
	EventType    string `json:"event_type"`
	BookingID    int64  `json:"booking_id"`
	RestaurantID int64  `json:"restaurant_id"`
	UserID       int64  `json:"user_id"`
	BookingDate  string `json:"booking_date"`
	BookingTime  string `json:"booking_time"`
	NumPeople    int    `json:"num_people"`
	Reason       string `json:"reason,omitempty"`
}
