package update_booking_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bitebooking/booking-engine/internal/api/handlers"
	"github.com/bitebooking/booking-engine/internal/api/middleware"
	"github.com/bitebooking/booking-engine/internal/domain"
	"github.com/bitebooking/booking-engine/internal/service/bookings"
	"github.com/bitebooking/booking-engine/internal/service/bookings/models"
)

const (
	msgInvalidBookingID  = "ID de reserva inválido"
	msgMissingUserID     = "falta el ID de usuario"
	msgInvalidBody       = "cuerpo de la solicitud inválido"
	msgBookingNotFound   = "reserva no encontrada"
	msgForbidden         = "acceso denegado"
	msgInvalidTransition = "transición de estado no permitida"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleConfirm PATCH /api/v1/bookings/{bookingId}/confirm
func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, "confirm", func(bookingID int64, principal domain.Principal) error {
		return h.service.Confirm(r.Context(), bookingID, principal)
	})
}

// HandleReject PATCH /api/v1/bookings/{bookingId}/reject
// Тело запроса содержит причину отклонения.
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	var req models.RejectBookingRequest
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("PATCH /bookings/{id}/reject - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBody)
			return
		}
	}

	h.handleTransition(w, r, "reject", func(bookingID int64, principal domain.Principal) error {
		return h.service.Reject(r.Context(), bookingID, &req, principal)
	})
}

// HandleCancel PATCH /api/v1/bookings/{bookingId}/cancel
// Тело запроса содержит причину отмены.
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	var req models.CancelBookingRequest
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBody)
			return
		}
	}

	h.handleTransition(w, r, "cancel", func(bookingID int64, principal domain.Principal) error {
		return h.service.Cancel(r.Context(), bookingID, &req, principal)
	})
}

// HandleComplete PATCH /api/v1/bookings/{bookingId}/complete
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, "complete", func(bookingID int64, principal domain.Principal) error {
		return h.service.Complete(r.Context(), bookingID, principal)
	})
}

// HandleNoShow PATCH /api/v1/bookings/{bookingId}/no-show
func (h *Handler) HandleNoShow(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, "no-show", func(bookingID int64, principal domain.Principal) error {
		return h.service.MarkNoShow(r.Context(), bookingID, principal)
	})
}

// handleTransition общая обвязка переходов статуса: парсинг ID,
// авторизация и единое соответствие ошибок сервиса HTTP статусам
func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request, action string, transition func(int64, domain.Principal) error) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/%s - Invalid booking ID: %v", action, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Получаем пользователя из контекста (через middleware Auth)
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/%s - Missing user ID", action)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := transition(bookingID, principal); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/%s - Booking not found: booking_id=%d", action, bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrRestaurantNotFound):
			h.logger.Warn("PATCH /bookings/{id}/%s - Restaurant not found: booking_id=%d", action, bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/%s - Access denied: booking_id=%d, user_id=%d",
				action, bookingID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/%s - Invalid transition: booking_id=%d, error=%v",
				action, bookingID, err)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/%s - Invalid input: booking_id=%d, error=%v",
				action, bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidBody)

		default:
			h.logger.Error("PATCH /bookings/{id}/%s - Failed to update status: booking_id=%d, error=%v",
				action, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/%s - Status updated successfully: booking_id=%d", action, bookingID)
	handlers.RespondNoContent(w)
}
