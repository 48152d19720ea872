package get_user_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/bitebooking/booking-engine/internal/api/handlers"
	"github.com/bitebooking/booking-engine/internal/api/middleware"
	"github.com/bitebooking/booking-engine/internal/domain"
	"github.com/bitebooking/booking-engine/internal/service/bookings"
	"github.com/bitebooking/booking-engine/internal/service/bookings/models"
)

const (
	msgInvalidUserID = "ID de usuario inválido"
	msgMissingUserID = "falta el ID de usuario"
	msgInvalidParams = "parámetros de consulta inválidos"
	msgForbidden     = "acceso denegado"
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

// Handle GET /api/v1/users/{userId}/bookings
// Query params: status, from, until, upcoming, past (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем userId из URL
	vars := mux.Vars(r)
	userIDStr := vars["userId"]

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{id}/bookings - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	// Получаем пользователя из контекста (через middleware Auth)
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetUserBookingsRequest{UserID: userID}

	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			h.logger.Warn("GET /users/{id}/bookings - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		req.From = &from
	}

	if untilStr := r.URL.Query().Get("until"); untilStr != "" {
		until, err := time.Parse(domain.DateFormat, untilStr)
		if err != nil {
			h.logger.Warn("GET /users/{id}/bookings - Invalid until date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		req.Until = &until
	}

	// Шорткаты upcoming=true / past=true поверх from/until
	today := time.Now().Truncate(24 * time.Hour)
	if upcoming, _ := strconv.ParseBool(r.URL.Query().Get("upcoming")); upcoming && req.From == nil {
		req.From = &today
	}
	if past, _ := strconv.ParseBool(r.URL.Query().Get("past")); past && req.Until == nil {
		req.Until = &today
	}

	// Получаем бронирования (сервис сам проверит права доступа)
	result, err := h.service.GetUserBookings(r.Context(), req, principal)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /users/{id}/bookings - Access denied: user_id=%d, requested_user_id=%d",
				principal.UserID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/bookings - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /users/{id}/bookings - Failed to get bookings: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{id}/bookings - Bookings retrieved successfully: user_id=%d, count=%d",
		userID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
