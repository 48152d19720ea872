package manage_closed_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bitebooking/booking-engine/internal/api/handlers"
	"github.com/bitebooking/booking-engine/internal/api/middleware"
	"github.com/bitebooking/booking-engine/internal/domain"
	"github.com/bitebooking/booking-engine/internal/service/schedules"
	"github.com/bitebooking/booking-engine/internal/service/schedules/models"
)

const (
	msgInvalidRestaurantID = "ID de restaurante inválido"
	msgMissingUserID       = "falta el ID de usuario"
	msgInvalidBody         = "cuerpo de la solicitud inválido"
	msgRestaurantNotFound  = "restaurante no encontrado"
	msgClosedDateNotFound  = "fecha de cierre no encontrada"
	msgForbidden           = "acceso denegado"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleAdd POST /api/v1/restaurants/{restaurantId}/closed-dates
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	restaurantID, principal, ok := h.parseCommon(w, r, "POST /restaurants/{id}/closed-dates")
	if !ok {
		return
	}

	var req models.AddClosedDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /restaurants/{id}/closed-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.AddClosedDate(r.Context(), restaurantID, &req, principal)
	if err != nil {
		h.respondServiceError(w, "POST /restaurants/{id}/closed-dates", restaurantID, principal.UserID, err)
		return
	}

	h.logger.Info("POST /restaurants/{id}/closed-dates - Closed date added successfully: restaurant_id=%d, date=%s",
		restaurantID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleBulkAdd POST /api/v1/restaurants/{restaurantId}/closed-dates/bulk
// Добавляет несколько дат закрытия атомарно
func (h *Handler) HandleBulkAdd(w http.ResponseWriter, r *http.Request) {
	restaurantID, principal, ok := h.parseCommon(w, r, "POST /restaurants/{id}/closed-dates/bulk")
	if !ok {
		return
	}

	var req models.BulkAddClosedDatesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /restaurants/{id}/closed-dates/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.BulkAddClosedDates(r.Context(), restaurantID, &req, principal)
	if err != nil {
		h.respondServiceError(w, "POST /restaurants/{id}/closed-dates/bulk", restaurantID, principal.UserID, err)
		return
	}

	h.logger.Info("POST /restaurants/{id}/closed-dates/bulk - Closed dates added successfully: restaurant_id=%d, count=%d",
		restaurantID, len(result.ClosedDates))
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleRemove DELETE /api/v1/restaurants/{restaurantId}/closed-dates/{date}
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	restaurantID, principal, ok := h.parseCommon(w, r, "DELETE /restaurants/{id}/closed-dates/{date}")
	if !ok {
		return
	}

	rawDate := mux.Vars(r)["date"]

	if err := h.service.RemoveClosedDate(r.Context(), restaurantID, rawDate, principal); err != nil {
		if errors.Is(err, schedules.ErrClosedDateNotFound) {
			h.logger.Warn("DELETE /restaurants/{id}/closed-dates/{date} - Closed date not found: restaurant_id=%d, date=%s",
				restaurantID, rawDate)
			handlers.RespondNotFound(w, msgClosedDateNotFound)
			return
		}
		h.respondServiceError(w, "DELETE /restaurants/{id}/closed-dates/{date}", restaurantID, principal.UserID, err)
		return
	}

	h.logger.Info("DELETE /restaurants/{id}/closed-dates/{date} - Closed date removed successfully: restaurant_id=%d, date=%s",
		restaurantID, rawDate)
	handlers.RespondNoContent(w)
}

// parseCommon извлекает restaurantId из URL и пользователя из контекста
func (h *Handler) parseCommon(w http.ResponseWriter, r *http.Request, op string) (int64, domain.Principal, bool) {
	vars := mux.Vars(r)
	restaurantIDStr := vars["restaurantId"]

	restaurantID, err := strconv.ParseInt(restaurantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid restaurant ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return 0, domain.Principal{}, false
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", op)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return 0, domain.Principal{}, false
	}

	return restaurantID, principal, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, restaurantID, userID int64, err error) {
	switch {
	case errors.Is(err, schedules.ErrRestaurantNotFound):
		h.logger.Warn("%s - Restaurant not found: restaurant_id=%d", op, restaurantID)
		handlers.RespondNotFound(w, msgRestaurantNotFound)

	case errors.Is(err, schedules.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: restaurant_id=%d, user_id=%d", op, restaurantID, userID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, schedules.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: restaurant_id=%d, error=%v", op, restaurantID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)

	default:
		h.logger.Error("%s - Internal error: restaurant_id=%d, error=%v", op, restaurantID, err)
		handlers.RespondInternalError(w)
	}
}
