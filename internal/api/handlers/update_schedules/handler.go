package update_schedules

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
	msgScheduleNotFound    = "horario no encontrado"
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

// Handle PUT /api/v1/restaurants/{restaurantId}/schedules
// Создает или обновляет расписание на один день недели
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	restaurantID, principal, ok := h.parseCommon(w, r, "PUT /restaurants/{id}/schedules")
	if !ok {
		return
	}

	var req models.UpsertScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /restaurants/{id}/schedules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.UpsertSchedule(r.Context(), restaurantID, &req, principal)
	if err != nil {
		h.respondServiceError(w, "PUT /restaurants/{id}/schedules", restaurantID, principal.UserID, err)
		return
	}

	h.logger.Info("PUT /restaurants/{id}/schedules - Schedule upserted successfully: restaurant_id=%d, day=%s",
		restaurantID, result.DayOfWeek)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleBulk PUT /api/v1/restaurants/{restaurantId}/schedules/bulk
// Обновляет расписание на несколько дней атомарно
func (h *Handler) HandleBulk(w http.ResponseWriter, r *http.Request) {
	restaurantID, principal, ok := h.parseCommon(w, r, "PUT /restaurants/{id}/schedules/bulk")
	if !ok {
		return
	}

	var req models.BulkUpsertSchedulesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /restaurants/{id}/schedules/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.BulkUpsertSchedules(r.Context(), restaurantID, &req, principal)
	if err != nil {
		h.respondServiceError(w, "PUT /restaurants/{id}/schedules/bulk", restaurantID, principal.UserID, err)
		return
	}

	h.logger.Info("PUT /restaurants/{id}/schedules/bulk - Schedules upserted successfully: restaurant_id=%d, count=%d",
		restaurantID, len(result.Schedules))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/restaurants/{restaurantId}/schedules/{dayOfWeek}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	restaurantID, principal, ok := h.parseCommon(w, r, "DELETE /restaurants/{id}/schedules/{day}")
	if !ok {
		return
	}

	dayOfWeek := mux.Vars(r)["dayOfWeek"]

	if err := h.service.DeleteScheduleDay(r.Context(), restaurantID, dayOfWeek, principal); err != nil {
		if errors.Is(err, schedules.ErrScheduleNotFound) {
			h.logger.Warn("DELETE /restaurants/{id}/schedules/{day} - Schedule not found: restaurant_id=%d, day=%s",
				restaurantID, dayOfWeek)
			handlers.RespondNotFound(w, msgScheduleNotFound)
			return
		}
		h.respondServiceError(w, "DELETE /restaurants/{id}/schedules/{day}", restaurantID, principal.UserID, err)
		return
	}

	h.logger.Info("DELETE /restaurants/{id}/schedules/{day} - Schedule deleted successfully: restaurant_id=%d, day=%s",
		restaurantID, dayOfWeek)
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
