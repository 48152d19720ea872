package get_schedules

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bitebooking/booking-engine/internal/api/handlers"
)

const (
	msgInvalidRestaurantID = "ID de restaurante inválido"
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

// Handle GET /api/v1/restaurants/{restaurantId}/schedules
// Публичный эндпоинт, авторизация не требуется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем restaurantId из URL
	vars := mux.Vars(r)
	restaurantIDStr := vars["restaurantId"]

	restaurantID, err := strconv.ParseInt(restaurantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/schedules - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	result, err := h.service.ListSchedules(r.Context(), restaurantID)
	if err != nil {
		h.logger.Error("GET /restaurants/{id}/schedules - Failed to get schedules: restaurant_id=%d, error=%v",
			restaurantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /restaurants/{id}/schedules - Schedules retrieved successfully: restaurant_id=%d, count=%d",
		restaurantID, len(result.Schedules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
