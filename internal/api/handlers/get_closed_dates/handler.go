package get_closed_dates

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

// Handle GET /api/v1/restaurants/{restaurantId}/closed-dates
// Публичный эндпоинт, возвращает предстоящие даты закрытия
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем restaurantId из URL
	vars := mux.Vars(r)
	restaurantIDStr := vars["restaurantId"]

	restaurantID, err := strconv.ParseInt(restaurantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/closed-dates - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	result, err := h.service.ListClosedDates(r.Context(), restaurantID)
	if err != nil {
		h.logger.Error("GET /restaurants/{id}/closed-dates - Failed to get closed dates: restaurant_id=%d, error=%v",
			restaurantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /restaurants/{id}/closed-dates - Closed dates retrieved successfully: restaurant_id=%d, count=%d",
		restaurantID, len(result.ClosedDates))
	handlers.RespondJSON(w, http.StatusOK, result)
}
