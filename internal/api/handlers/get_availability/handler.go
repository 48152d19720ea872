package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/bitebooking/booking-engine/internal/api/handlers"
	"github.com/bitebooking/booking-engine/internal/domain"
	getAvailability "github.com/bitebooking/booking-engine/internal/usecase/get_availability"
)

const (
	msgInvalidRestaurantID = "ID de restaurante inválido"
	msgInvalidDate         = "formato de fecha inválido, se espera YYYY-MM-DD"
	msgMissingDate         = "el parámetro date es obligatorio"
	msgRestaurantNotFound  = "restaurante no encontrado"
	msgDateInPast          = "la fecha no puede estar en el pasado"
	msgDateTooFar          = "la fecha está demasiado lejos en el futuro"
	msgInvalidNumPeople    = "el parámetro numPeople es inválido"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/restaurants/{restaurantId}/availability?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := h.parseRestaurantID(w, r)
	if !ok {
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /restaurants/{id}/availability - Missing date parameter")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	numPeople, ok := h.parseNumPeople(w, r)
	if !ok {
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		RestaurantID: restaurantID,
		Date:         date,
		NumPeople:    numPeople,
	})
	if err != nil {
		h.respondUseCaseError(w, r, restaurantID, err)
		return
	}

	h.logger.Info("GET /restaurants/{id}/availability - %d slots returned: restaurant_id=%d, date=%s",
		len(result.Slots), restaurantID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// HandleWeek GET /api/v1/restaurants/{restaurantId}/availability/week?startDate=YYYY-MM-DD
func (h *Handler) HandleWeek(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := h.parseRestaurantID(w, r)
	if !ok {
		return
	}

	// startDate опционален, по умолчанию неделя начинается сегодня
	var startDate time.Time
	if dateStr := r.URL.Query().Get("startDate"); dateStr != "" {
		parsed, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /restaurants/{id}/availability/week - Invalid startDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		startDate = parsed
	}

	numPeople, ok := h.parseNumPeople(w, r)
	if !ok {
		return
	}

	result, err := h.useCase.ExecuteWeek(r.Context(), &getAvailability.WeekRequest{
		RestaurantID: restaurantID,
		StartDate:    startDate,
		NumPeople:    numPeople,
	})
	if err != nil {
		h.respondUseCaseError(w, r, restaurantID, err)
		return
	}

	h.logger.Info("GET /restaurants/{id}/availability/week - Week returned: restaurant_id=%d", restaurantID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseWeekResponse(result))
}

func (h *Handler) parseRestaurantID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)

	restaurantID, err := strconv.ParseInt(vars["restaurantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET availability - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return 0, false
	}

	return restaurantID, true
}

// parseNumPeople читает размер группы из query. Параметр опционален,
// без него доступность считается для одного человека.
func (h *Handler) parseNumPeople(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("numPeople")
	if raw == "" {
		return 0, true
	}

	numPeople, err := strconv.Atoi(raw)
	if err != nil || numPeople <= 0 {
		h.logger.Warn("GET availability - Invalid numPeople: %s", raw)
		handlers.RespondBadRequest(w, msgInvalidNumPeople)
		return 0, false
	}

	return numPeople, true
}

func (h *Handler) respondUseCaseError(w http.ResponseWriter, r *http.Request, restaurantID int64, err error) {
	switch {
	case errors.Is(err, getAvailability.ErrRestaurantNotFound):
		h.logger.Warn("GET availability - Restaurant not found: restaurant_id=%d", restaurantID)
		handlers.RespondNotFound(w, msgRestaurantNotFound)

	case errors.Is(err, getAvailability.ErrInvalidDate):
		h.logger.Warn("GET availability - Date in the past: restaurant_id=%d", restaurantID)
		handlers.RespondBadRequest(w, msgDateInPast)

	case errors.Is(err, getAvailability.ErrDateTooFarInFuture):
		h.logger.Warn("GET availability - Date too far in future: restaurant_id=%d", restaurantID)
		handlers.RespondBadRequest(w, msgDateTooFar)

	case errors.Is(err, getAvailability.ErrInvalidInput):
		h.logger.Warn("GET availability - Invalid input: restaurant_id=%d, error=%v", restaurantID, err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)

	default:
		h.logger.Error("GET availability - Failed: restaurant_id=%d, error=%v", restaurantID, err)
		handlers.RespondInternalError(w)
	}
}
