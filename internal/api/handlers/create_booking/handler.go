package create_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bitebooking/booking-engine/internal/api/handlers"
	"github.com/bitebooking/booking-engine/internal/api/middleware"
	createBooking "github.com/bitebooking/booking-engine/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody     = "cuerpo de la solicitud inválido"
	msgInvalidDate            = "formato de fecha de reserva inválido, se espera YYYY-MM-DD"
	msgMissingUserID          = "falta el ID de usuario"
	msgRestaurantNotFound     = "restaurante no encontrado"
	msgRestaurantClosed       = "el restaurante está cerrado en la fecha seleccionada"
	msgOnlineBookingsDisabled = "el restaurante no acepta reservas online ese día"
	msgInvalidBookingDate     = "fecha de reserva inválida"
	msgDateTooFar             = "la fecha de reserva está demasiado lejos en el futuro"
	msgInvalidTimeSlot        = "la hora seleccionada no corresponde a ningún turno"
	msgTooLateToBook          = "demasiado tarde para reservar este turno"
	msgCapacityExceeded       = "No hay suficiente capacidad para %d personas a las %s. Disponible: %d"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(principal.UserID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		var capacityErr *createBooking.CapacityExceededError

		switch {
		case errors.As(err, &capacityErr):
			h.logger.Warn("POST /bookings - Capacity exceeded: user_id=%d, restaurant_id=%d, available=%d, requested=%d",
				principal.UserID, req.RestaurantID, capacityErr.Available, capacityErr.Requested)
			handlers.RespondError(w, http.StatusConflict,
				fmt.Sprintf(msgCapacityExceeded, capacityErr.Requested, req.BookingTime, capacityErr.Available))

		case errors.Is(err, createBooking.ErrRestaurantNotFound):
			h.logger.Warn("POST /bookings - Restaurant not found: restaurant_id=%d", req.RestaurantID)
			handlers.RespondNotFound(w, msgRestaurantNotFound)

		case errors.Is(err, createBooking.ErrRestaurantClosed):
			h.logger.Warn("POST /bookings - Restaurant closed: user_id=%d, restaurant_id=%d", principal.UserID, req.RestaurantID)
			handlers.RespondBadRequest(w, msgRestaurantClosed)

		case errors.Is(err, createBooking.ErrOnlineBookingsDisabled):
			h.logger.Warn("POST /bookings - Online bookings disabled: restaurant_id=%d", req.RestaurantID)
			handlers.RespondBadRequest(w, msgOnlineBookingsDisabled)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: user_id=%d, restaurant_id=%d", principal.UserID, req.RestaurantID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: user_id=%d, restaurant_id=%d", principal.UserID, req.RestaurantID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: user_id=%d, restaurant_id=%d", principal.UserID, req.RestaurantID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: user_id=%d, restaurant_id=%d", principal.UserID, req.RestaurantID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", principal.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, restaurant_id=%d, error=%v",
				principal.UserID, req.RestaurantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, restaurant_id=%d",
		result.ID, principal.UserID, req.RestaurantID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
