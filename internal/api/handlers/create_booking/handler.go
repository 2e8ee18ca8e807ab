package create_booking

import (
	"errors"
	"net/http"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers"
	"github.com/no-solace/ev-maintenance-system-sub001/internal/api/middleware"
	createBooking "github.com/no-solace/ev-maintenance-system-sub001/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotFull           = "выбранный временной слот занят"
	msgCenterNotFound     = "сервисный центр не найден"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgTooLateToBook      = "слишком поздно для бронирования этого слота"
	msgInvalidDate        = "некорректная дата бронирования"
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
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings - Slot full: customer_id=%d, center_id=%d", customerID, req.CenterID)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, createBooking.ErrCenterNotFound):
			h.logger.Warn("POST /bookings - Center not found: center_id=%d", req.CenterID)
			handlers.RespondNotFound(w, msgCenterNotFound)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: customer_id=%d, center_id=%d", customerID, req.CenterID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: customer_id=%d, center_id=%d", customerID, req.CenterID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: customer_id=%d, center_id=%d", customerID, req.CenterID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: customer_id=%d, center_id=%d, error=%v",
				customerID, req.CenterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, customer_id=%d, center_id=%d",
		result.ID, customerID, req.CenterID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
