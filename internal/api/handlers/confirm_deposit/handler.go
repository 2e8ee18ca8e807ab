package confirm_deposit

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers"
	"github.com/no-solace/ev-maintenance-system-sub001/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgInvalidState     = "бронирование не ожидает оплаты"
	msgDepositUnpaid    = "депозит не оплачен"
	msgGatewayDown      = "платёжный шлюз недоступен"
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

// Handle POST /api/v1/bookings/{bookingId}/confirm-deposit
// Callback платёжного шлюза, идемпотентен
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/confirm-deposit - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	if err := h.service.ConfirmDeposit(r.Context(), bookingID); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/confirm-deposit - Not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidState):
			h.logger.Warn("POST /bookings/{id}/confirm-deposit - Invalid state: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgInvalidState)

		case errors.Is(err, bookings.ErrDepositUnpaid):
			h.logger.Warn("POST /bookings/{id}/confirm-deposit - Deposit unpaid: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgDepositUnpaid)

		case errors.Is(err, bookings.ErrPaymentGatewayUnavailable):
			h.logger.Error("POST /bookings/{id}/confirm-deposit - Gateway unavailable: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgGatewayDown)

		default:
			h.logger.Error("POST /bookings/{id}/confirm-deposit - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/confirm-deposit - Confirmed: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "confirmed"})
}
