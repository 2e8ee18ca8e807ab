package request_cancellation

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers"
	"github.com/no-solace/ev-maintenance-system-sub001/internal/api/middleware"
	"github.com/no-solace/ev-maintenance-system-sub001/internal/service/bookings"
	"github.com/no-solace/ev-maintenance-system-sub001/internal/service/bookings/models"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
	msgInvalidState     = "запрос на отмену недоступен из текущего статуса"
	msgTooLate          = "окно запроса на отмену уже закрыто"
)

type requestBody struct {
	Reason *string `json:"reason,omitempty"`
}

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

// Handle POST /api/v1/bookings/{bookingId}/cancellation-request
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/cancellation-request - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Тело опционально: причина может отсутствовать
	var body requestBody
	if err := handlers.DecodeJSON(r, &body); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /bookings/{id}/cancellation-request - Invalid body: %v", err)
	}

	req := &models.RequestCancellationRequest{
		CustomerID: customerID,
		Reason:     body.Reason,
	}

	if err := h.service.RequestCancellation(r.Context(), bookingID, req); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/cancellation-request - Not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/cancellation-request - Access denied: booking_id=%d, customer_id=%d",
				bookingID, customerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidState):
			h.logger.Warn("POST /bookings/{id}/cancellation-request - Invalid state: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgInvalidState)

		case errors.Is(err, bookings.ErrTooLateToModify):
			h.logger.Warn("POST /bookings/{id}/cancellation-request - Too late: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgTooLate)

		default:
			h.logger.Error("POST /bookings/{id}/cancellation-request - Failed: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/cancellation-request - Requested: booking_id=%d, customer_id=%d",
		bookingID, customerID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "cancellation_requested"})
}
