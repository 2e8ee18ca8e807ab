package request_reschedule

import (
	"errors"
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
	msgInvalidBody      = "некорректное тело запроса"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
	msgInvalidState     = "запрос на перенос недоступен из текущего статуса"
	msgInvalidSlot      = "некорректный слот для переноса"
	msgTooLate          = "окно запроса на перенос уже закрыто"
	msgSlotFull         = "выбранный слот уже заполнен"
)

type requestBody struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
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

// Handle POST /api/v1/bookings/{bookingId}/reschedule-request
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule-request - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var body requestBody
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule-request - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	req := &models.RequestRescheduleRequest{
		CustomerID: customerID,
		Date:       body.Date,
		StartTime:  body.StartTime,
	}

	if err := h.service.RequestReschedule(r.Context(), bookingID, req); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/reschedule-request - Not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/reschedule-request - Access denied: booking_id=%d, customer_id=%d",
				bookingID, customerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidState):
			h.logger.Warn("POST /bookings/{id}/reschedule-request - Invalid state: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgInvalidState)

		case errors.Is(err, bookings.ErrInvalidTimeSlot), errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/reschedule-request - Invalid slot: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, bookings.ErrTooLateToModify):
			h.logger.Warn("POST /bookings/{id}/reschedule-request - Too late: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgTooLate)

		case errors.Is(err, bookings.ErrSlotFull):
			h.logger.Warn("POST /bookings/{id}/reschedule-request - Slot full: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSlotFull)

		default:
			h.logger.Error("POST /bookings/{id}/reschedule-request - Failed: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/reschedule-request - Requested: booking_id=%d, date=%s, time=%s",
		bookingID, body.Date, body.StartTime)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "update_requested"})
}
