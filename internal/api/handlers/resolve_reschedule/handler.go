package resolve_reschedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers"
	"github.com/no-solace/ev-maintenance-system-sub001/internal/service/bookings"
	rescheduleBooking "github.com/no-solace/ev-maintenance-system-sub001/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgNoPendingRequest = "по бронированию нет активного запроса на перенос"
	msgSlotFull         = "целевой слот уже заполнен"
	msgInvalidSlot      = "целевой слот не соответствует правилам центра"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	service BookingService
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, service BookingService, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		service: service,
		logger:  logger,
	}
}

// HandleApprove POST /api/v1/bookings/{bookingId}/reschedule-request/approve
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingID(w, r)
	if !ok {
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rescheduleBooking.Request{BookingID: bookingID})
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/reschedule-request/approve - Not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrNoPendingRequest):
			h.logger.Warn("POST /bookings/{id}/reschedule-request/approve - No pending request: booking_id=%d",
				bookingID)
			handlers.RespondConflict(w, msgNoPendingRequest)

		case errors.Is(err, rescheduleBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings/{id}/reschedule-request/approve - Target slot full: booking_id=%d",
				bookingID)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, rescheduleBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings/{id}/reschedule-request/approve - Invalid slot: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		default:
			h.logger.Error("POST /bookings/{id}/reschedule-request/approve - Failed: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/reschedule-request/approve - Rescheduled: booking_id=%d, date=%s, time=%s",
		bookingID, result.BookingDate.Format("2006-01-02"), result.StartTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// HandleReject POST /api/v1/bookings/{bookingId}/reschedule-request/reject
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingID(w, r)
	if !ok {
		return
	}

	if err := h.service.RejectReschedule(r.Context(), bookingID); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/reschedule-request/reject - Not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidState):
			h.logger.Warn("POST /bookings/{id}/reschedule-request/reject - No pending request: booking_id=%d",
				bookingID)
			handlers.RespondConflict(w, msgNoPendingRequest)

		default:
			h.logger.Error("POST /bookings/{id}/reschedule-request/reject - Failed: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/reschedule-request/reject - Restored: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "upcoming"})
}

func (h *Handler) bookingID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule-request resolve - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return 0, false
	}
	return bookingID, true
}
