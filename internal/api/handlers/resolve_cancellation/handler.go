package resolve_cancellation

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers"
	"github.com/no-solace/ev-maintenance-system-sub001/internal/service/bookings"
	"github.com/no-solace/ev-maintenance-system-sub001/internal/service/bookings/models"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgNoPendingRequest = "по бронированию нет активного запроса на отмену"
)

type approveBody struct {
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

// HandleApprove POST /api/v1/bookings/{bookingId}/cancellation-request/approve
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingID(w, r)
	if !ok {
		return
	}

	var body approveBody
	if err := handlers.DecodeJSON(r, &body); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /bookings/{id}/cancellation-request/approve - Invalid body: %v", err)
	}

	req := &models.ResolveCancellationRequest{}
	if body.Reason != nil {
		req.Reason = *body.Reason
	}

	if err := h.service.ApproveCancellation(r.Context(), bookingID, req); err != nil {
		h.respondError(w, "approve", bookingID, err)
		return
	}

	h.logger.Info("POST /bookings/{id}/cancellation-request/approve - Cancelled: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// HandleReject POST /api/v1/bookings/{bookingId}/cancellation-request/reject
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingID(w, r)
	if !ok {
		return
	}

	if err := h.service.RejectCancellation(r.Context(), bookingID); err != nil {
		h.respondError(w, "reject", bookingID, err)
		return
	}

	h.logger.Info("POST /bookings/{id}/cancellation-request/reject - Restored: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "upcoming"})
}

func (h *Handler) bookingID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/cancellation-request resolve - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return 0, false
	}
	return bookingID, true
}

func (h *Handler) respondError(w http.ResponseWriter, action string, bookingID int64, err error) {
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("POST /bookings/{id}/cancellation-request/%s - Not found: booking_id=%d", action, bookingID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, bookings.ErrInvalidState):
		h.logger.Warn("POST /bookings/{id}/cancellation-request/%s - No pending request: booking_id=%d",
			action, bookingID)
		handlers.RespondConflict(w, msgNoPendingRequest)

	default:
		h.logger.Error("POST /bookings/{id}/cancellation-request/%s - Failed: booking_id=%d, error=%v",
			action, bookingID, err)
		handlers.RespondInternalError(w)
	}
}
