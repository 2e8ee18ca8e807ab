package mark_received

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
	msgInvalidState     = "бронирование нельзя отметить как прибывшее из текущего статуса"
	msgTooEarly         = "клиент прибыл раньше начала слота"
	msgNoShowExpired    = "окно прибытия истекло"
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

// Handle POST /api/v1/bookings/{bookingId}/receive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/receive - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Тело опционально: техник и пакет могут назначаться позже
	var req models.MarkReceivedRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /bookings/{id}/receive - Invalid body: %v", err)
	}

	result, err := h.service.MarkReceived(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/receive - Not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidState):
			h.logger.Warn("POST /bookings/{id}/receive - Invalid state: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgInvalidState)

		case errors.Is(err, bookings.ErrTooEarly):
			h.logger.Warn("POST /bookings/{id}/receive - Too early: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgTooEarly)

		case errors.Is(err, bookings.ErrNoShowExpired):
			h.logger.Warn("POST /bookings/{id}/receive - Arrival window expired: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgNoShowExpired)

		default:
			h.logger.Error("POST /bookings/{id}/receive - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/receive - Received: booking_id=%d, reception_id=%d, records=%d",
		bookingID, result.ID, result.RecordsCreated)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
