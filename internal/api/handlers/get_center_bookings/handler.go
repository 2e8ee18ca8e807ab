package get_center_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers"
	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
	"github.com/no-solace/ev-maintenance-system-sub001/internal/service/bookings"
	"github.com/no-solace/ev-maintenance-system-sub001/internal/service/bookings/models"
)

const (
	msgInvalidCenterID = "некорректный ID центра"
	msgInvalidFilter   = "некорректные параметры фильтрации"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/centers/{centerId}/bookings?startDate=&endDate=&status=&includeInactive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	centerID, err := strconv.ParseInt(vars["centerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /centers/{id}/bookings - Invalid center ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCenterID)
		return
	}

	req := &models.GetCenterBookingsRequest{CenterID: centerID}

	query := r.URL.Query()
	if v := query.Get("startDate"); v != "" {
		date, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &date
	}
	if v := query.Get("endDate"); v != "" {
		date, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &date
	}
	if v := query.Get("status"); v != "" {
		req.Status = &v
	}
	if v := query.Get("includeInactive"); v != "" {
		req.IncludeInactive = v == "true"
	}

	result, err := h.service.GetCenterBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /centers/{id}/bookings - Invalid filter: center_id=%d", centerID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /centers/{id}/bookings - Failed: center_id=%d, error=%v", centerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /centers/{id}/bookings - Retrieved %d bookings: center_id=%d",
		len(result.Bookings), centerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
