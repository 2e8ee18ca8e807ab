package get_slot_usage

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers"
	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
	getSlotUsage "github.com/no-solace/ev-maintenance-system-sub001/internal/usecase/get_slot_usage"
)

const (
	msgInvalidCenterID = "некорректный ID центра"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidLimit    = "некорректный параметр limit"
	msgCenterNotFound  = "сервисный центр не найден"
)

type Handler struct {
	useCase GetSlotUsageUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotUsageUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/centers/{centerId}/slot-usage?date=2026-09-15&fromNow=true&limit=4
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	centerID, err := strconv.ParseInt(vars["centerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /centers/{id}/slot-usage - Invalid center ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCenterID)
		return
	}

	query := r.URL.Query()

	date := time.Now()
	if v := query.Get("date"); v != "" {
		date, err = time.Parse(domain.DateFormat, v)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	limit := 0
	if v := query.Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 0 {
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
	}

	req := &getSlotUsage.Request{
		CenterID: centerID,
		Date:     date,
		FromNow:  query.Get("fromNow") == "true",
		Limit:    limit,
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getSlotUsage.ErrCenterNotFound):
			h.logger.Warn("GET /centers/{id}/slot-usage - Center not found: center_id=%d", centerID)
			handlers.RespondNotFound(w, msgCenterNotFound)

		case errors.Is(err, getSlotUsage.ErrInvalidInput):
			h.logger.Warn("GET /centers/{id}/slot-usage - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /centers/{id}/slot-usage - Failed: center_id=%d, error=%v", centerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /centers/{id}/slot-usage - Retrieved %d slots: center_id=%d",
		len(result.Slots), centerID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
