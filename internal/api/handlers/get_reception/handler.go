package get_reception

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers"
	"github.com/no-solace/ev-maintenance-system-sub001/internal/service/receptions"
)

const (
	msgInvalidReceptionID = "некорректный ID приёмки"
	msgNotFound           = "приёмка не найдена"
)

type Handler struct {
	service ReceptionService
	logger  Logger
}

func NewHandler(service ReceptionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/receptions/{receptionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	receptionID, ok := h.receptionID(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), receptionID)
	if err != nil {
		switch {
		case errors.Is(err, receptions.ErrReceptionNotFound):
			h.logger.Warn("GET /receptions/{id} - Not found: reception_id=%d", receptionID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /receptions/{id} - Failed: reception_id=%d, error=%v", receptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /receptions/{id} - Retrieved: reception_id=%d", receptionID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleRecords GET /api/v1/receptions/{receptionId}/records
func (h *Handler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	receptionID, ok := h.receptionID(w, r)
	if !ok {
		return
	}

	result, err := h.service.ListRecords(r.Context(), receptionID)
	if err != nil {
		switch {
		case errors.Is(err, receptions.ErrReceptionNotFound):
			h.logger.Warn("GET /receptions/{id}/records - Not found: reception_id=%d", receptionID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /receptions/{id}/records - Failed: reception_id=%d, error=%v", receptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /receptions/{id}/records - Retrieved %d records: reception_id=%d",
		len(result.Records), receptionID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) receptionID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	receptionID, err := strconv.ParseInt(vars["receptionId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /receptions/{id} - Invalid reception ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReceptionID)
		return 0, false
	}
	return receptionID, true
}
