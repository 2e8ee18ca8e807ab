package update_record_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers"
	"github.com/no-solace/ev-maintenance-system-sub001/internal/service/receptions"
	"github.com/no-solace/ev-maintenance-system-sub001/internal/service/receptions/models"
)

const (
	msgInvalidRecordID = "некорректный ID записи инспекции"
	msgInvalidBody     = "некорректное тело запроса"
	msgRecordNotFound  = "запись инспекции не найдена"
	msgInvalidAction   = "некорректное действие над записью"
	msgVersionConflict = "запись была изменена параллельно, обновите данные"
	msgEmptyBatch      = "пустой список обновлений"
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

// Handle PATCH /api/v1/records/{recordId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	recordID, err := strconv.ParseInt(vars["recordId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /records/{id} - Invalid record ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRecordID)
		return
	}

	var req models.UpdateRecordStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /records/{id} - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if err := h.service.UpdateRecordStatus(r.Context(), recordID, &req); err != nil {
		switch {
		case errors.Is(err, receptions.ErrRecordNotFound):
			h.logger.Warn("PATCH /records/{id} - Not found: record_id=%d", recordID)
			handlers.RespondNotFound(w, msgRecordNotFound)

		case errors.Is(err, receptions.ErrInvalidAction), errors.Is(err, receptions.ErrInvalidInput):
			h.logger.Warn("PATCH /records/{id} - Invalid action: record_id=%d, error=%v", recordID, err)
			handlers.RespondBadRequest(w, msgInvalidAction)

		case errors.Is(err, receptions.ErrVersionConflict):
			h.logger.Warn("PATCH /records/{id} - Version conflict: record_id=%d", recordID)
			handlers.RespondConflict(w, msgVersionConflict)

		default:
			h.logger.Error("PATCH /records/{id} - Failed: record_id=%d, error=%v", recordID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /records/{id} - Updated: record_id=%d, action=%s", recordID, req.Action)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// HandleBatch POST /api/v1/records/batch
// Частичный успех: обновления применяются независимо друг от друга
func (h *Handler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	var req models.BatchUpdateRecordsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /records/batch - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.BatchUpdateRecordStatus(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, receptions.ErrInvalidInput):
			h.logger.Warn("POST /records/batch - Empty batch")
			handlers.RespondBadRequest(w, msgEmptyBatch)

		default:
			h.logger.Error("POST /records/batch - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if len(result.Failed) > 0 {
		status = http.StatusMultiStatus
	}

	h.logger.Info("POST /records/batch - Done: succeeded=%d, failed=%d",
		result.Succeeded, len(result.Failed))
	handlers.RespondJSON(w, status, result)
}
