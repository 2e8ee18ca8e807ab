package part_requests

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
	msgInvalidReceptionID = "некорректный ID приёмки"
	msgInvalidRequestID   = "некорректный ID заявки на запчасть"
	msgInvalidBody        = "некорректное тело запроса"
	msgReceptionNotFound  = "приёмка не найдена"
	msgRequestNotFound    = "заявка на запчасть не найдена"
	msgPartNotFound       = "запчасть не найдена в каталоге"
	msgInvalidState       = "действие недоступно из текущего статуса заявки"
	msgInsufficientStock  = "недостаточно запчастей на складе"
	msgInvalidQuantity    = "некорректное количество"
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

// HandleCreate POST /api/v1/receptions/{receptionId}/part-requests
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	receptionID, err := strconv.ParseInt(vars["receptionId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /receptions/{id}/part-requests - Invalid reception ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReceptionID)
		return
	}

	var req models.CreatePartRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /receptions/{id}/part-requests - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.CreatePartRequest(r.Context(), receptionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, receptions.ErrReceptionNotFound):
			h.logger.Warn("POST /receptions/{id}/part-requests - Reception not found: reception_id=%d", receptionID)
			handlers.RespondNotFound(w, msgReceptionNotFound)

		case errors.Is(err, receptions.ErrPartNotFound):
			h.logger.Warn("POST /receptions/{id}/part-requests - Part not found: part_id=%d", req.PartID)
			handlers.RespondNotFound(w, msgPartNotFound)

		case errors.Is(err, receptions.ErrInvalidState):
			h.logger.Warn("POST /receptions/{id}/part-requests - Invalid state: reception_id=%d", receptionID)
			handlers.RespondConflict(w, msgInvalidState)

		case errors.Is(err, receptions.ErrInvalidInput):
			h.logger.Warn("POST /receptions/{id}/part-requests - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuantity)

		default:
			h.logger.Error("POST /receptions/{id}/part-requests - Failed: reception_id=%d, error=%v",
				receptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /receptions/{id}/part-requests - Created: reception_id=%d, request_id=%d, part_id=%d",
		receptionID, result.ID, req.PartID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleList GET /api/v1/receptions/{receptionId}/part-requests
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	receptionID, err := strconv.ParseInt(vars["receptionId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /receptions/{id}/part-requests - Invalid reception ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReceptionID)
		return
	}

	result, err := h.service.ListPartRequests(r.Context(), receptionID)
	if err != nil {
		switch {
		case errors.Is(err, receptions.ErrReceptionNotFound):
			h.logger.Warn("GET /receptions/{id}/part-requests - Not found: reception_id=%d", receptionID)
			handlers.RespondNotFound(w, msgReceptionNotFound)

		default:
			h.logger.Error("GET /receptions/{id}/part-requests - Failed: reception_id=%d, error=%v",
				receptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /receptions/{id}/part-requests - Retrieved %d requests: reception_id=%d",
		len(result.Requests), receptionID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleApprove POST /api/v1/part-requests/{requestId}/approve
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	requestID, ok := h.requestID(w, r, "approve")
	if !ok {
		return
	}

	if err := h.service.ApprovePartRequest(r.Context(), requestID); err != nil {
		switch {
		case errors.Is(err, receptions.ErrInsufficientStock):
			h.logger.Warn("POST /part-requests/{id}/approve - Insufficient stock: request_id=%d", requestID)
			handlers.RespondConflict(w, msgInsufficientStock)

		case errors.Is(err, receptions.ErrPartNotFound):
			h.logger.Warn("POST /part-requests/{id}/approve - Part not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgPartNotFound)

		default:
			h.respondResolveError(w, "approve", requestID, err)
		}
		return
	}

	h.logger.Info("POST /part-requests/{id}/approve - Approved: request_id=%d", requestID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "approved"})
}

// HandleReject POST /api/v1/part-requests/{requestId}/reject
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	requestID, ok := h.requestID(w, r, "reject")
	if !ok {
		return
	}

	if err := h.service.RejectPartRequest(r.Context(), requestID); err != nil {
		h.respondResolveError(w, "reject", requestID, err)
		return
	}

	h.logger.Info("POST /part-requests/{id}/reject - Rejected: request_id=%d", requestID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}

// HandleUse POST /api/v1/part-requests/{requestId}/use
func (h *Handler) HandleUse(w http.ResponseWriter, r *http.Request) {
	requestID, ok := h.requestID(w, r, "use")
	if !ok {
		return
	}

	if err := h.service.MarkPartRequestUsed(r.Context(), requestID); err != nil {
		h.respondResolveError(w, "use", requestID, err)
		return
	}

	h.logger.Info("POST /part-requests/{id}/use - Used: request_id=%d", requestID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "used"})
}

func (h *Handler) requestID(w http.ResponseWriter, r *http.Request, action string) (int64, bool) {
	vars := mux.Vars(r)
	requestID, err := strconv.ParseInt(vars["requestId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /part-requests/{id}/%s - Invalid request ID: %v", action, err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return 0, false
	}
	return requestID, true
}

func (h *Handler) respondResolveError(w http.ResponseWriter, action string, requestID int64, err error) {
	switch {
	case errors.Is(err, receptions.ErrPartRequestNotFound):
		h.logger.Warn("POST /part-requests/{id}/%s - Not found: request_id=%d", action, requestID)
		handlers.RespondNotFound(w, msgRequestNotFound)

	case errors.Is(err, receptions.ErrInvalidState):
		h.logger.Warn("POST /part-requests/{id}/%s - Invalid state: request_id=%d", action, requestID)
		handlers.RespondConflict(w, msgInvalidState)

	default:
		h.logger.Error("POST /part-requests/{id}/%s - Failed: request_id=%d, error=%v",
			action, requestID, err)
		handlers.RespondInternalError(w)
	}
}
