package reception_status

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
	msgInvalidBody        = "некорректное тело запроса"
	msgNotFound           = "приёмка не найдена"
	msgInvalidState       = "переход недоступен из текущего статуса приёмки"
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

// HandleAssign POST /api/v1/receptions/{receptionId}/assign
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	receptionID, ok := h.receptionID(w, r, "assign")
	if !ok {
		return
	}

	var req models.AssignTechnicianRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /receptions/{id}/assign - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if err := h.service.AssignTechnician(r.Context(), receptionID, &req); err != nil {
		h.respondError(w, "assign", receptionID, err)
		return
	}

	h.logger.Info("POST /receptions/{id}/assign - Assigned: reception_id=%d, technician_id=%d",
		receptionID, req.TechnicianID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "assigned"})
}

// HandleStart POST /api/v1/receptions/{receptionId}/start
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	receptionID, ok := h.receptionID(w, r, "start")
	if !ok {
		return
	}

	if err := h.service.StartWork(r.Context(), receptionID); err != nil {
		h.respondError(w, "start", receptionID, err)
		return
	}

	h.logger.Info("POST /receptions/{id}/start - Started: reception_id=%d", receptionID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "in_progress"})
}

// HandleComplete POST /api/v1/receptions/{receptionId}/complete
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	receptionID, ok := h.receptionID(w, r, "complete")
	if !ok {
		return
	}

	if err := h.service.Complete(r.Context(), receptionID); err != nil {
		h.respondError(w, "complete", receptionID, err)
		return
	}

	h.logger.Info("POST /receptions/{id}/complete - Completed: reception_id=%d", receptionID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

// HandlePaid POST /api/v1/receptions/{receptionId}/pay
func (h *Handler) HandlePaid(w http.ResponseWriter, r *http.Request) {
	receptionID, ok := h.receptionID(w, r, "pay")
	if !ok {
		return
	}

	if err := h.service.MarkPaid(r.Context(), receptionID); err != nil {
		h.respondError(w, "pay", receptionID, err)
		return
	}

	h.logger.Info("POST /receptions/{id}/pay - Paid: reception_id=%d", receptionID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "paid"})
}

func (h *Handler) receptionID(w http.ResponseWriter, r *http.Request, action string) (int64, bool) {
	vars := mux.Vars(r)
	receptionID, err := strconv.ParseInt(vars["receptionId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /receptions/{id}/%s - Invalid reception ID: %v", action, err)
		handlers.RespondBadRequest(w, msgInvalidReceptionID)
		return 0, false
	}
	return receptionID, true
}

func (h *Handler) respondError(w http.ResponseWriter, action string, receptionID int64, err error) {
	switch {
	case errors.Is(err, receptions.ErrReceptionNotFound):
		h.logger.Warn("POST /receptions/{id}/%s - Not found: reception_id=%d", action, receptionID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, receptions.ErrInvalidState):
		h.logger.Warn("POST /receptions/{id}/%s - Invalid state: reception_id=%d", action, receptionID)
		handlers.RespondConflict(w, msgInvalidState)

	default:
		h.logger.Error("POST /receptions/{id}/%s - Failed: reception_id=%d, error=%v",
			action, receptionID, err)
		handlers.RespondInternalError(w)
	}
}
