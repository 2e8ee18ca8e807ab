package get_center

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers"
	"github.com/no-solace/ev-maintenance-system-sub001/internal/service/centers"
)

const (
	msgInvalidCenterID = "некорректный ID центра"
	msgNotFound        = "сервисный центр не найден"
)

type Handler struct {
	service CenterService
	logger  Logger
}

func NewHandler(service CenterService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/centers/{centerId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	centerID, err := strconv.ParseInt(vars["centerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /centers/{id} - Invalid center ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCenterID)
		return
	}

	center, err := h.service.GetByID(r.Context(), centerID)
	if err != nil {
		switch {
		case errors.Is(err, centers.ErrCenterNotFound):
			h.logger.Warn("GET /centers/{id} - Not found: center_id=%d", centerID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /centers/{id} - Failed: center_id=%d, error=%v", centerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /centers/{id} - Retrieved: center_id=%d", centerID)
	handlers.RespondJSON(w, http.StatusOK, center)
}

// HandleList GET /api/v1/centers
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /centers - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /centers - Retrieved %d centers", len(result.Centers))
	handlers.RespondJSON(w, http.StatusOK, result)
}
