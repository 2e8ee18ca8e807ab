package create_reception

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers"
	createReception "github.com/no-solace/ev-maintenance-system-sub001/internal/usecase/create_reception"
)

const (
	msgInvalidBody         = "некорректное тело запроса"
	msgInvalidReceptionID  = "некорректный ID приёмки"
	msgBookingNotFound     = "бронирование не найдено"
	msgReceptionNotFound   = "приёмка не найдена"
	msgReceptionExists     = "по бронированию уже создана приёмка"
	msgPackageNotFound     = "пакет ТО не найден"
	msgNoPackageSelected   = "у приёмки не выбран пакет ТО"
	msgInvalidReceptionReq = "некорректные данные приёмки"
)

type Handler struct {
	useCase CreateReceptionUseCase
	logger  Logger
}

func NewHandler(useCase CreateReceptionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/receptions
// Создание приёмки для walk-in визита или вручную по бронированию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /receptions - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createReception.ErrBookingNotFound):
			h.logger.Warn("POST /receptions - Booking not found: booking_id=%v", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, createReception.ErrReceptionExists):
			h.logger.Warn("POST /receptions - Reception exists: booking_id=%v", req.BookingID)
			handlers.RespondConflict(w, msgReceptionExists)

		case errors.Is(err, createReception.ErrPackageNotFound):
			h.logger.Warn("POST /receptions - Package not found: package_id=%v", req.PackageID)
			handlers.RespondNotFound(w, msgPackageNotFound)

		case errors.Is(err, createReception.ErrInvalidInput):
			h.logger.Warn("POST /receptions - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidReceptionReq)

		default:
			h.logger.Error("POST /receptions - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /receptions - Created: reception_id=%d, booking_id=%v, records=%d",
		result.ID, result.BookingID, result.RecordsCreated)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// HandleRecover POST /api/v1/receptions/{receptionId}/records/recover
// Досоздаёт недостающие записи инспекции, если развёртывание пакета прервалось
func (h *Handler) HandleRecover(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	receptionID, err := strconv.ParseInt(vars["receptionId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /receptions/{id}/records/recover - Invalid reception ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReceptionID)
		return
	}

	created, err := h.useCase.CreateMissingRecords(r.Context(), receptionID)
	if err != nil {
		switch {
		case errors.Is(err, createReception.ErrReceptionNotFound):
			h.logger.Warn("POST /receptions/{id}/records/recover - Not found: reception_id=%d", receptionID)
			handlers.RespondNotFound(w, msgReceptionNotFound)

		case errors.Is(err, createReception.ErrNoPackageSelected):
			h.logger.Warn("POST /receptions/{id}/records/recover - No package: reception_id=%d", receptionID)
			handlers.RespondConflict(w, msgNoPackageSelected)

		case errors.Is(err, createReception.ErrPackageNotFound):
			h.logger.Warn("POST /receptions/{id}/records/recover - Package not found: reception_id=%d", receptionID)
			handlers.RespondNotFound(w, msgPackageNotFound)

		default:
			h.logger.Error("POST /receptions/{id}/records/recover - Failed: reception_id=%d, error=%v",
				receptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /receptions/{id}/records/recover - Recovered: reception_id=%d, records=%d",
		receptionID, created)
	handlers.RespondJSON(w, http.StatusOK, &RecoverResponse{
		ReceptionID:    receptionID,
		RecordsCreated: created,
	})
}
