package receptions

import (
	"context"
	"errors"
	"fmt"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
	bookingRepo "github.com/no-solace/ev-maintenance-system-sub001/internal/infra/storage/booking"
	catalogRepo "github.com/no-solace/ev-maintenance-system-sub001/internal/infra/storage/catalog"
	receptionRepo "github.com/no-solace/ev-maintenance-system-sub001/internal/infra/storage/reception"
	"github.com/no-solace/ev-maintenance-system-sub001/internal/service/receptions/models"
)

// Service сервис жизненного цикла приёмок, инспекционных записей
// и заявок на запчасти
type Service struct {
	receptionRepo ReceptionRepository
	bookingRepo   BookingRepository
	catalogRepo   CatalogRepository
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса приёмок
func NewService(
	receptionRepo ReceptionRepository,
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		receptionRepo: receptionRepo,
		bookingRepo:   bookingRepo,
		catalogRepo:   catalogRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// GetByID получает приёмку по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReceptionResponse, error) {
	s.logger.Info("GetByID: fetching reception id=%d", id)

	rec, err := s.getReception(ctx, id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainReception(rec), nil
}

// AssignTechnician назначает техника на приёмку
// Приёмка в received переходит в assigned
func (s *Service) AssignTechnician(ctx context.Context, receptionID int64, req *models.AssignTechnicianRequest) error {
	s.logger.Info("AssignTechnician: reception id=%d, technician=%d", receptionID, req.TechnicianID)

	if req.TechnicianID <= 0 {
		return fmt.Errorf("%w: technicianID must be positive", ErrInvalidInput)
	}

	rec, err := s.getReception(ctx, receptionID)
	if err != nil {
		return err
	}

	if rec.IsDone() {
		s.logger.Warn("AssignTechnician: reception id=%d already done (status=%s)", receptionID, rec.Status)
		return ErrInvalidState
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.receptionRepo.AssignTechnician(txCtx, receptionID, req.TechnicianID); err != nil {
			return err
		}

		// Первый назначенный техник выводит приёмку из received
		if rec.Status == domain.ReceptionReceived {
			err := s.receptionRepo.UpdateStatusFrom(txCtx, receptionID, domain.ReceptionReceived, domain.ReceptionAssigned)
			if err != nil && !errors.Is(err, receptionRepo.ErrStatusConflict) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return s.mapReceptionError(err, "AssignTechnician", receptionID)
	}

	s.logger.Info("AssignTechnician: reception id=%d assigned to technician=%d", receptionID, req.TechnicianID)
	return nil
}

// StartWork переводит приёмку в in_progress
func (s *Service) StartWork(ctx context.Context, receptionID int64) error {
	s.logger.Info("StartWork: reception id=%d", receptionID)

	rec, err := s.getReception(ctx, receptionID)
	if err != nil {
		return err
	}

	if rec.Status != domain.ReceptionReceived && rec.Status != domain.ReceptionAssigned {
		s.logger.Warn("StartWork: reception id=%d in status=%s", receptionID, rec.Status)
		return ErrInvalidState
	}

	err = s.receptionRepo.UpdateStatusFrom(ctx, receptionID, rec.Status, domain.ReceptionInProgress)
	if err != nil {
		return s.mapReceptionError(err, "StartWork", receptionID)
	}

	s.logger.Info("StartWork: reception id=%d now in_progress", receptionID)
	return nil
}

// Complete завершает работы по приёмке
// Связанное бронирование переводится в completed в той же транзакции
func (s *Service) Complete(ctx context.Context, receptionID int64) error {
	s.logger.Info("Complete: reception id=%d", receptionID)

	rec, err := s.getReception(ctx, receptionID)
	if err != nil {
		return err
	}

	if rec.Status != domain.ReceptionInProgress {
		s.logger.Warn("Complete: reception id=%d in status=%s", receptionID, rec.Status)
		return ErrInvalidState
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		err := s.receptionRepo.UpdateStatusFrom(txCtx, receptionID, domain.ReceptionInProgress, domain.ReceptionCompleted)
		if err != nil {
			return err
		}

		if rec.BookingID != nil {
			err := s.bookingRepo.UpdateStatusFrom(txCtx, *rec.BookingID, domain.StatusReceived, domain.StatusCompleted)
			if err != nil && !errors.Is(err, bookingRepo.ErrStatusConflict) {
				return err
			}
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				s.logger.Warn("Complete: linked booking id=%d not in received, left as is", *rec.BookingID)
			}
		}
		return nil
	})
	if err != nil {
		return s.mapReceptionError(err, "Complete", receptionID)
	}

	s.logger.Info("Complete: reception id=%d completed", receptionID)
	return nil
}

// MarkPaid отмечает приёмку оплаченной (терминальный статус)
func (s *Service) MarkPaid(ctx context.Context, receptionID int64) error {
	s.logger.Info("MarkPaid: reception id=%d", receptionID)

	err := s.receptionRepo.UpdateStatusFrom(ctx, receptionID, domain.ReceptionCompleted, domain.ReceptionPaid)
	if err != nil {
		return s.mapReceptionError(err, "MarkPaid", receptionID)
	}

	s.logger.Info("MarkPaid: reception id=%d paid", receptionID)
	return nil
}

// ListRecords возвращает инспекционные записи приёмки
func (s *Service) ListRecords(ctx context.Context, receptionID int64) (*models.RecordListResponse, error) {
	s.logger.Info("ListRecords: reception id=%d", receptionID)

	if _, err := s.getReception(ctx, receptionID); err != nil {
		return nil, err
	}

	records, err := s.receptionRepo.ListRecords(ctx, receptionID)
	if err != nil {
		s.logger.Error("ListRecords: repository error for reception id=%d: %v", receptionID, err)
		return nil, fmt.Errorf("%w: ListRecords - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRecordList(records), nil
}

// UpdateRecordStatus обновляет действие одной инспекционной записи
// Оптимистичная версия защищает от наложения с батч-обновлением
func (s *Service) UpdateRecordStatus(ctx context.Context, recordID int64, req *models.UpdateRecordStatusRequest) error {
	s.logger.Info("UpdateRecordStatus: record id=%d, action=%s, version=%d", recordID, req.Action, req.Version)

	action, err := models.ToDomainRecordAction(req.Action)
	if err != nil {
		s.logger.Warn("UpdateRecordStatus: invalid action=%s", req.Action)
		return fmt.Errorf("%w: %s", ErrInvalidAction, req.Action)
	}

	err = s.receptionRepo.UpdateRecordAction(ctx, recordID, action, req.Version)
	if err != nil {
		switch {
		case errors.Is(err, receptionRepo.ErrRecordNotFound):
			s.logger.Warn("UpdateRecordStatus: record id=%d not found", recordID)
			return ErrRecordNotFound
		case errors.Is(err, receptionRepo.ErrRecordVersionConflict):
			s.logger.Warn("UpdateRecordStatus: version conflict for record id=%d", recordID)
			return ErrVersionConflict
		default:
			s.logger.Error("UpdateRecordStatus: repository error for record id=%d: %v", recordID, err)
			return fmt.Errorf("%w: UpdateRecordStatus - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("UpdateRecordStatus: record id=%d set to %s", recordID, action)
	return nil
}

// BatchUpdateRecordStatus обновляет набор инспекционных записей best-effort:
// применяет всё, что может, и отчитывается по каждому сбою отдельно.
// Успешно применённые обновления не откатываются.
func (s *Service) BatchUpdateRecordStatus(ctx context.Context, req *models.BatchUpdateRecordsRequest) (*models.BatchUpdateRecordsResponse, error) {
	s.logger.Info("BatchUpdateRecordStatus: %d updates", len(req.Updates))

	if len(req.Updates) == 0 {
		return nil, fmt.Errorf("%w: updates list is empty", ErrInvalidInput)
	}

	result := &models.BatchUpdateRecordsResponse{}

	for _, update := range req.Updates {
		err := s.UpdateRecordStatus(ctx, update.RecordID, &models.UpdateRecordStatusRequest{
			Action:  update.Action,
			Version: update.Version,
		})
		if err != nil {
			result.Failed = append(result.Failed, models.BatchUpdateFailure{
				RecordID: update.RecordID,
				Error:    err.Error(),
			})
			continue
		}
		result.Succeeded++
	}

	s.logger.Info("BatchUpdateRecordStatus: %d succeeded, %d failed",
		result.Succeeded, len(result.Failed))
	return result, nil
}

// CreatePartRequest создаёт заявку техника на запчасть
// Цена за единицу снимается со справочника в момент создания
func (s *Service) CreatePartRequest(ctx context.Context, receptionID int64, req *models.CreatePartRequestRequest) (*models.PartRequestResponse, error) {
	s.logger.Info("CreatePartRequest: reception id=%d, part=%d, qty=%d", receptionID, req.PartID, req.Quantity)

	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	rec, err := s.getReception(ctx, receptionID)
	if err != nil {
		return nil, err
	}

	if rec.IsDone() {
		s.logger.Warn("CreatePartRequest: reception id=%d already done (status=%s)", receptionID, rec.Status)
		return nil, ErrInvalidState
	}

	part, err := s.catalogRepo.GetPartByID(ctx, req.PartID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrPartNotFound) {
			s.logger.Warn("CreatePartRequest: part id=%d not found", req.PartID)
			return nil, ErrPartNotFound
		}
		s.logger.Error("CreatePartRequest: failed to get part id=%d: %v", req.PartID, err)
		return nil, fmt.Errorf("%w: CreatePartRequest - failed to get part: %v", ErrInternal, err)
	}

	created, err := s.receptionRepo.CreatePartRequest(ctx, &domain.SparePartRequest{
		ReceptionID: receptionID,
		PartID:      part.ID,
		Quantity:    req.Quantity,
		UnitPrice:   part.UnitPrice,
		Status:      domain.PartRequestPending,
	})
	if err != nil {
		s.logger.Error("CreatePartRequest: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreatePartRequest - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreatePartRequest: created request id=%d for reception id=%d", created.ID, receptionID)
	return models.FromDomainPartRequest(created), nil
}

// ListPartRequests возвращает заявки на запчасти по приёмке
func (s *Service) ListPartRequests(ctx context.Context, receptionID int64) (*models.PartRequestListResponse, error) {
	s.logger.Info("ListPartRequests: reception id=%d", receptionID)

	if _, err := s.getReception(ctx, receptionID); err != nil {
		return nil, err
	}

	requests, err := s.receptionRepo.ListPartRequests(ctx, receptionID)
	if err != nil {
		s.logger.Error("ListPartRequests: repository error for reception id=%d: %v", receptionID, err)
		return nil, fmt.Errorf("%w: ListPartRequests - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPartRequestList(requests), nil
}

// ApprovePartRequest одобряет заявку на запчасть
// В одной транзакции: списание со склада, прибавка к стоимости приёмки,
// перевод заявки в approved. Нехватка на складе откатывает всё.
func (s *Service) ApprovePartRequest(ctx context.Context, requestID int64) error {
	s.logger.Info("ApprovePartRequest: request id=%d", requestID)

	request, err := s.getPartRequest(ctx, requestID)
	if err != nil {
		return err
	}

	if !request.CanBeResolved() {
		s.logger.Warn("ApprovePartRequest: request id=%d in status=%s", requestID, request.Status)
		return ErrInvalidState
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.catalogRepo.DeductStock(txCtx, request.PartID, request.Quantity); err != nil {
			return err
		}

		amount := float64(request.Quantity) * request.UnitPrice
		if err := s.receptionRepo.AddToTotalCost(txCtx, request.ReceptionID, amount); err != nil {
			return err
		}

		return s.receptionRepo.UpdatePartRequestStatusFrom(txCtx, requestID,
			domain.PartRequestPending, domain.PartRequestApproved)
	})
	if err != nil {
		switch {
		case errors.Is(err, catalogRepo.ErrInsufficientStock):
			s.logger.Warn("ApprovePartRequest: insufficient stock for part id=%d qty=%d",
				request.PartID, request.Quantity)
			return ErrInsufficientStock
		case errors.Is(err, catalogRepo.ErrPartNotFound):
			return ErrPartNotFound
		case errors.Is(err, receptionRepo.ErrStatusConflict):
			return ErrInvalidState
		default:
			s.logger.Error("ApprovePartRequest: failed for request id=%d: %v", requestID, err)
			return fmt.Errorf("%w: ApprovePartRequest - %v", ErrInternal, err)
		}
	}

	s.logger.Info("ApprovePartRequest: request id=%d approved, stock deducted", requestID)
	return nil
}

// RejectPartRequest отклоняет заявку на запчасть
func (s *Service) RejectPartRequest(ctx context.Context, requestID int64) error {
	s.logger.Info("RejectPartRequest: request id=%d", requestID)

	err := s.receptionRepo.UpdatePartRequestStatusFrom(ctx, requestID,
		domain.PartRequestPending, domain.PartRequestRejected)
	if err != nil {
		return s.mapPartRequestError(err, "RejectPartRequest", requestID)
	}

	s.logger.Info("RejectPartRequest: request id=%d rejected", requestID)
	return nil
}

// MarkPartRequestUsed отмечает одобренную запчасть как использованную
func (s *Service) MarkPartRequestUsed(ctx context.Context, requestID int64) error {
	s.logger.Info("MarkPartRequestUsed: request id=%d", requestID)

	err := s.receptionRepo.UpdatePartRequestStatusFrom(ctx, requestID,
		domain.PartRequestApproved, domain.PartRequestUsed)
	if err != nil {
		return s.mapPartRequestError(err, "MarkPartRequestUsed", requestID)
	}

	s.logger.Info("MarkPartRequestUsed: request id=%d used", requestID)
	return nil
}

// getReception получает приёмку, транслируя ошибки репозитория
func (s *Service) getReception(ctx context.Context, id int64) (*domain.Reception, error) {
	rec, err := s.receptionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, receptionRepo.ErrReceptionNotFound) {
			s.logger.Warn("getReception: reception id=%d not found", id)
			return nil, ErrReceptionNotFound
		}
		s.logger.Error("getReception: repository error for reception id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return rec, nil
}

// getPartRequest получает заявку на запчасть, транслируя ошибки репозитория
func (s *Service) getPartRequest(ctx context.Context, id int64) (*domain.SparePartRequest, error) {
	request, err := s.receptionRepo.GetPartRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, receptionRepo.ErrPartRequestNotFound) {
			s.logger.Warn("getPartRequest: request id=%d not found", id)
			return nil, ErrPartRequestNotFound
		}
		s.logger.Error("getPartRequest: repository error for request id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return request, nil
}

// mapReceptionError транслирует ошибки guarded-переходов приёмки
func (s *Service) mapReceptionError(err error, op string, receptionID int64) error {
	switch {
	case errors.Is(err, receptionRepo.ErrReceptionNotFound):
		s.logger.Warn("%s: reception id=%d not found", op, receptionID)
		return ErrReceptionNotFound
	case errors.Is(err, receptionRepo.ErrStatusConflict):
		s.logger.Warn("%s: reception id=%d status conflict: %v", op, receptionID, err)
		return ErrInvalidState
	default:
		s.logger.Error("%s: repository error for reception id=%d: %v", op, receptionID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

// mapPartRequestError транслирует ошибки guarded-переходов заявки
func (s *Service) mapPartRequestError(err error, op string, requestID int64) error {
	switch {
	case errors.Is(err, receptionRepo.ErrPartRequestNotFound):
		s.logger.Warn("%s: request id=%d not found", op, requestID)
		return ErrPartRequestNotFound
	case errors.Is(err, receptionRepo.ErrStatusConflict):
		s.logger.Warn("%s: request id=%d status conflict: %v", op, requestID, err)
		return ErrInvalidState
	default:
		s.logger.Error("%s: repository error for request id=%d: %v", op, requestID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
