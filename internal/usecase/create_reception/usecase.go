package create_reception

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
	bookingRepo "github.com/no-solace/ev-maintenance-system-sub001/internal/infra/storage/booking"
	catalogRepo "github.com/no-solace/ev-maintenance-system-sub001/internal/infra/storage/catalog"
	receptionRepo "github.com/no-solace/ev-maintenance-system-sub001/internal/infra/storage/reception"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/types"
)

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// UseCase use case создания приёмки и разворачивания пакета ТО
// Пакет уровня L разворачивается кумулятивно: одна инспекционная запись
// на каждый шаблон задачи с порогом пробега <= порога самого пакета
type UseCase struct {
	receptionRepo ReceptionRepository
	bookingRepo   BookingRepository
	catalogRepo   CatalogRepository
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	receptionRepo ReceptionRepository,
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		receptionRepo: receptionRepo,
		bookingRepo:   bookingRepo,
		catalogRepo:   catalogRepo,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет создание приёмки
// Для walk-in (req.BookingID == nil) дополнительно создаётся аудиторная
// запись бронирования в терминальном статусе visited
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReception: booking=%v, customer=%d, vehicle=%d, center=%d, package=%v",
		req.BookingID, req.CustomerID, req.VehicleID, req.CenterID, req.PackageID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReception: validation failed: %v", err)
		return nil, err
	}

	var (
		result         *domain.Reception
		recordsCreated int
	)

	// 2. Создаём приёмку и разворачиваем пакет в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Для бронирования проверяем, что приёмка ещё не создана
		if req.BookingID != nil {
			if _, err := uc.bookingRepo.GetByID(txCtx, *req.BookingID); err != nil {
				if errors.Is(err, bookingRepo.ErrBookingNotFound) {
					return ErrBookingNotFound
				}
				uc.logger.Error("CreateReception: failed to get booking id=%d: %v", *req.BookingID, err)
				return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
			}

			existing, err := uc.receptionRepo.GetByBookingID(txCtx, *req.BookingID)
			if err != nil && !errors.Is(err, receptionRepo.ErrReceptionNotFound) {
				uc.logger.Error("CreateReception: failed to check existing reception: %v", err)
				return fmt.Errorf("%w: failed to check existing reception: %v", ErrInternal, err)
			}
			if existing != nil {
				uc.logger.Warn("CreateReception: booking id=%d already has reception id=%d",
					*req.BookingID, existing.ID)
				return ErrReceptionExists
			}
		}

		// 2.2. Для walk-in создаём аудиторную запись бронирования
		if req.BookingID == nil {
			now := uc.timeProvider.Now()
			stub := &domain.Booking{
				CustomerID:   req.CustomerID,
				VehicleID:    req.VehicleID,
				CenterID:     req.CenterID,
				BookingDate:  now,
				StartTime:    types.NewTimeString(now),
				Status:       domain.StatusVisited,
				CustomerName: req.CustomerName,
			}
			if req.VehiclePlate != "" {
				stub.VehiclePlate = &req.VehiclePlate
			}

			if _, err := uc.bookingRepo.Create(txCtx, stub); err != nil {
				uc.logger.Error("CreateReception: failed to create walk-in audit booking: %v", err)
				return fmt.Errorf("%w: failed to create walk-in audit booking: %v", ErrInternal, err)
			}
		}

		// 2.3. Создаём приёмку со снимком данных клиента
		rec := &domain.Reception{
			BookingID:     req.BookingID,
			CustomerID:    req.CustomerID,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			VehicleID:     req.VehicleID,
			VehicleModel:  req.VehicleModel,
			VehiclePlate:  req.VehiclePlate,
			CenterID:      req.CenterID,
			TechnicianID:  req.TechnicianID,
			PackageID:     req.PackageID,
			Status:        domain.InitialReceptionStatus(req.TechnicianID),
		}

		created, err := uc.receptionRepo.Create(txCtx, rec)
		if err != nil {
			uc.logger.Error("CreateReception: failed to create reception: %v", err)
			return fmt.Errorf("%w: failed to create reception: %v", ErrInternal, err)
		}

		// 2.4. Разворачиваем пакет в инспекционные записи
		if req.PackageID != nil {
			taskIDs, err := uc.expandPackage(txCtx, *req.PackageID)
			if err != nil {
				return err
			}

			if len(taskIDs) > 0 {
				if err := uc.receptionRepo.CreateRecords(txCtx, created.ID, taskIDs); err != nil {
					uc.logger.Error("CreateReception: failed to create inspection records: %v", err)
					return fmt.Errorf("%w: failed to create inspection records: %v", ErrInternal, err)
				}
			}
			recordsCreated = len(taskIDs)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReception: created reception id=%d status=%s with %d records",
		result.ID, result.Status, recordsCreated)

	return newResponse(result, recordsCreated), nil
}

// CreateMissingRecords recovery-операция: доразворачивает пакет приёмки,
// вставляя только записи для ещё не инстанцированных шаблонов.
// Повторный вызов на приёмке с полным набором записей ничего не меняет.
func (uc *UseCase) CreateMissingRecords(ctx context.Context, receptionID int64) (int, error) {
	uc.logger.Info("CreateMissingRecords: reception=%d", receptionID)

	if receptionID <= 0 {
		return 0, fmt.Errorf("%w: receptionID must be positive", ErrInvalidInput)
	}

	var created int

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		rec, err := uc.receptionRepo.GetByID(txCtx, receptionID)
		if err != nil {
			if errors.Is(err, receptionRepo.ErrReceptionNotFound) {
				return ErrReceptionNotFound
			}
			uc.logger.Error("CreateMissingRecords: failed to get reception id=%d: %v", receptionID, err)
			return fmt.Errorf("%w: failed to get reception: %v", ErrInternal, err)
		}

		if rec.PackageID == nil {
			return ErrNoPackageSelected
		}

		taskIDs, err := uc.expandPackage(txCtx, *rec.PackageID)
		if err != nil {
			return err
		}

		existingIDs, err := uc.receptionRepo.ListRecordTaskIDs(txCtx, receptionID)
		if err != nil {
			uc.logger.Error("CreateMissingRecords: failed to list existing records: %v", err)
			return fmt.Errorf("%w: failed to list existing records: %v", ErrInternal, err)
		}

		existing := make(map[int64]struct{}, len(existingIDs))
		for _, id := range existingIDs {
			existing[id] = struct{}{}
		}

		missing := make([]int64, 0, len(taskIDs))
		for _, id := range taskIDs {
			if _, ok := existing[id]; !ok {
				missing = append(missing, id)
			}
		}

		if len(missing) > 0 {
			if err := uc.receptionRepo.CreateRecords(txCtx, receptionID, missing); err != nil {
				uc.logger.Error("CreateMissingRecords: failed to create records: %v", err)
				return fmt.Errorf("%w: failed to create records: %v", ErrInternal, err)
			}
		}

		created = len(missing)
		return nil
	})

	if err != nil {
		return 0, err
	}

	uc.logger.Info("CreateMissingRecords: reception id=%d, %d records added", receptionID, created)
	return created, nil
}

// expandPackage возвращает ID всех шаблонов задач, входящих в пакет
// по кумулятивному правилу порога пробега
func (uc *UseCase) expandPackage(ctx context.Context, packageID int64) ([]int64, error) {
	pkg, err := uc.catalogRepo.GetPackageByID(ctx, packageID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrPackageNotFound) {
			uc.logger.Warn("CreateReception: package id=%d not found", packageID)
			return nil, ErrPackageNotFound
		}
		uc.logger.Error("CreateReception: failed to get package id=%d: %v", packageID, err)
		return nil, fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
	}

	tasks, err := uc.catalogRepo.ListTasksUpToDistance(ctx, pkg.DistanceKM)
	if err != nil {
		uc.logger.Error("CreateReception: failed to list tasks for package id=%d: %v", packageID, err)
		return nil, fmt.Errorf("%w: failed to list tasks: %v", ErrInternal, err)
	}

	taskIDs := make([]int64, 0, len(tasks))
	for _, task := range tasks {
		taskIDs = append(taskIDs, task.ID)
	}

	return taskIDs, nil
}

func validateRequest(req *Request) error {
	if req.BookingID != nil && *req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}
	if req.CustomerName == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if req.VehicleID <= 0 {
		return fmt.Errorf("%w: vehicleID must be positive", ErrInvalidInput)
	}
	if req.CenterID <= 0 {
		return fmt.Errorf("%w: centerID must be positive", ErrInvalidInput)
	}
	if req.TechnicianID != nil && *req.TechnicianID <= 0 {
		return fmt.Errorf("%w: technicianID must be positive", ErrInvalidInput)
	}
	if req.PackageID != nil && *req.PackageID <= 0 {
		return fmt.Errorf("%w: packageID must be positive", ErrInvalidInput)
	}
	return nil
}
