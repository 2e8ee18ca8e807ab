package get_slot_usage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
	centerRepo "github.com/no-solace/ev-maintenance-system-sub001/internal/infra/storage/center"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/types"
)

// UseCase use case для получения занятости слотов центра
// Строит сетку слотов на дату по рабочим часам центра и накладывает
// на неё занятость из активных бронирований
type UseCase struct {
	bookingRepo  BookingRepository
	centerRepo   CenterRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	centerRepo CenterRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		centerRepo:   centerRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения занятости слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSlotUsage: center=%d, date=%s, fromNow=%t, limit=%d",
		req.CenterID, req.Date.Format(domain.DateFormat), req.FromNow, req.Limit)

	// 1. Валидация входных данных
	if req.CenterID <= 0 {
		return nil, fmt.Errorf("%w: centerID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}

	// 2. Получаем сервисный центр
	center, err := uc.centerRepo.GetByID(ctx, req.CenterID)
	if err != nil {
		if errors.Is(err, centerRepo.ErrCenterNotFound) {
			uc.logger.Warn("GetSlotUsage: center id=%d not found", req.CenterID)
			return nil, ErrCenterNotFound
		}
		uc.logger.Error("GetSlotUsage: failed to get center id=%d: %v", req.CenterID, err)
		return nil, fmt.Errorf("%w: failed to get center: %v", ErrInternal, err)
	}

	// 3. Генерируем сетку слотов по рабочим часам центра
	grid, err := generateSlotGrid(center)
	if err != nil {
		uc.logger.Error("GetSlotUsage: failed to generate slot grid: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slot grid: %v", ErrInternal, err)
	}

	// 4. Получаем все активные бронирования центра на эту дату
	filter := domain.CenterBookingsFilter{
		CenterID:        req.CenterID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetByCenterWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetSlotUsage: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Накладываем занятость на сетку
	occupancy := make(map[types.TimeString]int, len(bookings))
	for _, booking := range bookings {
		if booking.OccupiesSlot() {
			occupancy[booking.StartTime]++
		}
	}

	now := uc.timeProvider.Now()
	sameDay := isSameDay(req.Date, now)

	slots := make([]domain.SlotUsage, 0, len(grid))
	for _, start := range grid {
		usage := domain.SlotUsage{
			StartTime:       start,
			DurationMinutes: center.SlotDurationMinutes,
			OccupiedSpots:   occupancy[start],
			TotalSpots:      center.MaxConcurrentBookings,
			IsCurrent:       sameDay && isCurrentSlot(start, center.SlotDurationMinutes, now),
		}

		// FromNow отсекает уже прошедшие слоты (по настенным часам),
		// текущий слот остаётся в выдаче
		if req.FromNow && sameDay && isPastSlot(start, center.SlotDurationMinutes, now) {
			continue
		}
		if req.FromNow && req.Date.Before(truncateToDay(now)) {
			continue
		}

		slots = append(slots, usage)
		if req.Limit > 0 && len(slots) >= req.Limit {
			break
		}
	}

	uc.logger.Info("GetSlotUsage: returning %d slots for center=%d on %s",
		len(slots), req.CenterID, req.Date.Format(domain.DateFormat))

	return &Response{
		CenterID: req.CenterID,
		Date:     req.Date,
		Slots:    slots,
	}, nil
}

// generateSlotGrid строит список времён начала слотов в рабочих часах центра
// Последний слот обязан целиком помещаться до закрытия
func generateSlotGrid(center *domain.ServiceCenter) ([]types.TimeString, error) {
	grid := make([]types.TimeString, 0)

	current := center.OpenTime
	for {
		end, err := current.AddMinutes(center.SlotDurationMinutes)
		if err != nil {
			// Слот пересёк полночь, сетка закончилась
			break
		}
		if end.IsAfter(center.CloseTime) {
			break
		}

		grid = append(grid, current)
		current = end
	}

	if len(grid) == 0 {
		return nil, fmt.Errorf("no slots fit between %s and %s with duration %d",
			center.OpenTime, center.CloseTime, center.SlotDurationMinutes)
	}

	return grid, nil
}

// isCurrentSlot проверяет, что now попадает в интервал [start, start+duration)
func isCurrentSlot(start types.TimeString, durationMinutes int, now time.Time) bool {
	slotStart := start.OnDate(now)
	slotEnd := slotStart.Add(time.Duration(durationMinutes) * time.Minute)
	return !now.Before(slotStart) && now.Before(slotEnd)
}

// isPastSlot проверяет, что слот целиком закончился к моменту now
func isPastSlot(start types.TimeString, durationMinutes int, now time.Time) bool {
	slotStart := start.OnDate(now)
	slotEnd := slotStart.Add(time.Duration(durationMinutes) * time.Minute)
	return !now.Before(slotEnd)
}

func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
