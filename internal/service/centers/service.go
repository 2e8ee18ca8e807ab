package centers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
	centerRepo "github.com/no-solace/ev-maintenance-system-sub001/internal/infra/storage/center"
)

// CenterResponse ответ со справочными данными центра
type CenterResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`

	OpenTime  string `json:"openTime"`  // "09:00"
	CloseTime string `json:"closeTime"` // "18:00"

	SlotDurationMinutes   int `json:"slotDurationMinutes"`
	MaxConcurrentBookings int `json:"maxConcurrentBookings"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CenterListResponse ответ со списком центров
type CenterListResponse struct {
	Centers []CenterResponse `json:"centers"`
}

// Service read-only сервис справочника сервисных центров
// Запись принадлежит админскому сервису и сюда не входит
type Service struct {
	centerRepo CenterRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса центров
func NewService(centerRepo CenterRepository, logger Logger) *Service {
	return &Service{
		centerRepo: centerRepo,
		logger:     logger,
	}
}

// GetByID получает сервисный центр по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*CenterResponse, error) {
	s.logger.Info("GetByID: fetching center id=%d", id)

	center, err := s.centerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, centerRepo.ErrCenterNotFound) {
			s.logger.Warn("GetByID: center id=%d not found", id)
			return nil, ErrCenterNotFound
		}
		s.logger.Error("GetByID: repository error for center id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return fromDomain(center), nil
}

// List возвращает все сервисные центры
func (s *Service) List(ctx context.Context) (*CenterListResponse, error) {
	s.logger.Info("List: fetching all centers")

	centers, err := s.centerRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	result := &CenterListResponse{Centers: make([]CenterResponse, 0, len(centers))}
	for _, c := range centers {
		result.Centers = append(result.Centers, *fromDomain(c))
	}

	s.logger.Info("List: fetched %d centers", len(result.Centers))
	return result, nil
}

func fromDomain(c *domain.ServiceCenter) *CenterResponse {
	return &CenterResponse{
		ID:                    c.ID,
		Name:                  c.Name,
		OpenTime:              c.OpenTime.String(),
		CloseTime:             c.CloseTime.String(),
		SlotDurationMinutes:   c.SlotDurationMinutes,
		MaxConcurrentBookings: c.MaxConcurrentBookings,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}
}
