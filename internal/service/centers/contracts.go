package centers

import (
	"context"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
)

// CenterRepository интерфейс репозитория сервисных центров
type CenterRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceCenter, error)
	List(ctx context.Context) ([]*domain.ServiceCenter, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
