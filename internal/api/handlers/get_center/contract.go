package get_center

import (
	"context"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/service/centers"
)

type CenterService interface {
	GetByID(ctx context.Context, id int64) (*centers.CenterResponse, error)
	List(ctx context.Context) (*centers.CenterListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
