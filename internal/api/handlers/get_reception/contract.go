package get_reception

import (
	"context"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/service/receptions/models"
)

type ReceptionService interface {
	GetByID(ctx context.Context, id int64) (*models.ReceptionResponse, error)
	ListRecords(ctx context.Context, receptionID int64) (*models.RecordListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
