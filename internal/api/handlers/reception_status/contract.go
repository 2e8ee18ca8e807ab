package reception_status

import (
	"context"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/service/receptions/models"
)

type ReceptionService interface {
	AssignTechnician(ctx context.Context, receptionID int64, req *models.AssignTechnicianRequest) error
	StartWork(ctx context.Context, receptionID int64) error
	Complete(ctx context.Context, receptionID int64) error
	MarkPaid(ctx context.Context, receptionID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
