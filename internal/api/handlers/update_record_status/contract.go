package update_record_status

import (
	"context"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/service/receptions/models"
)

type ReceptionService interface {
	UpdateRecordStatus(ctx context.Context, recordID int64, req *models.UpdateRecordStatusRequest) error
	BatchUpdateRecordStatus(ctx context.Context, req *models.BatchUpdateRecordsRequest) (*models.BatchUpdateRecordsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
