package part_requests

import (
	"context"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/service/receptions/models"
)

type ReceptionService interface {
	CreatePartRequest(ctx context.Context, receptionID int64, req *models.CreatePartRequestRequest) (*models.PartRequestResponse, error)
	ListPartRequests(ctx context.Context, receptionID int64) (*models.PartRequestListResponse, error)
	ApprovePartRequest(ctx context.Context, requestID int64) error
	RejectPartRequest(ctx context.Context, requestID int64) error
	MarkPartRequestUsed(ctx context.Context, requestID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
