package create_reception

import (
	"context"

	createReception "github.com/no-solace/ev-maintenance-system-sub001/internal/usecase/create_reception"
)

type CreateReceptionUseCase interface {
	Execute(ctx context.Context, req *createReception.Request) (*createReception.Response, error)
	CreateMissingRecords(ctx context.Context, receptionID int64) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
