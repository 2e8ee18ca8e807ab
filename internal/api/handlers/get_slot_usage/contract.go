package get_slot_usage

import (
	"context"

	getSlotUsage "github.com/no-solace/ev-maintenance-system-sub001/internal/usecase/get_slot_usage"
)

type GetSlotUsageUseCase interface {
	Execute(ctx context.Context, req *getSlotUsage.Request) (*getSlotUsage.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
