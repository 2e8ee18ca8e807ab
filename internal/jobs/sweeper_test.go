package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	sweepExpired "github.com/no-solace/ev-maintenance-system-sub001/internal/usecase/sweep_expired"
)

type MockSweepUseCase struct {
	mock.Mock
}

func (m *MockSweepUseCase) Execute(ctx context.Context, now time.Time) (*sweepExpired.Report, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sweepExpired.Report), args.Error(1)
}

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

func TestRun_SweepsImmediatelyBeforeFirstTick(t *testing.T) {
	mockUseCase := new(MockSweepUseCase)
	mockUseCase.On("Execute", mock.Anything, mock.Anything).Return(&sweepExpired.Report{}, nil)

	sweeper := NewSweeper(mockUseCase, time.Hour, &noopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sweeper.Run(ctx)

	// Интервал в час, но первый проход случился до первого тика
	mockUseCase.AssertNumberOfCalls(t, "Execute", 1)
}

func TestRun_SweepFailureDoesNotStopTheLoop(t *testing.T) {
	mockUseCase := new(MockSweepUseCase)
	mockUseCase.On("Execute", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	sweeper := NewSweeper(mockUseCase, 5*time.Millisecond, &noopLogger{})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	sweeper.Run(ctx)

	// Каждый тик пробует снова несмотря на ошибки предыдущих
	assert.GreaterOrEqual(t, len(mockUseCase.Calls), 2)
}
