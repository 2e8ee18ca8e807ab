// Package jobs содержит фоновые задачи сервиса.
package jobs

import (
	"context"
	"time"

	sweepExpired "github.com/no-solace/ev-maintenance-system-sub001/internal/usecase/sweep_expired"
)

// SweepUseCase интерфейс usecase отмены просроченных бронирований
type SweepUseCase interface {
	Execute(ctx context.Context, now time.Time) (*sweepExpired.Report, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider с реальным временем
type RealTimeProvider struct{}

func (r *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Sweeper периодически отменяет бронирования с истёкшим окном оплаты депозита.
// Ошибки одного прохода не останавливают следующие.
type Sweeper struct {
	useCase      SweepUseCase
	interval     time.Duration
	timeProvider TimeProvider
	logger       Logger
}

func NewSweeper(useCase SweepUseCase, interval time.Duration, logger Logger) *Sweeper {
	return &Sweeper{
		useCase:      useCase,
		interval:     interval,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Run запускает цикл sweeper'а и блокируется до отмены контекста.
// Первый проход выполняется сразу, не дожидаясь первого тика.
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("Sweeper: started, interval=%s", s.interval)

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Sweeper: stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	report, err := s.useCase.Execute(ctx, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("Sweeper: sweep failed: %v", err)
		return
	}

	if report.Scanned > 0 {
		s.logger.Info("Sweeper: scanned=%d, cancelled=%d, skipped=%d, failed=%d",
			report.Scanned, report.Cancelled, report.Skipped, report.Failed)
	}
}
