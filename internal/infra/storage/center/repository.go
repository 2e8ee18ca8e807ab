package center

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/dbmetrics"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/psqlbuilder"
)

// Repository read-only репозиторий справочника сервисных центров
// Данные центров принадлежат админ-сервису; этот сервис их только читает
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория центров
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает сервисный центр по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ServiceCenter, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"open_time",
		"close_time",
		"slot_duration_minutes",
		"max_concurrent_bookings",
		"created_at",
		"updated_at",
	).
		From("service_centers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.ServiceCenter
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.Name,
		&c.OpenTime,
		&c.CloseTime,
		&c.SlotDurationMinutes,
		&c.MaxConcurrentBookings,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCenterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan center: %v", ErrScanRow, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}

// List получает все сервисные центры
func (r *Repository) List(ctx context.Context) ([]*domain.ServiceCenter, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"open_time",
		"close_time",
		"slot_duration_minutes",
		"max_concurrent_bookings",
		"created_at",
		"updated_at",
	).
		From("service_centers").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	centers := make([]*domain.ServiceCenter, 0)
	for rows.Next() {
		var c domain.ServiceCenter
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.OpenTime,
			&c.CloseTime,
			&c.SlotDurationMinutes,
			&c.MaxConcurrentBookings,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		c.CreatedAt = createdAt.Time
		c.UpdatedAt = updatedAt.Time
		centers = append(centers, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return centers, nil
}
