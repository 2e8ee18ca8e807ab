package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/dbmetrics"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/psqlbuilder"
)

// Repository репозиторий справочника пакетов обслуживания, шаблонов
// инспекционных задач и каталога запчастей.
// Пакеты и шаблоны задач неизменяемы; мутируется только остаток запчастей.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetPackageByID получает пакет обслуживания по ID
func (r *Repository) GetPackageByID(ctx context.Context, id int64) (*domain.MaintenancePackage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"level",
		"name",
		"distance_km",
	).
		From("maintenance_packages").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPackageByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.MaintenancePackage
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.Level,
		&p.Name,
		&p.DistanceKM,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPackageByID - scan package: %v", ErrScanRow, err)
	}

	return &p, nil
}

// GetPackageByLevel получает пакет обслуживания по уровню
func (r *Repository) GetPackageByLevel(ctx context.Context, level int) (*domain.MaintenancePackage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"level",
		"name",
		"distance_km",
	).
		From("maintenance_packages").
		Where(squirrel.Eq{"level": level}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPackageByLevel - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.MaintenancePackage
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.Level,
		&p.Name,
		&p.DistanceKM,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPackageByLevel - scan package: %v", ErrScanRow, err)
	}

	return &p, nil
}

// ListTasksUpToDistance получает все шаблоны задач с интервалом, не превышающим
// distanceKM. Кумулятивное правило раскрытия пакета: пакет третьего уровня
// включает задачи первого, второго и третьего уровней.
func (r *Repository) ListTasksUpToDistance(ctx context.Context, distanceKM int) ([]*domain.InspectionTask, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"category",
		"distance_interval_km",
		"description",
	).
		From("inspection_tasks").
		Where(squirrel.LtOrEq{"distance_interval_km": distanceKM}).
		OrderBy("distance_interval_km ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListTasksUpToDistance - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTasksUpToDistance - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tasks := make([]*domain.InspectionTask, 0)
	for rows.Next() {
		var t domain.InspectionTask
		if err := rows.Scan(&t.ID, &t.Category, &t.DistanceIntervalKM, &t.Description); err != nil {
			return nil, fmt.Errorf("%w: ListTasksUpToDistance - scan row: %v", ErrScanRow, err)
		}
		tasks = append(tasks, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTasksUpToDistance - rows error: %v", ErrScanRow, err)
	}

	return tasks, nil
}

// GetPartByID получает запчасть по ID
func (r *Repository) GetPartByID(ctx context.Context, id int64) (*domain.SparePart, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"unit_price",
		"stock",
	).
		From("spare_parts").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPartByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.SparePart
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.Name,
		&p.UnitPrice,
		&p.Stock,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPartByID - scan part: %v", ErrScanRow, err)
	}

	return &p, nil
}

// DeductStock списывает запчасти со склада
// Guarded-условие stock >= quantity не даёт остатку уйти в минус
// при конкурирующих одобрениях заявок
func (r *Repository) DeductStock(ctx context.Context, partID int64, quantity int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("spare_parts").
		Set("stock", squirrel.Expr("stock - ?", quantity)).
		Where(squirrel.Eq{"id": partID}).
		Where(squirrel.GtOrEq{"stock": quantity}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeductStock - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeductStock - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeductStock - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Либо нет запчасти, либо не хватает остатка
		if _, err := r.GetPartByID(ctx, partID); err != nil {
			return err
		}
		return ErrInsufficientStock
	}

	return nil
}
