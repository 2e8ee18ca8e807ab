package reception

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/dbmetrics"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/psqlbuilder"
)

var receptionColumns = []string{
	"id",
	"booking_id",
	"customer_id",
	"customer_name",
	"customer_phone",
	"vehicle_id",
	"vehicle_model",
	"vehicle_plate",
	"center_id",
	"technician_id",
	"package_id",
	"status",
	"total_cost",
	"created_at",
	"updated_at",
	"completed_at",
}

// Repository репозиторий агрегата приёмки: приёмка, инспекционные записи
// и заявки на запчасти. Агрегат никогда не удаляется (audit trail).
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория приёмок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую приёмку
func (r *Repository) Create(ctx context.Context, rec *domain.Reception) (*domain.Reception, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("receptions").
		Columns(
			"booking_id",
			"customer_id",
			"customer_name",
			"customer_phone",
			"vehicle_id",
			"vehicle_model",
			"vehicle_plate",
			"center_id",
			"technician_id",
			"package_id",
			"status",
			"total_cost",
		).
		Values(
			rec.BookingID,
			rec.CustomerID,
			rec.CustomerName,
			rec.CustomerPhone,
			rec.VehicleID,
			rec.VehicleModel,
			rec.VehiclePlate,
			rec.CenterID,
			rec.TechnicianID,
			rec.PackageID,
			rec.Status,
			rec.TotalCost,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rec.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rec.CreatedAt = createdAt.Time
	rec.UpdatedAt = updatedAt.Time

	return rec, nil
}

// GetByID получает приёмку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reception, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(receptionColumns...).
		From("receptions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rec, err := r.scanReception(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReceptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reception: %v", ErrScanRow, err)
	}

	return rec, nil
}

// GetByBookingID получает приёмку, созданную из бронирования
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Reception, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(receptionColumns...).
		From("receptions").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	rec, err := r.scanReception(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReceptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - scan reception: %v", ErrScanRow, err)
	}

	return rec, nil
}

// UpdateStatusFrom переводит приёмку из ожидаемого статуса в новый
// Guarded-переход по аналогии с репозиторием бронирований
func (r *Repository) UpdateStatusFrom(ctx context.Context, id int64, expected, next domain.ReceptionStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("receptions").
		Set("status", next).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": expected})

	if next == domain.ReceptionCompleted {
		builder = builder.Set("completed_at", squirrel.Expr("NOW()"))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrStatusConflict
	}

	return nil
}

// AssignTechnician назначает техника на приёмку
func (r *Repository) AssignTechnician(ctx context.Context, id, technicianID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("receptions").
		Set("technician_id", technicianID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AssignTechnician - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AssignTechnician - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AssignTechnician - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReceptionNotFound
	}

	return nil
}

// AddToTotalCost увеличивает итоговую стоимость приёмки
// Используется при одобрении заявок на запчасти
func (r *Repository) AddToTotalCost(ctx context.Context, id int64, amount float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("receptions").
		Set("total_cost", squirrel.Expr("total_cost + ?", amount)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddToTotalCost - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AddToTotalCost - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AddToTotalCost - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReceptionNotFound
	}

	return nil
}

// --- Инспекционные записи ---

// CreateRecords создает инспекционные записи для приёмки (одна на шаблон)
func (r *Repository) CreateRecords(ctx context.Context, receptionID int64, taskIDs []int64) error {
	if len(taskIDs) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("inspection_records").
		Columns("reception_id", "task_id", "action", "version")

	for _, taskID := range taskIDs {
		builder = builder.Values(receptionID, taskID, domain.ActionPending, 1)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateRecords - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateRecords - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListRecordTaskIDs получает ID шаблонов, уже развёрнутых в записи приёмки
// Используется recovery-операцией для идемпотентного дозаполнения
func (r *Repository) ListRecordTaskIDs(ctx context.Context, receptionID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("task_id").
		From("inspection_records").
		Where(squirrel.Eq{"reception_id": receptionID}).
		OrderBy("task_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListRecordTaskIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRecordTaskIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	taskIDs := make([]int64, 0)
	for rows.Next() {
		var taskID int64
		if err := rows.Scan(&taskID); err != nil {
			return nil, fmt.Errorf("%w: ListRecordTaskIDs - scan task_id: %v", ErrScanRow, err)
		}
		taskIDs = append(taskIDs, taskID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRecordTaskIDs - rows error: %v", ErrScanRow, err)
	}

	return taskIDs, nil
}

// ListRecords получает все инспекционные записи приёмки
func (r *Repository) ListRecords(ctx context.Context, receptionID int64) ([]*domain.InspectionRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"reception_id",
		"task_id",
		"action",
		"version",
		"completed_at",
		"created_at",
		"updated_at",
	).
		From("inspection_records").
		Where(squirrel.Eq{"reception_id": receptionID}).
		OrderBy("task_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListRecords - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRecords - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.InspectionRecord, 0)
	for rows.Next() {
		var rec domain.InspectionRecord
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&rec.ID,
			&rec.ReceptionID,
			&rec.TaskID,
			&rec.Action,
			&rec.Version,
			&rec.CompletedAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListRecords - scan row: %v", ErrScanRow, err)
		}

		rec.CreatedAt = createdAt.Time
		rec.UpdatedAt = updatedAt.Time
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRecords - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}

// GetRecordByID получает инспекционную запись по ID
func (r *Repository) GetRecordByID(ctx context.Context, id int64) (*domain.InspectionRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"reception_id",
		"task_id",
		"action",
		"version",
		"completed_at",
		"created_at",
		"updated_at",
	).
		From("inspection_records").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRecordByID - build select query: %v", ErrBuildQuery, err)
	}

	var rec domain.InspectionRecord
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rec.ID,
		&rec.ReceptionID,
		&rec.TaskID,
		&rec.Action,
		&rec.Version,
		&rec.CompletedAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRecordByID - scan record: %v", ErrScanRow, err)
	}

	rec.CreatedAt = createdAt.Time
	rec.UpdatedAt = updatedAt.Time

	return &rec, nil
}

// UpdateRecordAction обновляет результат инспекционной записи
// Оптимистичная блокировка: условие WHERE version = expected не даёт
// пакетному обновлению перетереть конкурирующее одиночное обновление
func (r *Repository) UpdateRecordAction(ctx context.Context, id int64, action domain.RecordAction, expectedVersion int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("inspection_records").
		Set("action", action).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "version": expectedVersion})

	if action != domain.ActionPending {
		builder = builder.Set("completed_at", squirrel.Expr("NOW()"))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateRecordAction - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateRecordAction - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateRecordAction - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		if _, err := r.GetRecordByID(ctx, id); err != nil {
			return err
		}
		return ErrRecordVersionConflict
	}

	return nil
}

// --- Заявки на запчасти ---

// CreatePartRequest создает заявку техника на запчасть
func (r *Repository) CreatePartRequest(ctx context.Context, req *domain.SparePartRequest) (*domain.SparePartRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("spare_part_requests").
		Columns(
			"reception_id",
			"part_id",
			"quantity",
			"unit_price",
			"status",
		).
		Values(
			req.ReceptionID,
			req.PartID,
			req.Quantity,
			req.UnitPrice,
			req.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreatePartRequest - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&req.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: CreatePartRequest - execute insert: %v", ErrExecQuery, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return req, nil
}

// GetPartRequestByID получает заявку на запчасть по ID
func (r *Repository) GetPartRequestByID(ctx context.Context, id int64) (*domain.SparePartRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"reception_id",
		"part_id",
		"quantity",
		"unit_price",
		"status",
		"created_at",
		"updated_at",
	).
		From("spare_part_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPartRequestByID - build select query: %v", ErrBuildQuery, err)
	}

	var req domain.SparePartRequest
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&req.ID,
		&req.ReceptionID,
		&req.PartID,
		&req.Quantity,
		&req.UnitPrice,
		&req.Status,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPartRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPartRequestByID - scan request: %v", ErrScanRow, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return &req, nil
}

// ListPartRequests получает все заявки на запчасти приёмки
func (r *Repository) ListPartRequests(ctx context.Context, receptionID int64) ([]*domain.SparePartRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"reception_id",
		"part_id",
		"quantity",
		"unit_price",
		"status",
		"created_at",
		"updated_at",
	).
		From("spare_part_requests").
		Where(squirrel.Eq{"reception_id": receptionID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListPartRequests - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPartRequests - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	requests := make([]*domain.SparePartRequest, 0)
	for rows.Next() {
		var req domain.SparePartRequest
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&req.ID,
			&req.ReceptionID,
			&req.PartID,
			&req.Quantity,
			&req.UnitPrice,
			&req.Status,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListPartRequests - scan row: %v", ErrScanRow, err)
		}

		req.CreatedAt = createdAt.Time
		req.UpdatedAt = updatedAt.Time
		requests = append(requests, &req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPartRequests - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}

// UpdatePartRequestStatusFrom переводит заявку из ожидаемого статуса в новый
func (r *Repository) UpdatePartRequestStatusFrom(ctx context.Context, id int64, expected, next domain.SparePartRequestStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("spare_part_requests").
		Set("status", next).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": expected}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePartRequestStatusFrom - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePartRequestStatusFrom - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePartRequestStatusFrom - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		if _, err := r.GetPartRequestByID(ctx, id); err != nil {
			return err
		}
		return ErrStatusConflict
	}

	return nil
}

func (r *Repository) scanReception(row interface{ Scan(...interface{}) error }) (*domain.Reception, error) {
	var rec domain.Reception
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rec.ID,
		&rec.BookingID,
		&rec.CustomerID,
		&rec.CustomerName,
		&rec.CustomerPhone,
		&rec.VehicleID,
		&rec.VehicleModel,
		&rec.VehiclePlate,
		&rec.CenterID,
		&rec.TechnicianID,
		&rec.PackageID,
		&rec.Status,
		&rec.TotalCost,
		&createdAt,
		&updatedAt,
		&rec.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.CreatedAt = createdAt.Time
	rec.UpdatedAt = updatedAt.Time

	return &rec, nil
}
