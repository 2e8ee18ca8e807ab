package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/dbmetrics"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/psqlbuilder"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/types"
)

var bookingColumns = []string{
	"id",
	"customer_id",
	"vehicle_id",
	"center_id",
	"booking_date",
	"start_time",
	"status",
	"customer_name",
	"vehicle_plate",
	"notes",
	"requested_date",
	"requested_time",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Создание с проверкой занятости слота обязано выполняться в транзакции,
// чтобы пересчёт занятости и вставка были одной атомарной операцией.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_id",
			"vehicle_id",
			"center_id",
			"booking_date",
			"start_time",
			"status",
			"customer_name",
			"vehicle_plate",
			"notes",
		).
		Values(
			booking.CustomerID,
			booking.VehicleID,
			booking.CenterID,
			booking.BookingDate,
			booking.StartTime,
			booking.Status,
			booking.CustomerName,
			booking.VehiclePlate,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByCustomerID получает список бронирований клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("booking_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByCenterWithFilter получает бронирования центра с гибкой фильтрацией
// Внутри транзакции при выборке на конкретную дату добавляет FOR UPDATE:
// так пересчёт занятости слота блокирует конкурирующие резервирования
// того же дня до конца транзакции (см. create_booking / reschedule_booking)
func (r *Repository) GetByCenterWithFilter(ctx context.Context, filter domain.CenterBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"center_id": filter.CenterID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}
	if filter.StartTime != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"start_time": *filter.StartTime})
	}
	if filter.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	singleDay := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)

	if singleDay {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && singleDay {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCenterWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCenterWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// FindExpiredPending находит бронирования в pending_payment, созданные раньше cutoff
// Используется expiry sweeper'ом
func (r *Repository) FindExpiredPending(ctx context.Context, cutoff time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusPendingPayment}).
		Where(squirrel.Lt{"created_at": cutoff}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindExpiredPending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindExpiredPending - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatusFrom переводит бронирование из ожидаемого статуса в новый
// Guarded-переход: условие WHERE status = expected гарантирует, что
// конкурирующий переход (например, sweeper против confirmDeposit) не будет
// молча перезаписан. Возвращает ErrStatusConflict, если статус уже другой.
func (r *Repository) UpdateStatusFrom(ctx context.Context, id int64, expected, next domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", next).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": expected}).
		ToSql()

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
		return r.notFoundOrConflict(ctx, id)
	}

	return nil
}

// CancelFrom отменяет бронирование из ожидаемого статуса с указанием причины
// Тот же guarded-механизм, что и UpdateStatusFrom: подтверждённое платежом
// бронирование sweeper отменить уже не сможет
func (r *Repository) CancelFrom(ctx context.Context, id int64, expected domain.BookingStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": expected}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CancelFrom - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CancelFrom - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: CancelFrom - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return r.notFoundOrConflict(ctx, id)
	}

	return nil
}

// SetRequestedSlot открывает запрос на перенос: сохраняет желаемый слот
// и переводит бронирование из upcoming в update_requested
func (r *Repository) SetRequestedSlot(ctx context.Context, id int64, date time.Time, startTime types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusUpdateRequested).
		Set("requested_date", date).
		Set("requested_time", startTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusUpcoming}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetRequestedSlot - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetRequestedSlot - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetRequestedSlot - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return r.notFoundOrConflict(ctx, id)
	}

	return nil
}

// Reschedule атомарно переносит бронирование на новый слот
// и очищает запрошенный слот. Вызывается в транзакции после пересчёта
// занятости целевого слота.
func (r *Repository) Reschedule(ctx context.Context, id int64, date time.Time, startTime types.TimeString, next domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("booking_date", date).
		Set("start_time", startTime).
		Set("status", next).
		Set("requested_date", nil).
		Set("requested_time", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Reschedule - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reschedule - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// ResolveRequest закрывает запрос на изменение: устанавливает статус
// и очищает запрошенный слот (отклонение переноса, отклонение отмены)
func (r *Repository) ResolveRequest(ctx context.Context, id int64, expected, next domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", next).
		Set("requested_date", nil).
		Set("requested_time", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": expected}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ResolveRequest - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ResolveRequest - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ResolveRequest - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return r.notFoundOrConflict(ctx, id)
	}

	return nil
}

// notFoundOrConflict различает "нет такого бронирования" и
// "бронирование есть, но статус уже другой"
func (r *Repository) notFoundOrConflict(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status").
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: notFoundOrConflict - build select query: %v", ErrBuildQuery, err)
	}

	var status string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&status)
	if err == sql.ErrNoRows {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: notFoundOrConflict - scan status: %v", ErrScanRow, err)
	}

	return fmt.Errorf("%w: current status is %q", ErrStatusConflict, status)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.VehicleID,
		&booking.CenterID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.Status,
		&booking.CustomerName,
		&booking.VehiclePlate,
		&booking.Notes,
		&booking.RequestedDate,
		&booking.RequestedTime,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
