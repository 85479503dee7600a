package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/TableReservationService/internal/domain"
	"github.com/m04kA/TableReservationService/pkg/dbmetrics"
	"github.com/m04kA/TableReservationService/pkg/psqlbuilder"
	"github.com/m04kA/TableReservationService/pkg/types"
)

const tableName = "reservations"

var columns = []string{
	"id",
	"customer_name",
	"email",
	"phone",
	"party_size",
	"reservation_date",
	"reservation_time",
	"table_ids",
	"status",
	"notes",
	"requires_reallocation",
	"deposit_paid",
	"payment_intent_id",
	"created_by",
	"seated_at",
	"reminder_sent_at",
	"review_sent_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование. ID генерируется вызывающим кодом до захвата замков,
// чтобы замки и запись ссылались на один и тот же идентификатор.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"id",
			"customer_name",
			"email",
			"phone",
			"party_size",
			"reservation_date",
			"reservation_time",
			"table_ids",
			"status",
			"notes",
			"requires_reallocation",
			"deposit_paid",
			"created_by",
		).
		Values(
			res.ID,
			res.CustomerName,
			res.Email,
			res.Phone,
			res.PartySize,
			res.Date.Format(domain.DateFormat),
			res.Time,
			pq.Array(res.TableIDs),
			res.Status,
			res.Notes,
			res.RequiresReallocation,
			res.DepositPaid,
			res.CreatedBy,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.CreatedAt, &res.UpdatedAt); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку от конкурентных изменений
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// ListActiveInWindow возвращает активные бронирования на дату со временем строго внутри (from, to)
func (r *Repository) ListActiveInWindow(ctx context.Context, date time.Time, from, to types.TimeString) ([]*domain.Reservation, error) {
	return r.list(ctx, "ListActiveInWindow", squirrel.And{
		squirrel.Eq{"reservation_date": date.Format(domain.DateFormat)},
		squirrel.Gt{"reservation_time": from},
		squirrel.Lt{"reservation_time": to},
		squirrel.NotEq{"status": domain.InactiveStatuses},
	}, "reservation_time ASC")
}

// ListStaleDepositRequired возвращает бронирования, ожидающие депозит дольше отведенного времени
func (r *Repository) ListStaleDepositRequired(ctx context.Context, createdBefore time.Time) ([]*domain.Reservation, error) {
	return r.list(ctx, "ListStaleDepositRequired", squirrel.And{
		squirrel.Eq{"status": domain.StatusDepositRequired},
		squirrel.Lt{"created_at": createdBefore},
	}, "created_at ASC")
}

// ListRequiringReallocation бронирования на дату в интервале [from, to], ожидающие пересадки
func (r *Repository) ListRequiringReallocation(ctx context.Context, date time.Time, from, to types.TimeString) ([]*domain.Reservation, error) {
	return r.list(ctx, "ListRequiringReallocation", squirrel.And{
		squirrel.Eq{"reservation_date": date.Format(domain.DateFormat)},
		squirrel.GtOrEq{"reservation_time": from},
		squirrel.LtOrEq{"reservation_time": to},
		squirrel.Eq{"requires_reallocation": true},
		squirrel.Eq{"status": domain.AlertableStatuses},
	}, "reservation_time ASC")
}

// ListByDate бронирования на дату, кроме отмененных и неявок
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	return r.list(ctx, "ListByDate", squirrel.And{
		squirrel.Eq{"reservation_date": date.Format(domain.DateFormat)},
		squirrel.NotEq{"status": domain.InactiveStatuses},
	}, "reservation_time ASC")
}

// ListForReminder подтвержденные бронирования на дату без отправленного напоминания
func (r *Repository) ListForReminder(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	return r.list(ctx, "ListForReminder", squirrel.And{
		squirrel.Eq{"reservation_date": date.Format(domain.DateFormat)},
		squirrel.Eq{"status": domain.AlertableStatuses},
		squirrel.Eq{"reminder_sent_at": nil},
	}, "reservation_time ASC")
}

// ListForReview рассаженные гости, которым еще не отправлена просьба об отзыве
func (r *Repository) ListForReview(ctx context.Context, seatedBefore time.Time) ([]*domain.Reservation, error) {
	return r.list(ctx, "ListForReview", squirrel.And{
		squirrel.Eq{"status": domain.StatusSeated},
		squirrel.LtOrEq{"seated_at": seatedBefore},
		squirrel.Eq{"review_sent_at": nil},
	}, "seated_at ASC")
}

// FindSeatedByTables рассаженные бронирования, занимающие хотя бы один из столов
func (r *Repository) FindSeatedByTables(ctx context.Context, tableIDs []int64) ([]*domain.Reservation, error) {
	return r.list(ctx, "FindSeatedByTables", squirrel.And{
		squirrel.Eq{"status": domain.StatusSeated},
		squirrel.Expr("table_ids && ?", pq.Array(tableIDs)),
	}, "seated_at ASC")
}

// UpdateStatusFrom переводит бронирование в статус to, только если текущий статус входит в from.
// Возвращает false, если переход не выполнен (статус уже изменился).
func (r *Repository) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from []domain.ReservationStatus, to domain.ReservationStatus) (bool, error) {
	return r.update(ctx, "UpdateStatusFrom", psqlbuilder.Update(tableName).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from}))
}

// MarkSeated рассаживает подтвержденное бронирование
func (r *Repository) MarkSeated(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	return r.update(ctx, "MarkSeated", psqlbuilder.Update(tableName).
		Set("status", domain.StatusSeated).
		Set("seated_at", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.AlertableStatuses}))
}

// MarkDepositPaid подтверждает бронирование после оплаты депозита
func (r *Repository) MarkDepositPaid(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.update(ctx, "MarkDepositPaid", psqlbuilder.Update(tableName).
		Set("status", domain.StatusConfirmed).
		Set("deposit_paid", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusDepositRequired}))
}

// SetPaymentIntent сохраняет идентификатор платежного намерения
func (r *Repository) SetPaymentIntent(ctx context.Context, id uuid.UUID, paymentIntentID string) error {
	return r.updateExisting(ctx, "SetPaymentIntent", psqlbuilder.Update(tableName).
		Set("payment_intent_id", paymentIntentID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

// UpdateTableIDs пересаживает бронирование на другие столы
func (r *Repository) UpdateTableIDs(ctx context.Context, id uuid.UUID, tableIDs []int64) error {
	return r.updateExisting(ctx, "UpdateTableIDs", psqlbuilder.Update(tableName).
		Set("table_ids", pq.Array(tableIDs)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

// ClearReallocationFlag снимает флаг необходимости пересадки
func (r *Repository) ClearReallocationFlag(ctx context.Context, id uuid.UUID) error {
	return r.updateExisting(ctx, "ClearReallocationFlag", psqlbuilder.Update(tableName).
		Set("requires_reallocation", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

// ClaimReminder отмечает отправку напоминания; false, если его уже отметил другой процесс
func (r *Repository) ClaimReminder(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	return r.update(ctx, "ClaimReminder", psqlbuilder.Update(tableName).
		Set("reminder_sent_at", at).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"reminder_sent_at": nil}))
}

// ClaimReview отмечает отправку просьбы об отзыве; false, если уже отмечено
func (r *Repository) ClaimReview(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	return r.update(ctx, "ClaimReview", psqlbuilder.Update(tableName).
		Set("review_sent_at", at).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"review_sent_at": nil}))
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer, orderBy string) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(where).
		OrderBy(orderBy).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan reservation: %v", ErrScanRow, op, err)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrScanRow, op, err)
	}

	return result, nil
}

// update выполняет условный UPDATE и сообщает, затронута ли строка
func (r *Repository) update(ctx context.Context, op string, builder squirrel.UpdateBuilder) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	return rowsAffected > 0, nil
}

// updateExisting безусловный UPDATE; отсутствие строки означает ErrReservationNotFound
func (r *Repository) updateExisting(ctx context.Context, op string, builder squirrel.UpdateBuilder) error {
	updated, err := r.update(ctx, op, builder)
	if err != nil {
		return err
	}
	if !updated {
		return ErrReservationNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row scanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var tableIDs pq.Int64Array

	err := row.Scan(
		&res.ID,
		&res.CustomerName,
		&res.Email,
		&res.Phone,
		&res.PartySize,
		&res.Date,
		&res.Time,
		&tableIDs,
		&res.Status,
		&res.Notes,
		&res.RequiresReallocation,
		&res.DepositPaid,
		&res.PaymentIntentID,
		&res.CreatedBy,
		&res.SeatedAt,
		&res.ReminderSentAt,
		&res.ReviewSentAt,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.TableIDs = []int64(tableIDs)
	return &res, nil
}
