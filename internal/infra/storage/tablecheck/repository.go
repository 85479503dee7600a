package tablecheck

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/TableReservationService/internal/domain"
	"github.com/m04kA/TableReservationService/pkg/dbmetrics"
	"github.com/m04kA/TableReservationService/pkg/psqlbuilder"
)

const tableName = "table_checks"

var columns = []string{"id", "kind", "dine_in_id", "reservation_id", "prompted_at", "response", "responded_at"}

// Repository репозиторий проверок столов
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую проверку
func (r *Repository) Create(ctx context.Context, c *domain.TableCheck) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("id", "kind", "dine_in_id", "reservation_id", "prompted_at").
		Values(c.ID, c.Kind, c.DineInID, c.ReservationID, c.PromptedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает проверку по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TableCheck, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanCheck(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCheckNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan check: %v", ErrScanRow, err)
	}

	return c, nil
}

// ListPromptedBefore неотвеченные проверки с prompted_at <= at
func (r *Repository) ListPromptedBefore(ctx context.Context, at time.Time) ([]*domain.TableCheck, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"responded_at": nil}).
		Where(squirrel.LtOrEq{"prompted_at": at}).
		OrderBy("prompted_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPromptedBefore - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPromptedBefore - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	checks := make([]*domain.TableCheck, 0)
	for rows.Next() {
		c, err := scanCheck(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListPromptedBefore - scan check: %v", ErrScanRow, err)
		}
		checks = append(checks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPromptedBefore - iterate rows: %v", ErrScanRow, err)
	}

	return checks, nil
}

// MarkResponded записывает ответ, только если проверка еще не отвечена.
// false означает, что ответ уже записан другим запросом.
func (r *Repository) MarkResponded(ctx context.Context, id uuid.UUID, response domain.CheckResponse, at time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("response", response).
		Set("responded_at", at).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"responded_at": nil}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: MarkResponded - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: MarkResponded - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: MarkResponded - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// CloseForSubject отвечает на все неотвеченные проверки компании. Возвращает число закрытых проверок.
func (r *Repository) CloseForSubject(ctx context.Context, subject domain.CheckSubject, response domain.CheckResponse, at time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update(tableName).
		Set("response", response).
		Set("responded_at", at).
		Where(squirrel.Eq{"responded_at": nil})
	switch {
	case subject.DineInID != nil:
		builder = builder.Where(squirrel.Eq{"dine_in_id": *subject.DineInID})
	case subject.ReservationID != nil:
		builder = builder.Where(squirrel.Eq{"reservation_id": *subject.ReservationID})
	default:
		return 0, fmt.Errorf("%w: CloseForSubject - empty subject", ErrBuildQuery)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CloseForSubject - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CloseForSubject - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CloseForSubject - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCheck(row scanner) (*domain.TableCheck, error) {
	var c domain.TableCheck
	var dineInID, reservationID uuid.NullUUID
	var response sql.NullString

	if err := row.Scan(&c.ID, &c.Kind, &dineInID, &reservationID, &c.PromptedAt, &response, &c.RespondedAt); err != nil {
		return nil, err
	}

	if dineInID.Valid {
		c.DineInID = &dineInID.UUID
	}
	if reservationID.Valid {
		c.ReservationID = &reservationID.UUID
	}
	if response.Valid {
		resp := domain.CheckResponse(response.String)
		c.Response = &resp
	}

	return &c, nil
}
