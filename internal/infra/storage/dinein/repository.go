package dinein

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
)

const tableName = "dine_ins"

var columns = []string{"id", "table_ids", "party_size", "seated_at", "estimated_release_at", "status"}

// Repository репозиторий гостей без брони
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет посадку
func (r *Repository) Create(ctx context.Context, d *domain.DineIn) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(columns...).
		Values(d.ID, pq.Array(d.TableIDs), d.PartySize, d.SeatedAt, d.EstimatedReleaseAt, d.Status).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает посадку по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.DineIn, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	d, err := scanDineIn(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrDineInNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan dine-in: %v", ErrScanRow, err)
	}

	return d, nil
}

// ListOccupiedReleasingAfter занятые посадки с ожидаемым освобождением строго позже at
func (r *Repository) ListOccupiedReleasingAfter(ctx context.Context, at time.Time) ([]*domain.DineIn, error) {
	return r.list(ctx, "ListOccupiedReleasingAfter", squirrel.And{
		squirrel.Eq{"status": domain.DineInOccupied},
		squirrel.Gt{"estimated_release_at": at},
	})
}

// FindOccupiedByTables занятые посадки, использующие хотя бы один из столов
func (r *Repository) FindOccupiedByTables(ctx context.Context, tableIDs []int64) ([]*domain.DineIn, error) {
	return r.list(ctx, "FindOccupiedByTables", squirrel.And{
		squirrel.Eq{"status": domain.DineInOccupied},
		squirrel.Expr("table_ids && ?", pq.Array(tableIDs)),
	})
}

// Release освобождает посадку; false, если она уже освобождена
func (r *Repository) Release(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.update(ctx, "Release", psqlbuilder.Update(tableName).
		Set("status", domain.DineInReleased).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.DineInOccupied}))
}

// ExtendRelease сдвигает ожидаемое освобождение на d
func (r *Repository) ExtendRelease(ctx context.Context, id uuid.UUID, d time.Duration) error {
	updated, err := r.update(ctx, "ExtendRelease", psqlbuilder.Update(tableName).
		Set("estimated_release_at", squirrel.Expr("estimated_release_at + make_interval(secs => ?)", d.Seconds())).
		Where(squirrel.Eq{"id": id}))
	if err != nil {
		return err
	}
	if !updated {
		return ErrDineInNotFound
	}
	return nil
}

// UpdateTableIDs пересаживает гостей на другие столы
func (r *Repository) UpdateTableIDs(ctx context.Context, id uuid.UUID, tableIDs []int64) error {
	updated, err := r.update(ctx, "UpdateTableIDs", psqlbuilder.Update(tableName).
		Set("table_ids", pq.Array(tableIDs)).
		Where(squirrel.Eq{"id": id}))
	if err != nil {
		return err
	}
	if !updated {
		return ErrDineInNotFound
	}
	return nil
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.DineIn, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(where).
		OrderBy("seated_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.DineIn, 0)
	for rows.Next() {
		d, err := scanDineIn(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan dine-in: %v", ErrScanRow, op, err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrScanRow, op, err)
	}

	return result, nil
}

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

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDineIn(row scanner) (*domain.DineIn, error) {
	var d domain.DineIn
	var tableIDs pq.Int64Array

	if err := row.Scan(&d.ID, &tableIDs, &d.PartySize, &d.SeatedAt, &d.EstimatedReleaseAt, &d.Status); err != nil {
		return nil, err
	}

	d.TableIDs = []int64(tableIDs)
	return &d, nil
}
