package tablelock

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TableReservationService/internal/domain"
	"github.com/m04kA/TableReservationService/pkg/dbmetrics"
	"github.com/m04kA/TableReservationService/pkg/psqlbuilder"
)

const tableName = "table_locks"

// Repository репозиторий замков столов.
// Уникальный ключ table_id гарантирует не более одного держателя на стол.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert безусловно записывает замки holder на столы до until
func (r *Repository) Upsert(ctx context.Context, tableIDs []int64, holder string, until time.Time) error {
	if len(tableIDs) == 0 {
		return ErrNoTables
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := insertLocks(tableIDs, holder, until).
		Suffix("ON CONFLICT (table_id) DO UPDATE SET holder_id = EXCLUDED.holder_id, locked_until = EXCLUDED.locked_until").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Acquire захватывает столы, перезаписывая только собственные или истекшие замки.
// Возвращает id столов, которые удалось захватить.
func (r *Repository) Acquire(ctx context.Context, tableIDs []int64, holder string, until, now time.Time) ([]int64, error) {
	if len(tableIDs) == 0 {
		return nil, ErrNoTables
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := insertLocks(tableIDs, holder, until).
		Suffix(`ON CONFLICT (table_id) DO UPDATE SET holder_id = EXCLUDED.holder_id, locked_until = EXCLUDED.locked_until
			WHERE table_locks.holder_id = EXCLUDED.holder_id OR table_locks.locked_until <= ?
			RETURNING table_id`, now).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Acquire - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Acquire - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	acquired := make([]int64, 0, len(tableIDs))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: Acquire - scan table id: %v", ErrScanRow, err)
		}
		acquired = append(acquired, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Acquire - iterate rows: %v", ErrScanRow, err)
	}

	return acquired, nil
}

// ListByTableIDs возвращает замки на указанных столах
func (r *Repository) ListByTableIDs(ctx context.Context, tableIDs []int64) ([]*domain.TableLock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("table_id", "holder_id", "locked_until").
		From(tableName).
		Where(squirrel.Eq{"table_id": tableIDs}).
		OrderBy("table_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTableIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTableIDs - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	locks := make([]*domain.TableLock, 0)
	for rows.Next() {
		var l domain.TableLock
		if err := rows.Scan(&l.TableID, &l.HolderID, &l.LockedUntil); err != nil {
			return nil, fmt.Errorf("%w: ListByTableIDs - scan lock: %v", ErrScanRow, err)
		}
		locks = append(locks, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByTableIDs - iterate rows: %v", ErrScanRow, err)
	}

	return locks, nil
}

// DeleteByTableIDs снимает все замки со столов
func (r *Repository) DeleteByTableIDs(ctx context.Context, tableIDs []int64) (int64, error) {
	return r.delete(ctx, "DeleteByTableIDs", squirrel.Eq{"table_id": tableIDs})
}

// DeleteByTablesAndHolder снимает замки со столов, только если их держит holder
func (r *Repository) DeleteByTablesAndHolder(ctx context.Context, tableIDs []int64, holder string) (int64, error) {
	return r.delete(ctx, "DeleteByTablesAndHolder", squirrel.And{
		squirrel.Eq{"table_id": tableIDs},
		squirrel.Eq{"holder_id": holder},
	})
}

// ExtendHolder продлевает все замки holder до until
func (r *Repository) ExtendHolder(ctx context.Context, holder string, until time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("locked_until", until).
		Where(squirrel.Eq{"holder_id": holder}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ExtendHolder - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ExtendHolder - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ExtendHolder - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

func (r *Repository) delete(ctx context.Context, op string, where squirrel.Sqlizer) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).Where(where).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build delete query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute delete: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	return rowsAffected, nil
}

func insertLocks(tableIDs []int64, holder string, until time.Time) squirrel.InsertBuilder {
	builder := psqlbuilder.Insert(tableName).Columns("table_id", "holder_id", "locked_until")
	for _, id := range domain.DistinctIDs(tableIDs) {
		builder = builder.Values(id, holder, until)
	}
	return builder
}
