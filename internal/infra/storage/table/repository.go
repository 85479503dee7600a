package table

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/TableReservationService/internal/domain"
	"github.com/m04kA/TableReservationService/pkg/dbmetrics"
	"github.com/m04kA/TableReservationService/pkg/psqlbuilder"
)

var tableColumns = []string{
	"id",
	"label",
	"shape",
	"capacity_min",
	"capacity_max",
	"is_combo_critical",
	"is_combinable",
}

// Repository каталог столов и комбинаций (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория столов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListTables возвращает все столы, упорядоченные по id
func (r *Repository) ListTables(ctx context.Context) ([]*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(tableColumns...).
		From("restaurant_tables").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListTables - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTables - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tables := make([]*domain.Table, 0)
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListTables - scan table: %v", ErrScanRow, err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTables - iterate rows: %v", ErrScanRow, err)
	}

	return tables, nil
}

// GetTable возвращает стол по id
func (r *Repository) GetTable(ctx context.Context, id int64) (*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(tableColumns...).
		From("restaurant_tables").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTable - build select query: %v", ErrBuildQuery, err)
	}

	t, err := scanTable(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTable - scan table: %v", ErrScanRow, err)
	}

	return t, nil
}

// ListCombos возвращает комбинации столов по возрастанию максимальной вместимости
func (r *Repository) ListCombos(ctx context.Context) ([]*domain.TableCombo, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "table_ids", "min_capacity", "max_capacity").
		From("table_combos").
		OrderBy("max_capacity ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCombos - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCombos - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	combos := make([]*domain.TableCombo, 0)
	for rows.Next() {
		var c domain.TableCombo
		if err := rows.Scan(&c.ID, &c.Name, pq.Array(&c.TableIDs), &c.MinCapacity, &c.MaxCapacity); err != nil {
			return nil, fmt.Errorf("%w: ListCombos - scan combo: %v", ErrScanRow, err)
		}
		combos = append(combos, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCombos - iterate rows: %v", ErrScanRow, err)
	}

	return combos, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTable(row scanner) (*domain.Table, error) {
	var t domain.Table
	err := row.Scan(
		&t.ID,
		&t.Label,
		&t.Shape,
		&t.CapacityMin,
		&t.CapacityMax,
		&t.IsComboCritical,
		&t.IsCombinable,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
