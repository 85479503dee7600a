// Package assignment подбирает столы для компании по упорядоченному списку правил.
package assignment

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/TableReservationService/internal/domain"
	"github.com/m04kA/TableReservationService/pkg/types"
)

// Engine движок подбора столов
type Engine struct {
	catalog   TableCatalog
	occupancy OccupancyResolver
	layout    Layout
	rules     []rule
	metrics   Metrics
	logger    Logger
}

// NewEngine создает движок. metrics может быть nil.
func NewEngine(catalog TableCatalog, occupancy OccupancyResolver, layout Layout, metrics Metrics, logger Logger) *Engine {
	return &Engine{
		catalog:   catalog,
		occupancy: occupancy,
		layout:    layout,
		rules:     buildRules(layout),
		metrics:   metrics,
		logger:    logger,
	}
}

// Rules имена правил в порядке приоритета
func (e *Engine) Rules() []string {
	names := make([]string, 0, len(e.rules))
	for _, r := range e.rules {
		names = append(names, r.name)
	}
	return names
}

// Assign возвращает столы для компании или nil, если подходящих нет
func (e *Engine) Assign(ctx context.Context, partySize int, date time.Time, t types.TimeString) (*domain.Assignment, error) {
	a, err := e.newAllocation(ctx, partySize, date, t)
	if err != nil {
		return nil, err
	}
	return e.assign(a)
}

// Snapshot результат подбора вместе с картой занятости
type Snapshot struct {
	Occupied   domain.TableSet
	Eligible   []int64
	Assignment *domain.Assignment
}

// FloorStatus вычисляет занятые и подходящие столы и предлагаемое размещение за одно чтение занятости
func (e *Engine) FloorStatus(ctx context.Context, partySize int, date time.Time, t types.TimeString) (*Snapshot, error) {
	a, err := e.newAllocation(ctx, partySize, date, t)
	if err != nil {
		return nil, err
	}

	eligible, err := a.eligible()
	if err != nil {
		return nil, err
	}

	assignment, err := e.assign(a)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Occupied:   a.occupancy.TableIDs,
		Eligible:   eligible,
		Assignment: assignment,
	}, nil
}

// EligibleTableIDs свободные столы, вмещающие компанию, плюс столы полностью свободных подходящих комбинаций
func (e *Engine) EligibleTableIDs(ctx context.Context, partySize int, date time.Time, t types.TimeString) ([]int64, error) {
	a, err := e.newAllocation(ctx, partySize, date, t)
	if err != nil {
		return nil, err
	}
	return a.eligible()
}

func (e *Engine) assign(a *allocation) (*domain.Assignment, error) {
	for _, r := range e.rules {
		if !r.sizes.contains(a.partySize) {
			continue
		}
		result, err := r.pick(a)
		if err != nil {
			return nil, err
		}
		if result != nil {
			result.Rule = r.name
			e.observe(r.name)
			return result, nil
		}
	}
	e.observe(RuleNone)
	return nil, nil
}

func (e *Engine) observe(rule string) {
	if e.metrics != nil {
		e.metrics.ObserveAssignment(rule)
	}
}

func (e *Engine) newAllocation(ctx context.Context, partySize int, date time.Time, t types.TimeString) (*allocation, error) {
	if partySize < 1 {
		return nil, ErrInvalidPartySize
	}

	occ, err := e.occupancy.Resolve(ctx, date, t)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOccupancy, err)
	}

	tables, err := e.catalog.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: tables: %v", ErrCatalog, err)
	}

	return &allocation{
		ctx:       ctx,
		engine:    e,
		layout:    e.layout,
		partySize: partySize,
		tables:    tables,
		occupancy: occ,
	}, nil
}

// allocation состояние одного вызова подбора
type allocation struct {
	ctx       context.Context
	engine    *Engine
	layout    Layout
	partySize int
	tables    []*domain.Table // каталог в порядке id
	occupancy *domain.Occupancy

	combos       []*domain.TableCombo
	combosLoaded bool
}

// availableWhere свободные столы, вмещающие компанию и удовлетворяющие фильтру, в порядке каталога
func (a *allocation) availableWhere(filter func(t *domain.Table) bool) []*domain.Table {
	out := make([]*domain.Table, 0)
	for _, t := range a.tables {
		if a.occupancy.TableIDs.Has(t.ID) || !t.Fits(a.partySize) {
			continue
		}
		if filter(t) {
			out = append(out, t)
		}
	}
	return out
}

// coveringCombos комбинации, чей диапазон включает размер компании. Загружаются один раз за вызов.
func (a *allocation) coveringCombos() ([]*domain.TableCombo, error) {
	if a.combosLoaded {
		return a.combos, nil
	}

	all, err := a.engine.catalog.ListCombos(a.ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: combos: %v", ErrCatalog, err)
	}

	byID := make(map[int64]*domain.Table, len(a.tables))
	for _, t := range a.tables {
		byID[t.ID] = t
	}

	covering := make([]*domain.TableCombo, 0)
	for _, c := range all {
		if err := domain.ValidateCombo(c, byID); err != nil {
			a.engine.logger.Warn("Assign: skipping invalid combo: %v", err)
			continue
		}
		if c.Covers(a.partySize) {
			covering = append(covering, c)
		}
	}
	sort.SliceStable(covering, func(i, j int) bool { return covering[i].MaxCapacity < covering[j].MaxCapacity })

	a.combos = covering
	a.combosLoaded = true
	return covering, nil
}

// smallBlockerOn первая конфликтующая бронь маленькой компании, которая держит все занятые столы-перемычки.
// Если перемычки заняты разными компаниями, одной пересадки мало и блокера нет.
func (a *allocation) smallBlockerOn(bridges []int64) (*domain.Reservation, int64) {
	for _, res := range a.occupancy.Reservations {
		if res.PartySize > a.layout.BlockerMaxParty || !holdsAll(res.TableIDs, bridges) {
			continue
		}
		for _, id := range res.TableIDs {
			if containsID(bridges, id) {
				return res, id
			}
		}
	}
	return nil, 0
}

func holdsAll(tableIDs, wanted []int64) bool {
	for _, id := range wanted {
		if !containsID(tableIDs, id) {
			return false
		}
	}
	return true
}

func (a *allocation) eligible() ([]int64, error) {
	set := domain.NewTableSet()
	for _, t := range a.availableWhere(func(*domain.Table) bool { return true }) {
		set.Add(t.ID)
	}

	combos, err := a.coveringCombos()
	if err != nil {
		return nil, err
	}
	for _, c := range combos {
		if !a.occupancy.TableIDs.HasAny(c.TableIDs) {
			set.Add(c.TableIDs...)
		}
	}

	return set.Sorted(), nil
}
