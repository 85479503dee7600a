package occupancy

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/TableReservationService/internal/domain"
	"github.com/m04kA/TableReservationService/pkg/types"
)

// Resolver вычисляет занятые столы на дату и время
type Resolver struct {
	reservations ReservationRepository
	dineIns      DineInRepository
	location     *time.Location
}

// NewResolver создает резолвер. loc задает часовой пояс ресторана для сравнения с посадками без брони.
func NewResolver(reservations ReservationRepository, dineIns DineInRepository, loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{
		reservations: reservations,
		dineIns:      dineIns,
		location:     loc,
	}
}

// Window открытый интервал (t-89, t+89) минут, зажатый в пределах суток
func Window(t types.TimeString) (from, to types.TimeString) {
	m := t.Minutes()
	return types.FromMinutes(m - domain.ConflictWindowMinutes), types.FromMinutes(m + domain.ConflictWindowMinutes)
}

// Resolve возвращает занятые столы и стороны, которые их занимают.
// Бронирование занимает стол, если его время строго внутри окна и статус не cancelled/no_show.
// Посадка без брони занимает стол, пока ее ожидаемое освобождение строго позже запрошенного момента.
func (r *Resolver) Resolve(ctx context.Context, date time.Time, t types.TimeString) (*domain.Occupancy, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTime, t)
	}

	from, to := Window(t)

	reservations, err := r.reservations.ListActiveInWindow(ctx, date, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: Resolve - reservations: %v", ErrRead, err)
	}

	dineIns, err := r.dineIns.ListOccupiedReleasingAfter(ctx, t.On(date, r.location))
	if err != nil {
		return nil, fmt.Errorf("%w: Resolve - dine-ins: %v", ErrRead, err)
	}

	occupied := domain.NewTableSet()
	for _, res := range reservations {
		occupied.Add(res.TableIDs...)
	}
	for _, d := range dineIns {
		occupied.Add(d.TableIDs...)
	}

	return &domain.Occupancy{
		TableIDs:     occupied,
		Reservations: reservations,
		DineIns:      dineIns,
	}, nil
}

// OccupiedTableIDs только множество занятых столов
func (r *Resolver) OccupiedTableIDs(ctx context.Context, date time.Time, t types.TimeString) (domain.TableSet, error) {
	occ, err := r.Resolve(ctx, date, t)
	if err != nil {
		return nil, err
	}
	return occ.TableIDs, nil
}
