package assignment

import (
	"sort"

	"github.com/m04kA/TableReservationService/internal/domain"
)

// Rule names
const (
	RuleSmallRegular      = "small-regular"
	RuleRoundThenLarge    = "round-then-large"
	RulePreferredLarge    = "preferred-large"
	RuleAnchorLarge       = "anchor-large"
	RuleCombo             = "combo"
	RuleComboReallocation = "combo-reallocation"
	RuleNone              = "none"
)

// sizeRange включительный диапазон размера компании; max == 0 означает без верхней границы
type sizeRange struct {
	min, max int
}

func (r sizeRange) contains(size int) bool {
	return size >= r.min && (r.max == 0 || size <= r.max)
}

// rule одно правило подбора. pick возвращает nil, если правило не нашло столов.
type rule struct {
	name  string
	sizes sizeRange
	pick  func(a *allocation) (*domain.Assignment, error)
}

// buildRules порядок правил определяет приоритет: выигрывает первое сработавшее
func buildRules(l Layout) []rule {
	return []rule{
		{name: RuleSmallRegular, sizes: sizeRange{1, l.SmallPartyMax}, pick: pickSmallRegular},
		{name: RuleRoundThenLarge, sizes: sizeRange{5, 7}, pick: pickRoundThenLarge},
		{name: RulePreferredLarge, sizes: sizeRange{6, 12}, pick: pickPreferredLarge},
		{name: RuleAnchorLarge, sizes: sizeRange{8, 14}, pick: pickAnchorLarge},
		{name: RuleCombo, sizes: sizeRange{1, 0}, pick: pickCombo},
		{name: RuleComboReallocation, sizes: sizeRange{l.ReallocationMinParty, 0}, pick: pickComboWithReallocation},
	}
}

func single(t *domain.Table) *domain.Assignment {
	return &domain.Assignment{TableIDs: []int64{t.ID}}
}

// pickSmallRegular обычные столы; столы-перемычки только в последнюю очередь
func pickSmallRegular(a *allocation) (*domain.Assignment, error) {
	candidates := a.availableWhere(func(t *domain.Table) bool {
		return t.Shape == domain.ShapeRegular
	})
	sort.SliceStable(candidates, func(i, j int) bool {
		return !candidates[i].IsComboCritical && candidates[j].IsComboCritical
	})
	if len(candidates) == 0 {
		return nil, nil
	}
	return single(candidates[0]), nil
}

// pickRoundThenLarge круглые столы, затем любые большие
func pickRoundThenLarge(a *allocation) (*domain.Assignment, error) {
	for _, shape := range []domain.TableShape{domain.ShapeRound, domain.ShapeLarge} {
		candidates := a.availableWhere(func(t *domain.Table) bool { return t.Shape == shape })
		if len(candidates) > 0 {
			return single(candidates[0]), nil
		}
	}
	return nil, nil
}

func pickPreferredLarge(a *allocation) (*domain.Assignment, error) {
	candidates := a.availableWhere(func(t *domain.Table) bool {
		return a.layout.isPreferredLarge(t.ID)
	})
	if len(candidates) == 0 {
		return nil, nil
	}
	return single(candidates[0]), nil
}

func pickAnchorLarge(a *allocation) (*domain.Assignment, error) {
	candidates := a.availableWhere(func(t *domain.Table) bool {
		return t.ID == a.layout.AnchorTable
	})
	if len(candidates) == 0 {
		return nil, nil
	}
	return single(candidates[0]), nil
}

// pickCombo первая по возрастанию вместимости комбинация, все столы которой свободны
func pickCombo(a *allocation) (*domain.Assignment, error) {
	combos, err := a.coveringCombos()
	if err != nil {
		return nil, err
	}
	for _, c := range combos {
		if !a.occupancy.TableIDs.HasAny(c.TableIDs) {
			return &domain.Assignment{TableIDs: append([]int64(nil), c.TableIDs...), IsCombo: true}, nil
		}
	}
	return nil, nil
}

// pickComboWithReallocation комбинация, заблокированная маленькой компанией на столе-перемычке
func pickComboWithReallocation(a *allocation) (*domain.Assignment, error) {
	combos, err := a.coveringCombos()
	if err != nil {
		return nil, err
	}
	for _, c := range combos {
		bridges := make([]int64, 0)
		for _, id := range c.TableIDs {
			if a.occupancy.TableIDs.Has(id) && a.layout.isBridge(id) {
				bridges = append(bridges, id)
			}
		}
		if len(bridges) == 0 {
			continue
		}

		blocker, tableID := a.smallBlockerOn(bridges)
		if blocker == nil {
			continue
		}

		return &domain.Assignment{
			TableIDs:               append([]int64(nil), c.TableIDs...),
			IsCombo:                true,
			RequiresReallocation:   true,
			ReallocationSuggestion: domain.ReallocationSuggestionText(blocker.PartySize, tableID),
		}, nil
	}
	return nil, nil
}
