package assignment

// Layout идентификаторы столов зала, на которые опираются правила подбора
type Layout struct {
	SmallPartyMax        int     // верхняя граница для обычных столов
	PreferredLargeTables []int64 // большие столы для компаний 6–12
	AnchorTable          int64   // большой стол для компаний 8–14
	BridgeTables         []int64 // столы-перемычки внутри больших комбинаций
	ReallocationMinParty int     // с какого размера компании ищем пересадку
	BlockerMaxParty      int     // пересаживаем только компании не больше этого размера
}

// DefaultLayout схема зала по умолчанию
func DefaultLayout() Layout {
	return Layout{
		SmallPartyMax:        4,
		PreferredLargeTables: []int64{9, 13},
		AnchorTable:          11,
		BridgeTables:         []int64{10, 12},
		ReallocationMinParty: 15,
		BlockerMaxParty:      4,
	}
}

func (l Layout) isPreferredLarge(id int64) bool {
	return containsID(l.PreferredLargeTables, id)
}

func (l Layout) isBridge(id int64) bool {
	return containsID(l.BridgeTables, id)
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
