package constants

// Идентификаторы источников. Значения совпадают с sourceId в выдаче.
const (
	SourceEquipmentWatch  = "equipment-watch"
	SourceMascus          = "mascus"
	SourceMachineryTrader = "machinery-trader"
	SourceIronPlanet      = "iron-planet"
)

// AllSources - порядок здесь определяет порядок опроса источников и
// порядок конкатенации результатов до финальной сортировки.
var AllSources = []string{
	SourceEquipmentWatch,
	SourceMascus,
	SourceMachineryTrader,
	SourceIronPlanet,
}

// DefaultSimilarLimit - сколько похожих объявлений возвращаем,
// если клиент не передал limit.
const DefaultSimilarLimit = 5

// Значения-заглушки для оценки стоимости, когда и рыночных данных нет,
// и внешний сервис оценки недоступен.
const (
	FallbackEstimatedValue = 50000
	FallbackValueRangeMin  = 40000
	FallbackValueRangeMax  = 60000
	FallbackConfidence     = 0.3
)

// MarketDataConfidence - уверенность оценки, построенной на реальных
// объявлениях из источников.
const MarketDataConfidence = 0.8
