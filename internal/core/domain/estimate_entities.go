package domain

// MarketValueEstimate - оценка рыночной стоимости единицы оборудования.
// ValueRange хранится как пара [min, max].
type MarketValueEstimate struct {
	EstimatedValue float64    `json:"estimatedValue"`
	ValueRange     [2]float64 `json:"valueRange"`
	// Confidence - уверенность в оценке от 0.0 до 1.0.
	Confidence float64 `json:"confidence"`
}
