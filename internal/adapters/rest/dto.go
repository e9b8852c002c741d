package rest

// SearchEquipmentRequestDTO - структура для тела POST-запроса на поиск.
// MinPrice/MaxPrice - указатели, чтобы отличать "не задано" от нуля.
type SearchEquipmentRequestDTO struct {
	Query    string   `json:"query"`
	Category string   `json:"category"`
	Make     string   `json:"make"`
	Model    string   `json:"model"`
	Year     string   `json:"year"`
	MinPrice *float64 `json:"minPrice"`
	MaxPrice *float64 `json:"maxPrice"`
	Source   []string `json:"source"`
}

type EquipmentDetailsRequestDTO struct {
	SourceID    string `json:"sourceId"`
	EquipmentID string `json:"equipmentId"`
}

type MarketValueRequestDTO struct {
	Make      string `json:"make"`
	Model     string `json:"model"`
	Year      string `json:"year"`
	Condition string `json:"condition"`
}

type SimilarEquipmentRequestDTO struct {
	SourceID    string `json:"sourceId"`
	EquipmentID string `json:"equipmentId"`
	Limit       int    `json:"limit"`
}
