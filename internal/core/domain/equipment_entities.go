package domain

// SearchCriteria - нормализованные параметры поиска оборудования.
// Создается один раз на запрос и не изменяется после валидации.
type SearchCriteria struct {
	Query    string
	Category string
	Make     string
	Model    string
	Year     string // год хранится как строка, форматы у источников разные
	MinPrice *float64
	MaxPrice *float64
	// Sources - список идентификаторов источников. Пустой список означает
	// "все известные источники".
	Sources []string
}

// HasSearchTerms проверяет инвариант запроса: хотя бы один из
// query/make/model/category должен быть заполнен.
func (c SearchCriteria) HasSearchTerms() bool {
	return c.Query != "" || c.Make != "" || c.Model != "" || c.Category != ""
}

// EquipmentListing - каноническая запись объявления, в которую адаптеры
// приводят разношерстные ответы источников. Отсутствие данных в поле
// представляется пустой строкой/нулем, а не отсутствующим полем:
// потребители ниже по потоку рассчитывают на полный набор ключей в JSON.
type EquipmentListing struct {
	ID             string            `json:"id"` // уникален только внутри своего источника
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Price          float64           `json:"price"`
	Currency       string            `json:"currency"`
	Year           string            `json:"year"`
	Make           string            `json:"make"`
	Model          string            `json:"model"`
	Category       string            `json:"category"`
	Condition      string            `json:"condition"`
	Location       string            `json:"location"`
	ImageURLs      []string          `json:"imageUrls"`
	SourceURL      string            `json:"sourceUrl"`
	SourceName     string            `json:"sourceName"`
	SourceID       string            `json:"sourceId"`
	Specifications map[string]string `json:"specifications"`
	CreatedAt      string            `json:"createdAt"` // ISO-8601
}
