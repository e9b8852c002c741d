package sources

import (
	"equipment-search-service/internal/configs"
	"equipment-search-service/internal/constants"
)

// FieldAliases - порядок предпочтения имен полей в ответе провайдера.
// Маппер пробует имена по очереди: сначала каноническое, потом известные
// провайдер-специфичные синонимы, иначе значение по умолчанию.
type FieldAliases struct {
	ID             []string
	Title          []string
	Description    []string
	Price          []string
	Currency       []string
	Year           []string
	Make           []string
	Model          []string
	Category       []string
	Condition      []string
	Location       []string
	Images         []string
	URL            []string
	Specifications []string
	CreatedAt      []string
}

// SourceDescriptor описывает один внешний маркетплейс: как его зовут,
// куда ходить по прямому API, под какими именами он отдает поля и какие
// имена query-параметров понимает его поиск.
type SourceDescriptor struct {
	ID         string
	Name       string
	APIBaseURL string
	APIKey     string
	// WebsiteURL - последний запасной sourceUrl, когда провайдер не
	// отдал ссылку и прямую ссылку на карточку построить не из чего.
	WebsiteURL string

	// ListingURLPattern - шаблон прямой ссылки на карточку объявления,
	// %s заменяется идентификатором. Пустой шаблон означает, что у
	// провайдера нет предсказуемых ссылок на карточки и запасным
	// sourceUrl становится WebsiteURL.
	ListingURLPattern string

	// TitleWithCategory включает категорию в запасной заголовок:
	// часть провайдеров описывает технику как "make model category".
	TitleWithCategory bool

	// QueryParams - имена query-параметров прямого API для канонических
	// полей запроса: query, make, model, year, category, minPrice, maxPrice.
	QueryParams map[string]string

	// ListingsKey - ключ объекта-обертки, под которым провайдер прячет
	// массив объявлений. Пустая строка означает "ответ - голый массив".
	ListingsKey string

	Aliases FieldAliases
}

// BuildDescriptors собирает дескрипторы всех известных источников.
// Имена параметров и синонимы полей - это фактический контракт каждого
// провайдера, поэтому они живут здесь, а не в конфигурации.
func BuildDescriptors(cfg *configs.Config) []SourceDescriptor {
	return []SourceDescriptor{
		{
			ID:         constants.SourceEquipmentWatch,
			Name:       "EquipmentWatch",
			APIBaseURL: "https://api.equipmentwatch.com/v1/equipment",
			APIKey:     cfg.EquipmentWatchAPIKey,
			WebsiteURL: "https://equipmentwatch.com",
			QueryParams: map[string]string{
				"query":    "query",
				"make":     "make",
				"model":    "model",
				"year":     "year",
				"category": "category",
				"minPrice": "min_price",
				"maxPrice": "max_price",
			},
			ListingsKey: "",
			Aliases: FieldAliases{
				Images: []string{"images"},
				URL:    []string{"url"},
			},
		},
		{
			ID:                constants.SourceMascus,
			Name:              "Mascus",
			APIBaseURL:        "https://api.mascus.com/v1/listings",
			APIKey:            cfg.MascusAPIKey,
			WebsiteURL:        "https://www.mascus.com",
			ListingURLPattern: "https://www.mascus.com/%s",
			QueryParams: map[string]string{
				"query":    "keywords",
				"make":     "make",
				"model":    "model",
				"year":     "year",
				"category": "category",
				"minPrice": "min_price",
				"maxPrice": "max_price",
			},
			ListingsKey: "",
			Aliases: FieldAliases{
				Description:    []string{"description", "details"},
				Price:          []string{"price", "current_bid"},
				Year:           []string{"year", "manufacture_year"},
				Make:           []string{"make", "brand"},
				Category:       []string{"category", "type"},
				Location:       []string{"location", "country"},
				Images:         []string{"images", "image_urls"},
				URL:            []string{"url"},
				Specifications: []string{"specifications", "tech_specs"},
				CreatedAt:      []string{"created_at", "listed_date"},
			},
		},
		{
			ID:                constants.SourceMachineryTrader,
			Name:              "MachineryTrader",
			APIBaseURL:        "https://api.machinerytrader.com/v1/equipment",
			APIKey:            cfg.MachineryTraderAPIKey,
			WebsiteURL:        "https://www.machinerytrader.com",
			ListingURLPattern: "https://www.machinerytrader.com/listing/%s",
			TitleWithCategory: true,
			QueryParams: map[string]string{
				"query":    "search",
				"make":     "make",
				"model":    "model",
				"year":     "year",
				"category": "category",
				"minPrice": "minprice",
				"maxPrice": "maxprice",
			},
			ListingsKey: "equipment_listings",
			Aliases: FieldAliases{
				ID:             []string{"id", "listing_id"},
				Description:    []string{"description", "details"},
				Price:          []string{"price", "current_price"},
				Currency:       []string{"currency", "price_currency"},
				Year:           []string{"year", "model_year"},
				Make:           []string{"make", "manufacturer"},
				Category:       []string{"category", "equipment_type"},
				Condition:      []string{"condition", "item_condition"},
				Location:       []string{"location", "location_city", "seller_location"},
				Images:         []string{"image_urls", "images"},
				URL:            []string{"source_url"},
				Specifications: []string{"specifications", "tech_specs", "details"},
				CreatedAt:      []string{"created_at", "listed_date"},
			},
		},
		{
			ID:                constants.SourceIronPlanet,
			Name:              "IronPlanet",
			APIBaseURL:        "https://api.ironplanet.com/v1/listings",
			APIKey:            cfg.IronPlanetAPIKey,
			WebsiteURL:        "https://www.ironplanet.com",
			ListingURLPattern: "https://www.ironplanet.com/listing/%s",
			QueryParams: map[string]string{
				"query":    "q",
				"make":     "make",
				"model":    "model",
				"year":     "year_min",
				"category": "category",
				"minPrice": "price_min",
				"maxPrice": "price_max",
			},
			ListingsKey: "results",
			Aliases: FieldAliases{
				ID:             []string{"id", "listing_id"},
				Description:    []string{"description", "listing_description"},
				Price:          []string{"price", "current_bid", "buy_now_price"},
				Year:           []string{"year", "manufacture_year"},
				Make:           []string{"make", "brand"},
				Category:       []string{"category", "type", "category_name"},
				Condition:      []string{"condition", "item_condition"},
				Location:       []string{"location", "seller_location"},
				Images:         []string{"image_urls", "images"},
				URL:            []string{"source_url", "listing_url"},
				Specifications: []string{"specifications", "tech_specs"},
				CreatedAt:      []string{"created_at", "listed_date"},
			},
		},
	}
}
