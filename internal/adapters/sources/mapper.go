package sources

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"equipment-search-service/internal/core/domain"
)

// mapListing - главный метод-трансформер: приводит одно объявление из
// произвольного JSON провайдера к канонической записи EquipmentListing.
// Для каждого поля пробуется цепочка синонимов из дескриптора, иначе
// подставляется значение по умолчанию. Запись всегда полная: пустые
// данные - это ""/0/пустая коллекция, а не отсутствующее поле.
func mapListing(item map[string]interface{}, d SourceDescriptor) domain.EquipmentListing {
	al := d.Aliases

	listing := domain.EquipmentListing{
		ID:             stringField(item, aliasKeys(al.ID, "id")...),
		Title:          stringField(item, aliasKeys(al.Title, "title")...),
		Description:    stringField(item, aliasKeys(al.Description, "description")...),
		Price:          numberField(item, aliasKeys(al.Price, "price")...),
		Currency:       stringField(item, aliasKeys(al.Currency, "currency")...),
		Year:           stringField(item, aliasKeys(al.Year, "year")...),
		Make:           stringField(item, aliasKeys(al.Make, "make")...),
		Model:          stringField(item, aliasKeys(al.Model, "model")...),
		Category:       stringField(item, aliasKeys(al.Category, "category")...),
		Condition:      stringField(item, aliasKeys(al.Condition, "condition")...),
		Location:       stringField(item, aliasKeys(al.Location, "location")...),
		ImageURLs:      stringSliceField(item, aliasKeys(al.Images, "images")...),
		SourceURL:      stringField(item, aliasKeys(al.URL, "url")...),
		Specifications: stringMapField(item, aliasKeys(al.Specifications, "specifications")...),
		CreatedAt:      stringField(item, aliasKeys(al.CreatedAt, "created_at")...),
	}

	listing.SourceID = d.ID
	listing.SourceName = d.Name

	if listing.Title == "" {
		if d.TitleWithCategory {
			listing.Title = joinNonEmpty(listing.Make, listing.Model, listing.Category)
		} else {
			listing.Title = joinNonEmpty(listing.Make, listing.Model)
		}
	}
	if listing.Currency == "" {
		listing.Currency = "USD"
	}
	if listing.Condition == "" {
		listing.Condition = "Unknown"
	}
	if listing.SourceURL == "" {
		// Сначала пробуем прямую ссылку на карточку, сайт провайдера -
		// последний рубеж.
		if d.ListingURLPattern != "" && listing.ID != "" {
			listing.SourceURL = fmt.Sprintf(d.ListingURLPattern, listing.ID)
		} else {
			listing.SourceURL = d.WebsiteURL
		}
	}
	if listing.CreatedAt == "" {
		listing.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if listing.Price < 0 {
		listing.Price = 0
	}

	return listing
}

func joinNonEmpty(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// aliasKeys возвращает цепочку имен поля: из дескриптора, либо только
// каноническое имя, если синонимы для источника не описаны.
func aliasKeys(aliases []string, canonical string) []string {
	if len(aliases) == 0 {
		return []string{canonical}
	}
	return aliases
}

// stringField пробует ключи по очереди и возвращает первое непустое
// строковое значение. Числа приводятся к строке (год у части провайдеров
// приходит числом).
func stringField(item map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		switch v := item[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// numberField пробует ключи по очереди и возвращает первое ненулевое
// число. Нулевое значение считается отсутствующим и пропускается - так
// же ведет себя каскад `price || current_bid || 0` у провайдеров.
func numberField(item map[string]interface{}, keys ...string) float64 {
	for _, key := range keys {
		switch v := item[key].(type) {
		case float64:
			if v != 0 {
				return v
			}
		case string:
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed != 0 {
				return parsed
			}
		}
	}
	return 0
}

func stringSliceField(item map[string]interface{}, keys ...string) []string {
	for _, key := range keys {
		raw, ok := item[key].([]interface{})
		if !ok {
			continue
		}
		result := make([]string, 0, len(raw))
		for _, el := range raw {
			if s, ok := el.(string); ok && s != "" {
				result = append(result, s)
			}
		}
		return result
	}
	return []string{}
}

func stringMapField(item map[string]interface{}, keys ...string) map[string]string {
	for _, key := range keys {
		raw, ok := item[key].(map[string]interface{})
		if !ok {
			continue
		}
		result := make(map[string]string, len(raw))
		for k, v := range raw {
			switch val := v.(type) {
			case string:
				result[k] = val
			case float64:
				result[k] = strconv.FormatFloat(val, 'f', -1, 64)
			case bool:
				result[k] = strconv.FormatBool(val)
			default:
				if val != nil {
					result[k] = fmt.Sprintf("%v", val)
				}
			}
		}
		return result
	}
	return map[string]string{}
}
