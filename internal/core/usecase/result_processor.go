package usecase

import (
	"sort"

	"equipment-search-service/internal/core/domain"
)

// processResults - конвейер пост-обработки склеенной выдачи: фильтры по
// цене и году, затем устойчивая сортировка по возрастанию цены.
// Каждая стадия тотальна - элементы теряются только на собственном
// предикате стадии.
func processResults(listings []domain.EquipmentListing, criteria domain.SearchCriteria) []domain.EquipmentListing {
	result := make([]domain.EquipmentListing, 0, len(listings))

	for _, listing := range listings {
		if criteria.MinPrice != nil && listing.Price < *criteria.MinPrice {
			continue
		}
		if criteria.MaxPrice != nil && listing.Price > *criteria.MaxPrice {
			continue
		}
		// Год сравнивается как непрозрачная строка, без числового
		// приведения: "2020" != "2020.0". Форматы года у источников
		// несогласованы, но это зафиксированное поведение фильтра.
		if criteria.Year != "" && listing.Year != criteria.Year {
			continue
		}
		result = append(result, listing)
	}

	// Устойчивая сортировка: при равной цене сохраняется порядок,
	// в котором опрашивались источники.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Price < result[j].Price
	})

	return result
}
