package usecases_port

import (
	"context"

	"equipment-search-service/internal/core/domain"
)

// SearchEquipmentUseCasePort - контракт главного use case: федеративный
// поиск по всем выбранным источникам с фильтрацией и сортировкой.
type SearchEquipmentUseCasePort interface {
	Execute(ctx context.Context, criteria domain.SearchCriteria) ([]domain.EquipmentListing, error)
}
