package usecases_port

import (
	"context"

	"equipment-search-service/internal/core/domain"
)

type FindSimilarEquipmentUseCasePort interface {
	Execute(ctx context.Context, sourceID, equipmentID string, limit int) ([]domain.EquipmentListing, error)
}
