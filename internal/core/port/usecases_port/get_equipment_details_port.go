package usecases_port

import (
	"context"

	"equipment-search-service/internal/core/domain"
)

type GetEquipmentDetailsUseCasePort interface {
	Execute(ctx context.Context, sourceID, equipmentID string) (*domain.EquipmentListing, error)
}
