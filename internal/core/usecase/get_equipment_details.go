package usecase

import (
	"context"
	"fmt"

	"equipment-search-service/internal/contextkeys"
	"equipment-search-service/internal/core/domain"
	"equipment-search-service/internal/core/port"
)

// GetEquipmentDetailsUseCase - получение полной карточки объявления
// по паре (источник, идентификатор внутри источника).
type GetEquipmentDetailsUseCase struct {
	registry port.SourceRegistryPort
}

func NewGetEquipmentDetailsUseCase(registry port.SourceRegistryPort) *GetEquipmentDetailsUseCase {
	return &GetEquipmentDetailsUseCase{registry: registry}
}

func (uc *GetEquipmentDetailsUseCase) Execute(ctx context.Context, sourceID, equipmentID string) (*domain.EquipmentListing, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":     "GetEquipmentDetails",
		"source_id":    sourceID,
		"equipment_id": equipmentID,
	})

	source, ok := uc.registry.Get(sourceID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSource, sourceID)
	}

	sourceCtx := contextkeys.ContextWithLogger(ctx, ucLogger)
	listing, err := source.FetchDetails(sourceCtx, equipmentID)
	if err != nil {
		ucLogger.Error("Failed to fetch equipment details", err, nil)
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrDetailsUnavailable, sourceID, equipmentID)
	}

	ucLogger.Debug("Successfully fetched equipment details", nil)
	return listing, nil
}
