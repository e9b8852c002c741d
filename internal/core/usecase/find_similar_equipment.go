package usecase

import (
	"context"
	"fmt"

	"equipment-search-service/internal/constants"
	"equipment-search-service/internal/contextkeys"
	"equipment-search-service/internal/core/domain"
	"equipment-search-service/internal/core/port"
	"equipment-search-service/internal/core/port/usecases_port"
)

// FindSimilarEquipmentUseCase ищет похожие объявления: берет карточку
// исходного объявления и повторяет федеративный поиск по его
// make/model/category, исключая само исходное объявление из выдачи.
type FindSimilarEquipmentUseCase struct {
	detailsUC usecases_port.GetEquipmentDetailsUseCasePort
	searchUC  usecases_port.SearchEquipmentUseCasePort
}

func NewFindSimilarEquipmentUseCase(
	detailsUC usecases_port.GetEquipmentDetailsUseCasePort,
	searchUC usecases_port.SearchEquipmentUseCasePort,
) *FindSimilarEquipmentUseCase {
	return &FindSimilarEquipmentUseCase{
		detailsUC: detailsUC,
		searchUC:  searchUC,
	}
}

func (uc *FindSimilarEquipmentUseCase) Execute(ctx context.Context, sourceID, equipmentID string, limit int) ([]domain.EquipmentListing, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":     "FindSimilarEquipment",
		"source_id":    sourceID,
		"equipment_id": equipmentID,
	})

	if limit <= 0 {
		limit = constants.DefaultSimilarLimit
	}

	details, err := uc.detailsUC.Execute(ctx, sourceID, equipmentID)
	if err != nil {
		return nil, fmt.Errorf("find similar: %w", err)
	}

	listings, err := uc.searchUC.Execute(ctx, domain.SearchCriteria{
		Make:     details.Make,
		Model:    details.Model,
		Category: details.Category,
	})
	if err != nil {
		return nil, fmt.Errorf("find similar: search failed: %w", err)
	}

	// Исключаем исходное объявление и обрезаем до лимита.
	similar := make([]domain.EquipmentListing, 0, limit)
	for _, listing := range listings {
		if listing.ID == equipmentID {
			continue
		}
		similar = append(similar, listing)
		if len(similar) == limit {
			break
		}
	}

	ucLogger.Info("Found similar equipment", port.Fields{"similar_count": len(similar)})
	return similar, nil
}
