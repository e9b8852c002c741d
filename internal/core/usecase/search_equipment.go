package usecase

import (
	"context"
	"sync"

	"equipment-search-service/internal/contextkeys"
	"equipment-search-service/internal/core/domain"
	"equipment-search-service/internal/core/port"
)

// SearchEquipmentUseCase - федеративный поиск: веер запросов по всем
// выбранным источникам, сбор всего (успех или пустота), фильтрация и
// детерминированная сортировка.
type SearchEquipmentUseCase struct {
	registry port.SourceRegistryPort
}

// NewSearchEquipmentUseCase создает новый экземпляр use case
func NewSearchEquipmentUseCase(registry port.SourceRegistryPort) *SearchEquipmentUseCase {
	return &SearchEquipmentUseCase{registry: registry}
}

// Execute выполняет основную логику use case
func (uc *SearchEquipmentUseCase) Execute(ctx context.Context, criteria domain.SearchCriteria) ([]domain.EquipmentListing, error) {
	baseLogger := contextkeys.LoggerFromContext(ctx)
	ucLogger := baseLogger.WithFields(port.Fields{
		"use_case": "SearchEquipment",
	})

	if !criteria.HasSearchTerms() {
		return nil, domain.ErrInvalidSearchQuery
	}

	adapters := uc.registry.Resolve(criteria.Sources)
	ucLogger.Info("Starting federated equipment search", port.Fields{
		"sources_count": len(adapters),
	})

	// Запускаем все источники ПАРАЛЛЕЛЬНО и ждем завершения каждого.
	// Каждая горутина пишет только в свой слот, поэтому общего
	// изменяемого состояния нет и блокировки не нужны. Адаптеры по
	// контракту не возвращают ошибок, так что join не может ни упасть,
	// ни зависнуть дольше таймаута самого медленного адаптера.
	perSource := make([][]domain.EquipmentListing, len(adapters))

	var wg sync.WaitGroup
	for i, source := range adapters {
		wg.Add(1)
		go func(slot int, src port.EquipmentSourcePort) {
			defer wg.Done()

			sourceLogger := ucLogger.WithFields(port.Fields{"source_id": src.ID()})
			sourceCtx := contextkeys.ContextWithLogger(ctx, sourceLogger)

			perSource[slot] = src.Search(sourceCtx, criteria)
		}(i, source)
	}

	// Блокируемся, пока ВСЕ горутины не вызовут wg.Done()
	wg.Wait()

	// Склеиваем в порядке источников; внутри источника порядок тоже
	// сохраняется. Этот порядок промежуточный - финальный задает
	// сортировка по цене.
	combined := make([]domain.EquipmentListing, 0)
	for _, listings := range perSource {
		combined = append(combined, listings...)
	}

	result := processResults(combined, criteria)

	ucLogger.Info("Federated search completed", port.Fields{
		"collected_count": len(combined),
		"returned_count":  len(result),
	})
	return result, nil
}
