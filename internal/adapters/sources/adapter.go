package sources

import (
	"context"
	"time"

	"equipment-search-service/internal/contextkeys"
	"equipment-search-service/internal/core/domain"
	"equipment-search-service/internal/core/port"
)

// sourceStrategy - одна стратегия получения данных источника.
// У каждого источника их максимум две: прямой API и scraping-сервис.
type sourceStrategy interface {
	name() string
	search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.EquipmentListing, error)
	fetchDetails(ctx context.Context, equipmentID string) (*domain.EquipmentListing, error)
}

// SourceAdapter реализует EquipmentSourcePort поверх упорядоченного
// списка стратегий. Список собирается один раз при старте: прямой API
// попадает в него только при наличии ключа (предикат наличия
// креденшиала), scraping-сервис - всегда, последним. Ошибка каждой
// стратегии гасится локально, и управление переходит к следующей.
type SourceAdapter struct {
	descriptor SourceDescriptor
	strategies []sourceStrategy
	// timeout - общий бюджет времени адаптера на запрос
	// (основной плюс, при необходимости, запасной путь).
	timeout time.Duration
}

// NewSourceAdapter - конструктор
func NewSourceAdapter(d SourceDescriptor, scrapeServiceURL string, timeout time.Duration) (*SourceAdapter, error) {
	scrape, err := newScrapeClient(scrapeServiceURL, d, timeout)
	if err != nil {
		return nil, err
	}

	var strategies []sourceStrategy
	if d.APIKey != "" {
		strategies = append(strategies, newAPIClient(d))
	}
	strategies = append(strategies, scrape)

	return &SourceAdapter{
		descriptor: d,
		strategies: strategies,
		timeout:    timeout,
	}, nil
}

func (a *SourceAdapter) ID() string   { return a.descriptor.ID }
func (a *SourceAdapter) Name() string { return a.descriptor.Name }

// Search никогда не возвращает ошибку наверх: источники ненадежны и
// непоследовательны по своей природе, и сбой одного провайдера не должен
// портить агрегированный результат. Любой сбой - строка в логе и пустой
// срез.
func (a *SourceAdapter) Search(ctx context.Context, criteria domain.SearchCriteria) []domain.EquipmentListing {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "SourceAdapter",
		"source_id": a.descriptor.ID,
	})

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	for _, strategy := range a.strategies {
		listings, err := strategy.search(ctx, criteria)
		if err != nil {
			// Переходим к следующей стратегии. Это единственное
			// retry-подобное поведение: один фиксированный запасной
			// путь, без backoff-циклов.
			logger.Warn("Source strategy failed, trying next one", port.Fields{
				"strategy": strategy.name(),
				"error":    err.Error(),
			})
			continue
		}
		if listings == nil {
			listings = []domain.EquipmentListing{}
		}
		logger.Debug("Source search succeeded", port.Fields{
			"strategy":       strategy.name(),
			"listings_count": len(listings),
		})
		return listings
	}

	logger.Error("All source strategies failed, returning zero listings", nil, nil)
	return []domain.EquipmentListing{}
}

// FetchDetails использует те же стратегии в том же порядке, но, в
// отличие от Search, отдает ошибку наверх, если карточку не удалось
// получить ни одним путем.
func (a *SourceAdapter) FetchDetails(ctx context.Context, equipmentID string) (*domain.EquipmentListing, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "SourceAdapter",
		"source_id": a.descriptor.ID,
	})

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var lastErr error
	for _, strategy := range a.strategies {
		listing, err := strategy.fetchDetails(ctx, equipmentID)
		if err != nil {
			logger.Warn("Source details strategy failed, trying next one", port.Fields{
				"strategy": strategy.name(),
				"error":    err.Error(),
			})
			lastErr = err
			continue
		}
		return listing, nil
	}

	return nil, lastErr
}
