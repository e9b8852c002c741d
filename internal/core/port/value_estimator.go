package port

import (
	"context"

	"equipment-search-service/internal/core/domain"
)

// ValueEstimatorPort - независимый путь оценки стоимости, который
// используется, когда поиск по источникам не дал ни одного объявления.
// Реализация - внешний сервис оценки, он заменяем.
type ValueEstimatorPort interface {
	Estimate(ctx context.Context, make, model, year, condition string) (*domain.MarketValueEstimate, error)
}
