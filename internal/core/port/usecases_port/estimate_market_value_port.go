package usecases_port

import (
	"context"

	"equipment-search-service/internal/core/domain"
)

type EstimateMarketValueUseCasePort interface {
	Execute(ctx context.Context, make, model, year, condition string) (*domain.MarketValueEstimate, error)
}
