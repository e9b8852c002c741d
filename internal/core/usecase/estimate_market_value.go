package usecase

import (
	"context"
	"math"

	"equipment-search-service/internal/constants"
	"equipment-search-service/internal/contextkeys"
	"equipment-search-service/internal/core/domain"
	"equipment-search-service/internal/core/port"
	"equipment-search-service/internal/core/port/usecases_port"
)

// EstimateMarketValueUseCase строит оценку рыночной стоимости. Сначала
// пробуем реальные данные из федеративного поиска; если их нет -
// независимый путь через внешний сервис оценки; если и он недоступен -
// фиксированные значения-заглушки с низкой уверенностью.
type EstimateMarketValueUseCase struct {
	searchUC  usecases_port.SearchEquipmentUseCasePort
	estimator port.ValueEstimatorPort

	// Коэффициенты расширения диапазона вокруг наблюдаемых min/max.
	// Это политика, а не выведенный алгоритм, поэтому значения приходят
	// из конфигурации.
	lowerBandFactor float64
	upperBandFactor float64
}

func NewEstimateMarketValueUseCase(
	searchUC usecases_port.SearchEquipmentUseCasePort,
	estimator port.ValueEstimatorPort,
	lowerBandFactor, upperBandFactor float64,
) *EstimateMarketValueUseCase {
	return &EstimateMarketValueUseCase{
		searchUC:        searchUC,
		estimator:       estimator,
		lowerBandFactor: lowerBandFactor,
		upperBandFactor: upperBandFactor,
	}
}

func (uc *EstimateMarketValueUseCase) Execute(ctx context.Context, make, model, year, condition string) (*domain.MarketValueEstimate, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "EstimateMarketValue",
		"make":     make,
		"model":    model,
	})

	criteria := domain.SearchCriteria{
		Make:  make,
		Model: model,
		Year:  year,
	}

	listings, err := uc.searchUC.Execute(ctx, criteria)
	if err != nil {
		// Продолжаем оценку даже без рыночных данных.
		ucLogger.Error("Failed to get market data, continuing with estimation", err, nil)
		listings = nil
	}

	if len(listings) > 0 {
		estimate := uc.estimateFromMarketData(listings)
		ucLogger.Info("Built estimate from market data", port.Fields{
			"listings_count":  len(listings),
			"estimated_value": estimate.EstimatedValue,
		})
		return estimate, nil
	}

	ucLogger.Info("No market data available, falling back to external estimator", nil)

	estimate, err := uc.estimator.Estimate(ctx, make, model, year, condition)
	if err != nil {
		ucLogger.Error("External estimator failed, using fallback values", err, nil)
		return &domain.MarketValueEstimate{
			EstimatedValue: constants.FallbackEstimatedValue,
			ValueRange:     [2]float64{constants.FallbackValueRangeMin, constants.FallbackValueRangeMax},
			Confidence:     constants.FallbackConfidence,
		}, nil
	}

	return estimate, nil
}

// estimateFromMarketData: оценка - округленная средняя цена, диапазон -
// [min*lower, max*upper], уверенность фиксированно высокая, раз есть
// реальные объявления.
func (uc *EstimateMarketValueUseCase) estimateFromMarketData(listings []domain.EquipmentListing) *domain.MarketValueEstimate {
	minPrice := listings[0].Price
	maxPrice := listings[0].Price
	sum := 0.0

	for _, listing := range listings {
		if listing.Price < minPrice {
			minPrice = listing.Price
		}
		if listing.Price > maxPrice {
			maxPrice = listing.Price
		}
		sum += listing.Price
	}

	avg := sum / float64(len(listings))

	return &domain.MarketValueEstimate{
		EstimatedValue: math.Round(avg),
		ValueRange: [2]float64{
			math.Round(minPrice * uc.lowerBandFactor),
			math.Round(maxPrice * uc.upperBandFactor),
		},
		Confidence: constants.MarketDataConfidence,
	}
}
