package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipment-search-service/internal/constants"
	"equipment-search-service/internal/core/domain"
)

type stubSearchUC struct {
	listings []domain.EquipmentListing
	err      error
}

func (s *stubSearchUC) Execute(ctx context.Context, criteria domain.SearchCriteria) ([]domain.EquipmentListing, error) {
	return s.listings, s.err
}

type stubEstimator struct {
	estimate *domain.MarketValueEstimate
	err      error
	called   bool
}

func (s *stubEstimator) Estimate(ctx context.Context, make, model, year, condition string) (*domain.MarketValueEstimate, error) {
	s.called = true
	return s.estimate, s.err
}

func TestEstimateMarketValue_FromMarketData(t *testing.T) {
	search := &stubSearchUC{listings: []domain.EquipmentListing{
		{ID: "a", Price: 80000},
		{ID: "b", Price: 90000},
		{ID: "c", Price: 100000},
	}}
	estimator := &stubEstimator{}
	uc := NewEstimateMarketValueUseCase(search, estimator, 0.9, 1.1)

	estimate, err := uc.Execute(context.Background(), "CAT", "320D", "2018", "Used")

	require.NoError(t, err)
	assert.Equal(t, 90000.0, estimate.EstimatedValue)
	assert.Equal(t, [2]float64{72000, 110000}, estimate.ValueRange)
	assert.Equal(t, constants.MarketDataConfidence, estimate.Confidence)
	// Внешний оценщик не должен вызываться, когда есть рыночные данные.
	assert.False(t, estimator.called)
}

func TestEstimateMarketValue_AverageAndBoundsAreRounded(t *testing.T) {
	search := &stubSearchUC{listings: []domain.EquipmentListing{
		{ID: "a", Price: 100001},
		{ID: "b", Price: 100002},
	}}
	uc := NewEstimateMarketValueUseCase(search, &stubEstimator{}, 0.9, 1.1)

	estimate, err := uc.Execute(context.Background(), "CAT", "320D", "", "")

	require.NoError(t, err)
	// avg = 100001.5 -> 100002
	assert.Equal(t, 100002.0, estimate.EstimatedValue)
	// 100001*0.9 = 90000.9 -> 90001; 100002*1.1 = 110002.2 -> 110002
	assert.Equal(t, [2]float64{90001, 110002}, estimate.ValueRange)
}

func TestEstimateMarketValue_FallsBackToExternalEstimator(t *testing.T) {
	search := &stubSearchUC{listings: nil}
	estimator := &stubEstimator{estimate: &domain.MarketValueEstimate{
		EstimatedValue: 75000,
		ValueRange:     [2]float64{70000, 80000},
		Confidence:     0.6,
	}}
	uc := NewEstimateMarketValueUseCase(search, estimator, 0.9, 1.1)

	estimate, err := uc.Execute(context.Background(), "Volvo", "EC220DL", "2019", "Used")

	require.NoError(t, err)
	assert.True(t, estimator.called)
	assert.Equal(t, 75000.0, estimate.EstimatedValue)
	assert.Equal(t, 0.6, estimate.Confidence)
}

func TestEstimateMarketValue_EstimatorFailureGivesFallbackValues(t *testing.T) {
	search := &stubSearchUC{listings: nil}
	estimator := &stubEstimator{err: errors.New("valuation service unavailable")}
	uc := NewEstimateMarketValueUseCase(search, estimator, 0.9, 1.1)

	estimate, err := uc.Execute(context.Background(), "Komatsu", "PC200", "", "")

	require.NoError(t, err)
	assert.Equal(t, float64(constants.FallbackEstimatedValue), estimate.EstimatedValue)
	assert.Equal(t, [2]float64{constants.FallbackValueRangeMin, constants.FallbackValueRangeMax}, estimate.ValueRange)
	assert.Equal(t, constants.FallbackConfidence, estimate.Confidence)
}

func TestEstimateMarketValue_SearchFailureStillProducesEstimate(t *testing.T) {
	search := &stubSearchUC{err: errors.New("all sources down")}
	estimator := &stubEstimator{estimate: &domain.MarketValueEstimate{EstimatedValue: 42000}}
	uc := NewEstimateMarketValueUseCase(search, estimator, 0.9, 1.1)

	estimate, err := uc.Execute(context.Background(), "CAT", "320D", "", "")

	require.NoError(t, err)
	assert.True(t, estimator.called)
	assert.Equal(t, 42000.0, estimate.EstimatedValue)
}
