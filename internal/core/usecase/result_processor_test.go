package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipment-search-service/internal/core/domain"
)

func TestProcessResults_StableSortPreservesInputOrderOnTies(t *testing.T) {
	input := []domain.EquipmentListing{
		{ID: "first", Price: 100},
		{ID: "second", Price: 100},
		{ID: "third", Price: 50},
		{ID: "fourth", Price: 100},
	}

	result := processResults(input, domain.SearchCriteria{})

	require.Len(t, result, 4)
	assert.Equal(t, "third", result[0].ID)
	assert.Equal(t, "first", result[1].ID)
	assert.Equal(t, "second", result[2].ID)
	assert.Equal(t, "fourth", result[3].ID)
}

func TestProcessResults_NoFiltersKeepsEverything(t *testing.T) {
	input := []domain.EquipmentListing{
		{ID: "a", Price: 0},
		{ID: "b", Price: 99999},
	}

	result := processResults(input, domain.SearchCriteria{})

	assert.Len(t, result, 2)
}

func TestProcessResults_EmptyInputGivesEmptyNonNilSlice(t *testing.T) {
	result := processResults(nil, domain.SearchCriteria{})

	require.NotNil(t, result)
	assert.Empty(t, result)
}

func TestProcessResults_FiltersComposeIndependently(t *testing.T) {
	minPrice := 100.0
	maxPrice := 200.0
	input := []domain.EquipmentListing{
		{ID: "too-cheap", Price: 50, Year: "2020"},
		{ID: "wrong-year", Price: 150, Year: "2019"},
		{ID: "match", Price: 150, Year: "2020"},
		{ID: "too-expensive", Price: 250, Year: "2020"},
	}

	result := processResults(input, domain.SearchCriteria{
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
		Year:     "2020",
	})

	require.Len(t, result, 1)
	assert.Equal(t, "match", result[0].ID)
}
