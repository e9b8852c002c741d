package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipment-search-service/internal/configs"
	"equipment-search-service/internal/constants"
	"equipment-search-service/internal/core/domain"
	"equipment-search-service/internal/core/port"
)

type registrySource struct {
	id string
}

func (s *registrySource) ID() string   { return s.id }
func (s *registrySource) Name() string { return s.id }
func (s *registrySource) Search(ctx context.Context, criteria domain.SearchCriteria) []domain.EquipmentListing {
	return []domain.EquipmentListing{}
}
func (s *registrySource) FetchDetails(ctx context.Context, equipmentID string) (*domain.EquipmentListing, error) {
	return nil, domain.ErrListingNotFound
}

func newRegistryForTest(ids ...string) *Registry {
	adapters := make([]port.EquipmentSourcePort, 0, len(ids))
	for _, id := range ids {
		adapters = append(adapters, &registrySource{id: id})
	}
	return NewRegistry(adapters...)
}

func resolvedIDs(adapters []port.EquipmentSourcePort) []string {
	ids := make([]string, 0, len(adapters))
	for _, a := range adapters {
		ids = append(ids, a.ID())
	}
	return ids
}

func TestRegistry_EmptySelectionMeansAllSources(t *testing.T) {
	registry := newRegistryForTest("alpha", "beta", "gamma")

	assert.Equal(t, []string{"alpha", "beta", "gamma"}, resolvedIDs(registry.Resolve(nil)))
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, resolvedIDs(registry.Resolve([]string{})))
}

func TestRegistry_ResolvePreservesRegistryOrder(t *testing.T) {
	registry := newRegistryForTest("alpha", "beta", "gamma")

	ids := resolvedIDs(registry.Resolve([]string{"gamma", "alpha"}))

	assert.Equal(t, []string{"alpha", "gamma"}, ids)
}

func TestRegistry_UnknownIDsAreSkipped(t *testing.T) {
	registry := newRegistryForTest("alpha", "beta")

	ids := resolvedIDs(registry.Resolve([]string{"beta", "unknown"}))

	assert.Equal(t, []string{"beta"}, ids)
}

func TestRegistry_Get(t *testing.T) {
	registry := newRegistryForTest("alpha")

	adapter, ok := registry.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, "alpha", adapter.ID())

	_, ok = registry.Get("unknown")
	assert.False(t, ok)
}

func TestBuildDescriptors_CoversAllKnownSources(t *testing.T) {
	descriptors := BuildDescriptors(&configs.Config{})

	require.Len(t, descriptors, len(constants.AllSources))
	for i, d := range descriptors {
		assert.Equal(t, constants.AllSources[i], d.ID)
		assert.NotEmpty(t, d.Name)
		assert.NotEmpty(t, d.APIBaseURL)
		assert.NotEmpty(t, d.WebsiteURL)
		assert.NotEmpty(t, d.QueryParams["query"])
	}
}

func TestBuildDescriptors_ProviderQueryParamNames(t *testing.T) {
	descriptors := BuildDescriptors(&configs.Config{})

	byID := make(map[string]SourceDescriptor, len(descriptors))
	for _, d := range descriptors {
		byID[d.ID] = d
	}

	assert.Equal(t, "keywords", byID[constants.SourceMascus].QueryParams["query"])
	assert.Equal(t, "search", byID[constants.SourceMachineryTrader].QueryParams["query"])
	assert.Equal(t, "minprice", byID[constants.SourceMachineryTrader].QueryParams["minPrice"])
	assert.Equal(t, "q", byID[constants.SourceIronPlanet].QueryParams["query"])
	assert.Equal(t, "price_min", byID[constants.SourceIronPlanet].QueryParams["minPrice"])
}

func TestBuildDescriptors_ListingLinkFallbacks(t *testing.T) {
	descriptors := BuildDescriptors(&configs.Config{})

	byID := make(map[string]SourceDescriptor, len(descriptors))
	for _, d := range descriptors {
		byID[d.ID] = d
	}

	// EquipmentWatch не имеет предсказуемых ссылок на карточки.
	assert.Empty(t, byID[constants.SourceEquipmentWatch].ListingURLPattern)
	assert.Equal(t, "https://www.mascus.com/%s", byID[constants.SourceMascus].ListingURLPattern)
	assert.Equal(t, "https://www.machinerytrader.com/listing/%s", byID[constants.SourceMachineryTrader].ListingURLPattern)
	assert.Equal(t, "https://www.ironplanet.com/listing/%s", byID[constants.SourceIronPlanet].ListingURLPattern)

	// MachineryTrader - единственный, кто включает категорию в
	// запасной заголовок.
	assert.True(t, byID[constants.SourceMachineryTrader].TitleWithCategory)
	assert.False(t, byID[constants.SourceMascus].TitleWithCategory)
}
