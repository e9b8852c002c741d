package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipment-search-service/internal/core/domain"
)

type stubDetailsUC struct {
	details *domain.EquipmentListing
	err     error
}

func (s *stubDetailsUC) Execute(ctx context.Context, sourceID, equipmentID string) (*domain.EquipmentListing, error) {
	return s.details, s.err
}

func TestFindSimilarEquipment_ExcludesSourceListing(t *testing.T) {
	details := &stubDetailsUC{details: &domain.EquipmentListing{
		ID: "ew-1", Make: "CAT", Model: "320D", Category: "Excavators",
	}}
	search := &stubSearchUC{listings: []domain.EquipmentListing{
		{ID: "ew-1", Price: 85000},
		{ID: "mascus-2", Price: 78000},
		{ID: "mt-1", Price: 81000},
	}}
	uc := NewFindSimilarEquipmentUseCase(details, search)

	similar, err := uc.Execute(context.Background(), "equipment-watch", "ew-1", 0)

	require.NoError(t, err)
	require.Len(t, similar, 2)
	for _, listing := range similar {
		assert.NotEqual(t, "ew-1", listing.ID)
	}
}

func TestFindSimilarEquipment_TruncatesToLimit(t *testing.T) {
	details := &stubDetailsUC{details: &domain.EquipmentListing{Make: "CAT", Model: "320D"}}

	listings := make([]domain.EquipmentListing, 0, 10)
	for i := 0; i < 10; i++ {
		listings = append(listings, domain.EquipmentListing{ID: fmt.Sprintf("l-%d", i)})
	}
	uc := NewFindSimilarEquipmentUseCase(details, &stubSearchUC{listings: listings})

	similar, err := uc.Execute(context.Background(), "equipment-watch", "other", 3)

	require.NoError(t, err)
	assert.Len(t, similar, 3)
}

func TestFindSimilarEquipment_DefaultLimitIsFive(t *testing.T) {
	details := &stubDetailsUC{details: &domain.EquipmentListing{Make: "CAT", Model: "320D"}}

	listings := make([]domain.EquipmentListing, 0, 10)
	for i := 0; i < 10; i++ {
		listings = append(listings, domain.EquipmentListing{ID: fmt.Sprintf("l-%d", i)})
	}
	uc := NewFindSimilarEquipmentUseCase(details, &stubSearchUC{listings: listings})

	similar, err := uc.Execute(context.Background(), "equipment-watch", "other", 0)

	require.NoError(t, err)
	assert.Len(t, similar, 5)
}

func TestFindSimilarEquipment_DetailsFailurePropagates(t *testing.T) {
	details := &stubDetailsUC{err: fmt.Errorf("%w: equipment-watch/ew-404", domain.ErrDetailsUnavailable)}
	uc := NewFindSimilarEquipmentUseCase(details, &stubSearchUC{})

	_, err := uc.Execute(context.Background(), "equipment-watch", "ew-404", 0)

	require.ErrorIs(t, err, domain.ErrDetailsUnavailable)
}
