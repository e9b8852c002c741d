package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipment-search-service/internal/core/domain"
)

type stubSearchUC struct {
	listings []domain.EquipmentListing
	err      error
	criteria domain.SearchCriteria
	calls    int
}

func (s *stubSearchUC) Execute(ctx context.Context, criteria domain.SearchCriteria) ([]domain.EquipmentListing, error) {
	s.calls++
	s.criteria = criteria
	return s.listings, s.err
}

type stubDetailsUC struct {
	details *domain.EquipmentListing
	err     error
}

func (s *stubDetailsUC) Execute(ctx context.Context, sourceID, equipmentID string) (*domain.EquipmentListing, error) {
	return s.details, s.err
}

type stubEstimateUC struct {
	estimate *domain.MarketValueEstimate
	err      error
}

func (s *stubEstimateUC) Execute(ctx context.Context, make, model, year, condition string) (*domain.MarketValueEstimate, error) {
	return s.estimate, s.err
}

type stubSimilarUC struct {
	listings []domain.EquipmentListing
	err      error
	limit    int
}

func (s *stubSimilarUC) Execute(ctx context.Context, sourceID, equipmentID string, limit int) ([]domain.EquipmentListing, error) {
	s.limit = limit
	return s.listings, s.err
}

func newHandlersForTest(search *stubSearchUC, details *stubDetailsUC, estimate *stubEstimateUC, similar *stubSimilarUC) *EquipmentHandlers {
	if search == nil {
		search = &stubSearchUC{}
	}
	if details == nil {
		details = &stubDetailsUC{}
	}
	if estimate == nil {
		estimate = &stubEstimateUC{}
	}
	if similar == nil {
		similar = &stubSimilarUC{}
	}
	return NewEquipmentHandlers(search, details, estimate, similar)
}

func doRequest(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload["error"]
}

func TestHandleSearchEquipment_EmptyBody(t *testing.T) {
	handlers := newHandlersForTest(nil, nil, nil, nil)

	rec := doRequest(t, handlers.HandleSearchEquipment, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Request body is empty", errorMessage(t, rec))
}

func TestHandleSearchEquipment_UnknownFieldRejectedBySchema(t *testing.T) {
	handlers := newHandlersForTest(nil, nil, nil, nil)

	rec := doRequest(t, handlers.HandleSearchEquipment, `{"query":"excavator","page":1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "Invalid request body")
}

func TestHandleSearchEquipment_NoSearchTerms(t *testing.T) {
	handlers := newHandlersForTest(nil, nil, nil, nil)

	rec := doRequest(t, handlers.HandleSearchEquipment, `{"minPrice":1000}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "At least one search parameter is required", errorMessage(t, rec))
}

func TestHandleSearchEquipment_Success(t *testing.T) {
	search := &stubSearchUC{listings: []domain.EquipmentListing{
		{ID: "a-1", Price: 61000, ImageURLs: []string{}, Specifications: map[string]string{}},
		{ID: "b-1", Price: 85000, ImageURLs: []string{}, Specifications: map[string]string{}},
	}}
	handlers := newHandlersForTest(search, nil, nil, nil)

	rec := doRequest(t, handlers.HandleSearchEquipment, `{"query":"excavator","minPrice":50000,"source":["mascus"]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	var listings []domain.EquipmentListing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listings))
	require.Len(t, listings, 2)
	assert.Equal(t, "a-1", listings[0].ID)

	// Критерии доходят до use case без искажений.
	require.NotNil(t, search.criteria.MinPrice)
	assert.Equal(t, 50000.0, *search.criteria.MinPrice)
	assert.Equal(t, []string{"mascus"}, search.criteria.Sources)
}

func TestHandleSearchEquipment_EmptyResultIsJSONArray(t *testing.T) {
	search := &stubSearchUC{listings: []domain.EquipmentListing{}}
	handlers := newHandlersForTest(search, nil, nil, nil)

	rec := doRequest(t, handlers.HandleSearchEquipment, `{"query":"nothing"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestHandleGetEquipmentDetails_MissingIDs(t *testing.T) {
	handlers := newHandlersForTest(nil, nil, nil, nil)

	rec := doRequest(t, handlers.HandleGetEquipmentDetails, `{"sourceId":"mascus"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Source ID and equipment ID are required", errorMessage(t, rec))
}

func TestHandleGetEquipmentDetails_UnknownSource(t *testing.T) {
	details := &stubDetailsUC{err: domain.ErrUnknownSource}
	handlers := newHandlersForTest(nil, details, nil, nil)

	rec := doRequest(t, handlers.HandleGetEquipmentDetails, `{"sourceId":"nope","equipmentId":"x-1"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid source ID", errorMessage(t, rec))
}

func TestHandleGetEquipmentDetails_Success(t *testing.T) {
	details := &stubDetailsUC{details: &domain.EquipmentListing{
		ID: "ew-1", Title: "CAT 320D L Excavator", Price: 85000,
		ImageURLs: []string{}, Specifications: map[string]string{},
	}}
	handlers := newHandlersForTest(nil, details, nil, nil)

	rec := doRequest(t, handlers.HandleGetEquipmentDetails, `{"sourceId":"equipment-watch","equipmentId":"ew-1"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	var listing domain.EquipmentListing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Equal(t, "CAT 320D L Excavator", listing.Title)
}

func TestHandleGetEquipmentDetails_FetchFailure(t *testing.T) {
	details := &stubDetailsUC{err: errors.New("provider down")}
	handlers := newHandlersForTest(nil, details, nil, nil)

	rec := doRequest(t, handlers.HandleGetEquipmentDetails, `{"sourceId":"mascus","equipmentId":"m-1"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", errorMessage(t, rec))
}

func TestHandleEstimateMarketValue_MissingMakeOrModel(t *testing.T) {
	handlers := newHandlersForTest(nil, nil, nil, nil)

	rec := doRequest(t, handlers.HandleEstimateMarketValue, `{"make":"CAT"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Make and model are required", errorMessage(t, rec))
}

func TestHandleEstimateMarketValue_Success(t *testing.T) {
	estimate := &stubEstimateUC{estimate: &domain.MarketValueEstimate{
		EstimatedValue: 90000,
		ValueRange:     [2]float64{72000, 110000},
		Confidence:     0.8,
	}}
	handlers := newHandlersForTest(nil, nil, estimate, nil)

	rec := doRequest(t, handlers.HandleEstimateMarketValue, `{"make":"CAT","model":"320D","year":"2018"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, 90000.0, payload["estimatedValue"])
	assert.Equal(t, 0.8, payload["confidence"])
}

func TestHandleFindSimilarEquipment_MissingIDs(t *testing.T) {
	handlers := newHandlersForTest(nil, nil, nil, nil)

	rec := doRequest(t, handlers.HandleFindSimilarEquipment, `{"equipmentId":"x"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Source ID and equipment ID are required", errorMessage(t, rec))
}

func TestHandleFindSimilarEquipment_DetailsUnavailable(t *testing.T) {
	similar := &stubSimilarUC{err: domain.ErrDetailsUnavailable}
	handlers := newHandlersForTest(nil, nil, nil, similar)

	rec := doRequest(t, handlers.HandleFindSimilarEquipment, `{"sourceId":"mascus","equipmentId":"m-404"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to get equipment details", errorMessage(t, rec))
}

func TestHandleFindSimilarEquipment_Success(t *testing.T) {
	similar := &stubSimilarUC{listings: []domain.EquipmentListing{
		{ID: "m-2", ImageURLs: []string{}, Specifications: map[string]string{}},
	}}
	handlers := newHandlersForTest(nil, nil, nil, similar)

	rec := doRequest(t, handlers.HandleFindSimilarEquipment, `{"sourceId":"mascus","equipmentId":"m-1","limit":3}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, similar.limit)
	var listings []domain.EquipmentListing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listings))
	require.Len(t, listings, 1)
}
