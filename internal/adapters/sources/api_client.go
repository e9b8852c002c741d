package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"equipment-search-service/internal/contextkeys"
	"equipment-search-service/internal/core/domain"
	"equipment-search-service/internal/core/port"
)

// apiClient - основная стратегия источника: прямой API провайдера.
// Стиль клиента тот же, что и у клиентов внутренних сервисов: хелпер
// doRequest, проброс X-Trace-ID, маппинг DTO -> домен на границе.
type apiClient struct {
	descriptor SourceDescriptor
	httpClient *http.Client
}

func newAPIClient(d SourceDescriptor) *apiClient {
	return &apiClient{
		descriptor: d,
		httpClient: &http.Client{},
	}
}

func (c *apiClient) name() string { return "direct-api" }

// buildSearchURL собирает query string из заполненных полей критериев.
// Имена параметров у каждого провайдера свои, берем их из дескриптора.
func (c *apiClient) buildSearchURL(criteria domain.SearchCriteria) (string, error) {
	u, err := url.Parse(c.descriptor.APIBaseURL)
	if err != nil {
		return "", fmt.Errorf("%s api client: failed to parse base URL: %w", c.descriptor.ID, err)
	}

	params := c.descriptor.QueryParams
	q := u.Query()
	if criteria.Query != "" {
		q.Set(params["query"], criteria.Query)
	}
	if criteria.Make != "" {
		q.Set(params["make"], criteria.Make)
	}
	if criteria.Model != "" {
		q.Set(params["model"], criteria.Model)
	}
	if criteria.Year != "" {
		q.Set(params["year"], criteria.Year)
	}
	if criteria.Category != "" {
		q.Set(params["category"], criteria.Category)
	}
	if criteria.MinPrice != nil {
		q.Set(params["minPrice"], strconv.FormatFloat(*criteria.MinPrice, 'f', -1, 64))
	}
	if criteria.MaxPrice != nil {
		q.Set(params["maxPrice"], strconv.FormatFloat(*criteria.MaxPrice, 'f', -1, 64))
	}

	u.RawQuery = q.Encode()
	return u.String(), nil
}

// doRequest - внутренний хелпер для выполнения запросов
func (c *apiClient) doRequest(ctx context.Context, method, requestURL string) (*http.Response, error) {
	traceID := contextkeys.TraceIDFromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, method, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}

	req.Header.Set("Authorization", "Bearer "+c.descriptor.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

func (c *apiClient) search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.EquipmentListing, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "SourceApiClient",
		"source_id": c.descriptor.ID,
	})

	requestURL, err := c.buildSearchURL(criteria)
	if err != nil {
		return nil, err
	}
	logger.Debug("Sending search request to provider API", port.Fields{"url": requestURL})

	resp, err := c.doRequest(ctx, http.MethodGet, requestURL)
	if err != nil {
		return nil, fmt.Errorf("%s api request failed: %w", c.descriptor.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%s api returned non-success status code %d: %s", c.descriptor.ID, resp.StatusCode, string(bodyBytes))
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s api: failed to read response body: %w", c.descriptor.ID, err)
	}

	items, err := c.decodeListingItems(bodyBytes)
	if err != nil {
		return nil, err
	}

	listings := make([]domain.EquipmentListing, 0, len(items))
	for _, item := range items {
		listings = append(listings, mapListing(item, c.descriptor))
	}

	logger.Info("Provider API search completed", port.Fields{"listings_count": len(listings)})
	return listings, nil
}

// decodeListingItems разбирает тело ответа провайдера: либо голый массив
// объявлений, либо объект-обертка с массивом под ListingsKey.
func (c *apiClient) decodeListingItems(body []byte) ([]map[string]interface{}, error) {
	raw := body
	if c.descriptor.ListingsKey != "" {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(body, &wrapper); err != nil {
			return nil, fmt.Errorf("%s api: failed to unmarshal response wrapper: %w", c.descriptor.ID, err)
		}
		nested, ok := wrapper[c.descriptor.ListingsKey]
		if !ok {
			// Провайдер не вернул блок с объявлениями - считаем, что их нет.
			return nil, nil
		}
		raw = nested
	}

	var items []map[string]interface{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%s api: failed to unmarshal listings array: %w", c.descriptor.ID, err)
	}
	return items, nil
}

func (c *apiClient) fetchDetails(ctx context.Context, equipmentID string) (*domain.EquipmentListing, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "SourceApiClient",
		"source_id": c.descriptor.ID,
	})

	requestURL := c.descriptor.APIBaseURL + "/" + url.PathEscape(equipmentID)
	logger.Debug("Sending details request to provider API", port.Fields{"url": requestURL})

	resp, err := c.doRequest(ctx, http.MethodGet, requestURL)
	if err != nil {
		return nil, fmt.Errorf("%s api request failed: %w", c.descriptor.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", c.descriptor.ID, domain.ErrListingNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%s api returned non-success status code %d: %s", c.descriptor.ID, resp.StatusCode, string(bodyBytes))
	}

	var item map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("%s api: failed to decode details response: %w", c.descriptor.ID, err)
	}

	listing := mapListing(item, c.descriptor)
	return &listing, nil
}
