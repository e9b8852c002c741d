package valuation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"equipment-search-service/internal/contextkeys"
	"equipment-search-service/internal/core/domain"
	"equipment-search-service/internal/core/port"
)

// Client - клиент внешнего сервиса оценки стоимости. Используется как
// независимый путь оценки, когда поиск по источникам не дал данных.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

type estimateRequestDTO struct {
	Make      string `json:"make"`
	Model     string `json:"model"`
	Year      string `json:"year,omitempty"`
	Condition string `json:"condition,omitempty"`
}

type estimateResponseDTO struct {
	EstimatedValue float64    `json:"estimatedValue"`
	ValueRange     [2]float64 `json:"valueRange"`
	Confidence     float64    `json:"confidence"`
}

func (c *Client) Estimate(ctx context.Context, make, model, year, condition string) (*domain.MarketValueEstimate, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ValuationClient",
		"method":    "Estimate",
	})

	payload, err := json.Marshal(estimateRequestDTO{
		Make:      make,
		Model:     model,
		Year:      year,
		Condition: condition,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal estimate request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/estimate", c.baseURL)
	logger.Debug("Sending request to valuation service", port.Fields{"url": url})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("Failed to perform request to valuation service", err, nil)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("valuation service returned non-success status code %d: %s", resp.StatusCode, string(bodyBytes))
		logger.Error("Received error response from valuation service", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	var dto estimateResponseDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		logger.Error("Failed to decode response from valuation service", err, nil)
		return nil, err
	}

	logger.Info("Successfully received valuation estimate", port.Fields{"estimated_value": dto.EstimatedValue})

	// Маппим DTO ответа в нашу доменную модель.
	return &domain.MarketValueEstimate{
		EstimatedValue: dto.EstimatedValue,
		ValueRange:     dto.ValueRange,
		Confidence:     dto.Confidence,
	}, nil
}
