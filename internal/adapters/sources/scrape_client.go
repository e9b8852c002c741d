package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"equipment-search-service/internal/contextkeys"
	"equipment-search-service/internal/core/domain"
	"equipment-search-service/internal/core/port"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
)

// scrapeClient - запасная стратегия источника: внешний scraping-сервис.
// Он отдает объявления в той же форме, что и провайдер (он их с сайта
// провайдера и собирает), поэтому маппинг полей общий с прямым API.
type scrapeClient struct {
	// родительский коллектор, который разделяет лимиты между клонами
	collector  *colly.Collector
	baseURL    string
	descriptor SourceDescriptor
}

func newScrapeClient(serviceURL string, d SourceDescriptor, timeout time.Duration) (*scrapeClient, error) {
	u, err := url.Parse(serviceURL)
	if err != nil {
		return nil, fmt.Errorf("scrape client: failed to parse service URL: %w", err)
	}

	c := colly.NewCollector(colly.AllowedDomains(u.Hostname()), colly.AllowURLRevisit())

	// Эти правила будут наследоваться всеми клонами коллектора
	err = c.Limit(&colly.LimitRule{
		DomainGlob: u.Hostname(),

		// Параллелизм на уровне HTTP-запросов
		Parallelism: 2,

		// задержка от 0 до 1 секунды после завершения предыдущего
		RandomDelay: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("scrape client: failed to set limit rule: %w", err)
	}

	c.SetRequestTimeout(timeout)

	extensions.RandomUserAgent(c) // На каждый запрос будет подставлен User-Agent реального браузера
	extensions.Referer(c)

	return &scrapeClient{
		collector:  c,
		baseURL:    serviceURL,
		descriptor: d,
	}, nil
}

func (c *scrapeClient) name() string { return "scrape-service" }

func (c *scrapeClient) buildSearchURL(criteria domain.SearchCriteria) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	u = u.JoinPath("api", "v1", "scrape", c.descriptor.ID)

	q := u.Query()
	if criteria.Query != "" {
		q.Set("query", criteria.Query)
	}
	if criteria.Make != "" {
		q.Set("make", criteria.Make)
	}
	if criteria.Model != "" {
		q.Set("model", criteria.Model)
	}
	if criteria.Year != "" {
		q.Set("year", criteria.Year)
	}
	if criteria.Category != "" {
		q.Set("category", criteria.Category)
	}

	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *scrapeClient) search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.EquipmentListing, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "SourceScrapeClient",
		"source_id": c.descriptor.ID,
	})

	targetURL, err := c.buildSearchURL(criteria)
	if err != nil {
		return nil, fmt.Errorf("scrape client: failed to build URL: %w", err)
	}

	// Создаем "одноразовый" клон для этого конкретного запроса
	// Он наследует лимиты, но имеет свои собственные обработчики!
	collector := c.collector.Clone()

	var listings []domain.EquipmentListing
	var responseErr error // Для хранения ошибки из колбэка

	collector.OnRequest(func(r *colly.Request) {
		logger.Debug("Making request to scrape service", port.Fields{"url": r.URL.String()})
	})

	collector.OnResponse(func(r *colly.Response) {
		var items []map[string]interface{}
		if jsonErr := json.Unmarshal(r.Body, &items); jsonErr != nil {
			responseErr = fmt.Errorf("scrape client %s: failed to parse JSON from %s: %w", c.descriptor.ID, r.Request.URL.String(), jsonErr)
			return
		}

		for _, item := range items {
			listings = append(listings, mapListing(item, c.descriptor))
		}
	})

	collector.OnError(func(r *colly.Response, err error) {
		logger.Error("Scrape service request failed", err, port.Fields{
			"url":    r.Request.URL.String(),
			"status": r.StatusCode,
		})
		responseErr = fmt.Errorf("scrape client %s: request to %s failed with status %d: %w", c.descriptor.ID, r.Request.URL, r.StatusCode, err)
	})

	if visitErr := collector.Visit(targetURL); visitErr != nil {
		return nil, fmt.Errorf("scrape client %s: failed to visit URL %s: %w", c.descriptor.ID, targetURL, visitErr)
	}
	collector.Wait()

	if responseErr != nil {
		return nil, responseErr
	}

	logger.Info("Scrape service search completed", port.Fields{
		"url":            targetURL,
		"listings_count": len(listings),
	})
	return listings, nil
}

func (c *scrapeClient) fetchDetails(ctx context.Context, equipmentID string) (*domain.EquipmentListing, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "SourceScrapeClient",
		"source_id": c.descriptor.ID,
	})

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("scrape client: failed to parse service URL: %w", err)
	}
	targetURL := u.JoinPath("api", "v1", "scrape", c.descriptor.ID, equipmentID).String()

	collector := c.collector.Clone()

	var listing *domain.EquipmentListing
	var responseErr error

	collector.OnResponse(func(r *colly.Response) {
		var item map[string]interface{}
		if jsonErr := json.Unmarshal(r.Body, &item); jsonErr != nil {
			responseErr = fmt.Errorf("scrape client %s: failed to parse details JSON: %w", c.descriptor.ID, jsonErr)
			return
		}
		mapped := mapListing(item, c.descriptor)
		listing = &mapped
	})

	collector.OnError(func(r *colly.Response, err error) {
		logger.Error("Scrape service details request failed", err, port.Fields{
			"url":    r.Request.URL.String(),
			"status": r.StatusCode,
		})
		responseErr = fmt.Errorf("scrape client %s: details request failed with status %d: %w", c.descriptor.ID, r.StatusCode, err)
	})

	if visitErr := collector.Visit(targetURL); visitErr != nil {
		return nil, fmt.Errorf("scrape client %s: failed to visit URL %s: %w", c.descriptor.ID, targetURL, visitErr)
	}
	collector.Wait()

	if responseErr != nil {
		return nil, responseErr
	}
	if listing == nil {
		return nil, fmt.Errorf("%s: %w", c.descriptor.ID, domain.ErrListingNotFound)
	}
	return listing, nil
}
