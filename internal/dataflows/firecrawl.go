package dataflows

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const firecrawlBaseURL = "https://api.firecrawl.dev/v1"

// FirecrawlClient handles page scraping through the Firecrawl API, returning
// a markdown rendering of the page.
type FirecrawlClient struct {
	client *resty.Client
	apiKey string
}

// NewFirecrawlClient creates a new Firecrawl scrape client.
func NewFirecrawlClient(config *Config) *FirecrawlClient {
	client := resty.New()
	client.SetBaseURL(firecrawlBaseURL)
	client.SetTimeout(time.Duration(config.HTTPTimeoutSeconds) * time.Second)

	return &FirecrawlClient{
		client: client,
		apiKey: config.FirecrawlAPIKey,
	}
}

// firecrawlScrapeRequest is the Firecrawl /scrape request payload.
type firecrawlScrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
}

// firecrawlScrapeResponse is the Firecrawl /scrape response payload.
type firecrawlScrapeResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    struct {
		Markdown string `json:"markdown"`
	} `json:"data"`
}

// Scrape fetches a markdown rendering of the page at url. The call is
// attempted exactly once; callers decide how to degrade on error.
func (fc *FirecrawlClient) Scrape(ctx context.Context, url string) (*ScrapeResult, error) {
	if fc.apiKey == "" {
		return nil, fmt.Errorf("Firecrawl API key not configured")
	}

	req := firecrawlScrapeRequest{
		URL:     url,
		Formats: []string{"markdown"},
	}

	resp, err := fc.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+fc.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/scrape")
	if err != nil {
		return nil, fmt.Errorf("failed to scrape %s: %w", url, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("firecrawl API error %d: %s", resp.StatusCode(), resp.String())
	}

	var scrapeResp firecrawlScrapeResponse
	if err := json.Unmarshal(resp.Body(), &scrapeResp); err != nil {
		return nil, fmt.Errorf("failed to parse scrape response: %w", err)
	}
	if !scrapeResp.Success {
		return nil, fmt.Errorf("firecrawl scrape failed: %s", scrapeResp.Error)
	}

	return &ScrapeResult{Markdown: scrapeResp.Data.Markdown}, nil
}
