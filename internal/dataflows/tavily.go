package dataflows

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const tavilyBaseURL = "https://api.tavily.com"

// TavilyClient handles web search through the Tavily API.
type TavilyClient struct {
	client *resty.Client
	apiKey string
}

// NewTavilyClient creates a new Tavily search client.
func NewTavilyClient(config *Config) *TavilyClient {
	client := resty.New()
	client.SetBaseURL(tavilyBaseURL)
	client.SetTimeout(time.Duration(config.HTTPTimeoutSeconds) * time.Second)

	return &TavilyClient{
		client: client,
		apiKey: config.TavilyAPIKey,
	}
}

// tavilySearchRequest is the Tavily /search request payload.
type tavilySearchRequest struct {
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth,omitempty"` // basic or advanced
	MaxResults  int    `json:"max_results,omitempty"`
}

// tavilySearchResponse is the Tavily /search response payload.
type tavilySearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

// Search runs one query and returns the ranked results, best first. The call
// is attempted exactly once.
func (tc *TavilyClient) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	if tc.apiKey == "" {
		return nil, fmt.Errorf("Tavily API key not configured")
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	req := tavilySearchRequest{
		Query:       query,
		SearchDepth: "basic",
		MaxResults:  maxResults,
	}

	resp, err := tc.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+tc.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/search")
	if err != nil {
		return nil, fmt.Errorf("failed to search for %q: %w", query, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("tavily API error %d: %s", resp.StatusCode(), resp.String())
	}

	var searchResp tavilySearchResponse
	if err := json.Unmarshal(resp.Body(), &searchResp); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	return searchResp.Results, nil
}
