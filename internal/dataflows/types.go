package dataflows

import (
	"github.com/dyike/DealFlowGo/internal/config"
)

// Config is an alias for the main application config
type Config = config.Config

// SearchResult is one ranked hit from the search collaborator.
type SearchResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score,omitempty"`
}

// ScrapeResult is the successful outcome of scraping a page. Failures are
// reported through the error return, never through a partially filled result.
type ScrapeResult struct {
	Markdown string `json:"markdown"`
}
