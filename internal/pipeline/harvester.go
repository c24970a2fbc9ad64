package pipeline

import (
	"context"
	"fmt"

	"github.com/dyike/DealFlowGo/internal/models"
)

// fetchSnapshot fetches market data for a classified ticker. Failures never
// stop the run; they come back as a warning and the memo proceeds without
// market data.
func (p *Pipeline) fetchSnapshot(ticker string) (*models.MarketSnapshot, string) {
	snapshot, err := p.market.GetSnapshot(ticker)
	if err != nil {
		return nil, fmt.Sprintf("Could not fetch stock data: %v", err)
	}
	return snapshot, ""
}

// harvestPage scrapes the company website and caps the markdown at the
// configured harvest limit. Scrape failures degrade to empty content plus a
// warning; the search context alone still supports an analysis.
func (p *Pipeline) harvestPage(ctx context.Context, url string) (string, string) {
	scraped, err := p.scraper.Scrape(ctx, url)
	if err != nil {
		return "", fmt.Sprintf("Could not scrape website: %v", err)
	}
	return truncateRunes(scraped.Markdown, p.cfg.PageHarvestLimit), ""
}
