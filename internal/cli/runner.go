package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dyike/DealFlowGo/internal/config"
	"github.com/dyike/DealFlowGo/internal/dataflows"
	"github.com/dyike/DealFlowGo/internal/debug"
	"github.com/dyike/DealFlowGo/internal/display"
	"github.com/dyike/DealFlowGo/internal/llm"
	"github.com/dyike/DealFlowGo/internal/models"
	"github.com/dyike/DealFlowGo/internal/pipeline"
	"github.com/dyike/DealFlowGo/internal/report"
	"github.com/dyike/DealFlowGo/internal/utils"
)

// buildPipeline wires the configured collaborators into a pipeline.
func buildPipeline(ctx context.Context, cfg *config.Config, status pipeline.StatusFunc) (*pipeline.Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	searcher := dataflows.NewTavilyClient(cfg)

	var scraper pipeline.Scraper
	switch cfg.ScrapeProvider {
	case "local":
		scraper = dataflows.NewLocalScraper(cfg)
	default:
		scraper = dataflows.NewFirecrawlClient(cfg)
	}

	llmClient, err := llm.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	market := dataflows.NewYahooClient(cfg)

	return pipeline.New(cfg, searcher, scraper, llmClient, market, status), nil
}

// runMemoCommand executes one full memo run and renders the results.
func runMemoCommand(cfg *config.Config, companyName string, profile models.Profile, exportHistory bool) error {
	ctx := context.Background()

	debugger := debug.NewEinoDebugger(cfg)
	if err := debugger.Initialize(); err != nil {
		display.DisplayError(err)
	}

	p, err := buildPipeline(ctx, cfg, func(s pipeline.Status) {
		display.DisplayStatus(s.Message, s.Percent)
	})
	if err != nil {
		return err
	}

	result, err := p.Run(ctx, companyName, profile)
	if err != nil {
		fmt.Println()
		if errors.Is(err, pipeline.ErrNoWebsite) {
			return fmt.Errorf("could not find website for %s", companyName)
		}
		return err
	}

	rendered, err := report.Render(result.CompanyName, result.Analysis, result.Market, result.MarketWarning, result.ScrapeWarning, cfg.MemoPath(result.CompanyName))
	if err != nil {
		return err
	}

	display.RenderBlocks(rendered.Blocks)

	if exportHistory {
		if result.Market == nil || len(result.Market.History) == 0 {
			display.DisplayWarning("No price history available to export.")
			return nil
		}
		csvPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("%s_History.csv", result.CompanyName))
		if err := utils.WriteHistoryCSV(csvPath, result.Market.Ticker, result.Market.History); err != nil {
			return err
		}
		display.DisplaySuccess(fmt.Sprintf("💾 Price history exported to %s", csvPath))
	}

	return nil
}
