package pipeline

import (
	"context"
	"errors"

	"github.com/dyike/DealFlowGo/internal/config"
	"github.com/dyike/DealFlowGo/internal/dataflows"
	"github.com/dyike/DealFlowGo/internal/models"
)

var (
	// ErrNoWebsite means the website search returned zero results, so there
	// is nothing to analyze.
	ErrNoWebsite = errors.New("no search results found for company website")

	// ErrBadAnalysisJSON means the model response could not be parsed as the
	// expected JSON document.
	ErrBadAnalysisJSON = errors.New("analysis response is not valid JSON")
)

// Searcher runs one web search query and returns ranked results.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]dataflows.SearchResult, error)
}

// Scraper fetches one page as markdown.
type Scraper interface {
	Scrape(ctx context.Context, url string) (*dataflows.ScrapeResult, error)
}

// Completer is the two-model LLM surface the pipeline needs.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Classify(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// MarketDataProvider fetches a live market snapshot for a ticker.
type MarketDataProvider interface {
	GetSnapshot(ticker string) (*models.MarketSnapshot, error)
}

// Status is one progress event emitted while a memo run advances.
type Status struct {
	Stage   string
	Message string
	Percent int
}

// StatusFunc receives progress events. A nil StatusFunc disables reporting.
type StatusFunc func(Status)

// Stage names reported through StatusFunc.
const (
	StageClassify   = "classify"
	StageMarket     = "market"
	StageSearch     = "search"
	StageScrape     = "scrape"
	StageSynthesize = "synthesize"
	StageDone       = "done"
)

// Result is everything one memo run produced. Market is nil for private
// companies and when the market fetch failed; MarketWarning distinguishes
// the latter. ScrapeWarning is set when the website scrape failed and the
// run continued on search context alone.
type Result struct {
	CompanyName    string
	Profile        models.Profile
	Identity       models.IdentityResult
	Market         *models.MarketSnapshot
	MarketWarning  string
	WebsiteContent string
	ScrapeWarning  string
	Analysis       *models.AnalysisResult
}

// Pipeline runs the company research flow end to end: ticker classification,
// market data, web search, website scrape, and LLM synthesis. Steps run
// sequentially and every external call is attempted exactly once.
type Pipeline struct {
	cfg      *config.Config
	searcher Searcher
	scraper  Scraper
	llm      Completer
	market   MarketDataProvider
	status   StatusFunc
}

// New assembles a pipeline from its collaborators. market may be nil when no
// market data source is available; runs then behave as for private companies.
func New(cfg *config.Config, searcher Searcher, scraper Scraper, llm Completer, market MarketDataProvider, status StatusFunc) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		searcher: searcher,
		scraper:  scraper,
		llm:      llm,
		market:   market,
		status:   status,
	}
}

func (p *Pipeline) report(stage, message string, percent int) {
	if p.status != nil {
		p.status(Status{Stage: stage, Message: message, Percent: percent})
	}
}

// Run generates the full analysis for one company. The market profile adds
// ticker classification and a market snapshot in front of the shared
// search/scrape/synthesize flow; the basic profile skips both.
func (p *Pipeline) Run(ctx context.Context, companyName string, profile models.Profile) (*Result, error) {
	result := &Result{
		CompanyName: companyName,
		Profile:     profile,
	}

	if profile == models.ProfileMarket {
		p.report(StageClassify, "Checking if company is publicly traded...", 10)
		ticker, err := p.classifyTicker(ctx, companyName)
		if err != nil {
			return nil, err
		}
		result.Identity.Ticker = ticker

		if ticker != "" && p.market != nil {
			p.report(StageMarket, "Fetching stock data for "+ticker+"...", 20)
			result.Market, result.MarketWarning = p.fetchSnapshot(ticker)
		}
	}

	p.report(StageSearch, "Searching for company information...", 35)
	url, searchContext, err := p.resolveCompany(ctx, companyName, profile)
	if err != nil {
		return nil, err
	}
	result.Identity.CanonicalURL = url
	result.Identity.SearchContext = searchContext

	p.report(StageScrape, "Scraping company website...", 55)
	result.WebsiteContent, result.ScrapeWarning = p.harvestPage(ctx, url)

	p.report(StageSynthesize, "Analyzing data and generating company analysis...", 75)
	analysis, err := p.synthesize(ctx, result)
	if err != nil {
		return nil, err
	}
	result.Analysis = analysis

	p.report(StageDone, "Analysis complete!", 100)
	return result, nil
}
