package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dyike/DealFlowGo/internal/config"
	"github.com/dyike/DealFlowGo/internal/dataflows"
	"github.com/dyike/DealFlowGo/internal/models"
)

const goodAnalysisJSON = `{
	"executive_summary": "Acme Co is a diversified manufacturer with strong cash flow.",
	"risk_rating": "medium",
	"investment_verdict": "hold",
	"strengths": ["Dominant market share in anvils."],
	"weaknesses": [],
	"opportunities": ["Expansion into rocket skates."],
	"threats": ["Roadrunner supply volatility."],
	"market_analysis": "Competitive but stable.",
	"strategic_recommendations": ["Diversify the catalog."],
	"investment_considerations": "Valuation is rich."
}`

type fakeSearcher struct {
	websiteResults []dataflows.SearchResult
	newsResults    []dataflows.SearchResult
	err            error

	searchCalls int
}

func (f *fakeSearcher) Search(_ context.Context, query string, _ int) ([]dataflows.SearchResult, error) {
	f.searchCalls++
	if f.err != nil {
		return nil, f.err
	}
	if strings.Contains(query, "official website") {
		return f.websiteResults, nil
	}
	return f.newsResults, nil
}

type fakeScraper struct {
	markdown string
	err      error
}

func (f *fakeScraper) Scrape(_ context.Context, _ string) (*dataflows.ScrapeResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dataflows.ScrapeResult{Markdown: f.markdown}, nil
}

type fakeCompleter struct {
	classifyAnswer string
	completeAnswer string
	completeErr    error

	classifyCalls int
	lastUserPrompt string
}

func (f *fakeCompleter) Complete(_ context.Context, _, userPrompt string) (string, error) {
	f.lastUserPrompt = userPrompt
	if f.completeErr != nil {
		return "", f.completeErr
	}
	return f.completeAnswer, nil
}

func (f *fakeCompleter) Classify(_ context.Context, _, _ string) (string, error) {
	f.classifyCalls++
	return f.classifyAnswer, nil
}

type fakeMarket struct {
	snapshot *models.MarketSnapshot
	err      error
	called   bool
}

func (f *fakeMarket) GetSnapshot(_ string) (*models.MarketSnapshot, error) {
	f.called = true
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshot, nil
}

func testConfig() *config.Config {
	return &config.Config{
		WebsiteResults:     3,
		NewsResults:        5,
		SnippetLimit:       400,
		PageHarvestLimit:   5000,
		PromptContentLimit: 4000,
	}
}

func websiteResults() []dataflows.SearchResult {
	return []dataflows.SearchResult{
		{Title: "Acme Co", URL: "https://acme.example", Content: "Official site of Acme Co."},
		{Title: "Acme Co - About", URL: "https://acme.example/about", Content: "About page."},
	}
}

func newsResults() []dataflows.SearchResult {
	return []dataflows.SearchResult{
		{Title: "Acme expands", URL: "https://news.example/1", Content: "Acme Co announced a new factory."},
	}
}

func TestRunBasicEndToEnd(t *testing.T) {
	searcher := &fakeSearcher{websiteResults: websiteResults(), newsResults: newsResults()}
	scraper := &fakeScraper{markdown: "# Acme Co\n\nWe make everything."}
	completer := &fakeCompleter{completeAnswer: goodAnalysisJSON}

	var percents []int
	p := New(testConfig(), searcher, scraper, completer, nil, func(s Status) {
		percents = append(percents, s.Percent)
	})

	result, err := p.Run(context.Background(), "Acme Co", models.ProfileBasic)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Identity.CanonicalURL != "https://acme.example" {
		t.Fatalf("canonical URL: got %q", result.Identity.CanonicalURL)
	}
	if completer.classifyCalls != 0 {
		t.Fatalf("basic profile must not classify tickers, got %d calls", completer.classifyCalls)
	}
	if searcher.searchCalls != 1 {
		t.Fatalf("basic profile must not run the news search, got %d searches", searcher.searchCalls)
	}
	if result.Analysis == nil || result.Analysis.ExecutiveSummary == "" {
		t.Fatalf("analysis missing: %+v", result.Analysis)
	}
	if result.Analysis.RiskRating != models.RiskMedium {
		t.Fatalf("risk rating not normalized: %q", result.Analysis.RiskRating)
	}

	for i := 1; i < len(percents); i++ {
		if percents[i] < percents[i-1] {
			t.Fatalf("status percent went backwards: %v", percents)
		}
	}
	if len(percents) == 0 || percents[len(percents)-1] != 100 {
		t.Fatalf("final status must be 100, got %v", percents)
	}
}

func TestRunStopsWhenNoWebsiteResults(t *testing.T) {
	searcher := &fakeSearcher{}
	completer := &fakeCompleter{completeAnswer: goodAnalysisJSON}

	p := New(testConfig(), searcher, &fakeScraper{}, completer, nil, nil)
	_, err := p.Run(context.Background(), "Acme Co", models.ProfileBasic)
	if !errors.Is(err, ErrNoWebsite) {
		t.Fatalf("expected ErrNoWebsite, got %v", err)
	}
}

func TestScrapeFailureDegradesToEmptyContent(t *testing.T) {
	searcher := &fakeSearcher{websiteResults: websiteResults(), newsResults: newsResults()}
	scraper := &fakeScraper{err: errors.New("connection refused")}
	completer := &fakeCompleter{completeAnswer: goodAnalysisJSON}

	p := New(testConfig(), searcher, scraper, completer, nil, nil)
	result, err := p.Run(context.Background(), "Acme Co", models.ProfileBasic)
	if err != nil {
		t.Fatalf("scrape failure must not fail the run: %v", err)
	}
	if result.WebsiteContent != "" {
		t.Fatalf("expected empty website content, got %q", result.WebsiteContent)
	}
	if !strings.Contains(result.ScrapeWarning, "connection refused") {
		t.Fatalf("scrape failure must surface as a warning, got %q", result.ScrapeWarning)
	}
	if result.Analysis == nil {
		t.Fatal("analysis should still be produced")
	}
}

func TestMarketProfilePrivateCompany(t *testing.T) {
	searcher := &fakeSearcher{websiteResults: websiteResults(), newsResults: newsResults()}
	completer := &fakeCompleter{classifyAnswer: "PRIVATE", completeAnswer: goodAnalysisJSON}
	market := &fakeMarket{}

	p := New(testConfig(), searcher, &fakeScraper{}, completer, market, nil)
	result, err := p.Run(context.Background(), "Acme Co", models.ProfileMarket)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Identity.Public() {
		t.Fatalf("PRIVATE answer must clear the ticker, got %q", result.Identity.Ticker)
	}
	if market.called {
		t.Fatal("market data must not be fetched for private companies")
	}
	if !strings.Contains(completer.lastUserPrompt, "PRIVATE company") {
		t.Fatalf("prompt must state the company is private:\n%s", completer.lastUserPrompt)
	}
}

func TestMarketProfileFetchFailure(t *testing.T) {
	searcher := &fakeSearcher{websiteResults: websiteResults(), newsResults: newsResults()}
	completer := &fakeCompleter{classifyAnswer: "acme", completeAnswer: goodAnalysisJSON}
	market := &fakeMarket{err: errors.New("quote backend down")}

	p := New(testConfig(), searcher, &fakeScraper{}, completer, market, nil)
	result, err := p.Run(context.Background(), "Acme Co", models.ProfileMarket)
	if err != nil {
		t.Fatalf("market failure must not fail the run: %v", err)
	}

	if result.Identity.Ticker != "ACME" {
		t.Fatalf("classifier answer not upper-cased: %q", result.Identity.Ticker)
	}
	if result.Market != nil {
		t.Fatal("snapshot must be absent after a failed fetch")
	}
	if result.MarketWarning == "" {
		t.Fatal("expected a market warning")
	}
	if !strings.Contains(completer.lastUserPrompt, "could not be retrieved") {
		t.Fatalf("prompt must distinguish a failed fetch from a private company:\n%s", completer.lastUserPrompt)
	}
	if strings.Contains(completer.lastUserPrompt, "PRIVATE company") {
		t.Fatal("failed-fetch prompt must not claim the company is private")
	}
}

func TestMarketProfileWithSnapshot(t *testing.T) {
	searcher := &fakeSearcher{websiteResults: websiteResults(), newsResults: newsResults()}
	completer := &fakeCompleter{classifyAnswer: "ACME", completeAnswer: goodAnalysisJSON}
	market := &fakeMarket{snapshot: &models.MarketSnapshot{
		Ticker:         "ACME",
		Price:          models.Float(182.52),
		MarketCap:      models.Float(2.5e9),
		CurrencySymbol: "$",
		Sector:         "Industrials",
	}}

	p := New(testConfig(), searcher, &fakeScraper{}, completer, market, nil)
	result, err := p.Run(context.Background(), "Acme Co", models.ProfileMarket)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Market == nil {
		t.Fatal("expected snapshot")
	}
	prompt := completer.lastUserPrompt
	if !strings.Contains(prompt, "FINANCIAL METRICS (Live Market Data)") {
		t.Fatalf("prompt missing metrics block:\n%s", prompt)
	}
	if !strings.Contains(prompt, "$182.52") {
		t.Fatalf("prompt missing price:\n%s", prompt)
	}
	if !strings.Contains(prompt, "$2.50B") {
		t.Fatalf("prompt missing market cap:\n%s", prompt)
	}
}

func TestBadAnalysisJSONFailsRun(t *testing.T) {
	searcher := &fakeSearcher{websiteResults: websiteResults(), newsResults: newsResults()}
	completer := &fakeCompleter{completeAnswer: "Here is my analysis: it looks great."}

	p := New(testConfig(), searcher, &fakeScraper{}, completer, nil, nil)
	_, err := p.Run(context.Background(), "Acme Co", models.ProfileBasic)
	if !errors.Is(err, ErrBadAnalysisJSON) {
		t.Fatalf("expected ErrBadAnalysisJSON, got %v", err)
	}
}

func TestAnalysisToleratesMissingKeys(t *testing.T) {
	searcher := &fakeSearcher{websiteResults: websiteResults(), newsResults: newsResults()}
	completer := &fakeCompleter{completeAnswer: `{"summary": "Short overview.", "strengths": ["brand"]}`}

	p := New(testConfig(), searcher, &fakeScraper{}, completer, nil, nil)
	result, err := p.Run(context.Background(), "Acme Co", models.ProfileBasic)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Analysis.ExecutiveSummary != "Short overview." {
		t.Fatalf("legacy summary not folded: %q", result.Analysis.ExecutiveSummary)
	}
	if result.Analysis.Threats != nil {
		t.Fatalf("absent keys must stay nil, got %+v", result.Analysis.Threats)
	}
}

func TestParseAnalysisStripsCodeFence(t *testing.T) {
	raw := "```json\n" + goodAnalysisJSON + "\n```"
	analysis, err := parseAnalysis(raw)
	if err != nil {
		t.Fatalf("parseAnalysis: %v", err)
	}
	if analysis.Verdict != models.VerdictHold {
		t.Fatalf("got verdict %q", analysis.Verdict)
	}
}

func TestSearchContextFormat(t *testing.T) {
	cfg := testConfig()
	cfg.SnippetLimit = 10

	long := strings.Repeat("x", 50)
	searcher := &fakeSearcher{
		websiteResults: []dataflows.SearchResult{{Title: "Acme", URL: "https://acme.example", Content: long}},
		newsResults:    []dataflows.SearchResult{{Title: "News", URL: "https://news.example", Content: long}},
	}

	p := New(cfg, searcher, &fakeScraper{}, &fakeCompleter{completeAnswer: goodAnalysisJSON}, nil, nil)
	_, searchContext, err := p.resolveCompany(context.Background(), "Acme Co", models.ProfileMarket)
	if err != nil {
		t.Fatalf("resolveCompany: %v", err)
	}

	if !strings.Contains(searchContext, "=== COMPANY WEBSITE SEARCH ===") {
		t.Fatalf("missing website heading:\n%s", searchContext)
	}
	if !strings.Contains(searchContext, "=== RECENT NEWS & MARKET CONTEXT ===") {
		t.Fatalf("missing news heading:\n%s", searchContext)
	}
	if !strings.Contains(searchContext, "Content: "+strings.Repeat("x", 10)+"...") {
		t.Fatalf("snippet not capped at %d chars:\n%s", cfg.SnippetLimit, searchContext)
	}
	if strings.Contains(searchContext, strings.Repeat("x", 11)) {
		t.Fatalf("snippet exceeds cap:\n%s", searchContext)
	}
}

func TestBasicProfileSearchContext(t *testing.T) {
	long := strings.Repeat("x", 500)
	searcher := &fakeSearcher{
		websiteResults: []dataflows.SearchResult{{Title: "Acme", URL: "https://acme.example", Content: long}},
		newsResults:    []dataflows.SearchResult{{Title: "News", URL: "https://news.example", Content: long}},
	}

	p := New(testConfig(), searcher, &fakeScraper{}, &fakeCompleter{completeAnswer: goodAnalysisJSON}, nil, nil)
	_, searchContext, err := p.resolveCompany(context.Background(), "Acme Co", models.ProfileBasic)
	if err != nil {
		t.Fatalf("resolveCompany: %v", err)
	}

	if searcher.searchCalls != 1 {
		t.Fatalf("basic profile must issue exactly one search, got %d", searcher.searchCalls)
	}
	if strings.Contains(searchContext, "===") {
		t.Fatalf("basic profile must not have section headings:\n%s", searchContext)
	}
	if !strings.Contains(searchContext, "Result 1:") {
		t.Fatalf("missing result entry:\n%s", searchContext)
	}
	if !strings.Contains(searchContext, "Content: "+strings.Repeat("x", 300)+"...") {
		t.Fatalf("snippet not capped at 300 chars:\n%s", searchContext)
	}
	if strings.Contains(searchContext, strings.Repeat("x", 301)) {
		t.Fatalf("snippet exceeds cap:\n%s", searchContext)
	}
}

func TestHarvestPageCapsContent(t *testing.T) {
	cfg := testConfig()
	cfg.PageHarvestLimit = 100

	scraper := &fakeScraper{markdown: strings.Repeat("a", 500)}
	p := New(cfg, &fakeSearcher{}, scraper, &fakeCompleter{}, nil, nil)

	content, warning := p.harvestPage(context.Background(), "https://acme.example")
	if len(content) != 100 {
		t.Fatalf("expected 100 chars, got %d", len(content))
	}
	if warning != "" {
		t.Fatalf("unexpected warning: %q", warning)
	}
}

func TestTruncateRunesKeepsMultibyteIntact(t *testing.T) {
	s := strings.Repeat("日", 10)
	got := truncateRunes(s, 4)
	if got != strings.Repeat("日", 4) {
		t.Fatalf("got %q", got)
	}
}
