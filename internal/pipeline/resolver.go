package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dyike/DealFlowGo/internal/models"
	"github.com/dyike/DealFlowGo/internal/utils"
)

// PrivateSentinel is the classifier's answer for companies with no public
// listing.
const PrivateSentinel = "PRIVATE"

// classifyTicker asks the classifier model whether the company trades
// publicly. It returns the ticker with its exchange suffix, or "" for a
// private company.
func (p *Pipeline) classifyTicker(ctx context.Context, companyName string) (string, error) {
	systemPrompt, err := utils.LoadPrompt("ticker_classifier_system")
	if err != nil {
		return "", err
	}

	userPrompt, err := utils.LoadPromptWithContext("ticker_classifier_user", map[string]string{
		"CompanyName": companyName,
	})
	if err != nil {
		return "", err
	}

	answer, err := p.llm.Classify(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", fmt.Errorf("ticker classification failed: %w", err)
	}

	ticker := strings.ToUpper(strings.TrimSpace(answer))
	if ticker == PrivateSentinel {
		return "", nil
	}
	return ticker, nil
}

// The basic profile keeps its search context lean: shorter snippets, no news.
const basicSnippetLimit = 300

// resolveCompany searches for the company's official website and assembles
// the search context the analysis prompt consumes. The market profile adds a
// news search and section headings; the basic profile stops after the single
// website query. The first website hit becomes the canonical URL.
func (p *Pipeline) resolveCompany(ctx context.Context, companyName string, profile models.Profile) (string, string, error) {
	query := fmt.Sprintf("%s official website home page", companyName)
	results, err := p.searcher.Search(ctx, query, p.cfg.WebsiteResults)
	if err != nil {
		return "", "", fmt.Errorf("website search failed: %w", err)
	}
	if len(results) == 0 {
		return "", "", fmt.Errorf("%w: %s", ErrNoWebsite, companyName)
	}

	topURL := results[0].URL

	if profile == models.ProfileBasic {
		var sb strings.Builder
		for i, result := range results {
			if i >= p.cfg.WebsiteResults {
				break
			}
			writeSearchHit(&sb, fmt.Sprintf("Result %d", i+1), result.Title, result.URL, result.Content, basicSnippetLimit)
		}
		return topURL, sb.String(), nil
	}

	year := time.Now().Year()
	newsQuery := fmt.Sprintf("%s recent news %d %d", companyName, year-1, year)
	newsResults, err := p.searcher.Search(ctx, newsQuery, p.cfg.NewsResults)
	if err != nil {
		return "", "", fmt.Errorf("news search failed: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("=== COMPANY WEBSITE SEARCH ===\n")
	for i, result := range results {
		if i >= p.cfg.WebsiteResults {
			break
		}
		writeSearchHit(&sb, fmt.Sprintf("Result %d", i+1), result.Title, result.URL, result.Content, p.cfg.SnippetLimit)
	}

	sb.WriteString("\n=== RECENT NEWS & MARKET CONTEXT ===\n")
	for i, result := range newsResults {
		if i >= p.cfg.NewsResults {
			break
		}
		writeSearchHit(&sb, fmt.Sprintf("News %d", i+1), result.Title, result.URL, result.Content, p.cfg.SnippetLimit)
	}

	return topURL, sb.String(), nil
}

func writeSearchHit(sb *strings.Builder, label, title, url, content string, snippetLimit int) {
	sb.WriteString(label + ":\n")
	sb.WriteString("Title: " + orNA(title) + "\n")
	sb.WriteString("URL: " + orNA(url) + "\n")
	sb.WriteString("Content: " + truncateRunes(orNA(content), snippetLimit) + "...\n\n")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// truncateRunes caps s at limit runes without splitting a multi-byte
// character.
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
