package dataflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// LocalScraper fetches a page directly and extracts a markdown-ish text
// rendering with goquery. It exists so memos can be generated without a
// Firecrawl key; the contract is identical to FirecrawlClient.
type LocalScraper struct {
	client *resty.Client
}

// NewLocalScraper creates a scraper that fetches pages with its own HTTP
// client instead of a scraping service.
func NewLocalScraper(config *Config) *LocalScraper {
	client := resty.New()
	client.SetTimeout(time.Duration(config.HTTPTimeoutSeconds) * time.Second)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; DealFlowGo/1.0)")

	return &LocalScraper{client: client}
}

// Scrape fetches url and converts the main textual content to markdown. The
// call is attempted exactly once.
func (ls *LocalScraper) Scrape(ctx context.Context, url string) (*ScrapeResult, error) {
	resp, err := ls.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("HTTP error %d when fetching %s", resp.StatusCode(), url)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return &ScrapeResult{Markdown: extractMarkdown(doc)}, nil
}

// extractMarkdown walks headings, paragraphs and list items in document
// order and emits them as minimal markdown.
func extractMarkdown(doc *goquery.Document) string {
	doc.Find("script, style, noscript, nav, footer").Remove()

	var sb strings.Builder

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		sb.WriteString("# " + title + "\n\n")
	}

	doc.Find("h1, h2, h3, p, li").Each(func(_ int, s *goquery.Selection) {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text == "" {
			return
		}

		switch goquery.NodeName(s) {
		case "h1":
			sb.WriteString("# " + text + "\n\n")
		case "h2":
			sb.WriteString("## " + text + "\n\n")
		case "h3":
			sb.WriteString("### " + text + "\n\n")
		case "li":
			sb.WriteString("- " + text + "\n")
		default:
			sb.WriteString(text + "\n\n")
		}
	})

	return strings.TrimSpace(sb.String())
}
