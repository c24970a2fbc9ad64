package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dyike/DealFlowGo/internal/models"
	"github.com/dyike/DealFlowGo/internal/utils"
)

// The basic profile feeds the model a shorter content window than the full
// memo profile.
const basicContentLimit = 3000

// synthesize turns everything gathered so far into a structured analysis.
// The model is instructed to answer with JSON only; anything unparseable
// fails the run with ErrBadAnalysisJSON.
func (p *Pipeline) synthesize(ctx context.Context, result *Result) (*models.AnalysisResult, error) {
	systemPrompt, userPrompt, err := p.buildPrompts(result)
	if err != nil {
		return nil, err
	}

	raw, err := p.llm.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("analysis generation failed: %w", err)
	}

	return parseAnalysis(raw)
}

func (p *Pipeline) buildPrompts(result *Result) (string, string, error) {
	if result.Profile == models.ProfileBasic {
		userPrompt, err := utils.LoadPromptWithContext("analyst_basic_user", map[string]string{
			"CompanyName":    result.CompanyName,
			"SearchContext":  result.Identity.SearchContext,
			"WebsiteContent": truncateRunes(result.WebsiteContent, basicContentLimit),
		})
		return "", userPrompt, err
	}

	systemPrompt, err := utils.LoadPrompt("analyst_memo_system")
	if err != nil {
		return "", "", err
	}

	userPrompt, err := utils.LoadPromptWithContext("analyst_memo_user", map[string]string{
		"CompanyName":    result.CompanyName,
		"StockContext":   stockContext(result),
		"SearchContext":  result.Identity.SearchContext,
		"WebsiteContent": truncateRunes(result.WebsiteContent, p.cfg.PromptContentLimit),
	})
	return systemPrompt, userPrompt, err
}

// stockContext builds the financial metrics block of the memo prompt. A
// private company, a failed market fetch and live data each produce a
// distinct block so the model knows exactly what it is missing.
func stockContext(result *Result) string {
	m := result.Market
	if m == nil {
		if result.MarketWarning != "" {
			return fmt.Sprintf("\nNote: A stock ticker (%s) was identified but live market data could not be retrieved.\n", result.Identity.Ticker)
		}
		return "\nNote: This is a PRIVATE company - no public stock data available.\n"
	}

	sym := m.CurrencySymbol

	rangeStr := models.NotAvailableText
	if m.FiftyTwoWeekLow != nil && m.FiftyTwoWeekHigh != nil {
		rangeStr = fmt.Sprintf("%s%.2f - %s%.2f", sym, *m.FiftyTwoWeekLow, sym, *m.FiftyTwoWeekHigh)
	}

	var sb strings.Builder
	sb.WriteString("\nFINANCIAL METRICS (Live Market Data):\n")
	sb.WriteString("- Stock Ticker: " + m.Ticker + "\n")
	sb.WriteString("- Current Price: " + floatText(m.Price, func(v float64) string { return models.FormatPrice(v, sym) }) + "\n")
	sb.WriteString("- Market Cap: " + floatText(m.MarketCap, func(v float64) string { return models.FormatMoney(v, sym) }) + "\n")
	sb.WriteString("- 1-Year Return: " + floatText(m.YearReturn, func(v float64) string { return fmt.Sprintf("%.2f%%", v) }) + "\n")
	sb.WriteString("- P/E Ratio: " + floatText(m.PERatio, func(v float64) string { return fmt.Sprintf("%.1f", v) }) + "\n")
	sb.WriteString("- 52-Week Range: " + rangeStr + "\n")
	sb.WriteString("- Sector: " + orNA(m.Sector) + "\n")
	sb.WriteString("- Industry: " + orNA(m.Industry) + "\n")
	if m.Employees != nil {
		sb.WriteString("- Employees: " + models.FormatCount(*m.Employees) + "\n")
	} else {
		sb.WriteString("- Employees: " + models.NotAvailableText + "\n")
	}
	sb.WriteString("- Beta: " + floatText(m.Beta, models.FormatRatio) + "\n")

	return sb.String()
}

func floatText(v *float64, format func(float64) string) string {
	if v == nil {
		return models.NotAvailableText
	}
	return format(*v)
}

// parseAnalysis decodes the model answer. Code fences are stripped first
// since some models wrap JSON in them despite instructions; beyond that the
// document must parse as-is.
func parseAnalysis(raw string) (*models.AnalysisResult, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var analysis models.AnalysisResult
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadAnalysisJSON, err)
	}

	analysis.Normalize()
	return &analysis, nil
}
