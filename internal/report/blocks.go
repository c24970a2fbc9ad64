package report

import (
	"fmt"
	"strings"

	"github.com/dyike/DealFlowGo/internal/models"
)

// BuildBlocks projects one analysis into the interactive block sequence. The
// order mirrors the memo document: header, metrics, summary, SWOT grid,
// recommendations, considerations, then the price chart.
func BuildBlocks(companyName string, analysis *models.AnalysisResult, market *models.MarketSnapshot, marketWarning, scrapeWarning string) []models.DisplayBlock {
	var blocks []models.DisplayBlock

	header := models.DisplayBlock{
		Kind:  models.BlockHeader,
		Title: DisplayName(companyName),
	}
	if market != nil && market.Ticker != "" {
		header.Body = market.TickerDisplay()
	}
	blocks = append(blocks, header)

	switch {
	case market != nil && market.Price != nil:
		blocks = append(blocks, metricsBlock(market), marketDetailsBlock(market))
	case marketWarning != "":
		blocks = append(blocks, models.DisplayBlock{
			Kind: models.BlockNotice,
			Body: marketWarning,
		})
	default:
		blocks = append(blocks, models.DisplayBlock{
			Kind: models.BlockNotice,
			Body: models.PrivateCompanyLabel,
		})
	}

	if scrapeWarning != "" {
		blocks = append(blocks, models.DisplayBlock{
			Kind: models.BlockNotice,
			Body: scrapeWarning,
		})
	}

	blocks = append(blocks, models.DisplayBlock{Kind: models.BlockDivider})

	blocks = append(blocks, models.DisplayBlock{
		Kind:  models.BlockText,
		Title: "Executive Summary",
		Body:  analysis.SummaryText(),
	})

	if analysis.MarketAnalysis != "" {
		blocks = append(blocks, models.DisplayBlock{
			Kind:  models.BlockText,
			Title: "Market Analysis",
			Body:  analysis.MarketAnalysis,
		})
	}

	blocks = append(blocks, models.DisplayBlock{Kind: models.BlockDivider})

	for _, section := range analysis.SWOTSections() {
		// A nil list means the model never produced the key; an empty list
		// means it produced the key with nothing in it. Only the latter gets
		// an explicit placeholder.
		if section.Items == nil {
			continue
		}
		block := models.DisplayBlock{
			Kind:  models.BlockList,
			Title: section.Title,
			Items: section.Items,
		}
		if len(section.Items) == 0 {
			block.Items = []string{fmt.Sprintf(models.NoneListedTemplate, strings.ToLower(section.Title))}
		}
		blocks = append(blocks, block)
	}

	if len(analysis.StrategicRecommendations) > 0 {
		blocks = append(blocks, models.DisplayBlock{
			Kind:     models.BlockSection,
			Title:    "Strategic Recommendations",
			Items:    analysis.StrategicRecommendations,
			Expanded: true,
		})
	}

	if analysis.InvestmentConsiderations != "" {
		blocks = append(blocks, models.DisplayBlock{
			Kind:  models.BlockText,
			Title: "Investment Considerations",
			Body:  analysis.InvestmentConsiderations,
		})
	}

	if chart, ok := chartBlock(market); ok {
		blocks = append(blocks, models.DisplayBlock{Kind: models.BlockDivider}, chart)
	}

	return blocks
}

// AppendSaved records where the memo document landed.
func AppendSaved(blocks []models.DisplayBlock, path string) []models.DisplayBlock {
	return append(blocks, models.DisplayBlock{
		Kind: models.BlockSaved,
		Body: path,
	})
}

func metricsBlock(market *models.MarketSnapshot) models.DisplayBlock {
	sym := market.CurrencySymbol

	price := models.MetricCard{
		Label: "Stock Price",
		Value: optionalText(market.Price, func(v float64) string { return models.FormatPrice(v, sym) }),
	}
	if market.LastTradeTime != nil {
		price.Caption = "Last updated: " + market.LastTradeTime.Format("Jan 02, 3:04 PM")
	}

	yearReturn := models.MetricCard{
		Label: "1-Year Return",
		Value: optionalText(market.YearReturn, func(v float64) string { return fmt.Sprintf("%.1f%%", v) }),
	}
	if market.YearReturn != nil {
		yearReturn.Delta = models.FormatPercent(*market.YearReturn)
	}

	return models.DisplayBlock{
		Kind:  models.BlockMetrics,
		Title: "Financial Metrics",
		Metrics: []models.MetricCard{
			price,
			{
				Label: "Market Cap",
				Value: optionalText(market.MarketCap, func(v float64) string { return models.FormatMoney(v, sym) }),
			},
			yearReturn,
			{
				Label: "P/E Ratio",
				Value: optionalText(market.PERatio, func(v float64) string { return fmt.Sprintf("%.1f", v) }),
			},
		},
	}
}

func marketDetailsBlock(market *models.MarketSnapshot) models.DisplayBlock {
	sym := market.CurrencySymbol

	rangeStr := models.NotAvailableText
	if market.FiftyTwoWeekLow != nil && market.FiftyTwoWeekHigh != nil {
		rangeStr = fmt.Sprintf("%s%.2f - %s%.2f", sym, *market.FiftyTwoWeekLow, sym, *market.FiftyTwoWeekHigh)
	}

	items := []string{
		"52-Week Range: " + rangeStr,
		"Sector: " + stringOrNA(market.Sector),
		"Industry: " + stringOrNA(market.Industry),
		"Dividend Yield: " + optionalText(market.DividendYield, func(v float64) string { return fmt.Sprintf("%.2f%%", v*100) }),
		"Beta: " + optionalText(market.Beta, models.FormatRatio),
		"Forward P/E: " + optionalText(market.ForwardPE, func(v float64) string { return fmt.Sprintf("%.1f", v) }),
		"Employees: " + optionalInt(market.Employees),
		"Revenue: " + optionalText(market.Revenue, func(v float64) string { return models.FormatMoney(v, sym) }),
		"Profit Margin: " + optionalText(market.ProfitMargin, func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) }),
	}

	return models.DisplayBlock{
		Kind:  models.BlockSection,
		Title: "More Market Details",
		Items: items,
	}
}

func chartBlock(market *models.MarketSnapshot) (models.DisplayBlock, bool) {
	if market == nil || len(market.History) < 2 {
		return models.DisplayBlock{}, false
	}

	series := make([]float64, len(market.History))
	low, high := market.History[0].Close.InexactFloat64(), market.History[0].Close.InexactFloat64()
	for i, point := range market.History {
		v := point.Close.InexactFloat64()
		series[i] = v
		if v < low {
			low = v
		}
		if v > high {
			high = v
		}
	}

	sym := market.CurrencySymbol
	return models.DisplayBlock{
		Kind:   models.BlockChart,
		Title:  "Stock Price History (1 Year)",
		Body:   fmt.Sprintf("52-week range: %s%.2f - %s%.2f", sym, low, sym, high),
		Series: series,
	}, true
}

func optionalInt(v *int64) string {
	if v == nil {
		return models.NotAvailableText
	}
	return models.FormatCount(*v)
}
