package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/dyike/DealFlowGo/internal/models"
)

// Section header colors.
var (
	colorHeading       = [3]int{0, 51, 102}   // dark blue
	colorStrengths     = [3]int{34, 139, 34}  // forest green
	colorWeaknesses    = [3]int{178, 34, 34}  // firebrick red
	colorOpportunities = [3]int{30, 144, 255} // dodger blue
	colorThreats       = [3]int{255, 140, 0}  // dark orange
)

// swotColors pairs the canonical SWOT section order with the header colors.
var swotColors = [][3]int{colorStrengths, colorWeaknesses, colorOpportunities, colorThreats}

// pdfWriter wraps an fpdf document with the layout state shared by every
// section of the memo.
type pdfWriter struct {
	pdf            *fpdf.Fpdf
	effectiveWidth float64
	leftMargin     float64
}

func newPDFWriter() *pdfWriter {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()

	return &pdfWriter{
		pdf:            pdf,
		effectiveWidth: pageWidth - left - right,
		leftMargin:     left,
	}
}

func (w *pdfWriter) centeredLine(text string, height float64) {
	w.pdf.CellFormat(w.effectiveWidth, height, Sanitize(text), "", 1, "C", false, 0, "")
}

func (w *pdfWriter) sectionHeader(title string, color [3]int) {
	w.pdf.SetFont("Arial", "B", 14)
	w.pdf.SetTextColor(color[0], color[1], color[2])
	w.pdf.SetX(w.leftMargin)
	w.pdf.CellFormat(w.effectiveWidth, 10, title, "", 1, "L", false, 0, "")
	w.pdf.SetTextColor(0, 0, 0)
	w.pdf.SetFont("Arial", "", 11)
}

func (w *pdfWriter) paragraph(text string) {
	w.pdf.SetX(w.leftMargin)
	w.pdf.MultiCell(w.effectiveWidth, 6, Sanitize(text), "", "L", false)
}

func (w *pdfWriter) bulletList(items []string) {
	for _, item := range items {
		line := Sanitize("- " + item)
		if line == "- " {
			continue
		}
		w.pdf.SetX(w.leftMargin)
		w.pdf.MultiCell(w.effectiveWidth, 6, line, "", "L", false)
	}
}

// RenderPDF produces the investment memo document. market may be nil for
// private companies or failed fetches; the memo then carries the private
// company label instead of financial metrics. generatedAt is the only clock
// input, so rendering the same inputs twice yields byte-identical output.
func RenderPDF(companyName string, analysis *models.AnalysisResult, market *models.MarketSnapshot, generatedAt time.Time) ([]byte, error) {
	w := newPDFWriter()
	pdf := w.pdf
	pdf.SetCreationDate(generatedAt)
	pdf.SetModificationDate(generatedAt)

	displayName := DisplayName(companyName)

	pdf.SetFont("Arial", "B", 20)
	if market != nil && market.Ticker != "" {
		w.centeredLine(fmt.Sprintf("Investment Memo: %s (%s)", displayName, market.TickerDisplay()), 10)
	} else {
		w.centeredLine(fmt.Sprintf("Investment Memo: %s", displayName), 10)
	}

	pdf.SetFont("Arial", "I", 10)
	w.centeredLine("Generated: "+generatedAt.Format("January 02, 2006"), 6)
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 12)
	w.centeredLine(fmt.Sprintf("Investment Verdict: %s  |  Risk Rating: %s", analysis.VerdictText(), analysis.RiskRatingText()), 8)
	pdf.Ln(5)

	if market != nil && market.Price != nil {
		writeFinancialMetrics(w, market)
	} else {
		pdf.SetFont("Arial", "I", 11)
		w.centeredLine(models.PrivateCompanyLabel, 8)
		pdf.Ln(5)
	}

	w.sectionHeader("Executive Summary", colorHeading)
	w.paragraph(analysis.SummaryText())
	pdf.Ln(5)

	if analysis.MarketAnalysis != "" {
		w.sectionHeader("Market Analysis", colorHeading)
		w.paragraph(analysis.MarketAnalysis)
		pdf.Ln(5)
	}

	for i, section := range analysis.SWOTSections() {
		w.sectionHeader(section.Title, swotColors[i])
		w.bulletList(section.Items)
		pdf.Ln(5)
	}

	if len(analysis.StrategicRecommendations) > 0 {
		w.sectionHeader("Strategic Recommendations", colorHeading)
		w.bulletList(analysis.StrategicRecommendations)
		pdf.Ln(5)
	}

	if analysis.InvestmentConsiderations != "" {
		w.sectionHeader("Investment Considerations", colorHeading)
		w.paragraph(analysis.InvestmentConsiderations)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func writeFinancialMetrics(w *pdfWriter, market *models.MarketSnapshot) {
	w.sectionHeader("Financial Metrics", colorHeading)

	sym := market.CurrencySymbol

	line1 := fmt.Sprintf("Ticker: %s  |  Price: %s  |  Market Cap: %s",
		market.TickerDisplay(),
		optionalText(market.Price, func(v float64) string { return models.FormatPrice(v, sym) }),
		optionalText(market.MarketCap, func(v float64) string { return models.FormatMoney(v, sym) }))
	w.paragraph(line1)

	line2 := fmt.Sprintf("1-Year Return: %s  |  P/E Ratio: %s  |  Sector: %s",
		optionalText(market.YearReturn, func(v float64) string { return fmt.Sprintf("%.1f%%", v) }),
		optionalText(market.PERatio, func(v float64) string { return fmt.Sprintf("%.1f", v) }),
		stringOrNA(market.Sector))
	w.paragraph(line2)

	if market.FiftyTwoWeekLow != nil && market.FiftyTwoWeekHigh != nil {
		line3 := fmt.Sprintf("52-Week Range: %s%.2f - %s%.2f  |  Industry: %s",
			sym, *market.FiftyTwoWeekLow, sym, *market.FiftyTwoWeekHigh, stringOrNA(market.Industry))
		if market.DividendYield != nil {
			line3 += fmt.Sprintf("  |  Dividend Yield: %.2f%%", *market.DividendYield*100)
		}
		w.paragraph(line3)
	}
	w.pdf.Ln(5)
}

func optionalText(v *float64, format func(float64) string) string {
	if v == nil {
		return models.NotAvailableText
	}
	return format(*v)
}

func stringOrNA(s string) string {
	if s == "" {
		return models.NotAvailableText
	}
	return s
}
