package models

import "strings"

// RiskRating is the closed risk classification produced by the analysis.
type RiskRating string

const (
	RiskLow    RiskRating = "LOW"
	RiskMedium RiskRating = "MEDIUM"
	RiskHigh   RiskRating = "HIGH"
)

// Verdict is the closed investment recommendation.
type Verdict string

const (
	VerdictBuy   Verdict = "BUY"
	VerdictHold  Verdict = "HOLD"
	VerdictSell  Verdict = "SELL"
	VerdictWatch Verdict = "WATCH"
)

// Placeholder strings substituted for missing analysis fields. They are
// declared once here so the document and interactive renderers can never
// drift apart on defaults.
const (
	NoSummaryText       = "No summary available."
	NotAvailableText    = "N/A"
	NoneListedTemplate  = "No %s listed"
	PrivateCompanyLabel = "Private Company - No public stock data available"
)

// AnalysisResult is the structured assessment returned by the synthesis
// stage. Any field may be absent in the raw model response; renderers must
// consume it only through the *Text accessors or check list presence
// explicitly, never assume population.
type AnalysisResult struct {
	ExecutiveSummary string     `json:"executive_summary,omitempty"`
	RiskRating       RiskRating `json:"risk_rating,omitempty"`
	Verdict          Verdict    `json:"investment_verdict,omitempty"`

	Strengths     []string `json:"strengths,omitempty"`
	Weaknesses    []string `json:"weaknesses,omitempty"`
	Opportunities []string `json:"opportunities,omitempty"`
	Threats       []string `json:"threats,omitempty"`

	MarketAnalysis           string   `json:"market_analysis,omitempty"`
	StrategicRecommendations []string `json:"strategic_recommendations,omitempty"`
	InvestmentConsiderations string   `json:"investment_considerations,omitempty"`

	// LegacySummary holds the basic-profile "summary" key. Normalize folds it
	// into ExecutiveSummary when that field is missing.
	LegacySummary string `json:"summary,omitempty"`
}

// Normalize folds the legacy summary key into ExecutiveSummary and
// upper-cases the categorical fields so comparisons against the enum
// constants are reliable.
func (a *AnalysisResult) Normalize() {
	if a.ExecutiveSummary == "" && a.LegacySummary != "" {
		a.ExecutiveSummary = a.LegacySummary
	}
	a.RiskRating = RiskRating(strings.ToUpper(strings.TrimSpace(string(a.RiskRating))))
	a.Verdict = Verdict(strings.ToUpper(strings.TrimSpace(string(a.Verdict))))
}

// SummaryText returns the executive summary or the shared placeholder.
func (a *AnalysisResult) SummaryText() string {
	if a.ExecutiveSummary != "" {
		return a.ExecutiveSummary
	}
	return NoSummaryText
}

// RiskRatingText returns the risk rating or "N/A".
func (a *AnalysisResult) RiskRatingText() string {
	if a.RiskRating != "" {
		return string(a.RiskRating)
	}
	return NotAvailableText
}

// VerdictText returns the investment verdict or "N/A".
func (a *AnalysisResult) VerdictText() string {
	if a.Verdict != "" {
		return string(a.Verdict)
	}
	return NotAvailableText
}

// ListSection names one of the four SWOT lists or the recommendations list,
// pairing the display title with the items in stable input order.
type ListSection struct {
	Title string
	Items []string
}

// SWOTSections returns the four SWOT lists in canonical order. Items may be
// nil (key absent) or empty (key present, no entries); renderers distinguish
// the two.
func (a *AnalysisResult) SWOTSections() []ListSection {
	return []ListSection{
		{Title: "Strengths", Items: a.Strengths},
		{Title: "Weaknesses", Items: a.Weaknesses},
		{Title: "Opportunities", Items: a.Opportunities},
		{Title: "Threats", Items: a.Threats},
	}
}
