package models

import "testing"

func TestNormalizeFoldsLegacySummary(t *testing.T) {
	a := AnalysisResult{LegacySummary: "Two sentence overview."}
	a.Normalize()

	if a.ExecutiveSummary != "Two sentence overview." {
		t.Fatalf("expected legacy summary folded in, got %q", a.ExecutiveSummary)
	}
}

func TestNormalizeKeepsExplicitSummary(t *testing.T) {
	a := AnalysisResult{
		ExecutiveSummary: "Primary.",
		LegacySummary:    "Fallback.",
	}
	a.Normalize()

	if a.ExecutiveSummary != "Primary." {
		t.Fatalf("explicit summary must win, got %q", a.ExecutiveSummary)
	}
}

func TestNormalizeUppercasesEnums(t *testing.T) {
	a := AnalysisResult{RiskRating: " medium ", Verdict: "buy"}
	a.Normalize()

	if a.RiskRating != RiskMedium {
		t.Fatalf("expected MEDIUM, got %q", a.RiskRating)
	}
	if a.Verdict != VerdictBuy {
		t.Fatalf("expected BUY, got %q", a.Verdict)
	}
}

func TestTextAccessorsDefault(t *testing.T) {
	var a AnalysisResult

	if got := a.SummaryText(); got != NoSummaryText {
		t.Fatalf("SummaryText: got %q", got)
	}
	if got := a.RiskRatingText(); got != NotAvailableText {
		t.Fatalf("RiskRatingText: got %q", got)
	}
	if got := a.VerdictText(); got != NotAvailableText {
		t.Fatalf("VerdictText: got %q", got)
	}
}

func TestSWOTSectionsPreserveNilVersusEmpty(t *testing.T) {
	a := AnalysisResult{
		Strengths:  []string{"strong brand"},
		Weaknesses: []string{},
	}

	sections := a.SWOTSections()
	if len(sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(sections))
	}
	if sections[0].Title != "Strengths" || len(sections[0].Items) != 1 {
		t.Fatalf("unexpected strengths section: %+v", sections[0])
	}
	if sections[1].Items == nil || len(sections[1].Items) != 0 {
		t.Fatalf("weaknesses must stay present-but-empty, got %+v", sections[1].Items)
	}
	if sections[2].Items != nil {
		t.Fatalf("opportunities must stay nil when absent, got %+v", sections[2].Items)
	}
}
