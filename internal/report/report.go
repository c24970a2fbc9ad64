package report

import (
	"fmt"
	"os"
	"time"

	"github.com/dyike/DealFlowGo/internal/models"
)

// Render produces both projections of an analysis: the memo PDF and the
// interactive block sequence. When documentPath is non-empty the PDF is also
// persisted there and a saved block is appended.
func Render(companyName string, analysis *models.AnalysisResult, market *models.MarketSnapshot, marketWarning, scrapeWarning, documentPath string) (*models.RenderedReport, error) {
	document, err := RenderPDF(companyName, analysis, market, time.Now())
	if err != nil {
		return nil, err
	}

	blocks := BuildBlocks(companyName, analysis, market, marketWarning, scrapeWarning)

	rendered := &models.RenderedReport{
		Document: document,
		Blocks:   blocks,
	}

	if documentPath != "" {
		if err := os.WriteFile(documentPath, document, 0o644); err != nil {
			return nil, fmt.Errorf("failed to save memo to %s: %w", documentPath, err)
		}
		rendered.DocumentPath = documentPath
		rendered.Blocks = AppendSaved(rendered.Blocks, documentPath)
	}

	return rendered, nil
}
