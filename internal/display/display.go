package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dyike/DealFlowGo/internal/models"
)

const panelWidth = 80

// UI styles
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(1, 2).
			Width(panelWidth)

	sectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#1E90FF"))

	bodyStyle = lipgloss.NewStyle().
			Width(panelWidth)

	noticeStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#F59E0B"))

	metricCardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6B7280")).
			Padding(0, 1).
			Width(18)

	metricLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6B7280"))

	metricValueStyle = lipgloss.NewStyle().
				Bold(true)

	deltaUpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))

	deltaDownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444"))

	savedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	dividerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#374151"))

	chartStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6"))

	captionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)
)

// swotIcons decorates the SWOT list titles.
var swotIcons = map[string]string{
	"Strengths":     "✅",
	"Weaknesses":    "⚠️ ",
	"Opportunities": "🚀",
	"Threats":       "🛡️ ",
}

// swotColors styles the SWOT list titles.
var swotColors = map[string]lipgloss.Color{
	"Strengths":     lipgloss.Color("#28a745"),
	"Weaknesses":    lipgloss.Color("#dc3545"),
	"Opportunities": lipgloss.Color("#007bff"),
	"Threats":       lipgloss.Color("#ffc107"),
}

// RenderBlocks draws the interactive report onto the terminal, one block at
// a time in input order.
func RenderBlocks(blocks []models.DisplayBlock) {
	for _, block := range blocks {
		renderBlock(block)
	}
}

func renderBlock(block models.DisplayBlock) {
	switch block.Kind {
	case models.BlockHeader:
		title := block.Title
		if block.Body != "" {
			title += "  (" + block.Body + ")"
		}
		fmt.Println(headerStyle.Render("📊 " + title))

	case models.BlockMetrics:
		fmt.Println(sectionTitleStyle.Render(block.Title))
		renderMetricCards(block.Metrics)

	case models.BlockSection:
		marker := "▸"
		if block.Expanded {
			marker = "▾"
		}
		fmt.Println(sectionTitleStyle.Render(marker + " " + block.Title))
		for _, item := range block.Items {
			fmt.Println(bodyStyle.Render("  - " + item))
		}
		fmt.Println()

	case models.BlockList:
		title := block.Title
		if icon, ok := swotIcons[title]; ok {
			title = icon + " " + title
		}
		style := sectionTitleStyle
		if color, ok := swotColors[block.Title]; ok {
			style = lipgloss.NewStyle().Bold(true).Foreground(color)
		}
		fmt.Println(style.Render(title))
		for _, item := range block.Items {
			fmt.Println(bodyStyle.Render("  • " + item))
		}
		fmt.Println()

	case models.BlockText:
		if block.Title != "" {
			fmt.Println(sectionTitleStyle.Render(block.Title))
		}
		fmt.Println(bodyStyle.Render(block.Body))
		fmt.Println()

	case models.BlockNotice:
		fmt.Println(noticeStyle.Render("ℹ️  " + block.Body))
		fmt.Println()

	case models.BlockChart:
		fmt.Println(sectionTitleStyle.Render(block.Title))
		fmt.Println(chartStyle.Render(Sparkline(block.Series, panelWidth-4)))
		if block.Body != "" {
			fmt.Println(captionStyle.Render(block.Body))
		}
		fmt.Println()

	case models.BlockSaved:
		fmt.Println(savedStyle.Render("💾 Memo saved to: " + block.Body))

	case models.BlockDivider:
		fmt.Println(dividerStyle.Render(strings.Repeat("─", panelWidth)))
	}
}

func renderMetricCards(cards []models.MetricCard) {
	rendered := make([]string, 0, len(cards))
	for _, card := range cards {
		var sb strings.Builder
		sb.WriteString(metricLabelStyle.Render(card.Label) + "\n")
		sb.WriteString(metricValueStyle.Render(card.Value))
		if card.Delta != "" {
			style := deltaUpStyle
			if strings.HasPrefix(card.Delta, "-") {
				style = deltaDownStyle
			}
			sb.WriteString("\n" + style.Render(card.Delta))
		}
		if card.Caption != "" {
			sb.WriteString("\n" + captionStyle.Render(card.Caption))
		}
		rendered = append(rendered, metricCardStyle.Render(sb.String()))
	}

	fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
}

// DisplayError shows an error message.
func DisplayError(err error) {
	fmt.Println(errStyle.Render("❌ Error: " + err.Error()))
}

// DisplayWarning shows a non-fatal warning.
func DisplayWarning(message string) {
	fmt.Println(noticeStyle.Render("⚠️  " + message))
}

// DisplaySuccess shows a success message.
func DisplaySuccess(message string) {
	fmt.Println(savedStyle.Render(message))
}

// DisplayStatus shows one progress line while the pipeline runs.
func DisplayStatus(message string, percent int) {
	filled := percent * 20 / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
	fmt.Printf("\r%s %3d%% %s", chartStyle.Render(bar), percent, message+strings.Repeat(" ", 10))
	if percent >= 100 {
		fmt.Println()
	}
}

// sparkLevels are the eight block characters used for chart bars, lowest
// first.
var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders a numeric series as a single-line block chart, bucketed
// down to at most width columns.
func Sparkline(series []float64, width int) string {
	if len(series) == 0 || width <= 0 {
		return ""
	}

	condensed := condense(series, width)

	low, high := condensed[0], condensed[0]
	for _, v := range condensed {
		if v < low {
			low = v
		}
		if v > high {
			high = v
		}
	}

	var sb strings.Builder
	for _, v := range condensed {
		idx := 0
		if high > low {
			idx = int((v - low) / (high - low) * float64(len(sparkLevels)-1))
		}
		sb.WriteRune(sparkLevels[idx])
	}
	return sb.String()
}

// condense averages the series into at most width buckets.
func condense(series []float64, width int) []float64 {
	if len(series) <= width {
		return series
	}

	out := make([]float64, 0, width)
	bucketSize := float64(len(series)) / float64(width)
	for i := 0; i < width; i++ {
		start := int(float64(i) * bucketSize)
		end := int(float64(i+1) * bucketSize)
		if end > len(series) {
			end = len(series)
		}
		if start >= end {
			start = end - 1
		}
		sum := 0.0
		for _, v := range series[start:end] {
			sum += v
		}
		out = append(out, sum/float64(end-start))
	}
	return out
}
