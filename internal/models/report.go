package models

// BlockKind discriminates the display blocks the interactive renderer emits.
type BlockKind string

const (
	BlockHeader  BlockKind = "header"
	BlockText    BlockKind = "text"
	BlockSection BlockKind = "section"
	BlockMetrics BlockKind = "metrics"
	BlockList    BlockKind = "list"
	BlockNotice  BlockKind = "notice"
	BlockChart   BlockKind = "chart"
	BlockSaved   BlockKind = "saved"
	BlockDivider BlockKind = "divider"
)

// MetricCard is one labelled value in a metrics row, with an optional caption
// and signed delta annotation.
type MetricCard struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Caption string `json:"caption,omitempty"`
	Delta   string `json:"delta,omitempty"`
}

// DisplayBlock is one unit of the interactive report. The sequence of blocks
// is the interactive projection of an analysis; rendering them to a terminal
// (or anything else) is the display layer's concern.
type DisplayBlock struct {
	Kind  BlockKind `json:"kind"`
	Title string    `json:"title,omitempty"`
	Body  string    `json:"body,omitempty"`

	// Items carries list entries for BlockList.
	Items []string `json:"items,omitempty"`

	// Metrics carries the cards for BlockMetrics.
	Metrics []MetricCard `json:"metrics,omitempty"`

	// Series carries chart values for BlockChart, oldest first.
	Series []float64 `json:"series,omitempty"`

	// Expanded marks collapsible sections that start open.
	Expanded bool `json:"expanded,omitempty"`
}

// RenderedReport bundles the two independent projections of one analysis:
// the paginated document bytes and the interactive block sequence. Both are
// derived from the same AnalysisResult and neither is authoritative.
type RenderedReport struct {
	Document []byte         `json:"-"`
	Blocks   []DisplayBlock `json:"blocks"`

	// DocumentPath is where the document artifact was persisted, when it was.
	DocumentPath string `json:"document_path,omitempty"`
}
