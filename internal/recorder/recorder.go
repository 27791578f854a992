package recorder

// AnalysisRecord holds the outcome of one divergence analysis.
type AnalysisRecord struct {
	Symbol           string
	Timeframe        string // "annual" or "quarterly"
	Signal           string
	RevenueChangePct float64
	PriceChangePct   float64
	Gap              float64
	Periods          string // comma-joined period keys
}

// HeadlineRecord holds one classified headline.
type HeadlineRecord struct {
	Symbol    string
	Title     string
	Source    string
	Sentiment string
	Evidence  string // comma-joined evidence snippets
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordAnalysis(rec *AnalysisRecord) error
	RecordHeadline(rec *HeadlineRecord) error
	Close() error
}
