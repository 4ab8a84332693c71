package tailor

// Method identifies the extraction strategy that produced a result.
type Method string

// Extraction methods in pipeline priority order.
const (
	MethodDecode         Method = "decode"
	MethodDelimited      Method = "delimited"
	MethodPatternHarvest Method = "pattern-harvest"
	MethodCleanup        Method = "cleanup"
	MethodTrigram        Method = "trigram"
	MethodNameHarvest    Method = "name-harvest"
	MethodStructural     Method = "structural"
	MethodFallback       Method = "fallback"
)

// Outcome classifies how much of an extraction result is genuine signal.
type Outcome string

const (
	// OutcomeExtracted means the text was recovered from the document.
	OutcomeExtracted Outcome = "extracted"

	// OutcomeLowConfidence means the text is a templated sentence built
	// around a handful of recovered fragments.
	OutcomeLowConfidence Outcome = "low-confidence"

	// OutcomeEmpty means nothing was recovered and the text is the
	// fallback placeholder document.
	OutcomeEmpty Outcome = "empty"
)

// StageStatus is the result of a single strategy attempt.
type StageStatus string

const (
	StageAccepted StageStatus = "accepted"
	StageRejected StageStatus = "rejected"
	StageFailed   StageStatus = "failed"
)

// Attempt records one strategy run during an extraction.
type Attempt struct {
	Method Method      `json:"method"`
	Status StageStatus `json:"status"`
	Error  string      `json:"error,omitempty"`
}

// Extraction holds the result of extracting readable text from a document.
type Extraction struct {
	// Text is never empty. For OutcomeEmpty it is the fallback placeholder.
	Text string `json:"text"`

	// Method is the strategy that produced Text.
	Method Method `json:"method"`

	// Outcome tells callers whether Text is genuine document content.
	Outcome Outcome `json:"outcome"`

	// Attempts lists every strategy tried, in order.
	Attempts []Attempt `json:"attempts,omitempty"`
}

// Extractor recovers readable text from an opaque document blob.
type Extractor interface {
	// Extract never fails: any byte sequence, including empty input,
	// yields an Extraction with non-empty Text.
	Extract(data []byte) *Extraction
}

// ExtractionWriter persists extraction results.
type ExtractionWriter interface {
	WriteExtraction(name string, ext *Extraction) error
}
