package mock

import "github.com/fwojciec/tailor"

var _ tailor.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of tailor.Extractor.
type Extractor struct {
	ExtractFn func(data []byte) *tailor.Extraction
}

func (e *Extractor) Extract(data []byte) *tailor.Extraction {
	return e.ExtractFn(data)
}
