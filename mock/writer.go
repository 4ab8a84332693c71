package mock

import "github.com/fwojciec/tailor"

var _ tailor.ExtractionWriter = (*ExtractionWriter)(nil)

// ExtractionWriter is a mock implementation of tailor.ExtractionWriter.
type ExtractionWriter struct {
	WriteExtractionFn func(name string, ext *tailor.Extraction) error
}

func (w *ExtractionWriter) WriteExtraction(name string, ext *tailor.Extraction) error {
	return w.WriteExtractionFn(name, ext)
}
