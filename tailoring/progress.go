package tailoring

import "github.com/fwojciec/tailor"

// ProgressEvent reports progress during batch extraction.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Name      string
	Outcome   tailor.Outcome
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFinished
)

// ProgressFunc receives progress events. It may be called concurrently.
type ProgressFunc func(ProgressEvent)
