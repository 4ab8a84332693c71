package tailor_test

import (
	"testing"

	"github.com/fwojciec/tailor"
	"github.com/stretchr/testify/assert"
)

func TestJobPosting_FullDescription(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		posting tailor.JobPosting
		want    string
	}{
		{"adds title heading", tailor.JobPosting{Title: "SRE", Description: "Keep it running."}, "# SRE\n\nKeep it running."},
		{"keeps body that already has the title", tailor.JobPosting{Title: "SRE", Description: "# SRE\n\nKeep it running."}, "# SRE\n\nKeep it running."},
		{"no title", tailor.JobPosting{Description: "Keep it running."}, "Keep it running."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.posting.FullDescription())
		})
	}
}
