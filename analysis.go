package tailor

import (
	"context"
	"strings"
)

// AnalysisRequest is the body sent to an analysis backend.
type AnalysisRequest struct {
	JobDescription string `json:"jobDescription"`
	ResumeText     string `json:"resumeText"`
}

// Validate returns an error if the request contains invalid fields.
func (r *AnalysisRequest) Validate() error {
	if strings.TrimSpace(r.JobDescription) == "" {
		return Errorf(EINVALID, "job description required")
	}
	if strings.TrimSpace(r.ResumeText) == "" {
		return Errorf(EINVALID, "resume text required")
	}
	return nil
}

// Analysis holds the normalized cards returned by an analysis backend.
type Analysis struct {
	Skills      []string `json:"skills"`
	Summary     string   `json:"summary"`
	Score       float64  `json:"score"`
	Explanation string   `json:"explanation,omitempty"`
	Projects    []string `json:"projects,omitempty"`
}

// Analyzer compares resume text against a job description.
type Analyzer interface {
	// Analyze returns the tailoring cards for the request.
	// Returns EINVALID if the request is incomplete or the backend
	// response does not match the analysis contract.
	Analyze(ctx context.Context, req *AnalysisRequest) (*Analysis, error)
}

// AnalysisParser decodes a raw backend response into an Analysis.
type AnalysisParser interface {
	ParseAnalysis(data []byte) (*Analysis, error)
}
