package tailor

import (
	"context"
	"time"
)

// Report records a completed tailoring run.
type Report struct {
	ID             string    `json:"id"`
	FileName       string    `json:"fileName"`
	ContentHash    string    `json:"contentHash"`
	Method         Method    `json:"method"`
	Outcome        Outcome   `json:"outcome"`
	JobDescription string    `json:"jobDescription"`
	ResumeText     string    `json:"resumeText"`
	Analysis       Analysis  `json:"analysis"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Validate returns an error if the report contains invalid fields.
func (r *Report) Validate() error {
	if r.ContentHash == "" {
		return Errorf(EINVALID, "report content hash required")
	}
	if r.JobDescription == "" {
		return Errorf(EINVALID, "report job description required")
	}
	if r.ResumeText == "" {
		return Errorf(EINVALID, "report resume text required")
	}
	return nil
}

// ReportService represents a service for managing tailoring reports.
type ReportService interface {
	// CreateReport creates a new report.
	CreateReport(ctx context.Context, report *Report) error

	// FindReportByID retrieves a report by ID.
	// Returns ENOTFOUND if report does not exist.
	FindReportByID(ctx context.Context, id string) (*Report, error)

	// FindReports retrieves reports matching the filter, newest first.
	FindReports(ctx context.Context, filter ReportFilter) ([]*Report, error)

	// DeleteReport permanently removes a report.
	// Returns ENOTFOUND if report does not exist.
	DeleteReport(ctx context.Context, id string) error
}

// ReportFilter represents a filter for FindReports.
type ReportFilter struct {
	ID          *string `json:"id"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// TailorRequest is a single tailoring request: an uploaded resume and the
// job description it should be compared against.
type TailorRequest struct {
	FileName       string
	Data           []byte
	JobDescription string
}

// TailorService produces tailoring reports from uploads.
type TailorService interface {
	// Tailor extracts, analyzes and records a resume.
	// Returns EINVALID if the request is incomplete or the upload yielded
	// no readable text.
	Tailor(ctx context.Context, req *TailorRequest) (*Report, error)
}
