package mock

import (
	"context"

	"github.com/fwojciec/tailor"
)

var _ tailor.ReportService = (*ReportService)(nil)

// ReportService is a mock implementation of tailor.ReportService.
type ReportService struct {
	CreateReportFn   func(ctx context.Context, report *tailor.Report) error
	FindReportByIDFn func(ctx context.Context, id string) (*tailor.Report, error)
	FindReportsFn    func(ctx context.Context, filter tailor.ReportFilter) ([]*tailor.Report, error)
	DeleteReportFn   func(ctx context.Context, id string) error
}

func (s *ReportService) CreateReport(ctx context.Context, report *tailor.Report) error {
	return s.CreateReportFn(ctx, report)
}

func (s *ReportService) FindReportByID(ctx context.Context, id string) (*tailor.Report, error) {
	return s.FindReportByIDFn(ctx, id)
}

func (s *ReportService) FindReports(ctx context.Context, filter tailor.ReportFilter) ([]*tailor.Report, error) {
	return s.FindReportsFn(ctx, filter)
}

func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	return s.DeleteReportFn(ctx, id)
}

var _ tailor.TailorService = (*TailorService)(nil)

// TailorService is a mock implementation of tailor.TailorService.
type TailorService struct {
	TailorFn func(ctx context.Context, req *tailor.TailorRequest) (*tailor.Report, error)
}

func (s *TailorService) Tailor(ctx context.Context, req *tailor.TailorRequest) (*tailor.Report, error) {
	return s.TailorFn(ctx, req)
}
