package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/tailor"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ tailor.ReportService = (*ReportService)(nil)

// ReportService implements tailor.ReportService using SQLite.
type ReportService struct {
	db *DB
}

// NewReportService creates a new ReportService.
func NewReportService(db *DB) *ReportService {
	return &ReportService{db: db}
}

const reportColumns = `id, file_name, content_hash, method, outcome, job_description, resume_text,
	skills, summary, score, explanation, projects, created_at`

// CreateReport creates a new report with a generated ID and timestamp.
func (s *ReportService) CreateReport(ctx context.Context, report *tailor.Report) error {
	if err := report.Validate(); err != nil {
		return err
	}

	skills, err := encodeList(report.Analysis.Skills)
	if err != nil {
		return err
	}
	projects, err := encodeList(report.Analysis.Projects)
	if err != nil {
		return err
	}

	report.ID = uuid.New().String()
	report.CreatedAt = time.Now().UTC().Truncate(time.Second)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (`+reportColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, report.ID, report.FileName, report.ContentHash, string(report.Method), string(report.Outcome),
		report.JobDescription, report.ResumeText,
		skills, report.Analysis.Summary, report.Analysis.Score, report.Analysis.Explanation, projects,
		report.CreatedAt.Format(time.RFC3339))

	return err
}

// FindReportByID retrieves a report by ID.
func (s *ReportService) FindReportByID(ctx context.Context, id string) (*tailor.Report, error) {
	report, err := scanReport(s.db.QueryRowContext(ctx, `
		SELECT `+reportColumns+`
		FROM reports
		WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, tailor.Errorf(tailor.ENOTFOUND, "report not found")
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

// FindReports retrieves reports matching the filter, newest first.
func (s *ReportService) FindReports(ctx context.Context, filter tailor.ReportFilter) ([]*tailor.Report, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + reportColumns + " FROM reports WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*tailor.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

// DeleteReport permanently removes a report.
func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM reports WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return tailor.Errorf(tailor.ENOTFOUND, "report not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (*tailor.Report, error) {
	var report tailor.Report
	var method, outcome, skills, projects, createdAt string

	if err := row.Scan(&report.ID, &report.FileName, &report.ContentHash, &method, &outcome,
		&report.JobDescription, &report.ResumeText,
		&skills, &report.Analysis.Summary, &report.Analysis.Score, &report.Analysis.Explanation, &projects,
		&createdAt); err != nil {
		return nil, err
	}

	report.Method = tailor.Method(method)
	report.Outcome = tailor.Outcome(outcome)

	var err error
	if report.Analysis.Skills, err = decodeList(skills, "skills"); err != nil {
		return nil, err
	}
	if report.Analysis.Projects, err = decodeList(projects, "projects"); err != nil {
		return nil, err
	}
	if report.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}

	return &report, nil
}
