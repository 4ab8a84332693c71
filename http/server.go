package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/tailor"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// MaxUploadBytes is the largest accepted uploaded file.
const MaxUploadBytes = 10 << 20

// maxFormOverhead is the room left in the request body for multipart
// headers and the other form fields.
const maxFormOverhead = 1 << 20

// ShutdownTimeout is how long in-flight requests get to finish on shutdown.
const ShutdownTimeout = 5 * time.Second

// Server exposes extraction and tailoring over HTTP.
type Server struct {
	Addr           string
	AllowedOrigins []string
	Logger         *slog.Logger

	Extractor     tailor.Extractor
	TailorService tailor.TailorService

	// ReportService is optional. Report routes answer 501 without it.
	ReportService tailor.ReportService

	// JobPostings resolves a jobUrl form field on tailor requests. Optional.
	JobPostings tailor.JobPostingService
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	if len(s.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))
	}

	r.Get("/healthz", s.handleHealthz)
	r.Route("/api", func(api chi.Router) {
		api.Post("/extract", s.handleExtract)
		api.Post("/tailor", s.handleTailor)
		api.Route("/reports", func(reports chi.Router) {
			reports.Get("/", s.handleReports)
			reports.Get("/{id}", s.handleReport)
			reports.Delete("/{id}", s.handleDeleteReport)
		})
	})

	return r
}

// ListenAndServe serves on Addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger().Info("http server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func(begin time.Time) {
			s.logger().Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"request_id", middleware.GetReqID(r.Context()),
				"duration", time.Since(begin),
			)
		}(time.Now())
		next.ServeHTTP(ww, r)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// extractResponse is the body returned by POST /api/extract.
type extractResponse struct {
	FileName string `json:"fileName"`
	*tailor.Extraction
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	name, data, err := readUpload(w, r)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	ext := s.Extractor.Extract(data)
	writeJSON(w, http.StatusOK, extractResponse{FileName: name, Extraction: ext})
}

func (s *Server) handleTailor(w http.ResponseWriter, r *http.Request) {
	if s.TailorService == nil {
		s.Error(w, r, tailor.Errorf(tailor.ENOTIMPLEMENTED, "tailoring is not configured"))
		return
	}

	name, data, err := readUpload(w, r)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	job, err := s.jobDescription(r)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	report, err := s.TailorService.Tailor(r.Context(), &tailor.TailorRequest{
		FileName:       name,
		Data:           data,
		JobDescription: job,
	})
	if err != nil {
		s.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// jobDescription returns the jobDescription form field, or the fetched
// posting when only jobUrl is given.
func (s *Server) jobDescription(r *http.Request) (string, error) {
	job := r.FormValue("jobDescription")
	jobURL := r.FormValue("jobUrl")
	if strings.TrimSpace(job) != "" || jobURL == "" {
		return job, nil
	}
	if s.JobPostings == nil {
		return "", tailor.Errorf(tailor.ENOTIMPLEMENTED, "job posting retrieval is not configured")
	}

	posting, err := s.JobPostings.FetchJobPosting(r.Context(), jobURL)
	if err != nil {
		return "", err
	}
	return posting.FullDescription(), nil
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if s.ReportService == nil {
		s.Error(w, r, errReportsDisabled)
		return
	}

	filter, err := parseReportFilter(r)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	reports, err := s.ReportService.FindReports(r.Context(), filter)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	if reports == nil {
		reports = []*tailor.Report{}
	}

	writeJSON(w, http.StatusOK, reports)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if s.ReportService == nil {
		s.Error(w, r, errReportsDisabled)
		return
	}

	report, err := s.ReportService.FindReportByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	if s.ReportService == nil {
		s.Error(w, r, errReportsDisabled)
		return
	}

	if err := s.ReportService.DeleteReport(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

var errReportsDisabled = tailor.Errorf(tailor.ENOTIMPLEMENTED, "report storage is not configured")

// readUpload reads the "file" part of a multipart request.
func readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes+maxFormOverhead)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", nil, tailor.Errorf(tailor.EINVALID, "upload exceeds %d bytes", MaxUploadBytes)
		}
		return "", nil, tailor.Errorf(tailor.EINVALID, "invalid multipart form")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, tailor.Errorf(tailor.EINVALID, "file required")
	}
	defer file.Close()
	if header.Size > MaxUploadBytes {
		return "", nil, tailor.Errorf(tailor.EINVALID, "upload exceeds %d bytes", MaxUploadBytes)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, err
	}
	return header.Filename, data, nil
}

func parseReportFilter(r *http.Request) (tailor.ReportFilter, error) {
	var filter tailor.ReportFilter
	q := r.URL.Query()

	if v := q.Get("contentHash"); v != "" {
		filter.ContentHash = &v
	}
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"limit", &filter.Limit},
		{"offset", &filter.Offset},
	} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return filter, tailor.Errorf(tailor.EINVALID, "invalid %s: %q", p.name, v)
		}
		*p.dst = n
	}
	return filter, nil
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

var codes = map[string]int{
	tailor.ECONFLICT:       http.StatusConflict,
	tailor.EINVALID:        http.StatusBadRequest,
	tailor.ENOTFOUND:       http.StatusNotFound,
	tailor.ENOTIMPLEMENTED: http.StatusNotImplemented,
	tailor.EUNAVAILABLE:    http.StatusBadGateway,
	tailor.EINTERNAL:       http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// Error writes err as JSON. Internal errors are logged and their details
// hidden from the client.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := tailor.ErrorCode(err), tailor.ErrorMessage(err)
	if code == tailor.EINTERNAL {
		s.logger().Error("http error", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeJSON(w, ErrorStatusCode(code), &ErrorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
