package core

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/JonMunkholm/audience-insights/internal/archive"
	"github.com/JonMunkholm/audience-insights/internal/audit"
	"github.com/JonMunkholm/audience-insights/internal/logging"
)

// DefaultMaxFileSize is the upload size limit when none is configured.
const DefaultMaxFileSize = 10 << 20

// ProcessedPrefix is prepended to archived file names.
const ProcessedPrefix = "processed_"

// Options configures a Service. Zero values select the defaults.
type Options struct {
	MaxFileSize       int64
	AllowedExtensions []string
	MaxConcurrent     int
	MaxWait           time.Duration

	Archiver archive.Archiver
	Recorder audit.Recorder
}

// Service is the entry point for every dataset operation.
// It is safe for concurrent use.
type Service struct {
	store    *Store
	limiter  *UploadLimiter
	archiver archive.Archiver
	recorder audit.Recorder

	maxFileSize int64
	extensions  []string
}

// NewService creates a Service with an empty store.
func NewService(opts Options) *Service {
	s := &Service{
		store:       NewStore(),
		limiter:     NewUploadLimiter(opts.MaxConcurrent, opts.MaxWait),
		archiver:    opts.Archiver,
		recorder:    opts.Recorder,
		maxFileSize: opts.MaxFileSize,
		extensions:  opts.AllowedExtensions,
	}
	if s.archiver == nil {
		s.archiver = archive.Nop{}
	}
	if s.recorder == nil {
		s.recorder = audit.Nop{}
	}
	if s.maxFileSize <= 0 {
		s.maxFileSize = DefaultMaxFileSize
	}
	if len(s.extensions) == 0 {
		s.extensions = []string{".csv"}
	}
	return s
}

// Upload parses, validates, cleans and stores an uploaded file.
// A rejected upload stores nothing and returns a *ValidationError,
// *ParseError or one of the file sentinels.
func (s *Service) Upload(ctx context.Context, fileName string, data []byte) (*UploadResult, error) {
	log := logging.WithFields(ctx, "filename", fileName, "bytes", len(data))

	if !s.allowedExtension(fileName) {
		return nil, s.reject(ctx, fileName, nil, ErrUnsupportedFile)
	}
	if int64(len(data)) > s.maxFileSize {
		return nil, s.reject(ctx, fileName, nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, len(data), s.maxFileSize))
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	raw, err := ParseTable(data)
	if err != nil {
		return nil, s.reject(ctx, fileName, nil, err)
	}

	report := Validate(raw)
	if !report.IsValid {
		return nil, s.reject(ctx, fileName, &report, &ValidationError{Errors: report.Errors})
	}

	cleaned := Clean(raw)
	id := s.store.Put(fileName, cleaned)

	result := &UploadResult{
		Message:       "File uploaded and processed successfully",
		ID:            id,
		FileName:      fileName,
		RowsProcessed: cleaned.RowCount(),
		Columns:       Summarize(cleaned).Columns,
		Warnings:      nonNilStrings(report.Warnings),
		Summary:       report.Summary,
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, cleaned); err != nil {
		log.Warn("serialise processed file", "file_id", id, "error", err)
	} else if loc, err := s.archiver.Save(ctx, ProcessedPrefix+filepath.Base(fileName), buf.Bytes()); err != nil {
		log.Warn("archive processed file", "file_id", id, "error", err)
	} else {
		result.ArchiveLocation = loc
	}

	entry := audit.NewEntry(fileName, audit.OutcomeAccepted)
	entry.DatasetID = id
	entry.Rows = result.RowsProcessed
	entry.Columns = len(result.Columns)
	entry.Warnings = report.Warnings
	s.record(ctx, entry)

	log.Info("upload accepted",
		"file_id", id,
		"rows", result.RowsProcessed,
		"columns", len(result.Columns),
		"warnings", len(result.Warnings),
	)
	return result, nil
}

// reject records a failed upload and returns err unchanged.
func (s *Service) reject(ctx context.Context, fileName string, report *ValidationReport, err error) error {
	entry := audit.NewEntry(fileName, audit.OutcomeRejected)
	if report != nil {
		entry.Rows = report.Summary.TotalRows
		entry.Columns = report.Summary.TotalColumns
		entry.Warnings = report.Warnings
		entry.Errors = report.Errors
	} else {
		entry.Errors = []string{err.Error()}
	}
	s.record(ctx, entry)

	logging.WithFields(ctx, "filename", fileName).Info("upload rejected", "error", err)
	return err
}

func (s *Service) record(ctx context.Context, e audit.Entry) {
	e.IPAddress, e.UserAgent = ClientFromContext(ctx)
	if err := s.recorder.Record(ctx, e); err != nil {
		logging.FromContext(ctx).Warn("record upload audit", "filename", e.FileName, "error", err)
	}
}

func (s *Service) allowedExtension(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, allowed := range s.extensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

// Insights returns the insight summary of a stored dataset.
func (s *Service) Insights(ctx context.Context, id string) (Insights, error) {
	ds, err := s.store.Get(id)
	if err != nil {
		return Insights{}, err
	}
	return GenerateInsights(ds.Table), nil
}

// Chart returns chart data for one column of a stored dataset.
// An unsupported chart type yields an empty payload; an absent column
// is a *BadColumnError.
func (s *Service) Chart(ctx context.Context, id, chartType, column string) (ChartPayload, error) {
	ds, err := s.store.Get(id)
	if err != nil {
		return ChartPayload{}, err
	}
	if ds.Table.Column(column) == nil {
		return ChartPayload{}, &BadColumnError{Column: column}
	}
	return PrepareChartData(ds.Table, chartType, column), nil
}

// Columns describes a stored dataset's columns with its first rows.
func (s *Service) Columns(ctx context.Context, id string) (*ColumnsPreview, error) {
	ds, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	t := ds.Table
	preview := &ColumnsPreview{
		Columns:    Summarize(t).Columns,
		DataTypes:  make(map[string]ColumnType, len(t.Columns)),
		SampleData: []map[string]any{},
	}
	for _, c := range t.Columns {
		preview.DataTypes[c.Name] = c.Type
	}
	for i := 0; i < t.RowCount() && i < PreviewRows; i++ {
		preview.SampleData = append(preview.SampleData, t.Record(i))
	}
	return preview, nil
}

// Datasets lists stored datasets in upload order.
func (s *Service) Datasets() []DatasetInfo {
	return s.store.List()
}

// DatasetCount returns how many datasets are stored.
func (s *Service) DatasetCount() int {
	return s.store.Len()
}

// UploadLimiterStatus reports upload concurrency.
func (s *Service) UploadLimiterStatus() UploadLimiterStatus {
	return s.limiter.Status()
}

// WaitForUploads blocks until in-flight uploads finish or ctx ends.
func (s *Service) WaitForUploads(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// WriteCSV writes t as CSV with a header row. Missing cells are empty.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.ColumnNames()); err != nil {
		return err
	}

	record := make([]string, len(t.Columns))
	for i := 0; i < t.RowCount(); i++ {
		for j, c := range t.Columns {
			cell := c.Cells[i]
			switch {
			case cell.Missing:
				record[j] = ""
			case c.Type == ColumnNumeric:
				record[j] = FormatNumber(cell.Number)
			default:
				record[j] = cell.Text
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
