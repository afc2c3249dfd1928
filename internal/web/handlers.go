package web

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/audience-insights/internal/core"
	"github.com/JonMunkholm/audience-insights/internal/web/templates"
)

// multipartOverhead is allowed on top of the file size limit for form framing.
const multipartOverhead = 1 << 20

// handleDashboard renders the landing page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := templates.Dashboard(templates.DashboardParams{
		AppName:  s.cfg.App.Name,
		Datasets: s.service.Datasets(),
		Queue:    s.service.UploadLimiterStatus(),
	})
	renderHTML(w, r, page)
}

// handleHealth reports liveness and the number of stored datasets.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":   "healthy",
		"datasets": s.service.DatasetCount(),
	})
}

// handleUpload accepts a multipart CSV upload in the "file" field.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			respondError(w, r, core.ErrFileTooLarge, http.StatusRequestEntityTooLarge)
			return
		}
		respondError(w, r, core.ErrNoFile, http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, core.ErrNoFile, http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	result, err := s.service.Upload(withClient(r.Context(), r), header.Filename, data)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, r, http.StatusOK, result)
}

// handleAnalytics returns the insight summary of a dataset.
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	insights, err := s.service.Insights(r.Context(), chi.URLParam(r, "fileID"))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, http.StatusOK, insights)
}

// handleChartData returns a chart payload for ?chart_type=&column=.
func (s *Server) handleChartData(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	chart, err := s.service.Chart(r.Context(), chi.URLParam(r, "fileID"), q.Get("chart_type"), q.Get("column"))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, http.StatusOK, chart)
}

// handleColumns returns column names, types and a sample of rows.
func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	preview, err := s.service.Columns(r.Context(), chi.URLParam(r, "fileID"))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, http.StatusOK, preview)
}

// handleDatasets lists stored datasets in upload order.
func (s *Server) handleDatasets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{"datasets": s.service.Datasets()})
}

// handleUploadQueue reports upload concurrency.
func (s *Server) handleUploadQueue(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.service.UploadLimiterStatus())
}
