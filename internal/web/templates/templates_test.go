package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/audience-insights/internal/core"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestDashboard(t *testing.T) {
	html := render(t, Dashboard(DashboardParams{
		AppName: "Analyzer",
		Datasets: []core.DatasetInfo{{
			ID: "file_0", FileName: "<script>.csv", Rows: 3, Columns: 2,
			UploadedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		}},
		Queue: core.UploadLimiterStatus{MaxConcurrent: 5},
	}))

	for _, want := range []string{"<title>Analyzer</title>", "file_0", "/api/v1/analytics/file_0", "2024-01-02 03:04:05", "0 of 5"} {
		if !strings.Contains(html, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
	if strings.Contains(html, "<script>.csv") {
		t.Error("dashboard did not escape file name")
	}
}

func TestDashboard_Empty(t *testing.T) {
	html := render(t, Dashboard(DashboardParams{AppName: "Analyzer"}))
	if !strings.Contains(html, "No files uploaded yet") {
		t.Errorf("empty dashboard = %s", html)
	}
}

func TestErrorAlert(t *testing.T) {
	html := render(t, ErrorAlert("File not found", "Upload again", "DS001"))
	for _, want := range []string{"File not found", "Upload again", "Code: DS001"} {
		if !strings.Contains(html, want) {
			t.Errorf("ErrorAlert missing %q: %s", want, html)
		}
	}
}
