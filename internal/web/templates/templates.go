// Package templates holds the HTML components rendered by the web server.
package templates

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/audience-insights/internal/core"
)

// DashboardParams carries everything the dashboard page shows.
type DashboardParams struct {
	AppName  string
	Datasets []core.DatasetInfo
	Queue    core.UploadLimiterStatus
}

const dashboardStyle = `body{font-family:system-ui,sans-serif;margin:2rem;color:#1f2937}
table{border-collapse:collapse;width:100%}th,td{border-bottom:1px solid #e5e7eb;padding:.5rem;text-align:left}
.muted{color:#6b7280}.alert{border:1px solid #fca5a5;background:#fef2f2;padding:1rem;border-radius:.375rem}`

// Dashboard renders the landing page: upload form and stored datasets.
func Dashboard(p DashboardParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		e := &htmlWriter{w: w}
		e.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		e.text(p.AppName)
		e.raw(`</title><style>` + dashboardStyle + `</style></head><body>`)
		e.raw(`<h1>`)
		e.text(p.AppName)
		e.raw(`</h1>`)

		e.raw(`<form method="post" action="/api/v1/upload-csv" enctype="multipart/form-data">`)
		e.raw(`<input type="file" name="file" accept=".csv" required> <button type="submit">Upload</button></form>`)
		e.raw(`<p class="muted">Uploads in progress: `)
		e.text(strconv.Itoa(p.Queue.Active))
		e.raw(` of `)
		e.text(strconv.Itoa(p.Queue.MaxConcurrent))
		e.raw(`</p>`)

		if err := DatasetTable(p.Datasets).Render(ctx, w); err != nil {
			return err
		}

		e.raw(`</body></html>`)
		return e.err
	})
}

// DatasetTable renders stored datasets with links to their API resources.
func DatasetTable(datasets []core.DatasetInfo) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		e := &htmlWriter{w: w}
		if len(datasets) == 0 {
			e.raw(`<p class="muted">No files uploaded yet.</p>`)
			return e.err
		}

		e.raw(`<table><thead><tr><th>ID</th><th>File</th><th>Rows</th><th>Columns</th><th>Uploaded</th><th></th></tr></thead><tbody>`)
		for _, d := range datasets {
			e.raw(`<tr><td>`)
			e.text(d.ID)
			e.raw(`</td><td>`)
			e.text(d.FileName)
			e.raw(`</td><td>`)
			e.text(strconv.Itoa(d.Rows))
			e.raw(`</td><td>`)
			e.text(strconv.Itoa(d.Columns))
			e.raw(`</td><td>`)
			e.text(d.UploadedAt.UTC().Format("2006-01-02 15:04:05"))
			e.raw(`</td><td><a href="`)
			e.text(fmt.Sprintf("/api/v1/analytics/%s", d.ID))
			e.raw(`">insights</a> <a href="`)
			e.text(fmt.Sprintf("/api/v1/columns/%s", d.ID))
			e.raw(`">columns</a></td></tr>`)
		}
		e.raw(`</tbody></table>`)
		return e.err
	})
}

// ErrorAlert renders a user-facing error with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		e := &htmlWriter{w: w}
		e.raw(`<div class="alert" role="alert"><strong>`)
		e.text(message)
		e.raw(`</strong>`)
		if action != "" {
			e.raw(`<p>`)
			e.text(action)
			e.raw(`</p>`)
		}
		e.raw(`<p class="muted">Code: `)
		e.text(code)
		e.raw(`</p></div>`)
		return e.err
	})
}

// htmlWriter keeps the first write error so components can write freely.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}
