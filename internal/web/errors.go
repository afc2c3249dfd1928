package web

// errors.go provides unified error responses for the web layer.
//
// Every error is logged with its technical detail and request id, then
// returned to the client as a user-friendly message with an action and a
// support code from core.MapError. API routes always get JSON; browser
// routes get an HTML alert.

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/audience-insights/internal/core"
	"github.com/JonMunkholm/audience-insights/internal/logging"
	"github.com/JonMunkholm/audience-insights/internal/web/templates"
)

var errRateLimited = errors.New("rate limit exceeded")

// ErrorResponse is the JSON body of an API error.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Action  string   `json:"action,omitempty"`
	Code    string   `json:"code"`
	Details []string `json:"details,omitempty"`
}

// statusFor picks the HTTP status for an error returned by core.
func statusFor(err error) int {
	var (
		parseErr  *core.ParseError
		validErr  *core.ValidationError
		columnErr *core.BadColumnError
	)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrTooManyUploads):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, core.ErrUnsupportedFile),
		errors.Is(err, core.ErrEncoding),
		errors.Is(err, core.ErrEmptyInput),
		errors.Is(err, core.ErrNoFile),
		errors.As(err, &parseErr),
		errors.As(err, &validErr),
		errors.As(err, &columnErr):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError logs err and writes the mapped user message with statusCode.
func respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	log := logging.FromContext(r.Context()).With(
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
		"user_message", core.FormatUserError(err),
	)
	// Unmapped errors (ERR000) are unexpected whatever the status.
	if statusCode >= http.StatusInternalServerError || !core.IsUserFacing(err) {
		log.Error("request error")
	} else {
		log.Warn("request error")
	}

	if !wantsJSON(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(statusCode)
		renderHTML(w, r, templates.ErrorAlert(userMsg.Message, userMsg.Action, userMsg.Code))
		return
	}

	writeJSON(w, r, statusCode, ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
		Details: core.Details(err),
	})
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
