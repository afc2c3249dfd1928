package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/audience-insights/internal/core"
)

// withClient records the caller's address and user agent for the audit trail.
// RemoteAddr has already been resolved by TrustedRealIP.
func withClient(ctx context.Context, r *http.Request) context.Context {
	return core.WithClient(ctx, r.RemoteAddr, r.UserAgent())
}
