package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/playerbase/internal/api/apierr"
	"github.com/mcoot/playerbase/internal/middleware"
)

// RateLimit creates a per-client rate limiter for the API.
// Rejected requests get a JSON 429 and are passed to onReject when set.
func RateLimit(cfg middleware.RateLimitConfig, logger *slog.Logger, onReject func()) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg, func(w http.ResponseWriter, r *http.Request) {
		logger.Warn("rate limit exceeded",
			slog.String("request_id", middleware.RequestID(r.Context())),
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("path", r.URL.Path),
		)
		if onReject != nil {
			onReject()
		}
		w.Header().Set("Retry-After", "1")
		apierr.WriteError(w, apierr.NewRateLimitedError())
	})
}
