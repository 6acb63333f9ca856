package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RespondJSON sends a JSON response with the given status code and payload.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("encoding JSON response")
	}
}

// RespondError sends a JSON error response. cause, when set, is logged but never sent to the client.
func RespondError(w http.ResponseWriter, r *http.Request, message string, status int, cause error) {
	logger := zerolog.Ctx(r.Context())
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(cause).Int("status", status).Msg(message)
	RespondJSON(w, status, map[string]string{"error": message})
}

// Presigner turns a stored object key into a temporary URL
type Presigner interface {
	PresignedURL(ctx context.Context, objectKey string) (string, error)
}

// PresignImageURLs generates presigned URLs for a slice of image keys/URLs.
// If a URL is already http/https, it's kept as is.
// Presign failures fall back to the original key.
func PresignImageURLs(ctx context.Context, presigner Presigner, images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if presigner == nil || img == "" || strings.HasPrefix(img, "http") {
			out = append(out, img)
			continue
		}
		if url, err := presigner.PresignedURL(ctx, img); err == nil {
			out = append(out, url)
		} else {
			out = append(out, img)
		}
	}
	return out
}

// LatencyMiddleware attaches the logger to the request context and logs the duration of each request
func LatencyMiddleware(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLogger := logger.With().Str("method", r.Method).Str("path", r.URL.Path).Logger()
			next.ServeHTTP(w, r.WithContext(reqLogger.WithContext(r.Context())))
			reqLogger.Info().Dur("latency", time.Since(start)).Msg("request served")
		})
	}
}
