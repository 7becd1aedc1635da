package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/light-bringer/storefront-service/internal/pkg/logger"
)

// SessionHeader carries the storefront session id in both directions.
const SessionHeader = "X-Session-ID"

const maxSessionIDLen = 64

type sessionKey struct{}

// session reads the session id from SessionHeader, issuing a new one when
// the header is missing or unusable, and echoes it back.
func session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(SessionHeader)
		if id == "" || len(id) > maxSessionIDLen {
			id = uuid.NewString()
		}
		w.Header().Set(SessionHeader, id)

		ctx := context.WithValue(r.Context(), sessionKey{}, id)
		ctx = logger.WithContext(ctx, logger.String("session_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionKey{}).(string)
	return id
}

// requestLogger logs one line per request through the zap logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		ctx := logger.WithContext(r.Context(), logger.String("request_id", middleware.GetReqID(r.Context())))
		next.ServeHTTP(ww, r.WithContext(ctx))

		fields := []logger.Field{
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Int("status", ww.Status()),
			logger.Int("bytes", ww.BytesWritten()),
			logger.Duration("duration", time.Since(start)),
		}
		log := logger.With(logger.String("component", "http"))
		if ww.Status() >= http.StatusInternalServerError {
			log.Warn(ctx, "request served", fields...)
			return
		}
		log.Debug(ctx, "request served", fields...)
	})
}
