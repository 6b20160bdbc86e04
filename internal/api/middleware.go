package api

import (
	"TrafficLens/internal/config"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewAccessLogger builds the rotating access logger from config. An empty
// path falls back to the process stderr logger.
func NewAccessLogger(cfg config.AccessLogConfig) *log.Logger {
	if cfg.Path == "" {
		return log.Default()
	}
	rotated := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	return log.New(rotated, "", log.LstdFlags)
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// AccessLogMiddleware logs one line per request: method, path, status,
// duration and client address.
func AccessLogMiddleware(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			logger.Printf("%s %s %d %s %s", r.Method, r.URL.Path, sw.status, time.Since(start), clientIP(r))
		})
	}
}

// ResponseTimeMiddleware sets an X-Response-Time header on every response.
func ResponseTimeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tw := &timedResponseWriter{ResponseWriter: w, start: time.Now()}
		next.ServeHTTP(tw, r)
	})
}

type timedResponseWriter struct {
	http.ResponseWriter
	start       time.Time
	wroteHeader bool
}

func (t *timedResponseWriter) WriteHeader(statusCode int) {
	if !t.wroteHeader {
		t.ResponseWriter.Header().Set("X-Response-Time", time.Since(t.start).String())
		t.wroteHeader = true
	}
	t.ResponseWriter.WriteHeader(statusCode)
}

func (t *timedResponseWriter) Write(b []byte) (int, error) {
	if !t.wroteHeader {
		t.WriteHeader(http.StatusOK)
	}
	return t.ResponseWriter.Write(b)
}

func clientIP(r *http.Request) string {
	// Check X-Forwarded-For header for proxies
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}

	// Fallback to RemoteAddr (trim port)
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
