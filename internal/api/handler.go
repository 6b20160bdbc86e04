package api

import (
	"TrafficLens/internal/config"
	"TrafficLens/internal/engine/analysis"
	"TrafficLens/internal/engine/parser"
	"TrafficLens/internal/model"
	"TrafficLens/internal/render"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
)

// Handler holds the dependencies for API handlers.
type Handler struct {
	cfg       *config.Config
	publisher model.ReportPublisher // nil when publishing is disabled
}

// NewRouter builds the full API router with middleware attached.
func NewRouter(cfg *config.Config, pub model.ReportPublisher, accessLog *log.Logger) *mux.Router {
	h := &Handler{cfg: cfg, publisher: pub}

	r := mux.NewRouter()
	r.Use(AccessLogMiddleware(accessLog))
	r.Use(ResponseTimeMiddleware)

	r.HandleFunc("/api/v1/analyze", h.analyzeHandler).Methods("POST")
	r.HandleFunc("/api/v1/health", h.healthHandler).Methods("GET")
	r.HandleFunc("/", h.dashboardHandler).Methods("GET")

	return r
}

// analyzeHandler accepts a multipart upload of a traffic counts file and
// returns the structured analysis. The uploaded bytes are spooled to a temp
// file that is always removed before the request finishes.
func (h *Handler) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	maxBytes := h.cfg.Upload.MaxSizeMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	upload, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to read upload: %v", err))
		return
	}
	defer upload.Close()

	tmp, err := os.CreateTemp(h.cfg.Upload.TempDir, "upload-*.txt")
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to create temp file: %v", err))
		return
	}
	defer os.Remove(tmp.Name())

	_, err = io.Copy(tmp, upload)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to save upload: %v", err))
		return
	}

	resp, err := analyzeFile(tmp.Name(), header.Filename)
	if err != nil {
		if errors.Is(err, analysis.ErrNoRecords) {
			writeError(w, http.StatusBadRequest, "No valid records found in file.")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if h.publisher != nil {
		// Publishing is a side effect; a failure never fails the request.
		if err := h.publisher.Publish(resp); err != nil {
			log.Printf("Failed to publish report for %q: %v", header.Filename, err)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// analyzeFile runs the core parse + analysis over a spooled upload and shapes
// the response. Per-line diagnostics go to the server log, never the body.
func analyzeFile(path, originalName string) (*render.AnalysisResponse, error) {
	records, diags, err := parser.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse upload: %w", err)
	}
	for _, d := range diags {
		log.Printf("Skipping line %d of %q (%s): %q", d.Line, originalName, d.Reason, d.Raw)
	}

	rep, err := analysis.Run(records)
	if err != nil {
		return nil, err
	}

	return render.NewAnalysisResponse(originalName, rep, len(diags)), nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
