package api

import (
	"TrafficLens/internal/config"
	"bytes"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func newTestRouter(t *testing.T) (http.Handler, *config.Config) {
	t.Helper()
	cfg := &config.Config{}
	cfg.API.ListenAddr = ":0"
	cfg.Upload.TempDir = t.TempDir()
	cfg.Upload.MaxSizeMB = 1
	return NewRouter(cfg, nil, log.New(io.Discard, "", 0)), cfg
}

// uploadRequest builds a multipart POST with the given content under the
// "file" form field.
func uploadRequest(t *testing.T, content string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "traffic.txt")
	if err != nil {
		t.Fatalf("Failed to build upload: %v", err)
	}
	if _, err := io.Copy(part, strings.NewReader(content)); err != nil {
		t.Fatalf("Failed to build upload: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to build upload: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/v1/analyze", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestAnalyzeHandler_ValidUpload(t *testing.T) {
	router, _ := newTestRouter(t)

	content := "2021-12-01T05:00:00 5\n" +
		"2021-12-01T05:30:00 10\n" +
		"2021-12-01T06:00:00 3\n" +
		"2021-12-01T06:30:00 20\n"

	// 1. Post the file
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, uploadRequest(t, content))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %q", ct)
	}

	// 2. Verify the analysis values
	var resp struct {
		Meta struct {
			Filename         string `json:"filename"`
			RecordsProcessed int    `json:"records_processed"`
			LinesSkipped     int    `json:"lines_skipped"`
		} `json:"meta"`
		Analysis struct {
			TotalCars  int64            `json:"total_cars"`
			CarsPerDay map[string]int64 `json:"cars_per_day"`
			Top3       []struct {
				Timestamp string `json:"timestamp"`
				Count     int64  `json:"count"`
			} `json:"top_3_periods"`
			LowestWindow []struct {
				Timestamp string `json:"timestamp"`
				Count     int64  `json:"count"`
			} `json:"lowest_1_5_hour_window"`
		} `json:"analysis"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Meta.Filename != "traffic.txt" {
		t.Errorf("Expected filename 'traffic.txt', got %q", resp.Meta.Filename)
	}
	if resp.Meta.RecordsProcessed != 4 || resp.Meta.LinesSkipped != 0 {
		t.Errorf("Unexpected meta: %+v", resp.Meta)
	}
	if resp.Analysis.TotalCars != 38 {
		t.Errorf("Expected total 38, got %d", resp.Analysis.TotalCars)
	}
	if resp.Analysis.CarsPerDay["2021-12-01"] != 38 {
		t.Errorf("Unexpected per-day totals: %v", resp.Analysis.CarsPerDay)
	}
	if len(resp.Analysis.Top3) != 3 || resp.Analysis.Top3[0].Count != 20 {
		t.Errorf("Unexpected top periods: %+v", resp.Analysis.Top3)
	}
	if len(resp.Analysis.LowestWindow) != 3 || resp.Analysis.LowestWindow[0].Count != 5 {
		t.Errorf("Unexpected lowest window: %+v", resp.Analysis.LowestWindow)
	}
}

func TestAnalyzeHandler_DirtyUploadReportsSkippedLines(t *testing.T) {
	router, _ := newTestRouter(t)

	content := "2021-12-01T05:00:00 5\n" +
		"garbage line here\n" +
		"2021-12-01T05:30:00 10\n"

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, uploadRequest(t, content))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Meta struct {
			RecordsProcessed int `json:"records_processed"`
			LinesSkipped     int `json:"lines_skipped"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Meta.RecordsProcessed != 2 {
		t.Errorf("Expected 2 records processed, got %d", resp.Meta.RecordsProcessed)
	}
	if resp.Meta.LinesSkipped != 1 {
		t.Errorf("Expected 1 line skipped, got %d", resp.Meta.LinesSkipped)
	}
}

func TestAnalyzeHandler_EmptyFile(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, uploadRequest(t, ""))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "No valid records found in file.") {
		t.Errorf("Expected the no-records message, got: %s", rr.Body.String())
	}
}

func TestAnalyzeHandler_OversizedUpload(t *testing.T) {
	router, cfg := newTestRouter(t)

	// Two megabytes against the 1MB cap configured in newTestRouter
	oversized := strings.Repeat("x", int(cfg.Upload.MaxSizeMB)<<21)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, uploadRequest(t, oversized))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400 for an oversized upload, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestAnalyzeHandler_MissingFileField(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest("POST", "/api/v1/analyze", strings.NewReader("not multipart"))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestAnalyzeHandler_TempFilesCleanedUp(t *testing.T) {
	router, cfg := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, uploadRequest(t, "2021-12-01T05:00:00 5\n"))
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	entries, err := os.ReadDir(cfg.Upload.TempDir)
	if err != nil {
		t.Fatalf("Failed to read temp dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected temp dir to be empty after the request, found %d entries", len(entries))
	}
}

func TestHealthHandler(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Errorf("Unexpected health body: %s", rr.Body.String())
	}
}

func TestDashboardHandler(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Header().Get("Content-Type"), "text/html") {
		t.Errorf("Expected HTML content type, got %q", rr.Header().Get("Content-Type"))
	}
	if rr.Header().Get("X-Response-Time") == "" {
		t.Errorf("Expected X-Response-Time header from middleware")
	}
}
