package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/hkhan122/ResumeAnalyzer/internal/config"
	"github.com/hkhan122/ResumeAnalyzer/internal/services"
)

func newTestApp(t *testing.T, responseFormat string) *fiber.App {
	t.Helper()

	storage := services.NewStorageService(t.TempDir())
	analyzer := services.NewAnalyzerService(
		nil, // no remote provider: heuristic-only
		services.NewSegmenterService(),
		services.NewHeuristicService(),
		true,
	)
	handler := NewAnalyzeHandler(storage, services.NewExtractorService(), analyzer, responseFormat, 10<<20)

	app := fiber.New()
	app.Post("/api/analyze", handler.HandleAnalyze)
	return app
}

func multipartUpload(t *testing.T, filename, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandleAnalyze_StructuredResponse(t *testing.T) {
	app := newTestApp(t, config.FormatStructured)

	req := multipartUpload(t, "resume.txt",
		"Experience\nLed a team for 5 years. Developed and delivered a new billing platform.")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}

	var result struct {
		OverallScore float64 `json:"overall_score"`
		Sections     map[string]struct {
			Score *int `json:"score"`
		} `json:"sections"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if result.OverallScore <= 0 {
		t.Errorf("overall_score = %v, want > 0", result.OverallScore)
	}
	if len(result.Sections) != 4 {
		t.Errorf("sections = %d, want 4", len(result.Sections))
	}
	if exp, ok := result.Sections["experience"]; !ok || exp.Score == nil || *exp.Score == 0 {
		t.Errorf("experience section = %+v, want non-zero score", exp)
	}
}

func TestHandleAnalyze_LegacyResponse(t *testing.T) {
	app := newTestApp(t, config.FormatLegacy)

	req := multipartUpload(t, "resume.txt", "Experience\nLed a team for 5 years.")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var result struct {
		Analysis string `json:"analysis"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !strings.Contains(result.Analysis, "Score:") {
		t.Errorf("legacy analysis missing score line: %q", result.Analysis)
	}
	if !strings.Contains(result.Analysis, "General Writing Tips:") {
		t.Errorf("legacy analysis missing writing tips: %q", result.Analysis)
	}
}

func TestHandleAnalyze_MissingFile(t *testing.T) {
	app := newTestApp(t, config.FormatStructured)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	var result struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Error == "" {
		t.Error("expected an error message in the response")
	}
}

func TestHandleAnalyze_UnreadableFile(t *testing.T) {
	app := newTestApp(t, config.FormatStructured)

	// A .pdf extension with non-PDF bytes fails extraction, which is the
	// one pipeline failure reported to the client.
	req := multipartUpload(t, "resume.pdf", "this is not a pdf")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	var result struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(result.Error, "Failed to process the file") {
		t.Errorf("error = %q, want the user-facing extraction message", result.Error)
	}
}
