package server

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"skillfit/internal/config"
	"skillfit/internal/errors"
	"skillfit/internal/ingest"
	"skillfit/internal/observability"
	"skillfit/internal/types"
)

func newTestServer(t *testing.T) (*Server, *observability.ObservabilityManager) {
	t.Helper()

	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("creating logger: %v", err)
	}

	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false}, nil)
	if err != nil {
		t.Fatalf("creating observability manager: %v", err)
	}

	s := NewServer(&config.Config{}, ServerConfig{
		Host:           "127.0.0.1",
		Port:           "8080",
		Version:        "test",
		MaxRequestSize: 1 << 20,
	}, logger)

	return s, om
}

func docxFixture(t *testing.T, text string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	fw, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("creating zip entry: %v", err)
	}
	document := "<w:document><w:body><w:p><w:r><w:t>" + text + "</w:t></w:r></w:p></w:body></w:document>"
	if _, err := fw.Write([]byte(document)); err != nil {
		t.Fatalf("writing zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

func multipartBody(t *testing.T, filename string, fileData []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("creating form file: %v", err)
		}
		if _, err := fw.Write(fileData); err != nil {
			t.Fatalf("writing form file: %v", err)
		}
	}
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			t.Fatalf("writing form field %s: %v", key, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestAnalyzeHandlerScoresMatch(t *testing.T) {
	s, om := newTestServer(t)
	handler := s.createAnalyzeHandler(om)

	body, err := json.Marshal(types.AnalyzeInput{
		ResumeText:         "I have 3 years of experience in python and sql",
		JobDescriptionText: "Looking for a developer who knows python and sql",
	})
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json content type, got %q", ct)
	}

	var result types.AnalysisResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if result.OverallMatchScore <= 0 {
		t.Errorf("expected positive overall score, got %v", result.OverallMatchScore)
	}
	found := false
	for _, skill := range result.SkillsMatch.MatchedSkills {
		if skill == "python" {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected python in matched skills, got %v", result.SkillsMatch.MatchedSkills)
	}
}

func TestAnalyzeHandlerValidation(t *testing.T) {
	s, om := newTestServer(t)
	handler := s.createAnalyzeHandler(om)

	tests := []struct {
		name        string
		body        string
		contentType string
	}{
		{
			name:        "missing resume text",
			body:        `{"job_description_text": "python developer"}`,
			contentType: "application/json",
		},
		{
			name:        "missing job description",
			body:        `{"resume_text": "python developer"}`,
			contentType: "application/json",
		},
		{
			name:        "invalid JSON",
			body:        `{"resume_text": `,
			contentType: "application/json",
		},
		{
			name:        "wrong content type",
			body:        `{"resume_text": "a", "job_description_text": "b"}`,
			contentType: "text/plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := httptest.NewRecorder()

			handler(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestUploadResumeHandler(t *testing.T) {
	s, om := newTestServer(t)
	handler := s.createUploadResumeHandler(om)

	data := docxFixture(t, "I build python services with sql")
	body, contentType := multipartBody(t, "resume.docx", data, nil)

	req := httptest.NewRequest(http.MethodPost, "/upload-resume", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result types.ExtractionResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.ExtractedText != "I build python services with sql" {
		t.Errorf("unexpected extracted text: %q", result.ExtractedText)
	}
}

func TestUploadResumeHandlerUnsupportedFile(t *testing.T) {
	s, om := newTestServer(t)
	handler := s.createUploadResumeHandler(om)

	body, contentType := multipartBody(t, "resume.txt", []byte("plain text resume"), nil)

	req := httptest.NewRequest(http.MethodPost, "/upload-resume", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	if resp.Error != ingest.UnsupportedFileMessage {
		t.Errorf("expected unsupported file message, got %q", resp.Error)
	}
}

func TestUploadResumeHandlerMissingFile(t *testing.T) {
	s, om := newTestServer(t)
	handler := s.createUploadResumeHandler(om)

	body, contentType := multipartBody(t, "", nil, map[string]string{"other": "field"})

	req := httptest.NewRequest(http.MethodPost, "/upload-resume", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestUploadAndAnalyzeHandler(t *testing.T) {
	s, om := newTestServer(t)
	handler := s.createUploadAndAnalyzeHandler(om)

	data := docxFixture(t, "Senior engineer with python and aws experience")
	body, contentType := multipartBody(t, "resume.docx", data, map[string]string{
		"job_description_text": "We need python and aws skills",
	})

	req := httptest.NewRequest(http.MethodPost, "/upload-and-analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result types.UploadAnalysisResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.ExtractedText == "" {
		t.Error("expected extracted text in response")
	}
	if result.OverallMatchScore <= 0 {
		t.Errorf("expected positive overall score, got %v", result.OverallMatchScore)
	}
}

func TestUploadAndAnalyzeHandlerDegradedOnBadFile(t *testing.T) {
	s, om := newTestServer(t)
	handler := s.createUploadAndAnalyzeHandler(om)

	body, contentType := multipartBody(t, "resume.txt", []byte("plain text"), map[string]string{
		"job_description_text": "python developer",
	})

	req := httptest.NewRequest(http.MethodPost, "/upload-and-analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	// Extraction failures still return the full response shape
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result types.UploadAnalysisResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.ExtractedText != "" {
		t.Errorf("expected empty extracted text, got %q", result.ExtractedText)
	}
	if !strings.Contains(result.Notes, "Failed to extract resume text") {
		t.Errorf("expected extraction failure note, got %q", result.Notes)
	}
	if result.OverallMatchScore != 0 {
		t.Errorf("expected zero overall score, got %v", result.OverallMatchScore)
	}
}

func TestUploadAndAnalyzeHandlerMissingJobDescription(t *testing.T) {
	s, om := newTestServer(t)
	handler := s.createUploadAndAnalyzeHandler(om)

	data := docxFixture(t, "python developer resume")
	body, contentType := multipartBody(t, "resume.docx", data, nil)

	req := httptest.NewRequest(http.MethodPost, "/upload-and-analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	s.healthHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %v", resp["status"])
	}
	if resp["message"] != "API is running" {
		t.Errorf("unexpected message: %v", resp["message"])
	}
	if size, ok := resp["vocabulary_size"].(float64); !ok || size <= 0 {
		t.Errorf("expected positive vocabulary_size, got %v", resp["vocabulary_size"])
	}
}

func TestHealthHandlerMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()

	s.healthHandler(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}
}

func TestStatsHandler(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()

	s.statsHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["service"] != "skillfit" {
		t.Errorf("expected service skillfit, got %v", resp["service"])
	}
}

func TestAuthMiddleware(t *testing.T) {
	s, _ := newTestServer(t)
	s.APIKeys = map[string]bool{"valid-key-12345": true}

	next := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	handler := s.authMiddleware(next)

	tests := []struct {
		name       string
		header     string
		value      string
		wantStatus int
	}{
		{name: "missing key", wantStatus: http.StatusUnauthorized},
		{name: "invalid key", header: "X-API-Key", value: "wrong-key", wantStatus: http.StatusUnauthorized},
		{name: "valid key", header: "X-API-Key", value: "valid-key-12345", wantStatus: http.StatusOK},
		{name: "valid bearer token", header: "Authorization", value: "Bearer valid-key-12345", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rec := httptest.NewRecorder()

			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestAuthMiddlewareOpenWithoutKeys(t *testing.T) {
	s, _ := newTestServer(t)

	handler := s.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200 with no keys configured, got %d", rec.Code)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	s, _ := newTestServer(t)

	var seen string
	handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
		seen = requestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("generates ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
		rec := httptest.NewRecorder()

		handler(rec, req)

		if seen == "" {
			t.Error("expected request ID in context")
		}
		if got := rec.Header().Get("X-Request-ID"); got != seen {
			t.Errorf("response header %q does not match context ID %q", got, seen)
		}
	})

	t.Run("honors inbound ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
		req.Header.Set("X-Request-ID", "upstream-id-42")
		rec := httptest.NewRecorder()

		handler(rec, req)

		if seen != "upstream-id-42" {
			t.Errorf("expected inbound ID to be kept, got %q", seen)
		}
	})
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{key: "short", want: "****"},
		{key: "12345678", want: "****"},
		{key: "123456789abcdef", want: "12345678****"},
	}

	for _, tt := range tests {
		if got := maskAPIKey(tt.key); got != tt.want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "192.0.2.1:1234",
			want:       "192.0.2.1",
		},
		{
			name:       "x-forwarded-for",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			want:       "203.0.113.9",
		},
		{
			name:       "invalid forwarded header falls through",
			remoteAddr: "192.0.2.2:1234",
			headers:    map[string]string{"X-Forwarded-For": "not-an-ip"},
			want:       "192.0.2.2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}

			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
