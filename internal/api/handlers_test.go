package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dgallion1/anchornav/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		Port:           "0",
		Targets:        []string{"h1", "h2"},
		ListOpen:       "<UL>\n",
		ListClose:      "</UL>\n",
		ItemOpen:       "<LI>",
		ItemClose:      "</LI>\n",
		MaxUploadBytes: 1024 * 1024,
	}
}

func newTestServer(cfg config.Config) *Server {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(log, cfg)
}

// multipartBody builds a multipart form with one file plus extra fields.
func multipartBody(t *testing.T, filename, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestHandleAnnotate_HTML(t *testing.T) {
	srv := newTestServer(testConfig())

	body, contentType := multipartBody(t, "doc.html", `<h1>Intro</h1><p>text</p>`, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/annotate", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Filename string `json:"filename"`
		Document string `json:"document"`
		Menu     string `json:"menu"`
		Anchors  []struct {
			Text string `json:"text"`
			ID   string `json:"id"`
		} `json:"anchors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Filename != "doc.html" {
		t.Errorf("expected filename doc.html, got %q", resp.Filename)
	}
	if !strings.Contains(resp.Document, `<A name="Intro"></A>Intro `) {
		t.Errorf("document missing anchor marker: %q", resp.Document)
	}
	if !strings.Contains(resp.Menu, `<a href="#Intro">Intro</a>`) {
		t.Errorf("menu missing link: %q", resp.Menu)
	}
	if len(resp.Anchors) != 1 || resp.Anchors[0].ID != "Intro" {
		t.Errorf("unexpected anchors: %+v", resp.Anchors)
	}
}

func TestHandleAnnotate_TargetOverride(t *testing.T) {
	srv := newTestServer(testConfig())

	body, contentType := multipartBody(t, "doc.html", `<h1>A</h1><h3>B</h3>`, map[string]string{
		"targets":   "h3",
		"list_open": "<OL>",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/annotate", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Menu    string           `json:"menu"`
		Anchors []map[string]any `json:"anchors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Anchors) != 1 {
		t.Fatalf("expected only the h3 anchor, got %+v", resp.Anchors)
	}
	if !strings.HasPrefix(resp.Menu, "<OL>") {
		t.Errorf("list_open override ignored: %q", resp.Menu)
	}
}

func TestHandleAnnotate_BlankTargets(t *testing.T) {
	srv := newTestServer(testConfig())

	body, contentType := multipartBody(t, "doc.html", `<h1>A</h1>`, map[string]string{
		"targets": " , ",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/annotate", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank targets, got %d", rec.Code)
	}
}

func TestHandleAnnotate_UnsupportedExtension(t *testing.T) {
	srv := newTestServer(testConfig())

	body, contentType := multipartBody(t, "doc.csv", "a,b,c", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/annotate", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleAnnotate_FileTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.MaxUploadBytes = 16
	srv := newTestServer(cfg)

	body, contentType := multipartBody(t, "doc.html", strings.Repeat("<p>x</p>", 100), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/annotate", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestHandleAnnotate_OversizeBeyondFormSlack(t *testing.T) {
	// A file large enough to blow the request body limit during form
	// parsing, not just the per-file length check, still gets 413.
	cfg := testConfig()
	cfg.MaxUploadBytes = 16
	srv := newTestServer(cfg)

	body, contentType := multipartBody(t, "doc.html", strings.Repeat("x", 2<<20), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/annotate", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuth(t *testing.T) {
	cfg := testConfig()
	cfg.APIKey = "secret"
	srv := newTestServer(cfg)

	body, contentType := multipartBody(t, "doc.html", `<h1>A</h1>`, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/annotate", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	body, contentType = multipartBody(t, "doc.html", `<h1>A</h1>`, nil)
	req = httptest.NewRequest(http.MethodPost, "/api/annotate", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
