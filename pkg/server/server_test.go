package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hellenic-development/figma-docgen/pkg/config"
)

const figmaNodesPayload = `{
	"name": "Test File",
	"nodes": {
		"1:2": {
			"document": {
				"id": "1:2",
				"name": "Test",
				"type": "FRAME",
				"children": [
					{"id": "1:3", "name": "Title", "type": "TEXT"},
					{"id": "1:4", "name": "Btn", "type": "RECTANGLE", "cornerRadius": 4}
				]
			}
		}
	}
}`

const deepseekReply = `[
  {"id": 1, "description": "Заголовок экрана", "logic": "Отображает название"},
  {"id": 2, "description": "Кнопка отправки", "logic": "Отправляет форму"}
]`

// upstreams starts fake Figma and DeepSeek servers and returns a configured Server.
func newTestServer(t *testing.T, figmaStatus int, deepseekContent string) *Server {
	t.Helper()

	figmaSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if figmaStatus != http.StatusOK {
			http.Error(w, `{"err": "boom"}`, figmaStatus)
			return
		}
		w.Write([]byte(figmaNodesPayload))
	}))
	t.Cleanup(figmaSrv.Close)

	deepseekSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": deepseekContent}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(deepseekSrv.Close)

	cfg := config.Default()
	cfg.FigmaToken = "figma-token"
	cfg.DeepSeekKey = "deepseek-key"
	cfg.FigmaBaseURL = figmaSrv.URL
	cfg.DeepSeekBaseURL = deepseekSrv.URL

	return New(cfg, nil)
}

func postGenerate(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return resp.Error
}

func TestGenerate_EndToEnd(t *testing.T) {
	s := newTestServer(t, http.StatusOK, deepseekReply)

	w := postGenerate(t, s, `{"figmaUrl": "https://figma.com/file/ABC123/Test?node-id=1-2"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}

	var resp struct {
		Markdown      string `json:"markdown"`
		FrameName     string `json:"frameName"`
		ElementsCount int    `json:"elementsCount"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.FrameName != "Test" {
		t.Errorf("frameName = %q, want Test", resp.FrameName)
	}
	if resp.ElementsCount != 2 {
		t.Errorf("elementsCount = %d, want 2", resp.ElementsCount)
	}
	for _, row := range []string{
		"| 1 | text | title | Заголовок экрана | Отображает название |",
		"| 2 | button | btn | Кнопка отправки | Отправляет форму |",
	} {
		if !strings.Contains(resp.Markdown, row) {
			t.Errorf("markdown missing row %q:\n%s", row, resp.Markdown)
		}
	}
}

func TestGenerate_EnrichmentFallbackStillSucceeds(t *testing.T) {
	s := newTestServer(t, http.StatusOK, "no JSON here, sorry")

	w := postGenerate(t, s, `{"figmaUrl": "https://figma.com/file/ABC123/Test?node-id=1-2"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	body := w.Body.String()
	if !strings.Contains(body, "Базовое взаимодействие с элементом") {
		t.Errorf("response missing fallback logic text:\n%s", body)
	}
	if !strings.Contains(body, "Элемент text: Title") {
		t.Errorf("response missing fallback description:\n%s", body)
	}
}

func TestGenerate_MissingURL(t *testing.T) {
	s := newTestServer(t, http.StatusOK, deepseekReply)

	for _, body := range []string{`{}`, `{"figmaUrl": ""}`, `{"figmaUrl": "   "}`} {
		w := postGenerate(t, s, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, w.Code)
		}
		if got := decodeError(t, w); got != "Figma URL is required" {
			t.Errorf("body %s: error = %q", body, got)
		}
	}
}

func TestGenerate_InvalidURL(t *testing.T) {
	s := newTestServer(t, http.StatusOK, deepseekReply)

	w := postGenerate(t, s, `{"figmaUrl": "https://example.com/whatever"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	want := "Invalid Figma URL format. Expected: figma.com/file/FILE_KEY/...?node-id=NODE_ID"
	if got := decodeError(t, w); got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}

func TestGenerate_MissingCredentials(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantMsg string
	}{
		{
			name:    "figma token",
			mutate:  func(c *config.Config) { c.FigmaToken = "" },
			wantMsg: "FIGMA_ACCESS_TOKEN not configured",
		},
		{
			name:    "deepseek key",
			mutate:  func(c *config.Config) { c.DeepSeekKey = "" },
			wantMsg: "DEEPSEEK_API_KEY not configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.FigmaToken = "figma-token"
			cfg.DeepSeekKey = "deepseek-key"
			tt.mutate(&cfg)
			s := New(cfg, nil)

			w := postGenerate(t, s, `{"figmaUrl": "https://figma.com/file/ABC123/Test?node-id=1-2"}`)
			if w.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", w.Code)
			}
			if got := decodeError(t, w); got != tt.wantMsg {
				t.Errorf("error = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestGenerate_FetchFailure(t *testing.T) {
	s := newTestServer(t, http.StatusForbidden, deepseekReply)

	w := postGenerate(t, s, `{"figmaUrl": "https://figma.com/file/ABC123/Test?node-id=1-2"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	want := "Failed to fetch Figma data. Check your token and URL"
	if got := decodeError(t, w); got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}

func TestPreflight(t *testing.T) {
	s := newTestServer(t, http.StatusOK, deepseekReply)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("preflight body = %q, want empty", w.Body.String())
	}

	checks := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "POST, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type",
		"Access-Control-Max-Age":       "86400",
	}
	for header, want := range checks {
		if got := w.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, http.StatusOK, deepseekReply)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", w.Code)
	}
	if got := decodeError(t, w); got != "Method not allowed" {
		t.Errorf("error = %q, want Method not allowed", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}
