package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codetools/src/config"
	"codetools/src/controller"
	"codetools/src/model"
	"codetools/src/service/analyzer"
)

var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func setupTestServer(t *testing.T) (*Server, *config.Config) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Server.DeepDelay = 0
	ctrl := controller.NewAnalysisControllerWithEngine(cfg, analyzer.New(func() time.Time { return fixedNow }))
	return NewServerWithController(cfg, ctrl), cfg
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	s, cfg := setupTestServer(t)
	w := do(t, s, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp model.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, cfg.Agent.Version, resp.Version)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestAnalyzeEndpoint(t *testing.T) {
	t.Parallel()

	s, _ := setupTestServer(t)
	code := "eval(userInput);\nif (a == b) {}"
	w := do(t, s, http.MethodPost, "/analyze", model.AnalyzeRequest{Code: model.CodePtr(code)})

	require.Equal(t, http.StatusOK, w.Code)
	var res model.AnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))

	want := analyzer.Analyze(code, model.LanguageJavaScript, fixedNow)
	assert.Equal(t, want.Metrics, res.Metrics)
	assert.Equal(t, want.Issues, res.Issues)
	assert.Equal(t, want.Summary, res.Summary)
	assert.Equal(t, w.Header().Get(RequestIDHeader), res.RequestID)
	assert.Nil(t, res.Suggestions)
}

func TestAnalyzeEndpoint_EmptyCodeIsAnalysed(t *testing.T) {
	t.Parallel()

	s, _ := setupTestServer(t)
	w := do(t, s, http.MethodPost, "/analyze", `{"code": ""}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"issues":[]`)
	assert.Contains(t, w.Body.String(), `"complexity":1`)
}

func TestAnalyzeEndpoint_DeepAddsSuggestions(t *testing.T) {
	t.Parallel()

	s, _ := setupTestServer(t)
	w := do(t, s, http.MethodPost, "/analyze", model.AnalyzeRequest{Code: model.CodePtr("eval(x)"), Deep: true})

	require.Equal(t, http.StatusOK, w.Code)
	var res model.AnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Deep)
	require.Len(t, res.Suggestions, 1)
	assert.Equal(t, "Fix security issue: Use of eval() is dangerous and can execute arbitrary code", res.Suggestions[0].Message)
}

func TestAnalyzeEndpoint_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		body   any
		status int
		msg    string
	}{
		{"missing code", http.MethodPost, `{"language": "javascript"}`, http.StatusBadRequest, "code is required"},
		{"null code", http.MethodPost, `{"code": null}`, http.StatusBadRequest, "code is required"},
		{"bad json", http.MethodPost, `{"code": `, http.StatusBadRequest, "invalid JSON"},
		{"wrong method", http.MethodGet, nil, http.StatusMethodNotAllowed, "method not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, _ := setupTestServer(t)
			w := do(t, s, tt.method, "/analyze", tt.body)

			assert.Equal(t, tt.status, w.Code)
			resp := decodeError(t, w)
			assert.Contains(t, resp.Error, tt.msg)
			assert.Equal(t, w.Header().Get(RequestIDHeader), resp.RequestID)
		})
	}
}

func TestAnalyzeEndpoint_BodyTooLarge(t *testing.T) {
	t.Parallel()

	s, cfg := setupTestServer(t)
	cfg.Server.MaxBodyBytes = 32

	w := do(t, s, http.MethodPost, "/analyze", model.AnalyzeRequest{Code: model.CodePtr(strings.Repeat("a", 100))})
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRequestIDIsPropagated(t *testing.T) {
	t.Parallel()

	s, _ := setupTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "client-supplied")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, "client-supplied", w.Header().Get(RequestIDHeader))
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Parallel()

	s, _ := setupTestServer(t)
	s.mux.HandleFunc("/boom", func(http.ResponseWriter, *http.Request) {
		panic("detector table corrupted")
	})

	w := do(t, s, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "internal error", resp.Error)
	assert.NotEmpty(t, resp.RequestID)
}

func TestFormatEndpoint(t *testing.T) {
	t.Parallel()

	s, _ := setupTestServer(t)
	w := do(t, s, http.MethodPost, "/format", model.FormatRequest{Code: model.CodePtr("if(a){b(1,2)}")})

	require.Equal(t, http.StatusOK, w.Code)
	var res model.FormatResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "if (a) {b(1, 2)}\n", res.Formatted)
	assert.True(t, res.Changed)

	w = do(t, s, http.MethodPost, "/format", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateEndpoint(t *testing.T) {
	t.Parallel()

	s, _ := setupTestServer(t)

	w := do(t, s, http.MethodPost, "/validate", model.ValidateRequest{Code: model.CodePtr("const a = 1;")})
	require.Equal(t, http.StatusOK, w.Code)
	var res model.ValidationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Valid)

	w = do(t, s, http.MethodPost, "/validate", model.ValidateRequest{Code: model.CodePtr("function ("), Language: "js"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Errors)

	w = do(t, s, http.MethodPost, "/validate", model.ValidateRequest{Code: model.CodePtr("x"), Language: "cobol"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	s, cfg := setupTestServer(t)
	cfg.Server.Addr = addr

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
