package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sbomdiff/pkg/cache"
	"github.com/matzehuels/sbomdiff/pkg/compare"
	apperr "github.com/matzehuels/sbomdiff/pkg/errors"
	"github.com/matzehuels/sbomdiff/pkg/observability"
	"github.com/matzehuels/sbomdiff/pkg/pipeline"
	"github.com/matzehuels/sbomdiff/pkg/sink"
	"github.com/matzehuels/sbomdiff/pkg/spdx"
)

func newTestServer(t *testing.T, c cache.Cache) *Server {
	t.Helper()
	logger := log.New(io.Discard)
	return New(pipeline.NewRunner(c, nil, logger), nil)
}

func fixtureDocuments(t *testing.T) []json.RawMessage {
	t.Helper()
	var out []json.RawMessage
	for _, name := range []string{"app-1.0.spdx.json", "app-1.1.spdx.yaml"} {
		doc, err := spdx.Load(filepath.Join("..", "spdx", "testdata", name))
		require.NoError(t, err)
		data, err := json.Marshal(doc)
		require.NoError(t, err)
		out = append(out, data)
	}
	return out
}

func postCompare(t *testing.T, s *Server, req CompareRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodPost, "/v1/compare", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp healthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Version)
	assert.NotEmpty(t, w.Header().Get("Content-Type"))
}

func TestCategories(t *testing.T) {
	s := newTestServer(t, nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/categories", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var got []compare.Info
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, compare.Categories(), got)
}

func TestCompareJSON(t *testing.T) {
	s := newTestServer(t, nil)
	w := postCompare(t, s, CompareRequest{
		Names:     []string{"v1", "v2"},
		Documents: fixtureDocuments(t),
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "miss", w.Header().Get("X-Cache"))

	report, err := sink.ReadJSON(w.Body)
	require.NoError(t, err)
	assert.Equal(t, []string{"v1", "v2"}, report.Documents)
	assert.Equal(t, w.Header().Get("X-Report-ID"), report.ID)
	assert.Len(t, report.Sections, len(compare.Categories()))
	assert.False(t, report.Equal())
}

func TestCompareDefaultNames(t *testing.T) {
	s := newTestServer(t, nil)
	w := postCompare(t, s, CompareRequest{
		Documents:  fixtureDocuments(t),
		Categories: []string{compare.CategoryFiles},
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	report, err := sink.ReadJSON(w.Body)
	require.NoError(t, err)
	assert.Equal(t, []string{"doc1", "doc2"}, report.Documents)
	require.Len(t, report.Sections, 1)
	assert.Equal(t, compare.CategoryFiles, report.Sections[0].Category)
}

func TestCompareXLSX(t *testing.T) {
	s := newTestServer(t, nil)
	w := postCompare(t, s, CompareRequest{
		Documents: fixtureDocuments(t),
		Format:    sink.FormatXLSX,
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, contentTypes[sink.FormatXLSX], w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")), "xlsx should be a zip archive")
}

func TestCompareUsesCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	s := newTestServer(t, fc)
	req := CompareRequest{Documents: fixtureDocuments(t)}

	first := postCompare(t, s, req)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "miss", first.Header().Get("X-Cache"))

	second := postCompare(t, s, req)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "hit", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Header().Get("X-Report-ID"), second.Header().Get("X-Report-ID"))
}

func TestCompareErrors(t *testing.T) {
	docs := fixtureDocuments(t)
	tests := []struct {
		name   string
		req    CompareRequest
		status int
		code   string
	}{
		{"one document", CompareRequest{Documents: docs[:1]}, http.StatusBadRequest, "INVALID_DOCUMENT_COUNT"},
		{"name mismatch", CompareRequest{Names: []string{"a"}, Documents: docs}, http.StatusBadRequest, "INVALID_DOCUMENT_COUNT"},
		{"duplicate names", CompareRequest{Names: []string{"a", "a"}, Documents: docs}, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown format", CompareRequest{Documents: docs, Format: "pdf"}, http.StatusBadRequest, "INVALID_FORMAT"},
		{"unknown category", CompareRequest{Documents: docs, Categories: []string{"packages"}}, http.StatusBadRequest, "INVALID_INPUT"},
		{"invalid document", CompareRequest{Documents: []json.RawMessage{docs[0], json.RawMessage(`{"name":"x"}`)}}, http.StatusBadRequest, "INVALID_DOCUMENT"},
	}
	s := newTestServer(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postCompare(t, s, tt.req)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeError(t, w).Code)
		})
	}
}

func TestCompareMalformedDocument(t *testing.T) {
	doc, err := spdx.Load(filepath.Join("..", "spdx", "testdata", "app-1.0.spdx.json"))
	require.NoError(t, err)
	require.NotEmpty(t, doc.Files)
	doc.Files[0].Checksums = []spdx.Checksum{{Algorithm: "", Value: "0a"}}
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var logs bytes.Buffer
	s := New(pipeline.NewRunner(nil, nil, log.New(&logs)), nil)
	w := postCompare(t, s, CompareRequest{Documents: []json.RawMessage{data, data}})

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "INVALID_DOCUMENT", resp.Code)
	assert.Contains(t, resp.Error, "category files")
	assert.Contains(t, resp.Error, "malformed checksum")
	assert.NotContains(t, logs.String(), "compare request failed", "client errors are not logged as server failures")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   apperr.Code
	}{
		{"client code", apperr.New(apperr.ErrCodeInvalidFormat, "x"), http.StatusBadRequest, apperr.ErrCodeInvalidFormat},
		{"client cause", apperr.Wrap(apperr.ErrCodeCompareFailed, apperr.New(apperr.ErrCodeUnsortedInput, "x"), "category files"), http.StatusBadRequest, apperr.ErrCodeUnsortedInput},
		{"server failure", apperr.New(apperr.ErrCodeCompareFailed, "x"), http.StatusInternalServerError, apperr.ErrCodeCompareFailed},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, apperr.ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := classify(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestCompareBadRequestBody(t *testing.T) {
	s := newTestServer(t, nil)

	r := httptest.NewRequest(http.MethodPost, "/v1/compare", bytes.NewBufferString("{"))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", decodeError(t, w).Code)

	r = httptest.NewRequest(http.MethodPost, "/v1/compare", bytes.NewBufferString(`{"documents": []}`))
	r.Header.Set("Content-Type", "text/yaml")
	w = httptest.NewRecorder()
	s.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	assert.Equal(t, "UNSUPPORTED", decodeError(t, w).Code)
}

func TestCompareBodyLimit(t *testing.T) {
	s := New(pipeline.NewRunner(nil, nil, log.New(io.Discard)), nil, WithMaxBodyBytes(64))
	w := postCompare(t, s, CompareRequest{Documents: fixtureDocuments(t)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w).Error, "exceeds 64 bytes")
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t, nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v2/compare", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, w).Code)
}

type recordingHooks struct {
	observability.NoopServerHooks
	mu     sync.Mutex
	routes []string
	status []int
}

func (h *recordingHooks) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, method+" "+route)
	h.status = append(h.status, status)
}

func TestServerHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	hooks := &recordingHooks{}
	observability.SetServerHooks(hooks)

	s := newTestServer(t, nil)
	s.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/categories", nil))
	postCompare(t, s, CompareRequest{Documents: fixtureDocuments(t)[:1]})

	assert.Equal(t, []string{"GET /v1/categories", "POST /v1/compare"}, hooks.routes)
	assert.Equal(t, []int{http.StatusOK, http.StatusBadRequest}, hooks.status)
}

func TestListenAndServeShutdown(t *testing.T) {
	s := newTestServer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not shut down")
	}
}
