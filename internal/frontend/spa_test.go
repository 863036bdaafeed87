package frontend

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fs.FS {
	return fstest.MapFS{
		"index.html":             &fstest.MapFile{Data: []byte("<!DOCTYPE html><html><body>applytrack web</body></html>")},
		"assets/app-abc123.js":   &fstest.MapFile{Data: []byte("console.log('app');")},
		"assets/app-def456.css":  &fstest.MapFile{Data: []byte("body { color: black; }")},
		"favicon.svg":            &fstest.MapFile{Data: []byte("<svg></svg>")},
		"assets/nested/font.txt": &fstest.MapFile{Data: []byte("glyphs")},
	}
}

func serve(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestSPAHandler_RootPath(t *testing.T) {
	w := serve(t, NewSPAHandler(testFS()), http.MethodGet, "/")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "applytrack web")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
}

func TestSPAHandler_IndexHTMLDirect(t *testing.T) {
	w := serve(t, NewSPAHandler(testFS()), http.MethodGet, "/index.html")

	require.Equal(t, http.StatusOK, w.Code, "index.html is served, not redirected")
	assert.Contains(t, w.Body.String(), "applytrack web")
}

func TestSPAHandler_Assets(t *testing.T) {
	tests := []struct {
		path     string
		content  string
		wantType string
	}{
		{"/assets/app-abc123.js", "console.log", "javascript"},
		{"/assets/app-def456.css", "color: black", "css"},
		{"/assets/nested/font.txt", "glyphs", "text/plain"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := serve(t, NewSPAHandler(testFS()), http.MethodGet, tt.path)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.content)
			assert.Contains(t, w.Header().Get("Content-Type"), tt.wantType)
			assert.Contains(t, w.Header().Get("Cache-Control"), "immutable")
		})
	}
}

func TestSPAHandler_TopLevelFileIsNotImmutable(t *testing.T) {
	w := serve(t, NewSPAHandler(testFS()), http.MethodGet, "/favicon.svg")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Cache-Control"))
}

func TestSPAHandler_UnknownPathsServeIndex(t *testing.T) {
	paths := []string{
		"/applications",
		"/applications/app-101",
		"/network",
		"/assets/",
		"/assets/missing.js",
		"/deep/unknown/route",
	}
	h := NewSPAHandler(testFS())
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			w := serve(t, h, http.MethodGet, path)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), "applytrack web")
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		})
	}
}

func TestSPAHandler_APIPathsAre404(t *testing.T) {
	paths := []string{"/api/applications", "/api/anything", "/api/nested/path"}
	h := NewSPAHandler(testFS())
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			w := serve(t, h, http.MethodGet, path)

			require.Equal(t, http.StatusNotFound, w.Code)
			assert.NotContains(t, w.Body.String(), "applytrack web")
		})
	}
}

func TestSPAHandler_HeadRequest(t *testing.T) {
	w := serve(t, NewSPAHandler(testFS()), http.MethodHead, "/")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestSPAHandler_MissingIndex(t *testing.T) {
	h := NewSPAHandler(fstest.MapFS{"assets/app.js": &fstest.MapFile{Data: []byte("x")}})

	require.Equal(t, http.StatusNotFound, serve(t, h, http.MethodGet, "/").Code)
	require.Equal(t, http.StatusOK, serve(t, h, http.MethodGet, "/assets/app.js").Code)
}
