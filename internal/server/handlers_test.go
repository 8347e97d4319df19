package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/declutter/internal/geometry"
	"github.com/MeKo-Tech/declutter/internal/layout"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	server, err := NewServer(Config{
		CORSOrigin:     "*",
		MaxBodyMB:      10,
		TimeoutSec:     30,
		Resolver:       layout.DefaultOptions(),
		OverlayEnabled: true,
	})
	require.NoError(t, err)
	return server
}

func overlappingPageJSON(t *testing.T) []byte {
	t.Helper()
	page := layout.Page{Clusters: []layout.Cluster{
		{ID: 1, Label: "text", BBox: geometry.NewBBox(0, 0, 10, 10), Confidence: 0.9,
			Cells: []layout.TextCell{{Text: "a", BBox: geometry.NewBBox(0, 0, 10, 2)}}},
		{ID: 2, Label: "text", BBox: geometry.NewBBox(1, 1, 9, 9), Confidence: 0.5,
			Cells: []layout.TextCell{{Text: "b", BBox: geometry.NewBBox(1, 1, 9, 3)}}},
	}}
	data, err := json.Marshal(page)
	require.NoError(t, err)
	return data
}

func TestServer_HealthHandler(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name           string
		method         string
		expectedStatus int
		checkResponse  bool
	}{
		{
			name:           "GET request success",
			method:         "GET",
			expectedStatus: http.StatusOK,
			checkResponse:  true,
		},
		{
			name:           "POST request not allowed",
			method:         "POST",
			expectedStatus: http.StatusMethodNotAllowed,
			checkResponse:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/health", nil)
			w := httptest.NewRecorder()

			server.healthHandler(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.checkResponse {
				var response HealthResponse
				err := json.Unmarshal(w.Body.Bytes(), &response)
				require.NoError(t, err)

				assert.Equal(t, "healthy", response.Status)
				assert.NotEmpty(t, response.Time)
				assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			}
		})
	}
}

func TestServer_ResolveHandler(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest("POST", "/resolve", bytes.NewReader(overlappingPageJSON(t)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	server.resolveHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response ResolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotNil(t, response.Page)
	require.Len(t, response.Page.Clusters, 1)
	assert.Equal(t, 1, response.Page.Clusters[0].ID)
	assert.Len(t, response.Page.Clusters[0].Cells, 2)
	assert.Equal(t, 2, response.Processing.ClustersIn)
	assert.Equal(t, 1, response.Processing.ClustersOut)
}

func TestServer_ResolveHandlerMethodNotAllowed(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest("GET", "/resolve", nil)
	w := httptest.NewRecorder()

	server.resolveHandler(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestServer_ResolveHandlerInvalidBody(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest("POST", "/resolve", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()

	server.resolveHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response ResolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response.Error)
}

func TestServer_ResolveHandlerYAMLFormat(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest("POST", "/resolve?format=yaml", bytes.NewReader(overlappingPageJSON(t)))
	w := httptest.NewRecorder()

	server.resolveHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/yaml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "clusters:")
}

func TestServer_ResolveHandlerOverlayFormat(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest("POST", "/resolve?format=overlay", bytes.NewReader(overlappingPageJSON(t)))
	w := httptest.NewRecorder()

	server.resolveHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	// PNG signature
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte{0x89, 'P', 'N', 'G'}))
}

func TestServer_ResolveHandlerOverlayDisabled(t *testing.T) {
	server := newTestServer(t)
	server.overlayEnabled = false

	req := httptest.NewRequest("POST", "/resolve?format=overlay", bytes.NewReader(overlappingPageJSON(t)))
	w := httptest.NewRecorder()

	server.resolveHandler(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestServer_ResolveHandlerEmptyPage(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest("POST", "/resolve", bytes.NewReader([]byte(`{"clusters":[]}`)))
	w := httptest.NewRecorder()

	server.resolveHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response ResolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotNil(t, response.Page)
	assert.Empty(t, response.Page.Clusters)
	assert.Equal(t, 0, response.Processing.ClustersIn)
}
