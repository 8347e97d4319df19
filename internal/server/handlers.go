package server

import (
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MeKo-Tech/declutter/internal/layout"
	"github.com/MeKo-Tech/declutter/internal/render"
	"github.com/MeKo-Tech/declutter/internal/version"
)

const (
	formatYAML    = "yaml"
	formatOverlay = "overlay"
)

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	v, _, _ := version.Info()
	response := HealthResponse{
		Status:  "healthy",
		Version: v,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding health response: %v\n", err)
	}
}

// resolveHandler processes page resolve requests.
func (s *Server) resolveHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyMB*1024*1024)

	var page layout.Page
	if err := json.NewDecoder(r.Body).Decode(&page); err != nil {
		status := http.StatusBadRequest
		if err.Error() == "http: request body too large" {
			status = http.StatusRequestEntityTooLarge
		}
		s.writeErrorResponse(w, fmt.Sprintf("Invalid page document: %v", err), status)
		return
	}

	if s.resolver == nil {
		s.writeErrorResponse(w, "Resolver not initialized", http.StatusServiceUnavailable)
		return
	}

	start := time.Now()
	resolved := s.resolver.ProcessPage(page)
	duration := time.Since(start)

	resolveRequestsTotal.WithLabelValues("http", "success").Inc()
	resolveDuration.WithLabelValues("http").Observe(duration.Seconds())
	clustersPerPage.WithLabelValues("in").Observe(float64(len(page.Clusters)))
	clustersPerPage.WithLabelValues("out").Observe(float64(len(resolved.Clusters)))

	format := r.URL.Query().Get("format")
	switch format {
	case formatYAML:
		w.Header().Set("Content-Type", "application/yaml")
		if err := yaml.NewEncoder(w).Encode(resolved); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding resolve response: %v\n", err)
		}
	case formatOverlay:
		s.handleOverlayOutput(w, resolved, r.URL.Query().Get("cells") == "1")
	default:
		response := ResolveResponse{Page: &resolved}
		response.Processing.ClustersIn = len(page.Clusters)
		response.Processing.ClustersOut = len(resolved.Clusters)
		response.Processing.TotalNs = duration.Nanoseconds()

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding resolve response: %v\n", err)
		}
	}
}

// handleOverlayOutput renders the resolved page as a PNG overlay.
func (s *Server) handleOverlayOutput(w http.ResponseWriter, page layout.Page, withCells bool) {
	if !s.overlayEnabled {
		http.Error(w, "overlay output disabled", http.StatusForbidden)
		return
	}

	ov := render.Overlay(s.fullResolver, page, render.DefaultStyle(), withCells)
	if ov == nil {
		http.Error(w, "nothing to render", http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_ = png.Encode(w, ov)
}

// writeErrorResponse writes a JSON error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ResolveResponse{Error: message}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing error response: %v\n", err)
	}
}
