package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/khanglvm/portfolio-mcp/internal/tools"
)

const maxBodyBytes = 1 << 20

type callRequest struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Server    string `json:"server"`
	Version   string `json:"version"`
}

type toolsResponse struct {
	Tools []tools.Definition `json:"tools"`
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	var req callRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		respondError(w, s.logger, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return
	}

	if req.Name == "" {
		respondError(w, s.logger, http.StatusBadRequest, "Tool name is required")
		return
	}
	if req.Arguments == nil {
		respondError(w, s.logger, http.StatusBadRequest, "Tool arguments are required")
		return
	}

	ctx := tools.WithTransport(r.Context(), tools.TransportHTTP)
	res, err := s.registry.Call(ctx, req.Name, req.Arguments)
	if err != nil {
		respondError(w, s.logger, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, s.logger, http.StatusOK, res)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, s.logger, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: s.now().UTC().Format(time.RFC3339),
		Server:    ServerName,
		Version:   s.version,
	})
}

func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, s.logger, http.StatusOK, toolsResponse{Tools: s.registry.Definitions()})
}

func respondJSON(w http.ResponseWriter, logger *log.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", "err", err)
	}
}

func respondError(w http.ResponseWriter, logger *log.Logger, status int, message string) {
	respondJSON(w, logger, status, map[string]string{"error": message})
}
