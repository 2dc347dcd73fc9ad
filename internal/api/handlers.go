package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/prop-edge/internal/models"
	"github.com/yourusername/prop-edge/internal/pipeline"
	"github.com/yourusername/prop-edge/internal/portfolio"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 8 << 20

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
}

// EvaluateRequest is the body of POST /api/v1/evaluate
type EvaluateRequest struct {
	Props []models.PropInput `json:"props"`
}

// EvaluateResponse is the reply to POST /api/v1/evaluate
type EvaluateResponse struct {
	NumSims   int                    `json:"n_sims"`
	Evaluated []models.EvaluatedProp `json:"evaluated"`
}

// PortfolioRequest is the body of POST /api/v1/portfolio. Constraints
// fields left out keep the server's configured values.
type PortfolioRequest struct {
	Props       []models.PropInput    `json:"props"`
	Constraints portfolio.Constraints `json:"constraints"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	service string
	version string
	runner  *pipeline.Runner
	ready   func() bool
	logger  *logrus.Entry
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   h.service,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
	})
}

func (h *handler) readiness(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"service": "ok", "runner": "ok"}
	ok := true
	if !h.ready() {
		checks["service"] = "not_ready"
		ok = false
	}
	if h.runner == nil {
		checks["runner"] = "not_configured"
		ok = false
	}

	status, code := "ok", http.StatusOK
	if !ok {
		status, code = "not_ready", http.StatusServiceUnavailable
	}
	respondJSON(w, code, map[string]any{
		"status":  status,
		"service": h.service,
		"checks":  checks,
	})
}

func (h *handler) evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if !decode(w, r, &req) {
		return
	}
	if len(req.Props) == 0 {
		respondError(w, http.StatusBadRequest, models.ErrEmptyBatch.Error())
		return
	}

	evaluated, err := h.runner.Evaluator().EvaluateBatch(r.Context(), req.Props)
	if err != nil {
		h.respondRunError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, EvaluateResponse{
		NumSims:   h.runner.Evaluator().NumSims(),
		Evaluated: evaluated,
	})
}

func (h *handler) portfolio(w http.ResponseWriter, r *http.Request) {
	req := PortfolioRequest{Constraints: h.runner.Constraints()}
	if !decode(w, r, &req) {
		return
	}
	if len(req.Props) == 0 {
		respondError(w, http.StatusBadRequest, models.ErrEmptyBatch.Error())
		return
	}

	result, err := h.runner.RunWithConstraints(r.Context(), req.Props, req.Constraints)
	if err != nil {
		h.respondRunError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *handler) respondRunError(w http.ResponseWriter, err error) {
	var cfgErr *portfolio.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.logger.WithError(err).Warn("Request cancelled during evaluation")
		respondError(w, http.StatusServiceUnavailable, "evaluation cancelled")
	default:
		h.logger.WithError(err).Error("Evaluation request failed")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return false
	}
	return true
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}
