package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sant0-9/intelligenn/internal/analysis"
	"github.com/sant0-9/intelligenn/internal/export"
	"github.com/sant0-9/intelligenn/internal/profile"
	"github.com/sant0-9/intelligenn/internal/report"
)

const maxBodyBytes = 1 << 20

type handler struct {
	analyzer Analyzer
	logger   *zap.Logger
	timeout  time.Duration
}

type analyzeRequest struct {
	Company  string `json:"company"`
	Language string `json:"language"`
	Profile  string `json:"profile"`
}

type renderRequest struct {
	Text      string            `json:"text"`
	Citations []report.Citation `json:"citations"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !h.decode(w, r, &req) {
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	res, err := h.analyzer.Analyze(ctx, analysis.Query{
		Company:  req.Company,
		Language: req.Language,
		Profile:  req.Profile,
	})
	if err != nil {
		h.writeError(w, statusFor(err), err)
		return
	}

	h.writeJSON(w, http.StatusOK, export.NewDocument(res))
}

// render turns a raw report into card descriptors without calling a model.
func (h *handler) render(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !h.decode(w, r, &req) {
		return
	}

	parts := report.Split(req.Text)
	h.writeJSON(w, http.StatusOK, export.NewDocument(&analysis.Result{
		Insights:  parts.Insights,
		Script:    parts.Script,
		Citations: report.FilterCitations(req.Citations),
	}))
}

func (h *handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return false
	}
	return true
}

func statusFor(err error) int {
	var aerr *analysis.Error
	switch {
	case errors.Is(err, analysis.ErrEmptyCompany), errors.Is(err, profile.ErrUnknown):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &aerr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	}
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}
