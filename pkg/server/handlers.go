package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/matzehuels/graphscape/pkg/buildinfo"
	"github.com/matzehuels/graphscape/pkg/cluster"
	gserrors "github.com/matzehuels/graphscape/pkg/errors"
	"github.com/matzehuels/graphscape/pkg/filter"
	"github.com/matzehuels/graphscape/pkg/layout"
	"github.com/matzehuels/graphscape/pkg/render"
)

// maxImportBytes bounds graph import payloads.
const maxImportBytes = 32 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	d, err := s.engine.Data()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleImportGraph(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		s.writeError(w, gserrors.Wrap(gserrors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	if err := s.engine.Import(data); err != nil {
		s.writeError(w, err)
		return
	}
	d, err := s.engine.Data()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d.Metadata)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	report, err := s.engine.ComputeAnalytics(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type layoutRequest struct {
	Algorithm string        `json:"algorithm"`
	Params    layout.Params `json:"params,omitempty"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if !decodeJSON(s, w, r, &req) {
		return
	}
	if err := s.engine.ApplyLayout(r.Context(), req.Algorithm, req.Params); err != nil {
		s.writeError(w, err)
		return
	}
	d, err := s.engine.Data()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

type clusterRequest struct {
	Strategy string         `json:"strategy"`
	Params   cluster.Params `json:"params,omitempty"`
}

func (s *Server) handleCluster(w http.ResponseWriter, r *http.Request) {
	var req clusterRequest
	if !decodeJSON(s, w, r, &req) {
		return
	}
	if err := s.engine.ApplyClustering(r.Context(), req.Strategy, req.Params); err != nil {
		s.writeError(w, err)
		return
	}
	d, err := s.engine.Data()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req filter.Filter
	if !decodeJSON(s, w, r, &req) {
		return
	}
	d, err := s.engine.FilterData(req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

type optimizeRequest struct {
	Viewport render.Viewport        `json:"viewport"`
	Mode     render.PerformanceMode `json:"mode,omitempty"`
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if !decodeJSON(s, w, r, &req) {
		return
	}
	out, err := s.engine.OptimizeGraph(r.Context(), req.Viewport, req.Mode)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// =============================================================================
// Helpers
// =============================================================================

type errorResponse struct {
	Code    gserrors.Code `json:"code"`
	Message string        `json:"message"`
}

func decodeJSON(s *Server, w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, gserrors.Wrap(gserrors.ErrCodeInvalidInput, err, "decode request"))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := gserrors.GetCode(err)
	status := statusFor(code)
	if s.logger != nil && status >= 500 {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	if code == "" {
		code = gserrors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Code: code, Message: gserrors.UserMessage(err)})
}

func statusFor(code gserrors.Code) int {
	switch code {
	case gserrors.ErrCodeInvalidInput, gserrors.ErrCodeInvalidGraph,
		gserrors.ErrCodeInvalidNodeType, gserrors.ErrCodeInvalidLinkType,
		gserrors.ErrCodeInvalidFilter, gserrors.ErrCodeInvalidParams,
		gserrors.ErrCodeInvalidViewport,
		gserrors.ErrCodeUnknownAlgorithm, gserrors.ErrCodeUnknownStrategy:
		return http.StatusBadRequest
	case gserrors.ErrCodeNotFound, gserrors.ErrCodeNodeNotFound,
		gserrors.ErrCodeLinkNotFound, gserrors.ErrCodeNoData:
		return http.StatusNotFound
	case gserrors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
