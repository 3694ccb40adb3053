package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/matzehuels/sbomdiff/pkg/buildinfo"
	"github.com/matzehuels/sbomdiff/pkg/compare"
	apperr "github.com/matzehuels/sbomdiff/pkg/errors"
	"github.com/matzehuels/sbomdiff/pkg/pipeline"
	"github.com/matzehuels/sbomdiff/pkg/sink"
	"github.com/matzehuels/sbomdiff/pkg/spdx"
)

// CompareRequest is the body of POST /v1/compare.
type CompareRequest struct {
	Names           []string          `json:"names,omitempty"`
	Documents       []json.RawMessage `json:"documents"`
	Categories      []string          `json:"categories,omitempty"`
	Format          string            `json:"format,omitempty"`
	OnlyDifferences bool              `json:"only_differences,omitempty"`
	ContinueOnError bool              `json:"continue_on_error,omitempty"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

var contentTypes = map[string]string{
	sink.FormatJSON: "application/json",
	sink.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	sink.FormatText: "text/plain; charset=utf-8",
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, compare.Categories())
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if ct := r.Header.Get("Content-Type"); ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err != nil || mt != "application/json" {
			s.writeError(w, apperr.New(apperr.ErrCodeUnsupported, "content type %q is not supported, send application/json", ct))
			return
		}
	}

	var req CompareRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, apperr.New(apperr.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		s.writeError(w, apperr.New(apperr.ErrCodeInvalidInput, "decode request: %v", err))
		return
	}

	if req.Format == "" {
		req.Format = sink.FormatJSON
	}
	opts := pipeline.Options{
		Names:           req.Names,
		Categories:      req.Categories,
		ContinueOnError: req.ContinueOnError,
		Formats:         []string{req.Format},
		OnlyDifferences: req.OnlyDifferences,
	}
	if err := opts.ValidateForExport(); err != nil {
		s.writeError(w, err)
		return
	}
	if len(opts.Names) == 0 {
		opts.Names = make([]string, len(req.Documents))
		for i := range opts.Names {
			opts.Names[i] = fmt.Sprintf("doc%d", i+1)
		}
	}
	if err := apperr.ValidateDocumentNames(opts.Names, len(req.Documents)); err != nil {
		s.writeError(w, err)
		return
	}

	docs := make([]pipeline.Loaded, len(req.Documents))
	for i, raw := range req.Documents {
		d, err := pipeline.Decode(opts.Names[i], raw, spdx.FormatJSON)
		if err != nil {
			s.writeError(w, err)
			return
		}
		docs[i] = d
	}

	report, hit, err := s.runner.CompareWithCacheInfo(ctx, docs, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	artifacts, err := s.runner.Export(ctx, report, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[req.Format])
	if req.Format == sink.FormatXLSX {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "report-"+report.ID+sink.Extension(req.Format)))
	}
	w.Header().Set("X-Report-ID", report.ID)
	w.Header().Set("X-Cache", cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifacts[req.Format]); err != nil {
		s.logger.Debug("write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("compare request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: apperr.UserMessage(err), Code: string(code)})
}

// clientStatus maps the codes of caller mistakes to HTTP statuses.
var clientStatus = map[apperr.Code]int{
	apperr.ErrCodeInvalidInput:         http.StatusBadRequest,
	apperr.ErrCodeInvalidDocumentCount: http.StatusBadRequest,
	apperr.ErrCodeInvalidFormat:        http.StatusBadRequest,
	apperr.ErrCodeInvalidPath:          http.StatusBadRequest,
	apperr.ErrCodeInvalidDocument:      http.StatusBadRequest,
	apperr.ErrCodeUnsortedInput:        http.StatusBadRequest,
	apperr.ErrCodeNotFound:             http.StatusNotFound,
	apperr.ErrCodeFileNotFound:         http.StatusNotFound,
	apperr.ErrCodeUnsupported:          http.StatusUnsupportedMediaType,
}

// classify picks the status and code of an error. The outermost code in
// the chain that names a caller mistake wins, so a comparison failure
// caused by a malformed document is a 400 carrying INVALID_DOCUMENT.
func classify(err error) (int, apperr.Code) {
	codes := apperr.Codes(err)
	for _, c := range codes {
		if status, ok := clientStatus[c]; ok {
			return status, c
		}
	}
	if len(codes) > 0 {
		return http.StatusInternalServerError, codes[0]
	}
	return http.StatusInternalServerError, apperr.ErrCodeInternal
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
