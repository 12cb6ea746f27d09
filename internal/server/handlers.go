package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/wrapped/pkg/buildinfo"
	werrors "github.com/matzehuels/wrapped/pkg/errors"
	"github.com/matzehuels/wrapped/pkg/pipeline"
	"github.com/matzehuels/wrapped/pkg/render/sink"
	"github.com/matzehuels/wrapped/pkg/wrapped"
)

// maxBodyBytes bounds generate request bodies.
const maxBodyBytes = 1 << 16

type generateRequest struct {
	Username string `json:"username"`
	Year     int    `json:"year,omitempty"`
	Refresh  bool   `json:"refresh,omitempty"`
}

type resultResponse struct {
	ID          string            `json:"id"`
	User        string            `json:"user"`
	Year        int               `json:"year"`
	PageCount   int               `json:"page_count"`
	Placeholder bool              `json:"placeholder,omitempty"`
	Summary     wrapped.Summary   `json:"summary"`
	Sections    []wrapped.Section `json:"sections"`
	Pages       []string          `json:"pages"`
}

type errorResponse struct {
	Error string       `json:"error"`
	Code  werrors.Code `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Version,
		"results": s.store.Len(),
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, werrors.New(werrors.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()

	res, err := s.runner.Generate(ctx, pipeline.Options{
		User:    req.Username,
		Year:    req.Year,
		Refresh: req.Refresh,
	})
	if err != nil {
		s.logger.Warn("generate failed", "user", req.Username, "error", err)
		writeError(w, err)
		return
	}

	s.store.Put(res)
	writeJSON(w, http.StatusCreated, newResultResponse(res))
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	res, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newResultResponse(res))
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	res, ok := s.lookup(w, r)
	if !ok {
		return
	}
	data, err := sink.RenderJSON(res.Report,
		sink.WithJSONUser(res.User),
		sink.WithJSONSections(res.Sections),
		sink.WithJSONPages(res.Pages),
	)
	if err != nil {
		writeError(w, werrors.Wrap(werrors.ErrCodeInternal, err, "render report"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	res, ok := s.lookup(w, r)
	if !ok {
		return
	}
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || n < 1 || n > res.PageCount() {
		writeError(w, werrors.New(werrors.ErrCodeNotFound, "page %s not found", chi.URLParam(r, "n")))
		return
	}

	data, err := s.runner.RenderPNG(res, n-1)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", sink.PageFilename(res.Year, n)))
	w.Write(data)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*pipeline.Result, bool) {
	id := chi.URLParam(r, "id")
	res, ok := s.store.Get(id)
	if !ok {
		writeError(w, werrors.New(werrors.ErrCodeNotFound, "result %s not found", id))
		return nil, false
	}
	return res, true
}

func newResultResponse(res *pipeline.Result) resultResponse {
	pages := make([]string, res.PageCount())
	for i := range pages {
		pages[i] = fmt.Sprintf("/api/wrapped/%s/pages/%d.png", res.ID, i+1)
	}
	return resultResponse{
		ID:          res.ID,
		User:        res.User,
		Year:        res.Year,
		PageCount:   res.PageCount(),
		Placeholder: res.Placeholder,
		Summary:     res.Report.Summary,
		Sections:    res.Sections,
		Pages:       pages,
	}
}

// statusFor maps an error to an HTTP status code.
func statusFor(err error) int {
	var rl *werrors.RateLimitedError
	switch {
	case errors.As(err, &rl):
		return http.StatusTooManyRequests
	case werrors.Is(err, werrors.ErrCodeFetch):
		return http.StatusBadGateway
	case werrors.Is(err, werrors.ErrCodeInvalidInput), werrors.Is(err, werrors.ErrCodeInvalidUsername):
		return http.StatusBadRequest
	case werrors.Is(err, werrors.ErrCodeNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := werrors.UserMessage(err)
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Error: msg, Code: werrors.GetCode(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
