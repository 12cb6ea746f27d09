package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	werrors "github.com/matzehuels/wrapped/pkg/errors"
	"github.com/matzehuels/wrapped/pkg/pipeline"
	"github.com/matzehuels/wrapped/pkg/wrapped"
)

func intp(v int) *int { return &v }

func newTestServer(t *testing.T, f pipeline.Fetcher) *Server {
	t.Helper()
	logger := log.New(io.Discard)
	return New(pipeline.NewRunner(f, nil, logger), NewStore(0), logger)
}

func okFetcher() pipeline.Fetcher {
	return pipeline.FetcherFunc(func(ctx context.Context, user string, refresh bool) ([]wrapped.Entry, []wrapped.Entry, error) {
		anime := []wrapped.Entry{{CompletionYear: intp(2025), Media: wrapped.Media{Title: "Frieren", Units: intp(28)}}}
		return anime, nil, nil
	})
}

func failFetcher(err error) pipeline.Fetcher {
	return pipeline.FetcherFunc(func(ctx context.Context, user string, refresh bool) ([]wrapped.Entry, []wrapped.Entry, error) {
		return nil, nil, err
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func generate(t *testing.T, s *Server) resultResponse {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/api/wrapped", `{"username": "Josh"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/wrapped status = %d, body %s", rec.Code, rec.Body)
	}
	var resp resultResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, okFetcher())
	rec := do(t, s, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestGenerate(t *testing.T) {
	s := newTestServer(t, okFetcher())
	resp := generate(t, s)

	if resp.ID == "" || resp.User != "Josh" || resp.Year != 2025 {
		t.Errorf("response = %+v", resp)
	}
	if len(resp.Sections) != 17 {
		t.Errorf("sections = %d, want 17", len(resp.Sections))
	}
	if resp.PageCount == 0 || len(resp.Pages) != resp.PageCount {
		t.Errorf("page_count = %d, pages = %v", resp.PageCount, resp.Pages)
	}
	if resp.Summary.EpisodesWatched != 28 {
		t.Errorf("EpisodesWatched = %d, want 28", resp.Summary.EpisodesWatched)
	}
	if s.store.Len() != 1 {
		t.Errorf("store len = %d, want 1", s.store.Len())
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name       string
		fetcher    pipeline.Fetcher
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"bad json", okFetcher(), `{`, http.StatusBadRequest, "invalid request body"},
		{"empty username", okFetcher(), `{"username": "  "}`, http.StatusBadRequest, werrors.EmptyUsernameMessage},
		{"fetch failure", failFetcher(errors.New("boom")), `{"username": "Josh"}`, http.StatusBadGateway, werrors.FetchFailedMessage},
		{"rate limited", failFetcher(&werrors.RateLimitedError{RetryAfter: 5}), `{"username": "Josh"}`, http.StatusTooManyRequests, werrors.FetchFailedMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.fetcher)
			rec := do(t, s, http.MethodPost, "/api/wrapped", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body)
			}
			var resp errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if resp.Error != tt.wantMsg {
				t.Errorf("error = %q, want %q", resp.Error, tt.wantMsg)
			}
			if s.store.Len() != 0 {
				t.Error("failed generation must not modify the store")
			}
		})
	}
}

func TestGetResult(t *testing.T) {
	s := newTestServer(t, okFetcher())
	created := generate(t, s)

	rec := do(t, s, http.MethodGet, "/api/wrapped/"+created.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got resultResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.ID != created.ID {
		t.Errorf("ID = %q, want %q", got.ID, created.ID)
	}

	if rec := do(t, s, http.MethodGet, "/api/wrapped/unknown", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", rec.Code)
	}
}

func TestGetReport(t *testing.T) {
	s := newTestServer(t, okFetcher())
	created := generate(t, s)

	rec := do(t, s, http.MethodGet, "/api/wrapped/"+created.ID+"/report.json", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var report struct {
		User     string            `json:"user"`
		Sections []wrapped.Section `json:"sections"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatal(err)
	}
	if report.User != "Josh" || len(report.Sections) != 17 {
		t.Errorf("report = %+v", report)
	}
}

func TestGetPage(t *testing.T) {
	s := newTestServer(t, okFetcher())
	created := generate(t, s)

	rec := do(t, s, http.MethodGet, created.Pages[0], "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "anilist-wrapped-2025-page1.png") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if cfg.Width != 1080 || cfg.Height != 1920 {
		t.Errorf("size = %dx%d", cfg.Width, cfg.Height)
	}
}

func TestGetPageOutOfRange(t *testing.T) {
	s := newTestServer(t, okFetcher())
	created := generate(t, s)

	for _, n := range []string{"0", "99", "x"} {
		rec := do(t, s, http.MethodGet, "/api/wrapped/"+created.ID+"/pages/"+n+".png", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("page %s status = %d, want 404", n, rec.Code)
		}
	}
}

func TestStoreEviction(t *testing.T) {
	st := NewStore(2)
	for _, id := range []string{"a", "b", "c"} {
		st.Put(&pipeline.Result{ID: id})
	}
	if st.Len() != 2 {
		t.Errorf("Len() = %d, want 2", st.Len())
	}
	if _, ok := st.Get("a"); ok {
		t.Error("oldest result should be evicted")
	}
	if _, ok := st.Get("c"); !ok {
		t.Error("newest result should be kept")
	}

	// Re-putting an existing ID does not duplicate it.
	st.Put(&pipeline.Result{ID: "c"})
	if st.Len() != 2 {
		t.Errorf("Len() after re-put = %d, want 2", st.Len())
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{werrors.New(werrors.ErrCodeFetch, "x"), http.StatusBadGateway},
		{werrors.New(werrors.ErrCodeInvalidUsername, "x"), http.StatusBadRequest},
		{werrors.New(werrors.ErrCodeInvalidInput, "x"), http.StatusBadRequest},
		{werrors.New(werrors.ErrCodeNotFound, "x"), http.StatusNotFound},
		{&werrors.RateLimitedError{}, http.StatusTooManyRequests},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
