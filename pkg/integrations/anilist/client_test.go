package anilist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/wrapped/pkg/cache"
	werrors "github.com/matzehuels/wrapped/pkg/errors"
	"github.com/matzehuels/wrapped/pkg/wrapped"
)

const sampleResponse = `{
  "data": {
    "anime": {"lists": [
      {"entries": [
        {"completedAt": {"year": 2025}, "progress": 12, "score": 8.5, "media": {
          "title": {"romaji": "Frieren"}, "episodes": 28, "duration": 24,
          "genres": ["Adventure", "Fantasy"], "tags": [{"name": "Elf"}],
          "studios": {"edges": [{"node": {"name": "Madhouse"}}, {"node": {"name": "Madhouse"}}]},
          "staff": {"edges": [{"node": {"name": {"full": "Keiichirou Saitou"}}}]}
        }}
      ]},
      {"entries": [
        {"completedAt": {"year": null}, "progress": 3, "score": 0, "media": {
          "title": {"romaji": "Dropped Show"}, "episodes": null, "duration": null,
          "genres": [], "tags": [], "studios": {"edges": []}, "staff": {"edges": []}
        }}
      ]}
    ]},
    "manga": {"lists": [
      {"entries": [
        {"completedAt": {"year": 2025}, "progress": 120, "score": 9, "media": {
          "title": {"romaji": "Berserk"}, "chapters": 380,
          "genres": ["Action"], "tags": [{"name": "Gore"}],
          "staff": {"edges": [{"node": {"name": {"full": "Kentarou Miura"}}}]}
        }}
      ]}
    ]}
  }
}`

func newTestServer(t *testing.T, status int, body string, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if !strings.Contains(req.Query, "MediaListCollection") {
			t.Errorf("query missing MediaListCollection: %q", req.Query)
		}
		if req.Variables["name"] == "" {
			t.Error("request missing name variable")
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestFetchLists(t *testing.T) {
	server := newTestServer(t, http.StatusOK, sampleResponse, nil)
	defer server.Close()

	client := NewClient(nil, time.Hour, WithEndpoint(server.URL))
	lists, err := client.FetchLists(context.Background(), "Josh", false)
	if err != nil {
		t.Fatalf("FetchLists() error: %v", err)
	}

	if len(lists.Anime) != 2 || len(lists.Manga) != 1 {
		t.Fatalf("got %d anime, %d manga; want 2, 1", len(lists.Anime), len(lists.Manga))
	}
	if lists.Len() != 3 {
		t.Errorf("Len() = %d, want 3", lists.Len())
	}

	frieren := lists.Anime[0]
	if frieren.Title() != "Frieren" {
		t.Errorf("title = %q", frieren.Title())
	}
	if !frieren.CompletedIn(2025) {
		t.Error("Frieren should be completed in 2025")
	}
	if frieren.Units() != 28 || frieren.EpisodeMinutes() != 24 {
		t.Errorf("units/minutes = %d/%d, want 28/24", frieren.Units(), frieren.EpisodeMinutes())
	}
	if frieren.UserScore() != 8.5 {
		t.Errorf("score = %v, want 8.5", frieren.UserScore())
	}
	if diff := cmp.Diff([]string{"Madhouse", "Madhouse"}, frieren.Media.Studios); diff != "" {
		t.Errorf("studios mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Elf"}, frieren.Media.Tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Keiichirou Saitou"}, frieren.Media.Staff); diff != "" {
		t.Errorf("staff mismatch (-want +got):\n%s", diff)
	}

	dropped := lists.Anime[1]
	if dropped.CompletionYear != nil {
		t.Error("null completion year should stay absent")
	}
	if dropped.Units() != 3 {
		t.Errorf("units = %d, want progress fallback 3", dropped.Units())
	}
	if dropped.EpisodeMinutes() != wrapped.DefaultEpisodeMinutes {
		t.Errorf("minutes = %d, want default", dropped.EpisodeMinutes())
	}

	berserk := lists.Manga[0]
	if berserk.Units() != 380 {
		t.Errorf("chapters = %d, want 380", berserk.Units())
	}
	if berserk.Media.Duration != nil || berserk.Media.Studios != nil {
		t.Error("manga should carry no duration or studios")
	}
}

func TestFetchAggregates(t *testing.T) {
	server := newTestServer(t, http.StatusOK, sampleResponse, nil)
	defer server.Close()

	client := NewClient(nil, time.Hour, WithEndpoint(server.URL))
	anime, manga, err := client.Fetch(context.Background(), "Josh", false)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	rep := wrapped.Build(anime, manga, 2025)
	if rep.Summary.AnimeCompleted != 1 || rep.Summary.EpisodesWatched != 28 {
		t.Errorf("summary = %+v", rep.Summary)
	}
	if rep.Summary.ChaptersRead != 380 {
		t.Errorf("ChaptersRead = %d, want 380", rep.Summary.ChaptersRead)
	}
}

func TestFetchMissingData(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"no data field", http.StatusOK, `{}`},
		{"null data", http.StatusOK, `{"data": null, "errors": [{"message": "User not found", "status": 404}]}`},
		{"not found status", http.StatusNotFound, `{"data": null, "errors": [{"message": "Not Found."}]}`},
		{"server error", http.StatusInternalServerError, `{}`},
		{"malformed body", http.StatusOK, `<html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, tt.status, tt.body, nil)
			defer server.Close()

			client := NewClient(nil, time.Hour, WithEndpoint(server.URL))
			_, err := client.FetchLists(context.Background(), "Josh", false)
			if !werrors.Is(err, werrors.ErrCodeFetch) {
				t.Fatalf("FetchLists() error = %v, want FETCH_ERROR", err)
			}
			if werrors.UserMessage(err) != werrors.FetchFailedMessage {
				t.Errorf("UserMessage() = %q", werrors.UserMessage(err))
			}
		})
	}
}

func TestFetchRateLimited(t *testing.T) {
	server := newTestServer(t, http.StatusTooManyRequests, `{}`, nil)
	defer server.Close()

	client := NewClient(nil, time.Hour, WithEndpoint(server.URL))
	_, err := client.FetchLists(context.Background(), "Josh", false)
	if !werrors.IsFetch(err) {
		t.Fatalf("FetchLists() error = %v, want a fetch failure", err)
	}
}

func TestFetchNullCollections(t *testing.T) {
	server := newTestServer(t, http.StatusOK, `{"data": {"anime": null, "manga": null}}`, nil)
	defer server.Close()

	client := NewClient(nil, time.Hour, WithEndpoint(server.URL))
	lists, err := client.FetchLists(context.Background(), "Josh", false)
	if err != nil {
		t.Fatalf("FetchLists() error: %v", err)
	}
	if lists.Len() != 0 {
		t.Errorf("Len() = %d, want 0", lists.Len())
	}
}

func TestFetchUsesCache(t *testing.T) {
	var calls int32
	server := newTestServer(t, http.StatusOK, sampleResponse, &calls)
	defer server.Close()

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	client := NewClient(c, time.Hour, WithEndpoint(server.URL))

	first, err := client.FetchLists(context.Background(), "Josh", false)
	if err != nil {
		t.Fatalf("first FetchLists() error: %v", err)
	}
	second, err := client.FetchLists(context.Background(), "josh", false)
	if err != nil {
		t.Fatalf("second FetchLists() error: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("upstream calls = %d, want 1", got)
	}
	if diff := cmp.Diff(first, second, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("cached lists differ (-first +second):\n%s", diff)
	}

	// Refresh bypasses the cache
	if _, err := client.FetchLists(context.Background(), "Josh", true); err != nil {
		t.Fatalf("refresh FetchLists() error: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("upstream calls after refresh = %d, want 2", got)
	}
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(nil, time.Hour)
	if client.Endpoint() != DefaultEndpoint {
		t.Errorf("Endpoint() = %q, want %q", client.Endpoint(), DefaultEndpoint)
	}
}

func TestEndpointsDoNotShareCache(t *testing.T) {
	var publicCalls, mirrorCalls int32
	public := newTestServer(t, http.StatusOK, sampleResponse, &publicCalls)
	defer public.Close()
	mirror := newTestServer(t, http.StatusOK, sampleResponse, &mirrorCalls)
	defer mirror.Close()

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	ctx := context.Background()

	if _, err := NewClient(c, time.Hour, WithEndpoint(public.URL)).FetchLists(ctx, "Josh", false); err != nil {
		t.Fatalf("FetchLists(public) error: %v", err)
	}
	if _, err := NewClient(c, time.Hour, WithEndpoint(mirror.URL)).FetchLists(ctx, "Josh", false); err != nil {
		t.Fatalf("FetchLists(mirror) error: %v", err)
	}
	if got := atomic.LoadInt32(&mirrorCalls); got != 1 {
		t.Errorf("mirror calls = %d, want 1 (must not reuse the other endpoint's entry)", got)
	}

	// The same endpoint still hits its own entry.
	if _, err := NewClient(c, time.Hour, WithEndpoint(public.URL)).FetchLists(ctx, "josh", false); err != nil {
		t.Fatalf("FetchLists(public again) error: %v", err)
	}
	if got := atomic.LoadInt32(&publicCalls); got != 1 {
		t.Errorf("public calls = %d, want 1", got)
	}
}

func TestDefaultEndpointKeysAreUnscoped(t *testing.T) {
	client := NewClient(nil, time.Hour)
	want := cache.NewDefaultKeyer().QueryKey("anilist", "Josh")
	if got := client.keyer.QueryKey("anilist", "Josh"); got != want {
		t.Errorf("QueryKey() = %s, want %s", got, want)
	}

	mirror := NewClient(nil, time.Hour, WithEndpoint("http://localhost:9999/graphql"))
	if mirror.keyer.QueryKey("anilist", "Josh") == want {
		t.Error("mirror keys should be scoped")
	}
}
