package anilist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matzehuels/wrapped/pkg/buildinfo"
	"github.com/matzehuels/wrapped/pkg/cache"
	werrors "github.com/matzehuels/wrapped/pkg/errors"
	"github.com/matzehuels/wrapped/pkg/integrations"
	"github.com/matzehuels/wrapped/pkg/wrapped"
)

// DefaultEndpoint is the public AniList GraphQL endpoint.
const DefaultEndpoint = "https://graphql.anilist.co"

// Client queries AniList for user lists.
type Client struct {
	*integrations.Client
	endpoint string
	keyer    cache.Keyer
}

// Option configures a [Client].
type Option func(*Client)

// WithEndpoint overrides the GraphQL endpoint (tests, mirrors).
func WithEndpoint(url string) Option {
	return func(c *Client) { c.endpoint = url }
}

// WithKeyer overrides the cache key layout. Keys for a non-default endpoint
// are still scoped to that endpoint.
func WithKeyer(k cache.Keyer) Option {
	return func(c *Client) { c.keyer = k }
}

// NewClient creates a client that caches responses in c for ttl.
// A nil cache disables caching.
func NewClient(c cache.Cache, ttl time.Duration, opts ...Option) *Client {
	headers := map[string]string{"User-Agent": "wrapped/" + buildinfo.Version}
	client := &Client{
		Client:   integrations.NewClient(c, "", ttl, headers),
		endpoint: DefaultEndpoint,
		keyer:    cache.NewDefaultKeyer(),
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.endpoint != DefaultEndpoint {
		client.keyer = cache.NewScopedKeyer(client.keyer, endpointScope(client.endpoint))
	}
	return client
}

// endpointScope returns the key prefix for lists fetched from endpoint.
func endpointScope(endpoint string) string {
	return "endpoint:" + cache.Hash([]byte(endpoint))[:16] + ":"
}

// Endpoint returns the GraphQL endpoint in use.
func (c *Client) Endpoint() string { return c.endpoint }

// FetchLists returns every anime and manga entry on user's lists.
// If refresh is true the cache is bypassed.
func (c *Client) FetchLists(ctx context.Context, user string, refresh bool) (*Lists, error) {
	var lists Lists
	key := c.keyer.QueryKey("anilist", user)
	err := c.Cached(ctx, key, refresh, &lists, func() error {
		return c.fetch(ctx, user, &lists)
	})
	if err != nil {
		if werrors.IsFetch(err) {
			return nil, err
		}
		return nil, werrors.Wrap(werrors.ErrCodeFetch, err, "fetch lists for %s", user)
	}
	return &lists, nil
}

// Fetch implements the pipeline's fetcher contract.
func (c *Client) Fetch(ctx context.Context, user string, refresh bool) (anime, manga []wrapped.Entry, err error) {
	lists, err := c.FetchLists(ctx, user, refresh)
	if err != nil {
		return nil, nil, err
	}
	return lists.Anime, lists.Manga, nil
}

func (c *Client) fetch(ctx context.Context, user string, lists *Lists) error {
	req := request{
		Query:     Query,
		Variables: map[string]any{"name": user},
	}
	var resp response
	if err := c.PostJSON(ctx, c.endpoint, req, &resp); err != nil {
		var rl *werrors.RateLimitedError
		if errors.As(err, &rl) {
			return err
		}
		if errors.Is(err, integrations.ErrNotFound) {
			return werrors.Wrap(werrors.ErrCodeFetch, err, "anilist user %s", user)
		}
		return werrors.Wrap(werrors.ErrCodeFetch, err, "query anilist")
	}
	if resp.Data == nil {
		return werrors.Wrap(werrors.ErrCodeFetch, resp.err(), "no data returned from anilist")
	}

	*lists = Lists{
		Anime: resp.Data.Anime.flatten(wrapped.KindAnime),
		Manga: resp.Data.Manga.flatten(wrapped.KindManga),
	}
	return nil
}

// err summarizes GraphQL errors, or returns nil when there are none.
func (r *response) err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	if len(r.Errors) == 1 {
		return errors.New(r.Errors[0].Message)
	}
	return fmt.Errorf("%s (and %d more)", r.Errors[0].Message, len(r.Errors)-1)
}
