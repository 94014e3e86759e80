package sitecache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/northgate-partners/webcore/internal/db"
)

const sitemapKey = "webcore:sitemap:xml"

// kv is the slice of the Redis store the repo needs.
type kv interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Repo caches the rendered sitemap. This is the only cache in the system
// and its only invalidation is the manual bust.
type Repo struct {
	store kv
	ttl   time.Duration
}

// New creates the sitemap cache repository.
func New(store kv, ttl time.Duration) *Repo {
	return &Repo{store: store, ttl: ttl}
}

// Get returns the cached sitemap, or db.ErrKeyNotFound on a miss. Other
// store failures carry cache context.
func (r *Repo) Get(ctx context.Context) ([]byte, error) {
	data, err := r.store.Get(ctx, sitemapKey)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, db.ErrKeyNotFound
		}
		return nil, fmt.Errorf("sitemap cache get: %w", err)
	}
	return data, nil
}

// Put stores a freshly rendered sitemap.
func (r *Repo) Put(ctx context.Context, data []byte) error {
	if err := r.store.SetWithTTL(ctx, sitemapKey, data, r.ttl); err != nil {
		return fmt.Errorf("sitemap cache put: %w", err)
	}
	return nil
}

// Bust drops the cached sitemap so the next request re-renders it.
func (r *Repo) Bust(ctx context.Context) error {
	if err := r.store.Del(ctx, sitemapKey); err != nil {
		return fmt.Errorf("sitemap cache bust: %w", err)
	}
	return nil
}
