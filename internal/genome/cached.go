package genome

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/rnaseek/splicefeat/internal/coord"
)

// CachedProvider wraps a SequenceProvider with a bounded per-interval
// cache. Safe for concurrent use; errors are not cached so transient
// failures can be retried.
type CachedProvider struct {
	inner SequenceProvider
	cache *lru.Cache[string, string]
}

// NewCachedProvider wraps inner with an LRU cache of size entries.
func NewCachedProvider(inner SequenceProvider, size int) (*CachedProvider, error) {
	c, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &CachedProvider{inner: inner, cache: c}, nil
}

// Name returns the wrapped provider's genome name.
func (p *CachedProvider) Name() string {
	return p.inner.Name()
}

// Fetch returns the interval sequence, consulting the cache first.
func (p *CachedProvider) Fetch(ctx context.Context, iv coord.Interval) (string, error) {
	key := iv.String()
	if seq, ok := p.cache.Get(key); ok {
		return seq, nil
	}

	seq, err := p.inner.Fetch(ctx, iv)
	if err != nil {
		return "", err
	}
	p.cache.Add(key, seq)
	return seq, nil
}
