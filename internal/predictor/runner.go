package predictor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// FailureTimeout is the reason recorded when a tool exceeds its
// per-tool timeout.
const FailureTimeout = "timeout"

// PersistentCache stores raw tool output across runs, keyed by the
// same (tool, sequence, params) key as the in-memory cache. Hits are
// re-parsed so the stored form stays adapter-agnostic.
type PersistentCache interface {
	Get(key string) (raw string, ok bool)
	Put(key, raw string) error
}

// RunnerConfig sizes the runner.
type RunnerConfig struct {
	// CacheSize bounds the in-memory result cache (entries).
	CacheSize int
	// PoolSize bounds concurrent tool processes, independent of
	// event-level parallelism.
	PoolSize int
	// DefaultTimeout applies to tools without a specific entry.
	DefaultTimeout time.Duration
	// Timeouts overrides the default per tool name.
	Timeouts map[string]time.Duration
	// Persistent is an optional cross-run raw-output cache.
	Persistent PersistentCache
}

// Runner wraps tool invocation with cache lookup, in-flight
// coalescing, a bounded process pool, per-tool timeouts, and failure
// isolation. One Runner is shared process-wide; all methods are safe
// for concurrent use.
type Runner struct {
	cache      *lru.Cache[string, Result]
	persistent PersistentCache
	sem        chan struct{}
	timeouts   map[string]time.Duration
	defTimeout time.Duration
	logger     *zap.Logger

	mu       sync.Mutex
	inflight map[string]chan struct{}
}

// NewRunner creates a runner. Zero config fields get sane defaults:
// 4096 cache entries, 4 concurrent processes, 60s timeout.
func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 4096
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 4
	}
	if cfg.DefaultTimeout <= 0 {
		cfg.DefaultTimeout = 60 * time.Second
	}
	cache, err := lru.New[string, Result](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create result cache: %w", err)
	}
	return &Runner{
		cache:      cache,
		persistent: cfg.Persistent,
		sem:        make(chan struct{}, cfg.PoolSize),
		timeouts:   cfg.Timeouts,
		defTimeout: cfg.DefaultTimeout,
		logger:     zap.NewNop(),
		inflight:   make(map[string]chan struct{}),
	}, nil
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(logger *zap.Logger) {
	r.logger = logger
}

func cacheKey(tool, seq string, params Params) string {
	return tool + "\x00" + seq + "\x00" + params.Encode()
}

// Run invokes a tool on a sequence, returning a cached result when the
// same (tool, sequence, params) key already resolved. Concurrent
// requests for one key coalesce: the first caller invokes, the rest
// await its result. Run never returns an error; every failure mode
// resolves to a Result status.
func (r *Runner) Run(ctx context.Context, tool Tool, seq string, params Params) Result {
	key := cacheKey(tool.Name(), seq, params)

	for {
		if res, ok := r.cache.Get(key); ok {
			return res
		}

		r.mu.Lock()
		if done, ok := r.inflight[key]; ok {
			r.mu.Unlock()
			select {
			case <-done:
				continue
			case <-ctx.Done():
				return Result{Tool: tool.Name(), Status: StatusFailed, Reason: ctx.Err().Error()}
			}
		}
		done := make(chan struct{})
		r.inflight[key] = done
		r.mu.Unlock()

		res := r.invoke(ctx, tool, seq, params, key)
		r.cache.Add(key, res)

		r.mu.Lock()
		delete(r.inflight, key)
		r.mu.Unlock()
		close(done)

		return res
	}
}

func (r *Runner) invoke(ctx context.Context, tool Tool, seq string, params Params, key string) Result {
	name := tool.Name()

	if r.persistent != nil {
		if raw, ok := r.persistent.Get(key); ok {
			if value, err := tool.Parse(raw); err == nil {
				return Result{Tool: name, Status: StatusOK, Value: value}
			}
		}
	}

	select {
	case r.sem <- struct{}{}:
		defer func() { <-r.sem }()
	case <-ctx.Done():
		return Result{Tool: name, Status: StatusFailed, Reason: ctx.Err().Error()}
	}

	timeout := r.defTimeout
	if t, ok := r.timeouts[name]; ok {
		timeout = t
	}
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := tool.Invoke(tctx, seq, params)
	switch {
	case errors.Is(err, ErrNotInstalled):
		r.logger.Warn("tool not installed", zap.String("tool", name))
		return Result{Tool: name, Status: StatusUnavailable}
	case errors.Is(err, context.DeadlineExceeded) && tctx.Err() != nil:
		r.logger.Warn("tool timed out", zap.String("tool", name), zap.Duration("timeout", timeout))
		return Result{Tool: name, Status: StatusFailed, Reason: FailureTimeout}
	case err != nil:
		r.logger.Warn("tool failed", zap.String("tool", name), zap.Error(err))
		return Result{Tool: name, Status: StatusFailed, Reason: err.Error()}
	}

	value, err := tool.Parse(raw)
	if err != nil {
		r.logger.Warn("tool output unparseable", zap.String("tool", name), zap.Error(err))
		return Result{Tool: name, Status: StatusFailed, Reason: err.Error()}
	}

	if r.persistent != nil {
		if err := r.persistent.Put(key, raw); err != nil {
			r.logger.Warn("persistent cache write failed", zap.String("tool", name), zap.Error(err))
		}
	}
	return Result{Tool: name, Status: StatusOK, Value: value}
}

// Flush clears the in-memory cache. Called between independent batch
// runs so results never leak across batches.
func (r *Runner) Flush() {
	r.cache.Purge()
}
