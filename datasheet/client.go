package datasheet

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/r0tools/datasheet-libs/cache"
)

var logger = slog.Default().WithGroup("datasheet")

// Invalidation tags understood by Invalidate.
const (
	TagCommitHash = "commit-hash"
	TagSheet      = "datasheet"
)

// Client fetches datasheet artifacts, serving repeat requests from an
// in-memory revalidation cache.
type Client struct {
	opts   FetchOptions
	hashes *cache.TagCache[string]
	sheets *cache.TagCache[*Artifact]
}

// New returns a caching client. The Version field of `opts` is ignored; it is
// set per call. A zero `window` or `maxSize` falls back to the cache defaults.
func New(opts FetchOptions, window time.Duration, maxSize int) *Client {
	return &Client{
		opts:   opts,
		hashes: cache.New[string](TagCommitHash, maxSize, window),
		sheets: cache.New[*Artifact](TagSheet, maxSize, window),
	}
}

// CommitHash returns the datasheet commit pin for `version`, trimmed of
// surrounding whitespace. The result is served from cache within the
// revalidation window; otherwise it is refetched. Concurrent misses for the
// same version each issue their own GET.
func (c *Client) CommitHash(ctx context.Context, version string) (string, error) {
	if hash, ok := c.hashes.Get(version); ok {
		return hash, nil
	}

	opts := c.opts
	opts.Version = version
	raw, err := FetchCommitHash(ctx, opts)
	if err != nil {
		return "", err
	}
	hash := strings.TrimSpace(raw)
	c.hashes.Set(version, hash, TagCommitHash)
	logger.Debug("commit hash refreshed", slog.String("version", version), slog.String("hash", hash))
	return hash, nil
}

// Sheet returns the named datasheet file for `version`, cached like CommitHash.
func (c *Client) Sheet(ctx context.Context, version, name string) (*Artifact, error) {
	key := version + "/" + name
	if art, ok := c.sheets.Get(key); ok {
		return art, nil
	}

	opts := c.opts
	opts.Version = version
	art, err := FetchSheet(ctx, opts, name)
	if err != nil {
		return nil, err
	}
	c.sheets.Set(key, art, TagSheet)
	logger.Debug("sheet refreshed", slog.String("version", version), slog.String("name", name),
		slog.String("digest", art.Digest.String()))
	return art, nil
}

// Warm prefetches the commit hashes for `versions` concurrently.
func (c *Client) Warm(ctx context.Context, versions ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, ver := range versions {
		g.Go(func() error {
			_, err := c.CommitHash(ctx, ver)
			return err
		})
	}
	return g.Wait()
}

// Invalidate force-expires all cached entries carrying `tag` and returns the
// number of entries removed.
func (c *Client) Invalidate(tag string) int {
	n := c.hashes.Invalidate(tag) + c.sheets.Invalidate(tag)
	logger.Info("cache invalidated", slog.String("tag", tag), slog.Int("removed", n))
	return n
}

// Stats reports per-cache hit/miss counters.
func (c *Client) Stats() []cache.Stats {
	return []cache.Stats{c.hashes.Stats(), c.sheets.Stats()}
}

// Close stops the cache janitors.
func (c *Client) Close() {
	c.hashes.Stop()
	c.sheets.Stop()
}
