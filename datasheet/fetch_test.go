package datasheet

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/opencontainers/go-digest"
	"golang.org/x/sync/errgroup"
	"gotest.tools/v3/assert"

	libErrs "github.com/r0tools/datasheet-libs/errors"
)

func TestFetchCommitHash(t *testing.T) {
	ctx := context.Background()

	t.Run("should succeed when", func(t *testing.T) {
		t.Run("the artifact exists", func(t *testing.T) {
			var requests atomic.Int64
			var gotPath atomic.Value
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requests.Add(1)
				gotPath.Store(r.URL.Path)
				_, _ = w.Write([]byte("abc123"))
			}))
			defer srv.Close()

			hash, err := FetchCommitHash(ctx, FetchOptions{BaseURL: srv.URL, Version: "v3.0.3"})
			assert.NilError(t, err)
			assert.Equal(t, hash, "abc123")
			assert.Equal(t, requests.Load(), int64(1), "exactly one GET per invocation")
			assert.Equal(t, gotPath.Load().(string), "/v3.0.3/dev/datasheet/COMMIT_HASH.txt")
		})

		t.Run("the body carries surrounding whitespace", func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("abc123\n"))
			}))
			defer srv.Close()

			hash, err := FetchCommitHash(ctx, FetchOptions{BaseURL: srv.URL, Version: "v3.0.3"})
			assert.NilError(t, err)
			assert.Equal(t, hash, "abc123\n", "body is returned verbatim")
		})

		t.Run("invoked repeatedly against an unchanged resource", func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("abc123"))
			}))
			defer srv.Close()

			opts := FetchOptions{BaseURL: srv.URL, Version: "v3.0.3"}
			first, err := FetchCommitHash(ctx, opts)
			assert.NilError(t, err)
			second, err := FetchCommitHash(ctx, opts)
			assert.NilError(t, err)
			assert.Equal(t, first, second)
		})

		t.Run("invoked concurrently for different versions", func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/v1.0.0/dev/datasheet/COMMIT_HASH.txt":
					_, _ = w.Write([]byte("hash-one"))
				case "/v2.0.0/dev/datasheet/COMMIT_HASH.txt":
					_, _ = w.Write([]byte("hash-two"))
				default:
					w.WriteHeader(http.StatusNotFound)
				}
			}))
			defer srv.Close()

			var one, two string
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				one, err = FetchCommitHash(gctx, FetchOptions{BaseURL: srv.URL, Version: "v1.0.0"})
				return err
			})
			g.Go(func() error {
				var err error
				two, err = FetchCommitHash(gctx, FetchOptions{BaseURL: srv.URL, Version: "v2.0.0"})
				return err
			})
			assert.NilError(t, g.Wait())
			assert.Equal(t, one, "hash-one")
			assert.Equal(t, two, "hash-two")
		})
	})

	t.Run("should fail when", func(t *testing.T) {
		t.Run("the artifact is missing", func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}))
			defer srv.Close()

			_, err := FetchCommitHash(ctx, FetchOptions{BaseURL: srv.URL, Version: "v9.9.9"})
			assert.ErrorIs(t, err, libErrs.ErrNotFound)
		})

		t.Run("the server answers a non-success status", func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer srv.Close()

			_, err := FetchCommitHash(ctx, FetchOptions{BaseURL: srv.URL, Version: "v3.0.3"})
			assert.ErrorIs(t, err, libErrs.ErrFetchFailed)

			var kerr *libErrs.Error
			assert.Assert(t, errors.As(err, &kerr))
			assert.Equal(t, kerr.Kind(), libErrs.ResponseErrorKind)
		})

		t.Run("the transport fails", func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			base := srv.URL
			srv.Close()

			_, err := FetchCommitHash(ctx, FetchOptions{BaseURL: base, Version: "v3.0.3"})
			assert.Assert(t, err != nil)

			var kerr *libErrs.Error
			assert.Assert(t, errors.As(err, &kerr))
			assert.Equal(t, kerr.Kind(), libErrs.TransportErrorKind)

			// The underlying transport error must stay reachable.
			var uerr *url.Error
			assert.Assert(t, errors.As(err, &uerr))
		})
	})
}

func TestFetchSheet(t *testing.T) {
	ctx := context.Background()

	t.Run("should return the artifact with its digest", func(t *testing.T) {
		body := []byte(`[{"name":"fib","metrics":{"cycles":65536}}]`)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, r.URL.Path, "/v3.0.3/dev/datasheet/fib.json")
			_, _ = w.Write(body)
		}))
		defer srv.Close()

		art, err := FetchSheet(ctx, FetchOptions{BaseURL: srv.URL, Version: "v3.0.3"}, "fib.json")
		assert.NilError(t, err)
		assert.Equal(t, art.Name, "fib.json")
		assert.DeepEqual(t, art.Data, body)
		assert.Equal(t, art.Digest, digest.FromBytes(body))
	})
}
