package datasheet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/opencontainers/go-digest"

	libErrs "github.com/r0tools/datasheet-libs/errors"
)

const (
	// DefaultBaseURL serves the published artifacts for every tagged release.
	DefaultBaseURL string = "https://raw.githubusercontent.com/risc0/risc0"

	// CommitHashFile pins the datasheet contents to an exact commit.
	CommitHashFile string = "COMMIT_HASH.txt"

	sheetDir = "dev/datasheet"
)

// FetchOptions is used to configure parameters for artifact retrieval.
type FetchOptions struct {
	Client  *http.Client
	BaseURL string
	Version string
}

// Artifact is a fetched datasheet file together with its content digest.
type Artifact struct {
	Name   string        `json:"name"`
	Data   []byte        `json:"data"`
	Digest digest.Digest `json:"digest"`
}

func (o FetchOptions) artifactURL(name string) (string, error) {
	base := o.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	return parsed.JoinPath(o.Version, sheetDir, name).String(), nil
}

// FetchCommitHash gets the commit-hash pin for the release in `options`.
// The body is returned verbatim. Each call issues exactly one GET; concurrent
// calls for the same version are not coalesced.
func FetchCommitHash(ctx context.Context, options FetchOptions) (string, error) {
	data, err := fetchArtifact(ctx, options, CommitHashFile)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FetchSheet gets the named datasheet file for the release in `options`.
func FetchSheet(ctx context.Context, options FetchOptions, name string) (*Artifact, error) {
	data, err := fetchArtifact(ctx, options, name)
	if err != nil {
		return nil, err
	}
	return &Artifact{Name: name, Data: data, Digest: digest.FromBytes(data)}, nil
}

func fetchArtifact(ctx context.Context, options FetchOptions, name string) ([]byte, error) {
	target, err := options.artifactURL(name)
	if err != nil {
		return nil, libErrs.NewTransportErr(err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", target, nil)
	if err != nil {
		return nil, libErrs.NewTransportErr(err)
	}

	client := options.Client
	if client == nil {
		client = &http.Client{}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, libErrs.NewTransportErr(err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch status := resp.StatusCode; {
	case status == http.StatusNotFound:
		return nil, libErrs.NewResponseErr(fmt.Errorf("%q %w", name, libErrs.ErrNotFound))
	case status < 200 || status > 299:
		return nil, libErrs.NewResponseErr(fmt.Errorf("%w: unexpected http status %d", libErrs.ErrFetchFailed, status))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, libErrs.NewTransportErr(err)
	}
	return data, nil
}
