package releases

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	libErrs "github.com/r0tools/datasheet-libs/errors"
)

// DefaultTagsEndpoint lists the tags of the upstream repository.
const DefaultTagsEndpoint string = "https://api.github.com/repos/risc0/risc0/tags"

// TagOptions is used to configure parameters for tag listing.
type TagOptions struct {
	Client   *http.Client
	Endpoint string
	Token    string
	PerPage  int
}

// DownloadTags gets the release tag listing from the configured endpoint.
func DownloadTags(ctx context.Context, options TagOptions) ([]byte, error) {
	endpoint := options.Endpoint
	if endpoint == "" {
		endpoint = DefaultTagsEndpoint
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, libErrs.NewTransportErr(err)
	}
	if options.PerPage > 0 {
		query := parsed.Query()
		query.Set("per_page", strconv.Itoa(options.PerPage))
		parsed.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", parsed.String(), nil)
	if err != nil {
		return nil, libErrs.NewTransportErr(err)
	}
	req.Header.Add("Accept", "application/vnd.github+json")
	if options.Token != "" {
		req.Header.Add("Authorization", "Bearer "+options.Token)
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

	if status := resp.StatusCode; status != http.StatusOK {
		return nil, libErrs.NewResponseErr(fmt.Errorf("%w: unexpected http status %d", libErrs.ErrFetchFailed, status))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, libErrs.NewTransportErr(err)
	}
	return data, nil
}
