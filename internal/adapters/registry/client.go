// Package registry implements the npm registry HTTP client.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.trai.ch/rove/internal/core/domain"
	"go.trai.ch/rove/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RegistryClient = (*Client)(nil)

const (
	requestTimeout = 60 * time.Second
	retryDelay     = 500 * time.Millisecond
)

// Client fetches package metadata and tarballs from an npm registry.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     ports.Logger
}

// NewClient creates a registry client for the given base URL.
func NewClient(baseURL string, logger ports.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		logger:     logger,
	}
}

// Metadata fetches the registry document for a package. A transient failure
// (transport error or 5xx) is retried exactly once before being surfaced.
func (c *Client) Metadata(ctx context.Context, name string) (*domain.RegistryMetadata, error) {
	// Scoped names keep their "@" but escape the scope separator.
	metadataURL := c.baseURL + "/" + strings.ReplaceAll(url.PathEscape(name), "%2F", "/")

	body, err := c.get(ctx, metadataURL)
	if transient(err) {
		c.logger.Warn("retrying registry metadata fetch for " + name)
		select {
		case <-time.After(retryDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		body, err = c.get(ctx, metadataURL)
	}
	if err != nil {
		if errors404(err) {
			return nil, zerr.With(zerr.Wrap(domain.ErrNotFoundInRegistry, "package does not exist in the registry"), "package", name)
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrMetadataFetchFailed, err.Error()), "package", name)
	}

	var metadata domain.RegistryMetadata
	if err := json.Unmarshal(body, &metadata); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrMetadataFetchFailed, err.Error()), "package", name)
	}
	return &metadata, nil
}

// TarballURL reconstructs the conventional npm archive URL for a version.
// Scoped packages use only the basename in the archive filename.
func (c *Client) TarballURL(name, version string) string {
	basename := name
	if i := strings.LastIndex(name, "/"); i >= 0 {
		basename = name[i+1:]
	}
	return c.baseURL + "/" + name + "/-/" + basename + "-" + version + ".tgz"
}

// Tarball downloads a package archive. Not retried: the resolver decides
// whether to retry the whole resolution.
func (c *Client) Tarball(ctx context.Context, tarballURL string) ([]byte, error) {
	body, err := c.get(ctx, tarballURL)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrTarballFetchFailed, err.Error()), "url", tarballURL)
	}
	return body, nil
}

// httpError carries the status code of a non-2xx response.
type httpError struct {
	status int
	url    string
}

func (e *httpError) Error() string {
	return "unexpected status " + http.StatusText(e.status) + " fetching " + e.url
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, */*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &httpError{status: resp.StatusCode, url: rawURL}
	}

	return io.ReadAll(resp.Body)
}

// transient reports whether an error is worth the single metadata retry:
// transport failures and 5xx responses only.
func transient(err error) bool {
	if err == nil {
		return false
	}
	var he *httpError
	if errors.As(err, &he) {
		return he.status >= http.StatusInternalServerError
	}
	return true
}

func errors404(err error) bool {
	var he *httpError
	return errors.As(err, &he) && he.status == http.StatusNotFound
}
