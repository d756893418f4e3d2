package archive

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/iaget/pkg/domain/model"
	"github.com/m-mizutani/iaget/pkg/domain/types"
	"github.com/m-mizutani/iaget/pkg/utils/urlpath"
)

// DownloadURL returns <base>/download/<identifier>/<encoded filename>.
// Pure function, no I/O.
func DownloadURL(baseURL, identifier, filename string) string {
	return baseURL + "/download/" + identifier + "/" + urlpath.Encode(filename)
}

// Client fetches item metadata from the archive service
type Client struct {
	baseURL       string
	authorization string
	httpClient    *http.Client
}

type Option func(*Client)

// WithBaseURL overrides the archive service endpoint
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithAuthorization sets an Authorization header value sent with every
// metadata request, for restricted items
func WithAuthorization(header string) Option {
	return func(c *Client) {
		c.authorization = header
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new archive metadata client
func NewClient(options ...Option) *Client {
	c := &Client{
		baseURL: types.DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// FetchManifest retrieves the file manifest for an item. One GET, no
// retry; any HTTP or decode failure is returned to the caller as-is.
func (c *Client) FetchManifest(ctx context.Context, identifier string) ([]model.FileEntry, error) {
	url := c.baseURL + "/metadata/" + identifier

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create metadata request", goerr.V("url", url))
	}
	req.Header.Set("User-Agent", types.AppName+"/"+types.Version)
	if c.authorization != "" {
		req.Header.Set("Authorization", c.authorization)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch metadata",
			goerr.T(types.ErrTagRemote),
			goerr.V("identifier", identifier),
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected status from metadata endpoint",
			goerr.T(types.ErrTagRemote),
			goerr.V("status", resp.StatusCode),
			goerr.V("url", url),
		)
	}

	var manifest model.Manifest
	if err := json.NewDecoder(resp.Body).Decode(&manifest); err != nil {
		return nil, goerr.Wrap(err, "failed to decode metadata response",
			goerr.T(types.ErrTagRemote),
			goerr.V("identifier", identifier),
		)
	}

	return manifest.Files, nil
}

// DownloadURL returns the download URL for one file of an item,
// using the client's base URL
func (c *Client) DownloadURL(identifier, filename string) string {
	return DownloadURL(c.baseURL, identifier, filename)
}
