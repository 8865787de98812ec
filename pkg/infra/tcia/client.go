package tcia

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/lescientifik/tcia-dl/pkg/domain/model"
	"github.com/lescientifik/tcia-dl/pkg/domain/types"
)

// queryParamSeries is the query parameter carrying the SeriesInstanceUID
const queryParamSeries = "SeriesInstanceUID"

// queryParamAPIKey is the query parameter carrying the NBIA API key for
// restricted collections
const queryParamAPIKey = "api_key"

// ErrInvalidSeries is returned when the server does not declare a ZIP
// archive for the requested SeriesInstanceUID
var ErrInvalidSeries = goerr.New("series is not a downloadable ZIP archive")

// Client is the HTTP client for the TCIA getImage endpoint
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithEndpoint overrides the getImage endpoint URL
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithAPIKey sets the NBIA API key sent with every request
func WithAPIKey(apiKey string) Option {
	return func(c *Client) {
		c.apiKey = apiKey
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-download timeout. Archives can be large, so the
// default is generous.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a TCIA API client
func New(opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Minute,
		},
		endpoint: types.DefaultEndpoint,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// DownloadSeries streams the ZIP archive of the series identified by
// seriesUID into w. The server announces the payload type in a "metadata"
// response header; anything other than ZIP means the UID is invalid and no
// bytes are written to w.
func (c *Client) DownloadSeries(ctx context.Context, seriesUID string, w io.Writer) (*model.SeriesMetadata, error) {
	reqURL, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid endpoint URL", goerr.V("endpoint", c.endpoint))
	}
	query := reqURL.Query()
	query.Set(queryParamSeries, seriesUID)
	if c.apiKey != "" {
		query.Set(queryParamAPIKey, c.apiKey)
	}
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create download request", goerr.V("series_uid", seriesUID))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to request series download", goerr.V("series_uid", seriesUID))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected status code from TCIA",
			goerr.V("status", resp.StatusCode),
			goerr.V("series_uid", seriesUID),
		)
	}

	rawMeta := resp.Header.Get("metadata")
	if rawMeta == "" {
		return nil, goerr.Wrap(ErrInvalidSeries, "missing metadata header", goerr.V("series_uid", seriesUID))
	}
	meta, err := model.ParseSeriesMetadata(rawMeta)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid metadata header", goerr.V("series_uid", seriesUID))
	}
	if !meta.IsZip() {
		return nil, goerr.Wrap(ErrInvalidSeries, "unexpected payload type",
			goerr.V("series_uid", seriesUID),
			goerr.V("type", meta.Result.Type),
		)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return nil, goerr.Wrap(err, "failed to stream series archive", goerr.V("series_uid", seriesUID))
	}

	return meta, nil
}
