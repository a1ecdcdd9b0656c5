package fetch

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/closetscout/backend/internal/domain"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Accept header values for the two payload types adapters ask for
const (
	AcceptJSON = "application/json, text/javascript, */*; q=0.01"
	AcceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"

	acceptLanguage = "en-US,en;q=0.9"
	defaultTimeout = 10 * time.Second
)

// DefaultUserAgents is the pool a User-Agent is drawn from for every request
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1",
}

// Options configures the outbound client
type Options struct {
	Timeout          time.Duration
	UserAgents       []string
	CloudflareBypass bool
}

// Client performs upstream GET requests with browser-like headers
type Client struct {
	http       *resty.Client
	userAgents []string
	logger     *zap.Logger
}

// NewClient creates a new upstream client
func NewClient(opts Options, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	userAgents := opts.UserAgents
	if len(userAgents) == 0 {
		userAgents = DefaultUserAgents
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetLogger(logger.Named("resty").Sugar())
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	return &Client{
		http:       client,
		userAgents: userAgents,
		logger:     logger.Named("fetch"),
	}
}

func (c *Client) pickUserAgent() string {
	return c.userAgents[rand.IntN(len(c.userAgents))]
}

// Get issues a GET request. Transport failures and statuses >= 500 are
// returned as errors; other statuses are handed back for the caller to judge.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values, accept string) (*domain.FetchResponse, error) {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("User-Agent", c.pickUserAgent()).
		SetHeader("Accept", accept).
		SetHeader("Accept-Language", acceptLanguage)
	if len(params) > 0 {
		req.SetQueryParamsFromValues(params)
	}

	start := time.Now()
	resp, err := req.Get(rawURL)
	if err != nil {
		c.logger.Debug("request failed", zap.String("url", rawURL), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}

	status := resp.StatusCode()
	c.logger.Debug("request completed",
		zap.String("url", resp.Request.URL),
		zap.Int("status", status),
		zap.Duration("latency", time.Since(start)),
		zap.Int("bytes", len(resp.Body())),
	)

	if status >= 500 {
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstreamStatus, status)
	}

	return &domain.FetchResponse{
		StatusCode: status,
		Body:       resp.Body(),
		URL:        resp.Request.URL,
	}, nil
}

// RequireSuccess rejects any response with a status of 400 or above
func RequireSuccess(resp *domain.FetchResponse) error {
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: status %d", domain.ErrUpstreamStatus, resp.StatusCode)
	}
	return nil
}
