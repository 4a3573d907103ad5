package billing

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/de-tools/paas-statements/pkg/models/domain"
	"github.com/rs/zerolog"
)

const (
	defaultTimeout = 30 * time.Second
	rangeLayout    = "2006-01-02"
)

type ClientConfig struct {
	APIEndpoint string
	AccessToken string
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// Client talks to the billing API.
type Client struct {
	httpClient  *http.Client
	apiEndpoint string
	accessToken string
}

func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIEndpoint == "" {
		return nil, fmt.Errorf("billing api endpoint is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		httpClient:  httpClient,
		apiEndpoint: strings.TrimRight(cfg.APIEndpoint, "/"),
		accessToken: cfg.AccessToken,
	}, nil
}

func (c *Client) GetBillableEvents(ctx context.Context, filter domain.EventFilter) ([]domain.BillableEvent, error) {
	logger := zerolog.Ctx(ctx)

	params := url.Values{}
	params.Set("range_start", filter.RangeStart.Format(rangeLayout))
	params.Set("range_stop", filter.RangeStop.Format(rangeLayout))
	for _, guid := range filter.OrgGUIDs {
		params.Add("org_guid", guid)
	}

	endpoint := c.apiEndpoint + "/billable_events?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("billing: GET %s: %w", c.apiEndpoint+"/billable_events", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close billing response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read billing response: %w", err)
	}

	logger.Debug().
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("billing api request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("billing: GET %s failed with status %d and data %s",
			c.apiEndpoint+"/billable_events", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return DecodeEvents(body)
}
