package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/de-tools/paas-statements/pkg/models/domain"
	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

type ClientConfig struct {
	APIEndpoint string
	AccessToken string
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// Client reads organizations and spaces from the Cloud Foundry v2 API.
type Client struct {
	httpClient  *http.Client
	apiEndpoint string
	accessToken string
}

type metadata struct {
	GUID string `json:"guid"`
}

type organizationResource struct {
	Metadata metadata `json:"metadata"`
	Entity   struct {
		Name                string `json:"name"`
		QuotaDefinitionGUID string `json:"quota_definition_guid"`
	} `json:"entity"`
}

type spaceResource struct {
	Metadata metadata `json:"metadata"`
	Entity   struct {
		Name             string `json:"name"`
		OrganizationGUID string `json:"organization_guid"`
	} `json:"entity"`
}

type spacePage struct {
	NextURL   string          `json:"next_url"`
	Resources []spaceResource `json:"resources"`
}

func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIEndpoint == "" {
		return nil, fmt.Errorf("cloud controller api endpoint is required")
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

func (c *Client) GetOrganization(ctx context.Context, guid string) (domain.Organization, error) {
	var org organizationResource
	if err := c.get(ctx, "/v2/organizations/"+url.PathEscape(guid), &org); err != nil {
		return domain.Organization{}, err
	}
	return domain.Organization{
		GUID:      org.Metadata.GUID,
		Name:      org.Entity.Name,
		QuotaGUID: org.Entity.QuotaDefinitionGUID,
	}, nil
}

func (c *Client) ListSpaces(ctx context.Context, orgGUID string) ([]domain.Space, error) {
	spaces := make([]domain.Space, 0)
	path := "/v2/organizations/" + url.PathEscape(orgGUID) + "/spaces"
	for path != "" {
		var page spacePage
		if err := c.get(ctx, path, &page); err != nil {
			return nil, err
		}
		for _, s := range page.Resources {
			spaces = append(spaces, domain.Space{
				GUID:    s.Metadata.GUID,
				Name:    s.Entity.Name,
				OrgGUID: s.Entity.OrganizationGUID,
			})
		}
		path = page.NextURL
	}
	return spaces, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	logger := zerolog.Ctx(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiEndpoint+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("cf: GET %s: %w", path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close cf response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read cf response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("cf: GET %s: %w", path, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("cf: GET %s failed with status %d and data %s",
			path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode cf response %s: %w", path, err)
	}
	return nil
}
