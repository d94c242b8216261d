// Package portal maps Ogrojatra portal records into typed values the scorer
// understands, and fetches them from the portal REST API or local exports.
package portal

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL    = "http://localhost:5000"
	userAgent = "ogrojatra-matcher"
	jobsPath  = "/api/jobs"
	// Max value for listing per page.
	perPage = "100"
)

type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(ctx context.Context, logger *zap.Logger, token string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		ctx:    ctx,
		token:  token,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

// GetJobs returns every open job, walking all pages.
func (c *Client) GetJobs() (*Jobs, error) {
	q := url.Values{}
	q.Set("per_page", perPage)

	items, err := c.GetItems(c.APIURL+jobsPath, q)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	return DecodeJobs(items)
}

// GetProfile returns the profile of the given user.
func (c *Client) GetProfile(userID string) (*Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	var raw map[string]any
	if err := c.getJSON(fmt.Sprintf("%s/api/users/%s/profile", c.APIURL, url.PathEscape(userID)), nil, &raw); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return DecodeProfile(raw)
}
