package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	auth "golang.org/x/oauth2/google"

	"resellerdesk/internal/config"
)

// OAuth scopes, one per API. The service account is granted domain-wide
// delegation and impersonates the reseller admin subject on every call.
const (
	scopeChannel   = "https://www.googleapis.com/auth/apps.order"
	scopeReseller  = "https://www.googleapis.com/auth/apps.order.readonly"
	scopeDirectory = "https://www.googleapis.com/auth/admin.directory.user.readonly"
)

const (
	defaultChannelBaseURL   = "https://cloudchannel.googleapis.com/v1"
	defaultResellerBaseURL  = "https://reseller.googleapis.com/apps/reseller/v1"
	defaultDirectoryBaseURL = "https://admin.googleapis.com/admin/directory/v1"
)

// Sentinel errors so callers can tell a per-customer permission problem or a
// missing domain apart from a transport failure.
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
)

// Client talks to the channel customer listing, the reseller subscription
// listing and the admin directory user listing for one reseller account.
type Client struct {
	accountID    string
	adminSubject string
	credentials  []byte

	ChannelBaseURL   string
	ResellerBaseURL  string
	DirectoryBaseURL string

	// newHTTPClient builds an authenticated client for a scope/subject pair.
	// Replaced in tests with one returning a plain http.Client.
	newHTTPClient func(ctx context.Context, scope, subject string) (*http.Client, error)
}

func NewClient(cfg *config.ResellerConfig) (*Client, error) {
	creds, err := os.ReadFile(cfg.Google.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account credentials: %w", err)
	}

	c := &Client{
		accountID:        cfg.Google.AccountID,
		adminSubject:     cfg.Google.AdminSubject,
		credentials:      creds,
		ChannelBaseURL:   defaultChannelBaseURL,
		ResellerBaseURL:  defaultResellerBaseURL,
		DirectoryBaseURL: defaultDirectoryBaseURL,
	}
	c.newHTTPClient = c.delegatedClient
	return c, nil
}

// NewClientWithTransport builds a client that uses the given HTTP client for
// every call instead of the service-account flow. Used by tests.
func NewClientWithTransport(accountID string, hc *http.Client) *Client {
	c := &Client{
		accountID:        accountID,
		ChannelBaseURL:   defaultChannelBaseURL,
		ResellerBaseURL:  defaultResellerBaseURL,
		DirectoryBaseURL: defaultDirectoryBaseURL,
	}
	c.newHTTPClient = func(ctx context.Context, scope, subject string) (*http.Client, error) {
		return hc, nil
	}
	return c
}

func (c *Client) delegatedClient(ctx context.Context, scope, subject string) (*http.Client, error) {
	conf, err := auth.JWTConfigFromJSON(c.credentials, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}
	conf.Subject = subject
	hc := conf.Client(ctx)
	hc.Timeout = 30 * time.Second
	return hc, nil
}

// ListCustomers returns every end-customer of the reseller account.
func (c *Client) ListCustomers(ctx context.Context) ([]Customer, error) {
	hc, err := c.newHTTPClient(ctx, scopeChannel, c.adminSubject)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate customer listing: %w", err)
	}

	endpoint := fmt.Sprintf("%s/accounts/%s/customers", c.ChannelBaseURL, c.accountID)
	var out struct {
		Customers []Customer `json:"customers"`
	}
	if err := c.getJSON(ctx, hc, endpoint, &out); err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return out.Customers, nil
}

// ListSubscriptions returns the subscriptions of one customer, or all
// subscriptions of the reseller account when customerID is empty.
func (c *Client) ListSubscriptions(ctx context.Context, customerID string) ([]Subscription, error) {
	hc, err := c.newHTTPClient(ctx, scopeReseller, c.adminSubject)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate subscription listing: %w", err)
	}

	endpoint := c.ResellerBaseURL + "/subscriptions"
	if customerID != "" {
		endpoint += "?customerId=" + url.QueryEscape(customerID)
	}
	var out struct {
		Subscriptions []Subscription `json:"subscriptions"`
	}
	if err := c.getJSON(ctx, hc, endpoint, &out); err != nil {
		return nil, fmt.Errorf("failed to list subscriptions for %q: %w", customerID, err)
	}
	return out.Subscriptions, nil
}

// ListDomainUsers returns the directory users of a customer domain.
func (c *Client) ListDomainUsers(ctx context.Context, domain string) ([]DirectoryUser, error) {
	hc, err := c.newHTTPClient(ctx, scopeDirectory, c.adminSubject)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate user listing: %w", err)
	}

	endpoint := fmt.Sprintf("%s/users?domain=%s&maxResults=500", c.DirectoryBaseURL, url.QueryEscape(domain))
	var out struct {
		Users []DirectoryUser `json:"users"`
	}
	if err := c.getJSON(ctx, hc, endpoint, &out); err != nil {
		return nil, fmt.Errorf("failed to list users for domain %q: %w", domain, err)
	}
	return out.Users, nil
}

func (c *Client) getJSON(ctx context.Context, hc *http.Client, endpoint string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("status %d: %w", resp.StatusCode, ErrPermissionDenied)
	case http.StatusNotFound:
		return fmt.Errorf("status %d: %w", resp.StatusCode, ErrNotFound)
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
