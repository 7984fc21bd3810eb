package groomapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/grooming-is/schedule-web/pkg/logging"
)

const defaultTimeout = 15 * time.Second

var (
	// ErrUnauthorized means the bearer token was rejected; the caller should
	// drop the session and send the user back to the login page.
	ErrUnauthorized = errors.New("groomapi: unauthorized")

	// ErrNotFound is returned for lookups that legitimately miss (client
	// search by phone).
	ErrNotFound = errors.New("groomapi: not found")
)

// Client wraps REST calls to the Grooming IS backend. All data endpoints are
// bearer-authenticated; the token is passed per call because one client
// serves every signed-in user.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logging.Logger
}

// NewClient constructs a backend client.
func NewClient(baseURL string, timeout time.Duration, logger *logging.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

// Login exchanges credentials for a bearer token. The backend expects the
// OAuth2 password form encoding.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("login returned %d", resp.StatusCode)
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("login response missing access_token")
	}
	return out.AccessToken, nil
}

// Me returns the account behind the token.
func (c *Client) Me(ctx context.Context, token string) (*Account, error) {
	var acc Account
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", token, nil, &acc); err != nil {
		return nil, fmt.Errorf("auth me: %w", err)
	}
	return &acc, nil
}

// Masters lists active masters.
func (c *Client) Masters(ctx context.Context, token string) ([]Master, error) {
	var out []Master
	if err := c.doJSON(ctx, http.MethodGet, "/masters", token, nil, &out); err != nil {
		return nil, fmt.Errorf("get masters: %w", err)
	}
	return out, nil
}

// Services lists grooming services.
func (c *Client) Services(ctx context.Context, token string) ([]Service, error) {
	var out []Service
	if err := c.doJSON(ctx, http.MethodGet, "/services", token, nil, &out); err != nil {
		return nil, fmt.Errorf("get services: %w", err)
	}
	return out, nil
}

// Breeds lists breeds for one species ("dog" or "cat"). The species tag is
// stamped client-side because the endpoint omits it.
func (c *Client) Breeds(ctx context.Context, token, species string) ([]Breed, error) {
	path := "/breeds?species=" + url.QueryEscape(species)
	var out []Breed
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, fmt.Errorf("get breeds: %w", err)
	}
	for i := range out {
		out[i].Species = species
	}
	return out, nil
}

// AgeGroups lists pet age groups with their price factors.
func (c *Client) AgeGroups(ctx context.Context, token string) ([]AgeGroup, error) {
	var out []AgeGroup
	if err := c.doJSON(ctx, http.MethodGet, "/age-groups", token, nil, &out); err != nil {
		return nil, fmt.Errorf("get age groups: %w", err)
	}
	return out, nil
}

// ServiceTariffs lists base prices per (service, size).
func (c *Client) ServiceTariffs(ctx context.Context, token string) ([]Tariff, error) {
	var out []Tariff
	if err := c.doJSON(ctx, http.MethodGet, "/service-tariffs", token, nil, &out); err != nil {
		return nil, fmt.Errorf("get service tariffs: %w", err)
	}
	return out, nil
}

// ExtraServices lists flat-priced add-ons.
func (c *Client) ExtraServices(ctx context.Context, token string) ([]ExtraService, error) {
	var out []ExtraService
	if err := c.doJSON(ctx, http.MethodGet, "/extra-services", token, nil, &out); err != nil {
		return nil, fmt.Errorf("get extra services: %w", err)
	}
	return out, nil
}

// Schedule fetches bookings for an inclusive ISO date range.
func (c *Client) Schedule(ctx context.Context, token, dateFrom, dateTo string) ([]Booking, error) {
	q := url.Values{}
	q.Set("date_from", dateFrom)
	q.Set("date_to", dateTo)
	var out []Booking
	if err := c.doJSON(ctx, http.MethodGet, "/orders/schedule?"+q.Encode(), token, nil, &out); err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	return out, nil
}

// CreateOrder posts a new order.
func (c *Client) CreateOrder(ctx context.Context, token string, order OrderCreate) (*Booking, error) {
	var out Booking
	if err := c.doJSON(ctx, http.MethodPost, "/orders", token, order, &out); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &out, nil
}

// SearchClientByPhone looks up a client with pets by exact phone.
// A miss comes back as ErrNotFound.
func (c *Client) SearchClientByPhone(ctx context.Context, token, phone string) (*ClientSearchResult, error) {
	path := "/clients/search/phone?phone=" + url.QueryEscape(phone)
	var out ClientSearchResult
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, fmt.Errorf("search client: %w", err)
	}
	return &out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, body interface{}, out interface{}) error {
	endpoint := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		msg := string(respBody)
		if len(msg) > 300 {
			msg = msg[:300]
		}
		c.logger.Warn("grooming API non-2xx response", "status", resp.StatusCode, "path", path, "body", msg)
		return fmt.Errorf("grooming API returned %d: %s", resp.StatusCode, msg)
	}

	if len(respBody) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
