package shops

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"auction-marketplace/utils"

	"resty.dev/v3"
)

// HTTPError is a non-2xx answer from the shop service
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("shop service HTTP %d: %s", e.StatusCode, e.Body)
}

// Client resolves shop ownership against the shop service
type Client struct {
	client *resty.Client
}

type shopResponse struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
}

// NewClient creates a shop service client rooted at baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		client: resty.New().
			SetBaseURL(strings.TrimSuffix(baseURL, "/")).
			SetHeader("Accept", "application/json").
			SetTimeout(timeout),
	}
}

// UserOwnsShop fetches the shop and compares its owner. Unknown shops are not owned.
func (c *Client) UserOwnsShop(ctx context.Context, shopID, userID string) (bool, error) {
	if shopID == "" || userID == "" {
		return false, nil
	}

	endpoint := "/api/shops/" + url.PathEscape(shopID)
	start := time.Now()
	resp, err := c.client.R().SetContext(ctx).Get(endpoint)
	if err != nil {
		return false, fmt.Errorf("get shop %s: %w", shopID, err)
	}

	utils.Debug("shop service request completed", map[string]any{
		"endpoint":    endpoint,
		"status_code": resp.StatusCode(),
		"duration":    time.Since(start).String(),
	})

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return false, nil
	case resp.StatusCode() >= 400:
		body := strings.TrimSpace(resp.String())
		if len(body) > 500 {
			body = body[:500]
		}
		return false, fmt.Errorf("get shop %s: %w", shopID, &HTTPError{StatusCode: resp.StatusCode(), Body: body})
	}

	var shop shopResponse
	if err := json.Unmarshal(resp.Bytes(), &shop); err != nil {
		return false, fmt.Errorf("get shop %s: failed to unmarshal response: %w", shopID, err)
	}
	return shop.OwnerID != "" && shop.OwnerID == userID, nil
}

// Close releases idle connections
func (c *Client) Close() error {
	return c.client.Close()
}
