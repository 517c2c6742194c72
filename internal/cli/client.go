package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	api "github.com/chasta/skyguard/api/v1alpha1"
	"github.com/google/uuid"
)

// Client talks to the admin endpoints of the api.
type Client struct {
	serverUrl  string
	token      string
	httpClient *http.Client
}

func NewClient(serverUrl, token string, httpClient *http.Client) *Client {
	return &Client{serverUrl: serverUrl, token: token, httpClient: httpClient}
}

func (c *Client) ListCalculations(ctx context.Context, query url.Values) (*api.CalculationList, error) {
	var list api.CalculationList
	if err := c.getJSON(ctx, "/api/v1/calculations", query, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) GetCalculation(ctx context.Context, id uuid.UUID) (*api.Calculation, error) {
	var calculation api.Calculation
	if err := c.getJSON(ctx, "/api/v1/calculations/"+id.String(), nil, &calculation); err != nil {
		return nil, err
	}
	return &calculation, nil
}

// ExportCalculations copies the xlsx export to w.
func (c *Client) ExportCalculations(ctx context.Context, query url.Values, w io.Writer) (int64, error) {
	resp, err := c.do(ctx, "/api/v1/calculations/export", query)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return io.Copy(w, resp.Body)
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	resp, err := c.do(ctx, path, query)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// do sends a GET and turns every non 200 answer into an error.
func (c *Client) do(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	u := c.serverUrl + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		var apiErr api.Error
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("%s: %d %s", path, resp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("%s: %d", path, resp.StatusCode)
	}

	return resp, nil
}
