// Package aladhan talks to the Al Adhan prayer times API.
package aladhan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	DefaultBaseURL = "https://api.aladhan.com/v1"
	// MethodDiyanet is the Turkish Presidency of Religious Affairs method.
	MethodDiyanet = 13
)

// ErrUpstream marks responses that arrived but were not usable.
var ErrUpstream = errors.New("aladhan: upstream error")

// Client fetches daily timings. BaseURL is exported for httptest.
type Client struct {
	httpClient *http.Client
	BaseURL    string
	Method     int
}

// NewClient builds a client whose requests are bounded by timeout.
func NewClient(baseURL string, timeout time.Duration, method int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if method <= 0 {
		method = MethodDiyanet
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		BaseURL:    baseURL,
		Method:     method,
	}
}

// FetchByCity fetches the timings of date for city and country.
func (c *Client) FetchByCity(ctx context.Context, date time.Time, city, country string) (*Response, error) {
	endpoint := fmt.Sprintf("%s/timingsByCity/%s", c.BaseURL, date.Format("02-01-2006"))

	params := url.Values{}
	params.Set("city", city)
	params.Set("country", country)
	params.Set("method", strconv.Itoa(c.Method))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("aladhan request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, string(body))
	}

	var apiResp Response
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	if apiResp.Code != http.StatusOK {
		return nil, fmt.Errorf("%w: code=%d status=%s", ErrUpstream, apiResp.Code, apiResp.Status)
	}

	return &apiResp, nil
}
