package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Client resolves coordinates to a human readable address. Failures never
// block clock in, callers fall back to a coordinate placeholder.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func NewClient(baseURL string, userAgent string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

// ReverseGeocode returns the display address for a coordinate pair.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lng))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocode: unexpected status %d", resp.StatusCode)
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.DisplayName == "" {
		return "", fmt.Errorf("reverse geocode: empty display name")
	}

	return body.DisplayName, nil
}

// FallbackAddress formats a coordinate placeholder used when reverse
// geocoding is unavailable.
func FallbackAddress(lat, lng float64) string {
	return fmt.Sprintf("Lat: %.6f, Long: %.6f", lat, lng)
}
