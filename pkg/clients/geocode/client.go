package geocode

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Client resolves street addresses to coordinates via a Nominatim-style
// geocoding API.
type Client struct {
	httpClient *resty.Client
}

// NewClient builds a geocoding client. baseURL may be empty to use the
// public Nominatim instance; userAgent identifies the caller as the
// Nominatim usage policy requires.
func NewClient(baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if userAgent == "" {
		userAgent = "bimanager"
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("User-Agent", userAgent).
		SetTimeout(10 * time.Second)

	return &Client{httpClient: restyClient}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Lookup returns the best-match coordinates for an address.
func (c *Client) Lookup(ctx context.Context, address string) (lat, lon float64, err error) {
	if address == "" {
		return 0, 0, fmt.Errorf("address must not be empty")
	}

	var results []searchResult
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":      address,
			"format": "json",
			"limit":  "1",
		}).
		SetResult(&results).
		Get("/search")
	if err != nil {
		return 0, 0, fmt.Errorf("geocode request: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return 0, 0, fmt.Errorf("geocode api error: status=%d", resp.StatusCode())
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("no match for address %q", address)
	}

	lat, err = strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse latitude: %w", err)
	}
	lon, err = strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse longitude: %w", err)
	}
	return lat, lon, nil
}
