package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Result is the canonical shape of a geocoded address.
type Result struct {
	City             string
	State            string
	Country          string
	Zipcode          string
	Locality         string
	Neighborhood     string
	Latitude         float64
	Longitude        float64
	FormattedAddress string
}

type Client struct {
	key     string
	BaseURL string
	http    *retryablehttp.Client
}

func NewClient(apiKey string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 900 * time.Millisecond
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 6 * time.Second
	rc.Logger = nil

	return &Client{
		key:     apiKey,
		BaseURL: "https://maps.googleapis.com",
		http:    rc,
	}
}

// Geocode resolves free-text address into a Result. A nil Result with a nil
// error means the geocoder found nothing for the address; that is an expected
// outcome, distinct from a transport or API failure.
func (c *Client) Geocode(ctx context.Context, address string) (*Result, error) {
	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.key)

	u := fmt.Sprintf("%s/maps/api/geocode/json?%s", c.BaseURL, q.Encode())

	req, _ := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	req.Header.Set("accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil { return nil, err }
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var body map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return nil, fmt.Errorf("geocoder error %d: %v", resp.StatusCode, body)
	}
	raw, err := ioReadAllLimit(resp.Body, 1<<20) // 1MB guard
	if err != nil { return nil, err }
	return mapGeocodePayload(raw)
}

func ioReadAllLimit(r io.Reader, limit int64) ([]byte, error) {
	lr := io.LimitReader(r, limit+1)
	b, err := io.ReadAll(lr)
	if err != nil { return nil, err }
	if int64(len(b)) > limit { return nil, errors.New("payload too large") }
	return b, nil
}
