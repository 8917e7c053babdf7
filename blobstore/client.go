package blobstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

// UploadInput is one base64-encoded image or document destined for the media
// store, filed under an entity name and a category path segment.
type UploadInput struct {
	EntityName string `json:"entityName"`
	Category   string `json:"category"`
	Base64Data string `json:"data"`
}

type Client struct {
	key     string
	BaseURL string
	http    *retryablehttp.Client
	limiter *rate.Limiter
}

func NewClient(apiKey string, baseURL string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 900 * time.Millisecond
	rc.RetryMax = 2
	rc.HTTPClient.Timeout = 30 * time.Second // uploads can be slow
	rc.Logger = nil

	return &Client{
		key:     apiKey,
		BaseURL: baseURL,
		http:    rc,
		limiter: rate.NewLimiter(rate.Limit(10), 10), // pace uploads against store quota
	}
}

// UploadOne pushes a single payload to the blob store and returns its durable URL.
func (c *Client) UploadOne(ctx context.Context, in UploadInput) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil { return "", err }

	body, err := json.Marshal(in)
	if err != nil { return "", err }

	u := fmt.Sprintf("%s/v1/blobs", c.BaseURL)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil { return "", err }
	req.Header.Set("content-type", "application/json")
	req.Header.Set("apikey", c.key)

	resp, err := c.http.Do(req)
	if err != nil { return "", err }
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var errBody map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return "", fmt.Errorf("blob store error %d: %v", resp.StatusCode, errBody)
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil { return "", err }
	if out.URL == "" { return "", fmt.Errorf("blob store returned no url") }
	return out.URL, nil
}

// UploadMany uploads a batch one by one, preserving order. The first failure
// aborts the batch; URLs already uploaded are not rolled back.
func (c *Client) UploadMany(ctx context.Context, entityName, category string, base64Images []string) ([]string, error) {
	urls := make([]string, 0, len(base64Images))
	for _, img := range base64Images {
		u, err := c.UploadOne(ctx, UploadInput{EntityName: entityName, Category: category, Base64Data: img})
		if err != nil { return nil, err }
		urls = append(urls, u)
	}
	return urls, nil
}
