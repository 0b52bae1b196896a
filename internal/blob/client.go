package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotConfigured is returned when the blob collaborator has no endpoint or
// token configured. Callers degrade to placeholder references instead of
// failing the surrounding operation.
var ErrNotConfigured = errors.New("blob store not configured")

// Client talks to the external blob collaborator: authenticated PUT by key,
// DELETE by URL. Upload failures never abort the caller's operation.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

// New creates a blob client. An empty endpoint or token yields a client whose
// Put always fails with ErrNotConfigured and whose Delete is a no-op.
func New(endpoint, token string) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Put uploads the content under key and returns the public URL.
func (c *Client) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if c == nil || c.endpoint == "" || c.token == "" {
		return "", ErrNotConfigured
	}

	target := c.endpoint + "/" + key
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, body)
	if err != nil {
		return "", fmt.Errorf("build blob request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload blob: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("upload blob: unexpected status %d", resp.StatusCode)
	}
	return target, nil
}

// Delete removes a previously uploaded blob by its URL. Best-effort: callers
// log failures and move on, so placeholders and foreign URLs are ignored.
func (c *Client) Delete(ctx context.Context, blobURL string) error {
	if c == nil || c.endpoint == "" || c.token == "" {
		return nil
	}
	if blobURL == "" || !strings.HasPrefix(blobURL, c.endpoint) {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, blobURL, nil)
	if err != nil {
		return fmt.Errorf("build blob delete: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}
	defer resp.Body.Close()

	if (resp.StatusCode < 200 || resp.StatusCode >= 300) && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete blob: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// NewKey builds a unique object key under the given prefix, keeping the
// original file extension when present.
func NewKey(prefix, filename string) string {
	ext := "jpg"
	if idx := strings.LastIndex(filename, "."); idx >= 0 && idx < len(filename)-1 {
		ext = filename[idx+1:]
	}
	return fmt.Sprintf("%s/%d-%s.%s", prefix, time.Now().UnixMilli(), uuid.New().String()[:8], ext)
}

// Placeholder returns the degraded image reference used when an upload
// cannot be performed.
func Placeholder(label string) string {
	if len(label) > 30 {
		label = label[:30]
	}
	return "/placeholder.svg?text=" + url.QueryEscape(label)
}

// IsPlaceholder reports whether ref is a degraded placeholder reference
// rather than a stored blob.
func IsPlaceholder(ref string) bool {
	return strings.Contains(ref, "placeholder.svg")
}
