// Package crawler fetches catalog pages over HTTP or from saved snapshots and
// hands them to the extraction pipeline as document trees.
package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// ErrStatus is returned for responses outside 2xx.
var ErrStatus = errors.New("status HTTP inesperado")

var defaultClient = NewClient(60 * time.Second)

type Client struct {
	HTTP *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{HTTP: &http.Client{Timeout: timeout}}
}

// Fetch uses a client with a 60s timeout.
func Fetch(ctx context.Context, url string) (string, error) {
	return defaultClient.Fetch(ctx, url)
}

func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("erro ao ler %s: %w", url, err)
	}
	return string(b), nil
}

// get returns a 2xx response whose body the caller must close.
func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao montar requisição para %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar %s: %w", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %d para %s", ErrStatus, resp.StatusCode, url)
	}
	return resp, nil
}
