package utils

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// Client is the shared fetch client for one run. GET responses are cached by
// URL, so pages consulted by several pipeline stages cost a single network
// round-trip. There is no retry policy: a failed fetch is reported as-is.
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter

	mu    sync.Mutex
	cache map[string][]byte
}

func NewClient(requestsPerSecond float64) *Client {
	client := resty.New()
	client.SetTransport(&http.Transport{
		DialContext: (&net.Dialer{
			Timeout: 10 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
	})

	return &Client{
		resty:   client,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		cache:   make(map[string][]byte),
	}
}

// Get fetches url with a rate-limited GET. Repeated requests for the same URL
// within one run are served from the cache. A non-2xx response is an error.
func (c *Client) Get(url string) ([]byte, error) {
	c.mu.Lock()
	body, ok := c.cache[url]
	c.mu.Unlock()
	if ok {
		return body, nil
	}

	if err := c.limiter.Wait(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to wait for rate limiter: %v", err)
	}

	resp, err := c.resty.R().
		SetHeader("Accept-Charset", "utf-8").
		SetHeader("User-Agent", "Mozilla/5.0 (X11; Linux x86_64; rv:133.0) Gecko/20100101 Firefox/133.0").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to get %v: %v", url, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to get %v: %v", url, resp.Status())
	}

	body = resp.Body()
	c.mu.Lock()
	c.cache[url] = body
	c.mu.Unlock()

	return body, nil
}
