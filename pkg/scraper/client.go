package scraper

import (
	"fmt"
	"net/http"
	"time"
)

var baseURL = "https://w5.hkust-gz.edu.cn/wcq/cgi-bin"

// DefaultTerm is the term code used when none is configured (2025-26 Fall)
const DefaultTerm = "2510"

// Client handles HTTP requests to the class schedule website
type Client struct {
	httpClient *http.Client
	term       string
	useCache   bool
}

// NewClient creates a new scraper client for the given term.
// An empty term falls back to DefaultTerm.
func NewClient(term string) *Client {
	if term == "" {
		term = DefaultTerm
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		term:     term,
		useCache: true,
	}
}

// WithoutCache makes the client always go to the network
func (c *Client) WithoutCache() *Client {
	c.useCache = false
	return c
}

// Term returns the term code the client scrapes
func (c *Client) Term() string {
	return c.term
}

// Get fetches a page below the term root and returns the HTTP response
func (c *Client) Get(path string) (*http.Response, error) {
	url := fmt.Sprintf("%s/%s/%s", baseURL, c.term, path)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code %d when fetching %s", resp.StatusCode, url)
	}

	return resp, nil
}
