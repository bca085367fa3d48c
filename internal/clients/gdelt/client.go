// Package gdelt provides a client for the GDELT DOC 2.0 API
package gdelt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/bobmcallan/greeninvest/internal/common"
	"github.com/bobmcallan/greeninvest/internal/interfaces"
	"github.com/bobmcallan/greeninvest/internal/models"
)

const (
	DefaultBaseURL    = "https://api.gdeltproject.org/api/v2/doc/doc"
	DefaultTimeout    = 30 * time.Second
	DefaultRateLimit  = 1 // requests per second
	DefaultDaysBack   = 30
	DefaultMaxRecords = 250

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client implements the NewsClient interface
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
	daysBack   int
	maxRecords int
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithDaysBack sets the search window in days
func WithDaysBack(days int) ClientOption {
	return func(c *Client) {
		c.daysBack = days
	}
}

// WithMaxRecords sets the maximum article count per query
func WithMaxRecords(max int) ClientOption {
	return func(c *Client) {
		c.maxRecords = max
	}
}

// NewClient creates a new GDELT client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:     common.NewSilentLogger(),
		daysBack:   DefaultDaysBack,
		maxRecords: DefaultMaxRecords,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// article mirrors one entry of the artlist JSON response
type article struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Domain   string `json:"domain"`
	SeenDate string `json:"seendate"`
}

type artlistResponse struct {
	Articles []article `json:"articles"`
}

// SearchNews returns recent article references mentioning the company
func (c *Client) SearchNews(ctx context.Context, companyName string) ([]models.NewsItem, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	now := time.Now().UTC()
	start := now.AddDate(0, 0, -c.daysBack)

	params := url.Values{}
	params.Set("query", fmt.Sprintf("sourcelang:english %s", companyName))
	params.Set("mode", "artlist")
	params.Set("format", "json")
	params.Set("startdatetime", start.Format("20060102150405"))
	params.Set("enddatetime", now.Format("20060102150405"))
	params.Set("maxrecords", fmt.Sprintf("%d", c.maxRecords))

	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("company", companyName).Msg("GDELT article search")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("GDELT returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var artlist artlistResponse
	if err := json.NewDecoder(resp.Body).Decode(&artlist); err != nil {
		return nil, fmt.Errorf("failed to decode GDELT response: %w", err)
	}

	items := make([]models.NewsItem, 0, len(artlist.Articles))
	for _, a := range artlist.Articles {
		items = append(items, models.NewsItem{
			Title:     a.Title,
			URL:       a.URL,
			Source:    a.Domain,
			SeenDate:  a.SeenDate,
			Collected: now,
		})
	}

	return items, nil
}

// FetchArticleText downloads one article page and extracts its paragraph text.
// Extraction is deliberately simple: the concatenated text of all <p> nodes.
func (c *Client) FetchArticleText(ctx context.Context, pageURL string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse article HTML: %w", err)
	}

	var parts []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	return strings.Join(parts, " "), nil
}

// Compile-time check
var _ interfaces.NewsClient = (*Client)(nil)
