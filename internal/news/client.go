// Package news fetches health headlines from a news search API and substitutes a
// fixed article list whenever the API fails or has nothing.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://newsapi.org/v2"
	searchQuery    = "healthcare AI OR medical technology OR disease prevention"
	fetchPageSize  = 12
)

type Source struct {
	Name string `json:"name"`
}

type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Source      Source `json:"source"`
}

// Feed is what the client hands out. Live is false for the fallback list.
type Feed struct {
	Articles  []Article `json:"articles"`
	Live      bool      `json:"live"`
	FetchedAt time.Time `json:"fetchedAt"`
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	ttl        time.Duration
	log        *zap.Logger
	now        func() time.Time

	mu     sync.RWMutex
	cached *Feed
}

func NewClient(apiKey, baseURL string, timeout, ttl time.Duration, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		ttl:        ttl,
		log:        log,
		now:        time.Now,
	}
}

// Latest returns the cached live feed while it is fresh, otherwise fetches. It
// never returns an empty list. Fallback results are not cached, so the next call
// tries the API again.
func (c *Client) Latest(ctx context.Context) Feed {
	if f, ok := c.fresh(); ok {
		return f
	}

	articles, err := c.fetch(ctx)
	now := c.now()
	if err != nil {
		c.log.Warn("news fetch failed, using fallback", zap.Error(err))
		return Feed{Articles: Fallback(now), FetchedAt: now}
	}
	if len(articles) == 0 {
		c.log.Info("news search returned no articles, using fallback")
		return Feed{Articles: Fallback(now), FetchedAt: now}
	}

	f := Feed{Articles: articles, Live: true, FetchedAt: now}
	c.mu.Lock()
	c.cached = &f
	c.mu.Unlock()
	return f
}

func (c *Client) fresh() (Feed, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cached == nil || c.now().Sub(c.cached.FetchedAt) > c.ttl {
		return Feed{}, false
	}
	f := *c.cached
	f.Articles = append([]Article(nil), c.cached.Articles...)
	return f, true
}

type searchResponse struct {
	Status   string    `json:"status"`
	Message  string    `json:"message"`
	Articles []Article `json:"articles"`
}

func (c *Client) fetch(ctx context.Context) ([]Article, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("news api key not set")
	}

	q := url.Values{}
	q.Set("q", searchQuery)
	q.Set("language", "en")
	q.Set("sortBy", "publishedAt")
	q.Set("pageSize", strconv.Itoa(fetchPageSize))
	q.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/everything?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var out searchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("parse response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news api returned status %d: %s", resp.StatusCode, out.Message)
	}

	articles := out.Articles[:0]
	for _, a := range out.Articles {
		if strings.TrimSpace(a.Title) == "" || a.Title == "[Removed]" {
			continue
		}
		a.Description = plainText(a.Description)
		articles = append(articles, a)
	}
	return articles, nil
}

// plainText drops markup some publishers leave in descriptions.
func plainText(s string) string {
	if !strings.ContainsRune(s, '<') {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Page slices articles for display. Pages start at 1; out-of-range pages are empty.
func Page(articles []Article, page, size int) []Article {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(articles) {
		return []Article{}
	}
	end := start + size
	if end > len(articles) {
		end = len(articles)
	}
	return articles[start:end]
}
