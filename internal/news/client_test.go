package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const liveBody = `{
  "status": "ok",
  "articles": [
    {"title": "Wearables predict flu", "description": "<p>Smart <b>rings</b> flag fevers early.</p>", "url": "https://n.test/1", "urlToImage": "", "publishedAt": "2026-10-01T10:00:00Z", "source": {"name": "Wire"}},
    {"title": "[Removed]", "description": "", "url": "https://removed.com", "source": {"name": "[Removed]"}},
    {"title": "Screening at scale", "description": "Plain text", "url": "https://n.test/2", "publishedAt": "2026-10-01T09:00:00Z", "source": {"name": "Daily"}}
  ]
}`

func TestFallback(t *testing.T) {
	now := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	got := Fallback(now)

	require.Len(t, got, 8)
	assert.Equal(t, "AI Breakthrough in Early Disease Detection", got[0].Title)
	assert.Equal(t, "Health Tech Today", got[0].Source.Name)
	assert.Equal(t, "Remote Health Monitoring", got[7].Title)
	for _, a := range got {
		assert.Equal(t, "2026-10-18T08:00:00Z", a.PublishedAt)
		assert.NotEmpty(t, a.URL)
		assert.NotEmpty(t, a.URLToImage)
	}
}

func TestClient_Latest_Live(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/everything", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, searchQuery, q.Get("q"))
		assert.Equal(t, "en", q.Get("language"))
		assert.Equal(t, "publishedAt", q.Get("sortBy"))
		assert.Equal(t, "12", q.Get("pageSize"))
		assert.Equal(t, "key", q.Get("apiKey"))
		w.Write([]byte(liveBody))
	}))
	defer server.Close()

	c := NewClient("key", server.URL, time.Second, 30*time.Minute, nil)
	feed := c.Latest(context.Background())

	assert.True(t, feed.Live)
	require.Len(t, feed.Articles, 2)
	assert.Equal(t, "Smart rings flag fevers early.", feed.Articles[0].Description)
	assert.Equal(t, "Plain text", feed.Articles[1].Description)

	// Served from cache inside the TTL.
	c.Latest(context.Background())
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_Latest_CacheExpires(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(liveBody))
	}))
	defer server.Close()

	now := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	c := NewClient("key", server.URL, time.Second, 30*time.Minute, nil)
	c.now = func() time.Time { return now }

	c.Latest(context.Background())
	now = now.Add(29 * time.Minute)
	c.Latest(context.Background())
	assert.Equal(t, int32(1), hits.Load())

	now = now.Add(2 * time.Minute)
	c.Latest(context.Background())
	assert.Equal(t, int32(2), hits.Load())
}

func TestClient_Latest_Fallback(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		key     string
	}{
		{
			name: "server error",
			key:  "key",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"status":"error","message":"apiKey invalid"}`))
			},
		},
		{
			name: "empty result",
			key:  "key",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"status":"ok","articles":[]}`))
			},
		},
		{
			name: "malformed body",
			key:  "key",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>`))
			},
		},
		{
			name: "missing key",
			handler: func(w http.ResponseWriter, r *http.Request) {
				t.Error("request sent without a key")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			feed := NewClient(tt.key, server.URL, time.Second, time.Minute, nil).Latest(context.Background())
			assert.False(t, feed.Live)
			assert.Len(t, feed.Articles, 8)
		})
	}
}

func TestClient_Latest_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	feed := NewClient("key", url, 200*time.Millisecond, time.Minute, nil).Latest(context.Background())
	assert.False(t, feed.Live)
	assert.Len(t, feed.Articles, 8)
}

func TestPage(t *testing.T) {
	articles := Fallback(time.Now())

	assert.Len(t, Page(articles, 1, 3), 3)
	assert.Equal(t, articles[3], Page(articles, 2, 3)[0])
	assert.Len(t, Page(articles, 3, 3), 2)
	assert.Empty(t, Page(articles, 4, 3))
	assert.Equal(t, Page(articles, 1, 3), Page(articles, 0, 3))
	assert.Nil(t, Page(articles, 1, 0))
}
