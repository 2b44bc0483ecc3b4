package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Skufu/healthlens/internal/news"
	"github.com/Skufu/healthlens/internal/theme"
	"github.com/Skufu/healthlens/internal/tips"
)

const newsFeedLimit = 8

func (h *handler) listNews(c *gin.Context) {
	page := queryInt(c, "page", 1)
	size := queryInt(c, "pageSize", newsFeedLimit)
	if size < 1 || size > newsFeedLimit {
		size = newsFeedLimit
	}

	feed := h.News.Latest(c.Request.Context())
	articles := feed.Articles
	if len(articles) > newsFeedLimit {
		articles = articles[:newsFeedLimit]
	}

	c.JSON(http.StatusOK, gin.H{
		"articles":  news.Page(articles, page, size),
		"live":      feed.Live,
		"fetchedAt": feed.FetchedAt,
		"page":      max(page, 1),
		"pageSize":  size,
		"total":     len(articles),
	})
}

func (h *handler) listTips(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"tips":               tips.All(),
		"rotateEverySeconds": int(tips.RotateEvery.Seconds()),
	})
}

func (h *handler) getTip(c *gin.Context) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		abort(c, http.StatusBadRequest, "index must be an integer")
		return
	}
	idx := tips.Index(i)
	c.JSON(http.StatusOK, gin.H{
		"index": idx,
		"tip":   tips.At(idx),
		"next":  tips.Next(idx),
		"prev":  tips.Prev(idx),
	})
}

// getTheme resolves the palette from a stored preference and the client's
// color-scheme hint. toggle=true returns the other mode, for the theme switch.
func (h *handler) getTheme(c *gin.Context) {
	prefersDark := c.GetHeader("Sec-CH-Prefers-Color-Scheme") == "dark"
	if v, err := strconv.ParseBool(c.Query("prefersDark")); err == nil {
		prefersDark = v
	}

	mode := theme.Resolve(c.Query("preference"), prefersDark)
	if toggle, _ := strconv.ParseBool(c.Query("toggle")); toggle {
		mode = theme.Toggle(mode)
	}
	c.JSON(http.StatusOK, gin.H{"mode": mode, "palette": theme.For(mode)})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}
