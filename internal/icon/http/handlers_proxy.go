package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func setCORS(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type")
}

// parseTarget decodes the url parameter once more (clients percent-encode it
// and the query parser has already removed one layer) and accepts only
// absolute http(s) URLs.
func parseTarget(raw string) (*url.URL, error) {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return nil, fmt.Errorf("decode url: %w", err)
	}
	u, err := url.Parse(decoded)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid URL: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("invalid URL: missing host")
	}
	return u, nil
}

// Proxy fetches an external icon server-side and relays it with permissive
// CORS and a 24 hour cache directive.
func (h *Handler) Proxy(c *gin.Context) {
	setCORS(c)

	switch c.Request.Method {
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
		return
	case http.MethodGet, http.MethodHead:
	default:
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
		return
	}

	raw := c.Query("url")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL parameter is required"})
		return
	}

	target, err := parseTarget(raw)
	if err != nil {
		h.fail(c, err)
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, target.String(), nil)
	if err != nil {
		h.fail(c, err)
		return
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "image/avif,image/webp,image/svg+xml,image/*,*/*;q=0.8")

	resp, err := h.client.Do(req)
	if err != nil {
		h.fail(c, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		h.metrics.RecordProxyFetch("upstream_error")
		h.log.Warn("icon upstream rejected", zap.String("host", target.Host), zap.Int("status", resp.StatusCode))
		c.JSON(resp.StatusCode, gin.H{"error": "Failed to fetch icon: " + http.StatusText(resp.StatusCode)})
		return
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxIconBytes+1))
	if err != nil {
		h.fail(c, err)
		return
	}
	if len(body) > MaxIconBytes {
		h.fail(c, fmt.Errorf("icon larger than %d bytes", MaxIconBytes))
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h.metrics.RecordProxyFetch("ok")
	c.Header("Cache-Control", cacheControl)
	c.Header("Content-Length", strconv.Itoa(len(body)))
	c.Data(http.StatusOK, contentType, body)
}

func (h *Handler) fail(c *gin.Context, err error) {
	h.metrics.RecordProxyFetch("error")
	h.log.Warn("icon proxy failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Failed to proxy icon",
		"details": err.Error(),
	})
}
