package icon

import (
	"net"
	"net/url"
	"regexp"
	"strings"
)

// ProxyPath is the same-origin endpoint external icons are routed through.
const ProxyPath = "/api/proxy-icon"

type Kind string

const (
	KindGlyph Kind = "glyph"
	KindImage Kind = "image"
)

// Ref is a renderable icon: either a built-in glyph or an image source.
// Fallback, when set, is the unproxied URL to retry once if Src fails.
type Ref struct {
	Kind     Kind   `json:"kind"`
	Glyph    Glyph  `json:"glyph,omitempty"`
	Src      string `json:"src,omitempty"`
	Fallback string `json:"fallback,omitempty"`
}

// Env describes where the reference will be rendered.
type Env struct {
	// Host of the incoming request, with or without port.
	Host string
	// Development forces local behaviour regardless of Host.
	Development bool
}

// Local reports whether images may be embedded directly.
func (e Env) Local() bool {
	if e.Development {
		return true
	}
	host := e.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return host == "localhost" || host == "127.0.0.1"
}

var (
	imagePattern = regexp.MustCompile(`(?i)^(https?://|data:)`)
	httpPattern  = regexp.MustCompile(`(?i)^https?://`)
)

// IsImage reports whether raw is an image reference rather than a token.
// Same-origin paths such as uploaded files count as images.
func IsImage(raw string) bool {
	return imagePattern.MatchString(raw) || strings.HasPrefix(raw, "/")
}

// Resolve never fails: anything it cannot classify renders as Default.
func Resolve(raw string, env Env) Ref {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Ref{Kind: KindGlyph, Glyph: Default}
	}

	if IsImage(raw) {
		if httpPattern.MatchString(raw) && !env.Local() {
			return Ref{Kind: KindImage, Src: ProxyURL(raw), Fallback: raw}
		}
		return Ref{Kind: KindImage, Src: raw}
	}

	if g, ok := Lookup(raw); ok {
		return Ref{Kind: KindGlyph, Glyph: g}
	}
	return Ref{Kind: KindGlyph, Glyph: Default}
}

// ResolvePtr treats a nil icon like an empty one.
func ResolvePtr(raw *string, env Env) Ref {
	if raw == nil {
		return Resolve("", env)
	}
	return Resolve(*raw, env)
}

func ProxyURL(raw string) string {
	return ProxyPath + "?url=" + url.QueryEscape(raw)
}
