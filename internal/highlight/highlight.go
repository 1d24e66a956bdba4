// Package highlight renders code snippets with syntax highlighting.
package highlight

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	cache "github.com/patrickmn/go-cache"

	"github.com/good-yellow-bee/mcp-showcase/internal/metrics"
)

const (
	DefaultStyle    = "dracula"
	DefaultCacheTTL = time.Hour
)

// Highlighter renders snippets to HTML or ANSI. Rendered HTML is cached, so
// a snippet is only tokenised once per TTL.
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
	cache     *cache.Cache
}

// New creates a Highlighter using the named chroma style. Unknown styles fall
// back to chroma's default. A ttl of zero uses DefaultCacheTTL.
func New(style string, ttl time.Duration) *Highlighter {
	if style == "" {
		style = DefaultStyle
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Highlighter{
		style: styles.Get(style),
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.WithLineNumbers(true),
			chromahtml.TabWidth(4),
		),
		cache: cache.New(ttl, 2*ttl),
	}
}

// StyleName returns the name of the active chroma style.
func (h *Highlighter) StyleName() string {
	return h.style.Name
}

// HTML returns code rendered as an HTML fragment using CSS classes. key
// namespaces the cache entry, typically a project ID.
func (h *Highlighter) HTML(key, code, language string) (string, error) {
	cacheKey := cacheKey(key, code, language)
	if cached, ok := h.cache.Get(cacheKey); ok {
		metrics.HighlightCacheHits.Inc()
		return cached.(string), nil
	}
	metrics.HighlightCacheMisses.Inc()

	iterator, err := lexerFor(language, code).Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenise %s snippet: %w", language, err)
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", fmt.Errorf("format snippet: %w", err)
	}

	out := buf.String()
	h.cache.SetDefault(cacheKey, out)
	return out, nil
}

// CSS returns the stylesheet matching the classes emitted by HTML.
func (h *Highlighter) CSS() (string, error) {
	var buf bytes.Buffer
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return "", fmt.Errorf("write chroma css: %w", err)
	}
	return buf.String(), nil
}

// Terminal renders code with 256-colour ANSI escapes.
func (h *Highlighter) Terminal(code, language string) (string, error) {
	iterator, err := lexerFor(language, code).Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenise %s snippet: %w", language, err)
	}
	var buf bytes.Buffer
	if err := formatters.TTY256.Format(&buf, h.style, iterator); err != nil {
		return "", fmt.Errorf("format snippet: %w", err)
	}
	return buf.String(), nil
}

// Flush empties the cache. Called after a catalog reload.
func (h *Highlighter) Flush() {
	h.cache.Flush()
}

func lexerFor(language, code string) chroma.Lexer {
	lexer := lexers.Get(strings.ToLower(strings.TrimSpace(language)))
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

func cacheKey(key, code, language string) string {
	sum := sha256.Sum256([]byte(code))
	return key + "|" + strings.ToLower(language) + "|" + hex.EncodeToString(sum[:8])
}
