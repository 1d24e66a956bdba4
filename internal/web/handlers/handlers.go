// Package handlers serves the HTML pages of the showcase site.
package handlers

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/charmbracelet/log"

	"github.com/good-yellow-bee/mcp-showcase/internal/api/middleware"
	"github.com/good-yellow-bee/mcp-showcase/internal/blog"
	"github.com/good-yellow-bee/mcp-showcase/internal/catalog"
	"github.com/good-yellow-bee/mcp-showcase/internal/highlight"
	"github.com/good-yellow-bee/mcp-showcase/internal/logging"
	"github.com/good-yellow-bee/mcp-showcase/internal/newsletter"
	"github.com/good-yellow-bee/mcp-showcase/internal/web/flash"
	webmw "github.com/good-yellow-bee/mcp-showcase/internal/web/middleware"
	"github.com/good-yellow-bee/mcp-showcase/internal/web/templates/components"
	"github.com/good-yellow-bee/mcp-showcase/internal/web/templates/pages"
)

// Deps holds what the page handlers read from.
type Deps struct {
	Catalog       catalog.Source
	Blog          *blog.Index
	Newsletter    *newsletter.Service
	Highlighter   *highlight.Highlighter
	Flash         *flash.Store
	BaseURL       string
	SecureCookies bool
	Version       string
	Logger        *log.Logger
}

type Handler struct {
	catalog       catalog.Source
	blog          *blog.Index
	newsletter    *newsletter.Service
	highlighter   *highlight.Highlighter
	flash         *flash.Store
	baseURL       string
	secureCookies bool
	version       string
	logger        *log.Logger
}

func NewHandler(d Deps) *Handler {
	if d.Highlighter == nil {
		d.Highlighter = highlight.New(highlight.DefaultStyle, highlight.DefaultCacheTTL)
	}
	if d.Logger == nil {
		d.Logger = logging.Component("web")
	}
	return &Handler{
		catalog:       d.Catalog,
		blog:          d.Blog,
		newsletter:    d.Newsletter,
		highlighter:   d.Highlighter,
		flash:         d.Flash,
		baseURL:       strings.TrimRight(d.BaseURL, "/"),
		secureCookies: d.SecureCookies,
		version:       d.Version,
		logger:        d.Logger,
	}
}

// render writes content inside the site layout.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page components.Page, content templ.Component) {
	page.Nonce = middleware.GetCSPNonce(r.Context())
	page.Flash = webmw.GetFlash(r)
	page.Version = h.version
	h.write(w, r, status, components.Layout(page, content))
}

// write renders c without the layout, for htmx fragments.
func (h *Handler) write(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		h.logger.Error("render failed", "path", r.URL.Path, "error", err)
	}
}

// absoluteURL builds a link for sharing, preferring the configured base URL.
func (h *Handler) absoluteURL(r *http.Request, path string) string {
	if h.baseURL != "" {
		return h.baseURL + path
	}
	scheme := "http"
	if middleware.IsRequestSecure(r) {
		scheme = "https"
	}
	return scheme + "://" + r.Host + path
}

// NotFound renders the generic 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, components.Page{Title: "Page Not Found"},
		pages.NotFound("Page Not Found", "The page you are looking for does not exist.", "/", "Go Home"))
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed", "path", r.URL.Path, "error", err)
	h.render(w, r, http.StatusInternalServerError, components.Page{Title: "Error"}, pages.ServerError())
}
