package handlers

import (
	"net/http"

	"github.com/good-yellow-bee/mcp-showcase/internal/web/templates/components"
	"github.com/good-yellow-bee/mcp-showcase/internal/web/templates/pages"
)

const featuredCount = 6

func (h *Handler) ShowHome(w http.ResponseWriter, r *http.Request) {
	c := h.catalog.Current()
	h.render(w, r, http.StatusOK, components.Page{Active: components.NavHome}, pages.Home(pages.HomeData{
		Stats:    c.Stats(),
		Featured: c.Featured(featuredCount),
	}))
}

func (h *Handler) ShowAbout(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, components.Page{
		Title:       "About",
		Description: "What MCP is and how the showcase projects are organized.",
		Active:      components.NavAbout,
	}, pages.About())
}

// ChromaCSS serves the stylesheet for highlighted code blocks.
func (h *Handler) ChromaCSS(w http.ResponseWriter, r *http.Request) {
	css, err := h.highlighter.CSS()
	if err != nil {
		h.logger.Error("chroma css", "error", err)
		http.Error(w, "stylesheet unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(css))
}
