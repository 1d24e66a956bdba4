package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/mcp-showcase/internal/catalog"
	"github.com/good-yellow-bee/mcp-showcase/internal/metrics"
	"github.com/good-yellow-bee/mcp-showcase/internal/models"
	webmw "github.com/good-yellow-bee/mcp-showcase/internal/web/middleware"
	"github.com/good-yellow-bee/mcp-showcase/internal/web/templates/components"
	"github.com/good-yellow-bee/mcp-showcase/internal/web/templates/pages"
)

const relatedCount = 3

// ShowProjects renders the catalog browser. htmx requests get only the
// results fragment.
func (h *Handler) ShowProjects(w http.ResponseWriter, r *http.Request) {
	c := h.catalog.Current()
	crit := catalog.CriteriaFromQuery(r.URL.Query())
	if crit.Active() {
		metrics.SearchesTotal.WithLabelValues("web").Inc()
	}

	data := pages.ProjectsData{
		Criteria: crit,
		Results:  c.Filter(crit),
		Tags:     c.Tags(),
		Stats:    c.Stats(),
	}

	if webmw.IsHTMX(r) {
		h.write(w, r, http.StatusOK, pages.ProjectResults(data))
		return
	}
	h.render(w, r, http.StatusOK, components.Page{
		Title:       "Projects",
		Description: "Browse MCP projects by level, tag, or keyword.",
		Active:      components.NavProjects,
	}, pages.Projects(data))
}

// lookup resolves the {id} URL parameter, rendering a 404 when it is unknown.
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request, c *catalog.Catalog) (models.Project, bool) {
	id := chi.URLParam(r, "id")
	p, ok := c.LookupByID(id)
	if !ok {
		h.render(w, r, http.StatusNotFound, components.Page{Title: "Project Not Found", Active: components.NavProjects},
			pages.NotFound("Project Not Found", "The project you are looking for does not exist.", "/projects", "Back to Projects"))
	}
	return p, ok
}

func (h *Handler) ShowProject(w http.ResponseWriter, r *http.Request) {
	c := h.catalog.Current()
	p, ok := h.lookup(w, r, c)
	if !ok {
		return
	}

	code, err := h.highlighter.HTML(p.ID, p.CodeSnippet, p.Language)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, components.Page{
		Title:       p.Title,
		Description: p.Description,
		Active:      components.NavProjects,
	}, pages.ProjectDetail(pages.DetailData{
		Project:  p,
		CodeHTML: code,
		Related:  c.Related(p.ID, relatedCount),
		ShareURL: h.absoluteURL(r, "/projects/"+p.ID),
	}))
}

// DownloadProject sends the project record as a JSON attachment.
func (h *Handler) DownloadProject(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r, h.catalog.Current())
	if !ok {
		return
	}
	body, err := catalog.MarshalProject(p)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	attach(w, "application/json", catalog.DownloadFilename(p), body)
}

// DownloadSnippet sends the project's code snippet as a text attachment.
func (h *Handler) DownloadSnippet(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r, h.catalog.Current())
	if !ok {
		return
	}
	attach(w, "text/plain; charset=utf-8", catalog.SnippetFilename(p), []byte(p.CodeSnippet))
}

func attach(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", catalog.ContentDisposition(filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
