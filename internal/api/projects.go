package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/mcp-showcase/internal/catalog"
	"github.com/good-yellow-bee/mcp-showcase/internal/metrics"
	"github.com/good-yellow-bee/mcp-showcase/internal/models"
	"github.com/good-yellow-bee/mcp-showcase/internal/query"
)

const (
	defaultRelatedLimit = 3
	maxRelatedLimit     = 12
)

// listProjects serves GET /projects?q=&level=&tag=&where=. The where
// expression narrows the criteria results further.
func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	if raw := strings.TrimSpace(params.Get("level")); raw != "" {
		if _, err := models.ParseLevel(raw); err != nil {
			JSONError(w, NewValidationError(err.Error()))
			return
		}
	}

	var where *query.ParsedQuery
	if raw := strings.TrimSpace(params.Get("where")); raw != "" {
		q, err := query.Parse(raw)
		if err != nil {
			JSONError(w, NewValidationError("invalid where expression: "+err.Error()))
			return
		}
		where = q
	}

	crit := catalog.CriteriaFromQuery(params)
	if crit.Active() || where != nil {
		metrics.SearchesTotal.WithLabelValues("api").Inc()
	}

	items := s.deps.Catalog.Current().Filter(crit)
	if where != nil {
		var err error
		if items, err = where.Select(items); err != nil {
			JSONError(w, NewBadRequest(err.Error()))
			return
		}
	}
	OK(w, ListResponse{Items: items, Total: len(items)})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request, c *catalog.Catalog) (models.Project, bool) {
	p, ok := c.LookupByID(chi.URLParam(r, "id"))
	if !ok {
		JSONError(w, ErrProjectNotFound)
	}
	return p, ok
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	if p, ok := s.lookup(w, r, s.deps.Catalog.Current()); ok {
		OK(w, p)
	}
}

// downloadProject returns the bare project JSON as an attachment.
func (s *Server) downloadProject(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(w, r, s.deps.Catalog.Current())
	if !ok {
		return
	}
	body, err := catalog.MarshalProject(p)
	if err != nil {
		s.logger.Error("marshal project", "id", p.ID, "err", err)
		JSONError(w, ErrInternalServer)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", catalog.ContentDisposition(catalog.DownloadFilename(p)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.logger.Debug("write download", "id", p.ID, "err", err)
	}
}

func (s *Server) relatedProjects(w http.ResponseWriter, r *http.Request) {
	limit := defaultRelatedLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxRelatedLimit {
			JSONError(w, NewValidationError("limit must be between 1 and "+strconv.Itoa(maxRelatedLimit)))
			return
		}
		limit = n
	}

	c := s.deps.Catalog.Current()
	p, ok := s.lookup(w, r, c)
	if !ok {
		return
	}
	items := c.Related(p.ID, limit)
	OK(w, ListResponse{Items: items, Total: len(items)})
}

func (s *Server) listLevels(w http.ResponseWriter, r *http.Request) {
	stats := s.deps.Catalog.Current().Stats()
	levels := make([]LevelResponse, 0, len(models.AllLevels()))
	for _, l := range models.AllLevels() {
		levels = append(levels, LevelResponse{
			Level:   string(l),
			Label:   l.Label(),
			Summary: l.Summary(),
			Count:   stats.ByLevel[l],
		})
	}
	OK(w, levels)
}

func (s *Server) listTags(w http.ResponseWriter, r *http.Request) {
	OK(w, s.deps.Catalog.Current().Tags())
}

func (s *Server) listLanguages(w http.ResponseWriter, r *http.Request) {
	OK(w, s.deps.Catalog.Current().Languages())
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	OK(w, s.deps.Catalog.Current().Stats())
}
