package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/mcp-showcase/internal/models"
)

func toPostResponse(p models.Post, withHTML bool) PostResponse {
	resp := PostResponse{
		Slug:        p.Slug,
		Title:       p.Title,
		Excerpt:     p.Excerpt,
		Category:    p.Category,
		ReadTime:    p.ReadTime,
		PublishDate: p.PublishDate.Format(time.DateOnly),
		Featured:    p.Featured,
		ImageURL:    p.ImageURL,
	}
	if withHTML {
		resp.HTML = p.HTML
	}
	return resp
}

// listPosts serves GET /posts?category=.
func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	posts := s.deps.Blog.ByCategory(r.URL.Query().Get("category"))
	items := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		items = append(items, toPostResponse(p, false))
	}
	OK(w, ListResponse{Items: items, Total: len(items)})
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) {
	p, ok := s.deps.Blog.BySlug(chi.URLParam(r, "slug"))
	if !ok {
		JSONError(w, ErrPostNotFound)
		return
	}
	OK(w, toPostResponse(p, true))
}
