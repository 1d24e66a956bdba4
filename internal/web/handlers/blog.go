package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"

	"github.com/good-yellow-bee/mcp-showcase/internal/newsletter"
	"github.com/good-yellow-bee/mcp-showcase/internal/web/flash"
	"github.com/good-yellow-bee/mcp-showcase/internal/web/templates/components"
	"github.com/good-yellow-bee/mcp-showcase/internal/web/templates/pages"
)

const newsletterAnchor = "/blog#newsletter"

// ShowBlog lists posts, optionally narrowed by the category query parameter.
// The featured post is shown only on the unfiltered listing.
func (h *Handler) ShowBlog(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	data := pages.BlogData{
		Category:   category,
		Categories: h.blog.Categories(),
		Posts:      h.blog.ByCategory(category),
		CSRFToken:  csrf.Token(r),
	}
	if category == "" {
		if p, ok := h.blog.Featured(); ok {
			data.Featured = &p
		}
	}

	h.render(w, r, http.StatusOK, components.Page{
		Title:       "Blog",
		Description: "Tutorials, patterns, and news about the Model Context Protocol.",
		Active:      components.NavBlog,
	}, pages.Blog(data))
}

func (h *Handler) ShowPost(w http.ResponseWriter, r *http.Request) {
	p, ok := h.blog.BySlug(chi.URLParam(r, "slug"))
	if !ok {
		h.render(w, r, http.StatusNotFound, components.Page{Title: "Post Not Found", Active: components.NavBlog},
			pages.NotFound("Post Not Found", "The article you are looking for does not exist.", "/blog", "Back to Blog"))
		return
	}
	h.render(w, r, http.StatusOK, components.Page{
		Title:       p.Title,
		Description: p.Excerpt,
		Active:      components.NavBlog,
	}, pages.BlogPost(p))
}

// HandleSubscribe records a newsletter signup from the blog form and
// redirects back with a flash message describing the outcome.
func (h *Handler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	kind, text := h.subscribe(r)
	if err := h.flash.Set(w, h.secureCookies, kind, text); err != nil {
		h.logger.Error("set flash", "error", err)
	}
	http.Redirect(w, r, newsletterAnchor, http.StatusSeeOther)
}

func (h *Handler) subscribe(r *http.Request) (flash.Kind, string) {
	if h.newsletter == nil {
		return flash.KindError, "The newsletter is not available right now."
	}
	if err := r.ParseForm(); err != nil {
		return flash.KindError, "Invalid form data."
	}

	_, err := h.newsletter.Subscribe(r.Context(), r.FormValue("email"), newsletter.SourceWeb)
	switch {
	case err == nil:
		return flash.KindSuccess, "Thanks for subscribing! Watch your inbox for new articles."
	case errors.Is(err, newsletter.ErrInvalidEmail):
		return flash.KindError, "Please enter a valid email address."
	case errors.Is(err, newsletter.ErrAlreadySubscribed):
		return flash.KindInfo, "You are already subscribed."
	default:
		h.logger.Error("newsletter signup failed", "error", err)
		return flash.KindError, "Something went wrong. Please try again later."
	}
}
