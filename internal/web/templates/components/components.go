// Package components holds the page shell and the fragments shared by pages.
package components

import (
	"time"

	"github.com/good-yellow-bee/mcp-showcase/internal/web/flash"
)

// CSRFFieldName is the form field gorilla/csrf reads the token from.
const CSRFFieldName = "gorilla.csrf.Token"

const (
	siteName           = "MCP Showcase"
	defaultDescription = "Explore Model Context Protocol projects from basic tutorials to advanced applications."
	cardTagLimit       = 3
)

// Nav identifies the active navbar entry.
type Nav string

const (
	NavHome     Nav = "home"
	NavProjects Nav = "projects"
	NavBlog     Nav = "blog"
	NavAbout    Nav = "about"
	NavNone     Nav = ""
)

type navItem struct {
	nav   Nav
	href  string
	label string
}

var navItems = []navItem{
	{NavHome, "/", "Home"},
	{NavProjects, "/projects", "Projects"},
	{NavBlog, "/blog", "Blog"},
	{NavAbout, "/about", "About"},
}

// Page carries the per-request values every page needs.
type Page struct {
	Title       string
	Description string
	Active      Nav
	Nonce       string
	Flash       *flash.Message
	Version     string
}

func (p Page) title() string {
	if p.Title == "" {
		return siteName
	}
	return p.Title + " | " + siteName
}

func (p Page) description() string {
	if p.Description == "" {
		return defaultDescription
	}
	return p.Description
}

// FormatDate renders a date the way cards and detail pages show it.
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// ISODate renders t for a <time datetime> attribute.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ProjectHref is the detail page path for a project.
func ProjectHref(id string) string {
	return "/projects/" + id
}

func cardTags(tags []string) []string {
	if len(tags) > cardTagLimit {
		return tags[:cardTagLimit]
	}
	return tags
}
