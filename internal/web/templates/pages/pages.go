// Package pages holds the site's full pages and the htmx fragments cut from them.
package pages

import (
	"net/url"
	"strconv"

	"github.com/good-yellow-bee/mcp-showcase/internal/blog"
	"github.com/good-yellow-bee/mcp-showcase/internal/catalog"
	"github.com/good-yellow-bee/mcp-showcase/internal/models"
)

// HomeData feeds the landing page.
type HomeData struct {
	Stats    catalog.Stats
	Featured []models.Project
}

// ProjectsData feeds the projects listing.
type ProjectsData struct {
	Criteria catalog.Criteria
	Results  []models.Project
	Tags     []string
	Stats    catalog.Stats
}

// DetailData feeds a project page. CodeHTML is pre-rendered by the highlighter.
type DetailData struct {
	Project  models.Project
	CodeHTML string
	Related  []models.Project
	ShareURL string
}

// BlogData feeds the blog index.
type BlogData struct {
	Category   string
	Categories []string
	Featured   *models.Post
	Posts      []models.Post
	CSRFToken  string
}

type feature struct {
	title string
	text  string
}

var whyMCP = []feature{
	{"High Performance", "Optimized for real-time applications with minimal latency and maximum throughput"},
	{"Enterprise Ready", "Built-in security, scalability, and reliability features for production deployments"},
	{"Developer Friendly", "Clean APIs, comprehensive documentation, and extensive tooling support"},
}

var aboutFeatures = []feature{
	{"Open Source", "All projects are open source and available for learning and contribution."},
	{"Educational", "Designed to teach MCP concepts from basic to advanced implementations."},
	{"Modern Tech", "Built with cutting-edge technologies and best practices."},
	{"Production Ready", "Includes security, performance, and scalability considerations."},
	{"Community Driven", "Built by developers, for developers, with community feedback."},
}

var technologies = []string{
	"Python", "JavaScript", "React", "Node.js", "Docker", "Kubernetes",
	"PostgreSQL", "MongoDB", "Redis", "WebSocket", "JWT", "OAuth2",
}

type learningStep struct {
	level  models.Level
	title  string
	topics []string
}

var learningPath = []learningStep{
	{models.LevelBasic, "Foundation", []string{"Basic server setup", "Simple client connections", "Core concepts"}},
	{models.LevelIntermediate, "Application", []string{"Database integration", "Real-time features", "Performance optimization"}},
	{models.LevelAdvanced, "Enterprise", []string{"Microservices architecture", "Security implementation", "Scalability patterns"}},
}

func projectsHref(c catalog.Criteria) string {
	if q := c.Encode(); q != "" {
		return "/projects?" + q
	}
	return "/projects"
}

func levelHref(l models.Level) string {
	return projectsHref(catalog.Criteria{Level: l})
}

func tagHref(tag string) string {
	return projectsHref(catalog.Criteria{Tags: []string{tag}})
}

func withoutSearch(c catalog.Criteria) catalog.Criteria {
	c.SearchText = ""
	return c
}

func levelFilterClass(l models.Level, selected bool) string {
	if selected {
		return "badge level-" + string(l) + " selected"
	}
	return "badge level-" + string(l)
}

func tagFilterClass(selected bool) string {
	if selected {
		return "badge badge-primary selected"
	}
	return "badge badge-secondary"
}

func categoryClass(selected bool) string {
	if selected {
		return "badge badge-primary selected"
	}
	return "badge badge-outline"
}

func levelCount(s catalog.Stats, l models.Level) string {
	return strconv.Itoa(s.ByLevel[l])
}

func resultCount(n int) string {
	if n == 1 {
		return "1 Project Found"
	}
	return strconv.Itoa(n) + " Projects Found"
}

func blogHref(category string) string {
	if category == "" || category == blog.AllCategories {
		return "/blog"
	}
	return "/blog?category=" + url.QueryEscape(category)
}

func postHref(p models.Post) string {
	return "/blog/" + url.PathEscape(p.Slug)
}

func currentCategory(c string) string {
	if c == "" {
		return blog.AllCategories
	}
	return c
}
