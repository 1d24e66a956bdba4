package catalog

import (
	"sort"
	"strings"

	"github.com/good-yellow-bee/mcp-showcase/internal/models"
)

// LookupByID returns the project with the given ID. The boolean is false when
// no such project exists.
func (c *Catalog) LookupByID(id string) (models.Project, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Project{}, false
	}
	return c.entries[i].project.Clone(), true
}

// FilterByLevel returns the projects at level, in catalog order.
func (c *Catalog) FilterByLevel(level models.Level) []models.Project {
	return c.collect(func(e *entry) bool {
		return e.project.Level == level
	})
}

// Search returns the projects whose title, description or any single tag
// contains query, ignoring case. An empty query matches every project.
func (c *Catalog) Search(query string) []models.Project {
	q := strings.ToLower(query)
	return c.collect(func(e *entry) bool {
		return e.matches(q)
	})
}

// matches reports whether the lower-cased query q occurs in the entry.
// Tags are checked one at a time, never as a joined string.
func (e *entry) matches(q string) bool {
	if strings.Contains(e.title, q) || strings.Contains(e.desc, q) {
		return true
	}
	for _, t := range e.lowerTags {
		if strings.Contains(t, q) {
			return true
		}
	}
	return false
}

// Filter returns the projects satisfying every criterion set in crit, in
// catalog order. Requested tags are OR-ed together and matched exactly.
func (c *Catalog) Filter(crit Criteria) []models.Project {
	q := strings.ToLower(crit.SearchText)
	return c.collect(func(e *entry) bool {
		if q != "" && !e.matches(q) {
			return false
		}
		if crit.Level != "" && e.project.Level != crit.Level {
			return false
		}
		if len(crit.Tags) > 0 && !sharesTag(&e.project, crit.Tags) {
			return false
		}
		return true
	})
}

func sharesTag(p *models.Project, tags []string) bool {
	for _, t := range tags {
		if p.HasTag(t) {
			return true
		}
	}
	return false
}

// Tags returns every distinct tag in the catalog, sorted.
func (c *Catalog) Tags() []string {
	return c.distinct(func(p *models.Project) []string { return p.Tags })
}

// Languages returns every distinct project language, sorted.
func (c *Catalog) Languages() []string {
	return c.distinct(func(p *models.Project) []string { return []string{p.Language} })
}

func (c *Catalog) distinct(values func(*models.Project) []string) []string {
	set := make(map[string]struct{})
	for i := range c.entries {
		for _, v := range values(&c.entries[i].project) {
			if v != "" {
				set[v] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Stats summarizes the catalog for the home page and the API.
type Stats struct {
	Projects  int                  `json:"projects"`
	Levels    int                  `json:"levels"`
	ByLevel   map[models.Level]int `json:"by_level"`
	Tags      int                  `json:"tags"`
	Languages int                  `json:"languages"`
}

// Stats counts projects per level along with distinct tags and languages.
func (c *Catalog) Stats() Stats {
	byLevel := make(map[models.Level]int, 3)
	for _, l := range models.AllLevels() {
		byLevel[l] = 0
	}
	for i := range c.entries {
		byLevel[c.entries[i].project.Level]++
	}
	return Stats{
		Projects:  len(c.entries),
		Levels:    len(models.AllLevels()),
		ByLevel:   byLevel,
		Tags:      len(c.Tags()),
		Languages: len(c.Languages()),
	}
}

// Related returns up to n other projects that share the level or a tag with
// the project identified by id. Unknown IDs yield an empty result.
func (c *Catalog) Related(id string, n int) []models.Project {
	i, ok := c.byID[id]
	if !ok || n <= 0 {
		return []models.Project{}
	}
	src := &c.entries[i].project

	out := make([]models.Project, 0, n)
	for j := range c.entries {
		if len(out) == n {
			break
		}
		p := &c.entries[j].project
		if j == i {
			continue
		}
		if p.Level == src.Level || sharesTag(p, src.Tags) {
			out = append(out, p.Clone())
		}
	}
	return out
}
