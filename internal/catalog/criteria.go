package catalog

import (
	"net/url"
	"strings"

	"github.com/good-yellow-bee/mcp-showcase/internal/models"
)

// Criteria is the combined filter the projects page and API pass to Filter.
// Zero values mean "unset".
type Criteria struct {
	SearchText string
	Level      models.Level
	Tags       []string
}

// CriteriaFromQuery reads q, level and repeated tag parameters. An unknown
// level is dropped rather than rejected; callers that must reject it check
// the raw parameter themselves.
func CriteriaFromQuery(v url.Values) Criteria {
	crit := Criteria{SearchText: v.Get("q")}
	if lvl, err := models.ParseLevel(v.Get("level")); err == nil {
		crit.Level = lvl
	}
	seen := make(map[string]bool)
	for _, t := range v["tag"] {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		crit.Tags = append(crit.Tags, t)
	}
	return crit
}

// Active reports whether any criterion is set.
func (c Criteria) Active() bool {
	return c.SearchText != "" || c.Level != "" || len(c.Tags) > 0
}

// HasTag reports whether tag is among the selected tags.
func (c Criteria) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ToggleTag returns a copy of c with tag added, or removed if already selected.
func (c Criteria) ToggleTag(tag string) Criteria {
	out := c
	out.Tags = make([]string, 0, len(c.Tags)+1)
	found := false
	for _, t := range c.Tags {
		if t == tag {
			found = true
			continue
		}
		out.Tags = append(out.Tags, t)
	}
	if !found {
		out.Tags = append(out.Tags, tag)
	}
	return out
}

// ToggleLevel returns a copy of c with level selected, or cleared if it was
// already the selected level.
func (c Criteria) ToggleLevel(level models.Level) Criteria {
	out := c
	out.Tags = append([]string(nil), c.Tags...)
	if c.Level == level {
		out.Level = ""
	} else {
		out.Level = level
	}
	return out
}

// Encode renders c as a query string usable on /projects.
func (c Criteria) Encode() string {
	v := url.Values{}
	if c.SearchText != "" {
		v.Set("q", c.SearchText)
	}
	if c.Level != "" {
		v.Set("level", string(c.Level))
	}
	for _, t := range c.Tags {
		v.Add("tag", t)
	}
	return v.Encode()
}
