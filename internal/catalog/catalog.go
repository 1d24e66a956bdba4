// Package catalog holds the immutable project catalog and the queries served over it.
//
// A Catalog is built once from a sequence of projects and never changes afterwards.
// Every query is a pure function of the catalog and its arguments, so a single
// Catalog may be shared by any number of goroutines without locking.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/good-yellow-bee/mcp-showcase/internal/models"
)

var (
	// ErrDuplicateID is wrapped by ValidationError when two projects share an ID.
	ErrDuplicateID = errors.New("duplicate project id")
	// ErrMissingField is wrapped by ValidationError when a required field is empty.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidField is wrapped by ValidationError when a field cannot be interpreted.
	ErrInvalidField = errors.New("invalid field")
	// ErrEmptyCatalog is returned by Load when the document lists no projects.
	ErrEmptyCatalog = errors.New("catalog document has no projects")
)

// ValidationError reports why a catalog could not be constructed.
type ValidationError struct {
	Index      int    // position of the offending project
	FirstIndex int    // earlier position holding the same ID, for duplicates; -1 otherwise
	ID         string // offending project ID, possibly empty
	Field      string
	Err        error
}

func (e *ValidationError) Error() string {
	if errors.Is(e.Err, ErrDuplicateID) {
		return fmt.Sprintf("%v %q at index %d (first defined at index %d)", e.Err, e.ID, e.Index, e.FirstIndex)
	}
	if e.ID != "" {
		return fmt.Sprintf("project %q at index %d: %s: %v", e.ID, e.Index, e.Field, e.Err)
	}
	return fmt.Sprintf("project at index %d: %s: %v", e.Index, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// entry pairs a project with the lower-cased text the search predicate scans.
type entry struct {
	project   models.Project
	title     string
	desc      string
	lowerTags []string
}

// Catalog is an ordered, read-only set of projects with unique IDs.
type Catalog struct {
	entries []entry
	byID    map[string]int
}

// New validates projects and builds a Catalog preserving their order. It fails
// with a *ValidationError if any two projects share an ID or a project is
// missing its ID, title or a valid level. On failure no Catalog is returned.
func New(projects []models.Project) (*Catalog, error) {
	c := &Catalog{
		entries: make([]entry, 0, len(projects)),
		byID:    make(map[string]int, len(projects)),
	}

	for i := range projects {
		p := projects[i].Clone()
		if err := validateProject(i, &p); err != nil {
			return nil, err
		}
		if first, ok := c.byID[p.ID]; ok {
			return nil, &ValidationError{
				Index:      i,
				FirstIndex: first,
				ID:         p.ID,
				Field:      "id",
				Err:        ErrDuplicateID,
			}
		}
		c.byID[p.ID] = i
		c.entries = append(c.entries, newEntry(p))
	}

	return c, nil
}

func validateProject(i int, p *models.Project) error {
	invalid := func(field string, err error) error {
		return &ValidationError{Index: i, FirstIndex: -1, ID: p.ID, Field: field, Err: err}
	}
	if strings.TrimSpace(p.ID) == "" {
		return invalid("id", ErrMissingField)
	}
	if strings.TrimSpace(p.Title) == "" {
		return invalid("title", ErrMissingField)
	}
	if !p.Level.Valid() {
		return invalid("level", fmt.Errorf("%w: level %q", ErrInvalidField, p.Level))
	}
	return nil
}

func newEntry(p models.Project) entry {
	tags := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		tags[i] = strings.ToLower(t)
	}
	return entry{
		project:   p,
		title:     strings.ToLower(p.Title),
		desc:      strings.ToLower(p.Description),
		lowerTags: tags,
	}
}

// Current returns c itself, letting a fixed Catalog stand in wherever a Source is expected.
func (c *Catalog) Current() *Catalog {
	return c
}

// Len returns the number of projects.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Projects returns every project in catalog order.
func (c *Catalog) Projects() []models.Project {
	return c.collect(func(*entry) bool { return true })
}

// Featured returns the first n projects in catalog order.
func (c *Catalog) Featured(n int) []models.Project {
	if n > len(c.entries) {
		n = len(c.entries)
	}
	if n < 0 {
		n = 0
	}
	out := make([]models.Project, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, c.entries[i].project.Clone())
	}
	return out
}

// collect returns clones of every project matching keep, in catalog order.
// The result is never nil.
func (c *Catalog) collect(keep func(*entry) bool) []models.Project {
	out := make([]models.Project, 0)
	for i := range c.entries {
		if keep(&c.entries[i]) {
			out = append(out, c.entries[i].project.Clone())
		}
	}
	return out
}
