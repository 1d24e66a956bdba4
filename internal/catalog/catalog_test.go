package catalog

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/good-yellow-bee/mcp-showcase/internal/models"
)

func testProjects() []models.Project {
	created := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	return []models.Project{
		{
			ID:          "1",
			Title:       "Basic MCP Server Setup",
			Description: "Learn the fundamentals of creating your first MCP server with Python",
			Level:       models.LevelBasic,
			Tags:        []string{"Python", "MCP", "Server", "Beginner"},
			Language:    "python",
			CreatedAt:   created,
		},
		{
			ID:          "2",
			Title:       "JavaScript MCP Client",
			Description: "Build a robust MCP client using WebSocket connections",
			Level:       models.LevelIntermediate,
			Tags:        []string{"JavaScript", "WebSocket", "Client"},
			Language:    "javascript",
			CreatedAt:   created,
		},
		{
			ID:          "3",
			Title:       "Advanced MCP Architecture",
			Description: "Scalable microservices architecture",
			Level:       models.LevelAdvanced,
			Tags:        []string{"Microservices", "Kubernetes", "Python"},
			Language:    "python",
			CreatedAt:   created,
		},
		{
			ID:          "4",
			Title:       "MCP Database Integration",
			Description: "Persistent context storage",
			Level:       models.LevelIntermediate,
			Tags:        []string{"Database", "PostgreSQL", "Python"},
			Language:    "python",
			CreatedAt:   created,
		},
		{
			ID:          "5",
			Title:       "Load Balancer",
			Description: "Round robin distribution (c++ flavoured)",
			Level:       models.LevelAdvanced,
			Tags:        []string{},
			Language:    "python",
			CreatedAt:   created,
		},
	}
}

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New(testProjects())
	require.NoError(t, err)
	return c
}

func TestNew_PreservesOrder(t *testing.T) {
	c := newTestCatalog(t)

	require.Equal(t, 5, c.Len())
	ids := make([]string, 0, c.Len())
	for _, p := range c.Projects() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids)
}

func TestNew_DuplicateID(t *testing.T) {
	projects := testProjects()
	projects[3].ID = "1"

	c, err := New(projects)
	require.Error(t, err)
	assert.Nil(t, c, "no partially initialized catalog on failure")

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, "1", verr.ID)
	assert.Equal(t, 3, verr.Index)
	assert.Equal(t, 0, verr.FirstIndex)
	assert.Contains(t, err.Error(), `duplicate project id "1"`)
}

func TestNew_RejectsInvalidProjects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *models.Project)
		field  string
		target error
	}{
		{
			name:   "empty id",
			mutate: func(p *models.Project) { p.ID = "  " },
			field:  "id",
			target: ErrMissingField,
		},
		{
			name:   "empty title",
			mutate: func(p *models.Project) { p.Title = "" },
			field:  "title",
			target: ErrMissingField,
		},
		{
			name:   "unknown level",
			mutate: func(p *models.Project) { p.Level = "expert" },
			field:  "level",
			target: ErrInvalidField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projects := testProjects()
			tt.mutate(&projects[2])

			c, err := New(projects)
			require.Error(t, err)
			assert.Nil(t, c)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, 2, verr.Index)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestNew_EmptyCatalog(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.NotNil(t, c.Projects())
	assert.Empty(t, c.Search(""))
}

func TestCatalog_IsolatedFromCallers(t *testing.T) {
	projects := testProjects()
	c, err := New(projects)
	require.NoError(t, err)

	// Mutating the input after construction must not leak in.
	projects[0].Title = "changed"
	projects[0].Tags[0] = "changed"

	p, ok := c.LookupByID("1")
	require.True(t, ok)
	assert.Equal(t, "Basic MCP Server Setup", p.Title)
	assert.Equal(t, "Python", p.Tags[0])

	// Nor must mutating a returned value.
	p.Tags[0] = "mutated"
	list := c.Projects()
	list[0].Tags[1] = "mutated"

	again, _ := c.LookupByID("1")
	assert.Equal(t, []string{"Python", "MCP", "Server", "Beginner"}, again.Tags)
}

func TestCatalog_Featured(t *testing.T) {
	c := newTestCatalog(t)

	assert.Len(t, c.Featured(3), 3)
	assert.Equal(t, "1", c.Featured(3)[0].ID)
	assert.Len(t, c.Featured(100), 5)
	assert.Empty(t, c.Featured(-1))
}

func TestHolder_Swap(t *testing.T) {
	first := newTestCatalog(t)
	second, err := New(testProjects()[:2])
	require.NoError(t, err)

	h := NewHolder(first)
	assert.Same(t, first, h.Current())

	prev := h.Swap(second)
	assert.Same(t, first, prev)
	assert.Same(t, second, h.Current())
	assert.Equal(t, 5, first.Len(), "swapping must not alter the old catalog")
}

func TestCatalog_ImplementsSource(t *testing.T) {
	c := newTestCatalog(t)
	var src Source = c
	assert.Same(t, c, src.Current())
}
