package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/good-yellow-bee/mcp-showcase/internal/models"
)

const sampleYAML = `
projects:
  - id: "a"
    title: First
    description: The first project
    level: basic
    tags: [Go, CLI]
    language: go
    created_at: "2025-07-25T00:00:00Z"
    code_snippet: |
      package main

      func main() {}
  - id: "b"
    title: Second
    level: Advanced
    language: python
    created_at: "2025-08-01"
    github_url: https://example.com/b
`

func TestLoad(t *testing.T) {
	c, err := Load(strings.NewReader(sampleYAML))
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	a, ok := c.LookupByID("a")
	require.True(t, ok)
	assert.Equal(t, models.LevelBasic, a.Level)
	assert.Equal(t, []string{"Go", "CLI"}, a.Tags)
	assert.Equal(t, "package main\n\nfunc main() {}", a.CodeSnippet)
	assert.Equal(t, time.Date(2025, 7, 25, 0, 0, 0, 0, time.UTC), a.CreatedAt)
	assert.False(t, a.HasDownload())

	b, ok := c.LookupByID("b")
	require.True(t, ok)
	assert.Equal(t, models.LevelAdvanced, b.Level)
	assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), b.CreatedAt)
	assert.Equal(t, "https://example.com/b", b.GitHubURL)
	assert.Empty(t, b.ImageURL)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		errPart string
	}{
		{
			name: "duplicate ids",
			yaml: `
projects:
  - {id: "1", title: A, level: basic, created_at: "2025-08-01"}
  - {id: "1", title: B, level: basic, created_at: "2025-08-01"}
`,
			errPart: `duplicate project id "1"`,
		},
		{
			name: "bad level",
			yaml: `
projects:
  - {id: "1", title: A, level: expert, created_at: "2025-08-01"}
`,
			errPart: "invalid level",
		},
		{
			name: "bad date",
			yaml: `
projects:
  - {id: "1", title: A, level: basic, created_at: "yesterday"}
`,
			errPart: "not an ISO 8601 date",
		},
		{
			name: "unknown field",
			yaml: `
projects:
  - {id: "1", title: A, level: basic, created_at: "2025-08-01", stars: 5}
`,
			errPart: "parse catalog YAML",
		},
		{
			name:    "malformed yaml",
			yaml:    "projects: [",
			errPart: "parse catalog YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Nil(t, c)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestLoad_EmptyDocument(t *testing.T) {
	for _, doc := range []string{"", "\n", "# nothing yet\n", "projects:\n", "projects: []\n"} {
		c, err := Load(strings.NewReader(doc))
		assert.ErrorIs(t, err, ErrEmptyCatalog, "document %q", doc)
		assert.Nil(t, c)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "open catalog file")
}

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	assert.Equal(t, 12, c.Len())

	first, ok := c.LookupByID("1")
	require.True(t, ok)
	assert.Equal(t, "Basic MCP Server Setup", first.Title)
	assert.Equal(t, []string{"Python", "MCP", "Server", "Beginner"}, first.Tags)
	assert.Equal(t, models.LevelBasic, first.Level)
	assert.Contains(t, first.CodeSnippet, "class BasicMCPServer")
	assert.False(t, first.HasDownload())

	for _, p := range c.Projects() {
		assert.NotEmpty(t, p.CodeSnippet, "project %s", p.ID)
		assert.False(t, p.CreatedAt.IsZero(), "project %s", p.ID)
	}

	again, err := LoadBytes(DefaultYAML())
	require.NoError(t, err)
	assert.Equal(t, c.Projects(), again.Projects())
}
