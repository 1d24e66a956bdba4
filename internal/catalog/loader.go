package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/good-yellow-bee/mcp-showcase/internal/models"
)

//go:embed data/projects.yaml
var defaultCatalog []byte

// catalogFile is the on-disk YAML layout.
type catalogFile struct {
	Projects []projectEntry `yaml:"projects"`
}

type projectEntry struct {
	ID              string   `yaml:"id"`
	Title           string   `yaml:"title"`
	Description     string   `yaml:"description"`
	FullDescription string   `yaml:"full_description"`
	Level           string   `yaml:"level"`
	Tags            []string `yaml:"tags"`
	Language        string   `yaml:"language"`
	CreatedAt       string   `yaml:"created_at"`
	CodeSnippet     string   `yaml:"code_snippet"`
	DownloadURL     string   `yaml:"download_url"`
	ImageURL        string   `yaml:"image_url"`
	GitHubURL       string   `yaml:"github_url"`
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return LoadBytes(defaultCatalog)
}

// DefaultYAML returns the raw embedded catalog document.
func DefaultYAML() []byte {
	return bytes.Clone(defaultCatalog)
}

// LoadFile loads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// LoadBytes loads a catalog from YAML bytes.
func LoadBytes(data []byte) (*Catalog, error) {
	return Load(bytes.NewReader(data))
}

// Load decodes a YAML catalog document and builds a Catalog from it. An empty
// document, or one without any projects, fails with ErrEmptyCatalog so a
// truncated file never replaces a served catalog.
func Load(r io.Reader) (*Catalog, error) {
	var file catalogFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}
	if len(file.Projects) == 0 {
		return nil, ErrEmptyCatalog
	}

	projects := make([]models.Project, 0, len(file.Projects))
	for i, e := range file.Projects {
		p, err := e.toProject(i)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}

	return New(projects)
}

func (e *projectEntry) toProject(i int) (models.Project, error) {
	invalid := func(field string, err error) error {
		return &ValidationError{Index: i, FirstIndex: -1, ID: e.ID, Field: field, Err: err}
	}

	level, err := models.ParseLevel(e.Level)
	if err != nil {
		return models.Project{}, invalid("level", fmt.Errorf("%w: %v", ErrInvalidField, err))
	}

	createdAt, err := parseTimestamp(e.CreatedAt)
	if err != nil {
		return models.Project{}, invalid("created_at", fmt.Errorf("%w: %v", ErrInvalidField, err))
	}

	return models.Project{
		ID:              strings.TrimSpace(e.ID),
		Title:           strings.TrimSpace(e.Title),
		Description:     strings.TrimSpace(e.Description),
		FullDescription: strings.TrimSpace(e.FullDescription),
		Level:           level,
		Tags:            e.Tags,
		Language:        strings.TrimSpace(e.Language),
		CreatedAt:       createdAt,
		CodeSnippet:     strings.TrimRight(e.CodeSnippet, "\n"),
		DownloadURL:     strings.TrimSpace(e.DownloadURL),
		ImageURL:        strings.TrimSpace(e.ImageURL),
		GitHubURL:       strings.TrimSpace(e.GitHubURL),
	}, nil
}

// parseTimestamp accepts RFC 3339 timestamps and plain ISO 8601 dates.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("created_at is required")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("created_at %q is not an ISO 8601 date", s)
	}
	return t, nil
}
