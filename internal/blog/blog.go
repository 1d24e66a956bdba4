// Package blog loads the markdown posts shown on the blog pages.
//
// Posts are markdown files with a YAML frontmatter header. The slug is taken
// from the file name unless the frontmatter sets one. Bodies are rendered to
// HTML once at load time, so an Index is read-only afterwards.
package blog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/good-yellow-bee/mcp-showcase/internal/models"
)

//go:embed posts/*.md
var postsFS embed.FS

// AllCategories is the pseudo-category that selects every post.
const AllCategories = "All"

// categoryOrder is the order categories appear in the filter bar.
var categoryOrder = []string{
	"Tutorial",
	"Advanced",
	"Security",
	"Integration",
	"Performance",
	"Architecture",
}

var (
	ErrDuplicateSlug = errors.New("duplicate post slug")
	ErrInvalidPost   = errors.New("invalid post")
)

type postMatter struct {
	Slug     string `yaml:"slug"`
	Title    string `yaml:"title"`
	Excerpt  string `yaml:"excerpt"`
	Category string `yaml:"category"`
	ReadTime string `yaml:"read_time"`
	Date     string `yaml:"date"`
	Featured bool   `yaml:"featured"`
	Image    string `yaml:"image"`
}

// Index is an immutable, date-ordered collection of posts.
type Index struct {
	posts  []models.Post
	bySlug map[string]int
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// Default returns the posts embedded in the binary.
func Default() (*Index, error) {
	sub, err := fs.Sub(postsFS, "posts")
	if err != nil {
		return nil, fmt.Errorf("open embedded posts: %w", err)
	}
	return Load(sub)
}

// Load reads every *.md file at the root of fsys.
func Load(fsys fs.FS) (*Index, error) {
	names, err := fs.Glob(fsys, "*.md")
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	idx := &Index{bySlug: make(map[string]int, len(names))}
	for _, name := range names {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read post %s: %w", name, err)
		}
		post, err := parsePost(name, content)
		if err != nil {
			return nil, err
		}
		if _, ok := idx.bySlug[post.Slug]; ok {
			return nil, fmt.Errorf("%w %q in %s", ErrDuplicateSlug, post.Slug, name)
		}
		idx.bySlug[post.Slug] = len(idx.posts)
		idx.posts = append(idx.posts, post)
	}

	slices.SortStableFunc(idx.posts, func(a, b models.Post) int {
		if c := b.PublishDate.Compare(a.PublishDate); c != 0 {
			return c
		}
		return strings.Compare(a.Slug, b.Slug)
	})
	for i, p := range idx.posts {
		idx.bySlug[p.Slug] = i
	}
	return idx, nil
}

func parsePost(name string, content []byte) (models.Post, error) {
	var matter postMatter
	body, err := frontmatter.Parse(bytes.NewReader(content), &matter)
	if err != nil {
		return models.Post{}, fmt.Errorf("parse frontmatter in %s: %w", name, err)
	}

	slug := matter.Slug
	if slug == "" {
		slug = strings.TrimSuffix(path.Base(name), path.Ext(name))
	}

	switch {
	case strings.TrimSpace(matter.Title) == "":
		return models.Post{}, fmt.Errorf("%w %s: title is required", ErrInvalidPost, name)
	case strings.TrimSpace(matter.Category) == "":
		return models.Post{}, fmt.Errorf("%w %s: category is required", ErrInvalidPost, name)
	case matter.Date == "":
		return models.Post{}, fmt.Errorf("%w %s: date is required", ErrInvalidPost, name)
	}

	published, err := time.Parse(time.DateOnly, matter.Date)
	if err != nil {
		return models.Post{}, fmt.Errorf("%w %s: date %q is not YYYY-MM-DD", ErrInvalidPost, name, matter.Date)
	}

	var html bytes.Buffer
	if err := markdown.Convert(body, &html); err != nil {
		return models.Post{}, fmt.Errorf("render %s: %w", name, err)
	}

	return models.Post{
		Slug:        slug,
		Title:       matter.Title,
		Excerpt:     matter.Excerpt,
		Category:    matter.Category,
		ReadTime:    matter.ReadTime,
		PublishDate: published,
		Featured:    matter.Featured,
		ImageURL:    matter.Image,
		Body:        string(body),
		HTML:        html.String(),
	}, nil
}

// Len returns the number of posts.
func (idx *Index) Len() int {
	return len(idx.posts)
}

// Posts returns every post, newest first.
func (idx *Index) Posts() []models.Post {
	return slices.Clone(idx.posts)
}

// BySlug returns the post with the given slug.
func (idx *Index) BySlug(slug string) (models.Post, bool) {
	i, ok := idx.bySlug[slug]
	if !ok {
		return models.Post{}, false
	}
	return idx.posts[i], true
}

// ByCategory returns posts in category, newest first. An empty category or
// AllCategories selects everything. Matching ignores case.
func (idx *Index) ByCategory(category string) []models.Post {
	if category == "" || strings.EqualFold(category, AllCategories) {
		return idx.Posts()
	}
	out := make([]models.Post, 0)
	for _, p := range idx.posts {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns AllCategories followed by the known categories in
// display order. Categories used by posts but not in the fixed list are
// appended alphabetically.
func (idx *Index) Categories() []string {
	out := append([]string{AllCategories}, categoryOrder...)
	var extra []string
	for _, p := range idx.posts {
		if !slices.Contains(out, p.Category) && !slices.Contains(extra, p.Category) {
			extra = append(extra, p.Category)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}

// Featured returns the first post marked featured, or the newest post.
func (idx *Index) Featured() (models.Post, bool) {
	for _, p := range idx.posts {
		if p.Featured {
			return p, true
		}
	}
	if len(idx.posts) == 0 {
		return models.Post{}, false
	}
	return idx.posts[0], true
}
