package models

import (
	"time"
)

// Post is a blog article.
type Post struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	Category    string    `json:"category"`
	ReadTime    string    `json:"readTime"`
	PublishDate time.Time `json:"publishDate"`
	Featured    bool      `json:"featured"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Body        string    `json:"body,omitempty"`
	HTML        string    `json:"-"`
}
