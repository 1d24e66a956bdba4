package catalog

import (
	"sync/atomic"
)

// Source hands out the catalog that queries should run against.
type Source interface {
	Current() *Catalog
}

// Holder publishes the catalog currently being served. Swapping in a new
// Catalog never touches the old one, so readers holding it stay consistent.
type Holder struct {
	current atomic.Pointer[Catalog]
}

// NewHolder creates a Holder serving c.
func NewHolder(c *Catalog) *Holder {
	h := &Holder{}
	h.current.Store(c)
	return h
}

// Current returns the catalog being served.
func (h *Holder) Current() *Catalog {
	return h.current.Load()
}

// Swap replaces the served catalog and returns the previous one.
func (h *Holder) Swap(c *Catalog) *Catalog {
	return h.current.Swap(c)
}
