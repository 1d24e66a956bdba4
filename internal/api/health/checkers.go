package health

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/good-yellow-bee/mcp-showcase/internal/catalog"
)

// SQLiteChecker checks SQLite database connectivity.
type SQLiteChecker struct {
	db *sql.DB
}

// NewSQLiteChecker creates a new SQLite health checker.
func NewSQLiteChecker(db *sql.DB) *SQLiteChecker {
	return &SQLiteChecker{db: db}
}

// Name returns the checker name.
func (c *SQLiteChecker) Name() string {
	return "sqlite"
}

// Check verifies the SQLite database is accessible.
func (c *SQLiteChecker) Check(ctx context.Context) error {
	if c.db == nil {
		return fmt.Errorf("database not initialized")
	}
	return c.db.PingContext(ctx)
}

// CatalogChecker reports whether a non-empty catalog is being served.
type CatalogChecker struct {
	source catalog.Source
}

// NewCatalogChecker creates a catalog health checker.
func NewCatalogChecker(source catalog.Source) *CatalogChecker {
	return &CatalogChecker{source: source}
}

// Name returns the checker name.
func (c *CatalogChecker) Name() string {
	return "catalog"
}

// Check fails when no catalog is loaded or it holds no projects.
func (c *CatalogChecker) Check(ctx context.Context) error {
	if c.source == nil {
		return fmt.Errorf("catalog not configured")
	}
	cat := c.source.Current()
	if cat == nil {
		return fmt.Errorf("catalog not loaded")
	}
	if cat.Len() == 0 {
		return fmt.Errorf("catalog is empty")
	}
	return nil
}
