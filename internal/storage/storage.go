// Package storage provides database storage interfaces and implementations.
package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/good-yellow-bee/mcp-showcase/internal/models"
)

// ErrConflict is returned when a write violates a uniqueness constraint.
var ErrConflict = errors.New("record already exists")

// Storage is the main interface for database operations.
type Storage interface {
	// Open initializes the database connection.
	Open() error
	// Close closes the database connection.
	Close() error
	// Migrate runs database migrations.
	Migrate() error
	// SchemaVersion reports the highest applied migration.
	SchemaVersion(ctx context.Context) (int, error)
	// DB exposes the connection for health checks.
	DB() *sql.DB

	Subscribers() SubscriberRepository
}

// SubscriberRepository defines operations for newsletter subscribers.
type SubscriberRepository interface {
	// Create stores a subscriber. It returns ErrConflict if the email is taken.
	Create(ctx context.Context, sub *models.Subscriber) error
	// GetByEmail returns nil, nil when no subscriber has the email.
	GetByEmail(ctx context.Context, email string) (*models.Subscriber, error)
	List(ctx context.Context) ([]*models.Subscriber, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
}
