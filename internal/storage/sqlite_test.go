package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/good-yellow-bee/mcp-showcase/internal/models"
)

func setupTestDB(t *testing.T) *SQLiteStorage {
	t.Helper()

	store := NewSQLiteStorage(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err := store.Open(); err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate database: %v", err)
	}
	return store
}

func newTestSubscriber(email string, createdAt time.Time) *models.Subscriber {
	sub := models.NewSubscriber(email, "web")
	sub.ID = uuid.New().String()
	sub.CreatedAt = createdAt
	return sub
}

func TestSQLiteStorage_OpenClose(t *testing.T) {
	store := setupTestDB(t)
	if store.DB() == nil {
		t.Fatal("database should be open")
	}
	if err := store.DB().Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestSQLiteStorage_OpenRequiresPath(t *testing.T) {
	if err := NewSQLiteStorage("  ").Open(); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestSQLiteStorage_Migrate(t *testing.T) {
	store := setupTestDB(t)

	// Running again is a no-op.
	if err := store.Migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	version, err := store.SchemaVersion(context.Background())
	if err != nil {
		t.Fatalf("read version: %v", err)
	}
	if version != len(migrations) {
		t.Errorf("schema version = %d, want %d", version, len(migrations))
	}
}

func TestRunMigrations_Incremental(t *testing.T) {
	store := NewSQLiteStorage(":memory:")
	if err := store.Open(); err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	if _, err := schemaVersion(ctx, store.DB()); err != nil {
		t.Fatalf("schemaVersion: %v", err)
	}
	if err := applyMigration(ctx, store.DB(), migrations[0]); err != nil {
		t.Fatalf("apply first: %v", err)
	}
	applied, err := runMigrations(ctx, store.DB())
	if err != nil {
		t.Fatalf("runMigrations: %v", err)
	}
	if applied != len(migrations)-1 {
		t.Errorf("applied = %d, want %d", applied, len(migrations)-1)
	}

	if _, err := store.DB().Exec("INSERT INTO schema_migrations (version, name, applied_at) VALUES (99, 'future', ?)", time.Now()); err != nil {
		t.Fatalf("insert future version: %v", err)
	}
	if _, err := runMigrations(ctx, store.DB()); err == nil {
		t.Error("expected error for newer schema")
	}
}

func TestSQLiteStorage_InMemory(t *testing.T) {
	store := NewSQLiteStorage(":memory:")
	if err := store.Open(); err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()
	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	if err := store.Subscribers().Create(ctx, newTestSubscriber("a@example.com", time.Now().UTC())); err != nil {
		t.Fatalf("create: %v", err)
	}
	n, err := store.Subscribers().Count(ctx)
	if err != nil || n != 1 {
		t.Fatalf("count = %d, %v; want 1", n, err)
	}
}

func TestSubscriberRepo_CRUD(t *testing.T) {
	store := setupTestDB(t)
	repo := store.Subscribers()
	ctx := context.Background()

	base := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	first := newTestSubscriber("first@example.com", base)
	second := newTestSubscriber("second@example.com", base.Add(time.Hour))

	for _, sub := range []*models.Subscriber{first, second} {
		if err := repo.Create(ctx, sub); err != nil {
			t.Fatalf("create %s: %v", sub.Email, err)
		}
	}

	got, err := repo.GetByEmail(ctx, "first@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got == nil {
		t.Fatal("subscriber not found")
	}
	if got.ID != first.ID || got.Source != "web" {
		t.Errorf("got %+v, want id %s source web", got, first.ID)
	}
	if !got.CreatedAt.Equal(base) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, base)
	}

	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing subscriber, got %+v", missing)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Email != "second@example.com" {
		t.Fatalf("list should be newest first, got %d entries", len(list))
	}

	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestSubscriberRepo_DuplicateEmail(t *testing.T) {
	store := setupTestDB(t)
	repo := store.Subscribers()
	ctx := context.Background()

	if err := repo.Create(ctx, newTestSubscriber("dup@example.com", time.Now().UTC())); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := repo.Create(ctx, newTestSubscriber("dup@example.com", time.Now().UTC()))
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}
