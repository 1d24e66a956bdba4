package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/good-yellow-bee/mcp-showcase/internal/models"
)

type sqliteSubscriberRepo struct {
	db *sql.DB
}

func (r *sqliteSubscriberRepo) Create(ctx context.Context, sub *models.Subscriber) error {
	query := `
		INSERT INTO subscribers (id, email, source, created_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query, sub.ID, sub.Email, sub.Source, sub.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("insert subscriber %s: %w", sub.Email, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("insert subscriber: %w", err)
	}
	return nil
}

func (r *sqliteSubscriberRepo) GetByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	query := `
		SELECT id, email, source, created_at
		FROM subscribers WHERE email = ?
	`
	sub := &models.Subscriber{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&sub.ID, &sub.Email, &sub.Source, &sub.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		//nolint:nilnil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get subscriber by email: %w", err)
	}
	return sub, nil
}

func (r *sqliteSubscriberRepo) List(ctx context.Context) ([]*models.Subscriber, error) {
	query := `
		SELECT id, email, source, created_at
		FROM subscribers ORDER BY created_at DESC, email
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	var subs []*models.Subscriber
	for rows.Next() {
		sub := &models.Subscriber{}
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.Source, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscribers: %w", err)
	}
	return subs, nil
}

func (r *sqliteSubscriberRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM subscribers").Scan(&count); err != nil {
		return 0, fmt.Errorf("count subscribers: %w", err)
	}
	return count, nil
}

func (r *sqliteSubscriberRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM subscribers WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete subscriber: %w", err)
	}
	return nil
}
