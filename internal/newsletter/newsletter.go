// Package newsletter records newsletter signups.
package newsletter

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/good-yellow-bee/mcp-showcase/internal/metrics"
	"github.com/good-yellow-bee/mcp-showcase/internal/models"
	"github.com/good-yellow-bee/mcp-showcase/internal/storage"
)

// Signup sources.
const (
	SourceWeb = "web"
	SourceAPI = "api"
	SourceCLI = "cli"
)

const maxEmailLength = 254

var (
	ErrInvalidEmail      = errors.New("please enter a valid email")
	ErrAlreadySubscribed = errors.New("this email is already subscribed")
)

// Service validates and stores subscriptions.
type Service struct {
	repo   storage.SubscriberRepository
	logger *log.Logger
}

// NewService creates a Service backed by repo.
func NewService(repo storage.SubscriberRepository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{repo: repo, logger: logger.With("component", "newsletter")}
}

// NormalizeEmail trims and lower-cases email and checks it is a bare address.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(email) > maxEmailLength {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return "", ErrInvalidEmail
	}
	at := strings.LastIndexByte(email, '@')
	if at <= 0 || !strings.Contains(email[at+1:], ".") {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// Subscribe stores email as a new subscriber.
func (s *Service) Subscribe(ctx context.Context, email, source string) (*models.Subscriber, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		metrics.NewsletterSignupsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}
	if source == "" {
		source = SourceWeb
	}

	existing, err := s.repo.GetByEmail(ctx, normalized)
	if err != nil {
		metrics.NewsletterSignupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("look up subscriber: %w", err)
	}
	if existing != nil {
		metrics.NewsletterSignupsTotal.WithLabelValues("duplicate").Inc()
		return nil, ErrAlreadySubscribed
	}

	sub := models.NewSubscriber(normalized, source)
	sub.ID = uuid.New().String()

	if err := s.repo.Create(ctx, sub); err != nil {
		// Lost a race with a concurrent signup for the same address.
		if errors.Is(err, storage.ErrConflict) {
			metrics.NewsletterSignupsTotal.WithLabelValues("duplicate").Inc()
			return nil, ErrAlreadySubscribed
		}
		metrics.NewsletterSignupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("store subscriber: %w", err)
	}

	metrics.NewsletterSignupsTotal.WithLabelValues("created").Inc()
	s.logger.Info("new subscriber", "id", sub.ID, "source", source)
	return sub, nil
}

// Count returns the number of subscribers.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// List returns subscribers, newest first.
func (s *Service) List(ctx context.Context) ([]*models.Subscriber, error) {
	return s.repo.List(ctx)
}

// Unsubscribe removes the subscriber with email. Unknown addresses are not an error.
func (s *Service) Unsubscribe(ctx context.Context, email string) error {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return err
	}
	sub, err := s.repo.GetByEmail(ctx, normalized)
	if err != nil {
		return fmt.Errorf("look up subscriber: %w", err)
	}
	if sub == nil {
		return nil
	}
	return s.repo.Delete(ctx, sub.ID)
}
