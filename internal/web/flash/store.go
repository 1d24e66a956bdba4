// Package flash keeps one-shot status messages between a form POST and the
// page it redirects to.
package flash

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"sync"
	"time"
)

// CookieName is the cookie carrying the flash ID.
const CookieName = "showcase_flash"

// Kind selects how a message is styled.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Message is a single flash message.
type Message struct {
	Kind      Kind
	Text      string
	ExpiresAt time.Time
}

// Store holds messages in memory until they are read or expire.
type Store struct {
	mu       sync.Mutex
	messages map[string]Message
	ttl      time.Duration
	stop     chan struct{}
	once     sync.Once
}

// NewStore creates a Store whose messages live for ttl.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		messages: make(map[string]Message),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go s.cleanup()
	return s
}

// Put stores a message and returns its ID.
func (s *Store) Put(kind Kind, text string) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.messages[id] = Message{Kind: kind, Text: text, ExpiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()

	return id, nil
}

// Pop returns and forgets the message stored under id.
func (s *Store) Pop(id string) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.messages[id]
	if !ok {
		return Message{}, false
	}
	delete(s.messages, id)
	if time.Now().After(msg.ExpiresAt) {
		return Message{}, false
	}
	return msg, true
}

// Len returns the number of pending messages.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Close stops the cleanup goroutine.
func (s *Store) Close() {
	s.once.Do(func() { close(s.stop) })
}

// Set stores a message and points the client at it with a cookie.
func (s *Store) Set(w http.ResponseWriter, secure bool, kind Kind, text string) error {
	id, err := s.Put(kind, text)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Take reads the message referenced by the request's cookie, if any, and
// clears the cookie.
func (s *Store) Take(w http.ResponseWriter, r *http.Request) (Message, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return Message{}, false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s.Pop(cookie.Value)
}

func (s *Store) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.expire(now)
		}
	}
}

func (s *Store) expire(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, msg := range s.messages {
		if now.After(msg.ExpiresAt) {
			delete(s.messages, id)
		}
	}
}

func generateID() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
