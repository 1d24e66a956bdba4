package models

import (
	"time"
)

// Subscriber is a newsletter signup.
type Subscriber struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSubscriber creates a Subscriber with an initialized timestamp.
func NewSubscriber(email, source string) *Subscriber {
	return &Subscriber{
		Email:     email,
		Source:    source,
		CreatedAt: time.Now().UTC(),
	}
}
