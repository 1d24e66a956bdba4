package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/good-yellow-bee/mcp-showcase/internal/newsletter"
)

// SubscribeRequest is the body of POST /newsletter.
type SubscribeRequest struct {
	Email string `json:"email"`
}

func (s *Server) subscribe(w http.ResponseWriter, r *http.Request) {
	if s.deps.Newsletter == nil {
		JSONError(w, ErrNewsletterUnavailable)
		return
	}

	var req SubscribeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		JSONError(w, NewBadRequest("invalid request body"))
		return
	}

	sub, err := s.deps.Newsletter.Subscribe(r.Context(), req.Email, newsletter.SourceAPI)
	if err != nil {
		apiErr, known := fromServiceError(err)
		if !known {
			s.logger.Error("subscribe", "err", err)
		}
		JSONError(w, apiErr)
		return
	}

	Created(w, SubscriberResponse{
		ID:        sub.ID,
		Email:     sub.Email,
		CreatedAt: sub.CreatedAt.Format(time.RFC3339),
	})
}
