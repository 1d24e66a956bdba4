// Package web assembles the server-rendered showcase site.
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/good-yellow-bee/mcp-showcase/internal/web/flash"
	"github.com/good-yellow-bee/mcp-showcase/internal/web/handlers"
)

//go:embed static
var staticFS embed.FS

// DefaultFlashTTL bounds how long an unread flash message is kept.
const DefaultFlashTTL = 5 * time.Minute

type Server struct {
	handler          *handlers.Handler
	flash            *flash.Store
	csrfKey          []byte
	useSecureCookies bool
}

// NewServer builds the site. deps.Flash is created when nil; the caller owns
// closing it through Close.
func NewServer(deps handlers.Deps, csrfKey string) (*Server, error) {
	if len(csrfKey) != 32 {
		return nil, fmt.Errorf("csrf key must be 32 bytes, got %d", len(csrfKey))
	}
	if deps.Catalog == nil || deps.Blog == nil {
		return nil, fmt.Errorf("catalog and blog are required")
	}
	if deps.Flash == nil {
		deps.Flash = flash.NewStore(DefaultFlashTTL)
	}
	return &Server{
		handler:          handlers.NewHandler(deps),
		flash:            deps.Flash,
		csrfKey:          []byte(csrfKey),
		useSecureCookies: deps.SecureCookies,
	}, nil
}

func (s *Server) StaticFS() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// Unrecoverable init error - server cannot function without static assets
		panic(fmt.Sprintf("failed to create static FS: %v", err))
	}
	fileServer := http.FileServer(http.FS(sub))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=86400")
		fileServer.ServeHTTP(w, r)
	})
}

func (s *Server) Flash() *flash.Store {
	return s.flash
}

func (s *Server) Handler() *handlers.Handler {
	return s.handler
}

func (s *Server) CSRFKey() []byte {
	return s.csrfKey
}

// Close stops the flash store's cleanup loop.
func (s *Server) Close() {
	s.flash.Close()
}
