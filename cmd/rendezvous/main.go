package main

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type channel struct {
	data    []byte
	written bool
	expires time.Time
}

type server struct {
	mu       sync.Mutex
	channels map[string]*channel
	ttl      time.Duration
	maxBody  int64
	now      func() time.Time
	log      *slog.Logger
}

func newServer(ttl time.Duration, maxBody int64, logger *slog.Logger) *server {
	return &server{
		channels: make(map[string]*channel),
		ttl:      ttl,
		maxBody:  maxBody,
		now:      time.Now,
		log:      logger,
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /new", s.handleNew)
	mux.HandleFunc("POST /{token}", s.handleWrite)
	mux.HandleFunc("GET /{token}", s.handleRead)
	return mux
}

func (s *server) handleNew(w http.ResponseWriter, r *http.Request) {
	token := uuid.New().String()
	s.mu.Lock()
	s.sweep()
	s.channels[token] = &channel{expires: s.now().Add(s.ttl)}
	s.mu.Unlock()

	s.log.Info("channel created", "token", token, "remote", r.RemoteAddr)
	w.Header().Set("Content-Type", "text/plain")
	_, _ = io.WriteString(w, token)
}

func (s *server) handleWrite(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	ch := s.lookup(token)
	if ch != nil {
		ch.data = body
		ch.written = true
	}
	s.mu.Unlock()

	if ch == nil {
		http.NotFound(w, r)
		return
	}
	s.log.Info("channel written", "token", token, "bytes", len(body))
	w.WriteHeader(http.StatusOK)
}

func (s *server) handleRead(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	s.mu.Lock()
	ch := s.lookup(token)
	var data []byte
	if ch != nil && ch.written {
		data = ch.data
	}
	s.mu.Unlock()

	if data == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(data)
}

// lookup returns the live channel for token. Callers hold s.mu.
func (s *server) lookup(token string) *channel {
	ch, ok := s.channels[token]
	if !ok {
		return nil
	}
	if s.now().After(ch.expires) {
		delete(s.channels, token)
		return nil
	}
	return ch
}

// sweep drops expired channels. Callers hold s.mu.
func (s *server) sweep() {
	now := s.now()
	for token, ch := range s.channels {
		if now.After(ch.expires) {
			delete(s.channels, token)
		}
	}
}

func main() {
	var (
		addr    string
		ttl     time.Duration
		maxBody int64
	)
	cmd := &cobra.Command{
		Use:   "rendezvous",
		Short: "In-memory rendezvous directory for local pairing tests",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			s := newServer(ttl, maxBody, logger)
			logger.Info("rendezvous listening", "addr", addr)
			return http.ListenAndServe(addr, s.routes())
		},
	}
	cmd.Flags().StringVar(&addr, "listen", ":8080", "listen address")
	cmd.Flags().DurationVar(&ttl, "ttl", 5*time.Minute, "channel lifetime")
	cmd.Flags().Int64Var(&maxBody, "max-body", 4<<20, "largest accepted write in bytes")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
