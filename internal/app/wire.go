package app

import (
	"log/slog"
	"net/http"

	"proxylens/internal/domain"
	"proxylens/internal/rendezvous"
	"proxylens/internal/services/pairing"
)

// Wire bundles the clients shared by every pairing session.
type Wire struct {
	Config     Config
	Log        *slog.Logger
	HTTP       *http.Client
	Rendezvous *rendezvous.HTTP
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config, logger *slog.Logger) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	rc := rendezvous.NewHTTP(cfg.DirectoryURL(), httpClient, cfg.Timeout, logger)

	return &Wire{
		Config:     cfg,
		Log:        logger,
		HTTP:       httpClient,
		Rendezvous: rc,
	}, nil
}

// NewSession starts a fresh pairing session displaying its code on r.
func (w *Wire) NewSession(r domain.Renderer) *pairing.Session {
	return pairing.New(w.Rendezvous, r, w.Log)
}
