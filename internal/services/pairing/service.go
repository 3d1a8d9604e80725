package pairing

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"proxylens/internal/crypto"
	"proxylens/internal/domain"
	"proxylens/internal/protocol/envelope"
	"proxylens/internal/protocol/pairingcode"
)

// ErrSessionUsed is returned when Run is called on a session that already ran.
var ErrSessionUsed = errors.New("pairing session already used; start a new one")

// Result is what a completed session produced.
type Result struct {
	Handle   domain.ChannelHandle
	Code     domain.PairingCode
	Envelope domain.EncryptedEnvelope
}

// Session is a single pairing attempt.
//
// Its key material lives only for the duration of Run and is wiped before Run
// returns, whatever the outcome.
type Session struct {
	id       domain.SessionID
	channels domain.ChannelClient
	renderer domain.Renderer
	log      *slog.Logger

	newKeys func() (domain.KeyMaterial, error)

	mu      sync.Mutex
	started bool
	state   domain.SessionState
	err     error
}

// New constructs a Session that talks to channels and shows its code on
// renderer.
func New(channels domain.ChannelClient, renderer domain.Renderer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	id := domain.SessionID(uuid.New().String())
	return &Session{
		id:       id,
		channels: channels,
		renderer: renderer,
		log:      logger.With("session", id.String()),
		newKeys:  crypto.NewKeyMaterial,
		state:    domain.StateInitializing,
	}
}

// ID returns the session identifier used in logs.
func (s *Session) ID() domain.SessionID { return s.id }

// State returns the current lifecycle state.
func (s *Session) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the error that moved the session to failed, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Run performs the whole exchange for one captured login form.
//
// Steps:
//  1. Generate key material and commit to the form action.
//  2. Build the encrypted envelope. Nothing touches the network before this
//     succeeds.
//  3. Acquire a channel. On failure no code is ever shown.
//  4. Format the pairing code and hand it to the renderer.
//  5. Write the envelope. On failure the renderer is told the code is stale.
func (s *Session) Run(ctx context.Context, capture domain.Capture) (Result, error) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return Result{}, ErrSessionUsed
	}
	s.started = true
	s.mu.Unlock()

	keys, err := s.newKeys()
	if err != nil {
		return Result{}, s.fail(err)
	}
	defer keys.Wipe()

	commitment := crypto.Commit(capture.FormAction)
	env, err := envelope.Build(domain.SecurePayload{
		ServiceAddress:    capture.DocumentURL,
		ServiceCommitment: commitment,
		LoginForm:         capture.FormMarkup,
		Cookies:           capture.Cookies,
	}, keys)
	if err != nil {
		return Result{}, s.fail(err)
	}
	s.log.Debug("envelope built",
		"commitment", commitment.String(),
		"envelope", crypto.Fingerprint(env.MAC),
		"ciphertext_bytes", len(env.Ciphertext))

	s.transition(domain.StateAwaitingChannel)
	handle, err := s.channels.AcquireChannel(ctx)
	if err != nil {
		return Result{}, s.fail(err)
	}
	s.log.Info("channel acquired", "channel", handle.Address)

	code, err := pairingcode.Format(handle, keys.EncryptionKey, keys.AuthenticationKey)
	if err != nil {
		return Result{}, s.fail(err)
	}
	if err := s.renderer.Show(code); err != nil {
		return Result{}, s.fail(err)
	}

	s.transition(domain.StateWriting)
	if err := s.channels.WriteEnvelope(ctx, handle, env); err != nil {
		s.renderer.Invalidate(err)
		return Result{}, s.fail(err)
	}

	s.transition(domain.StateCompleted)
	return Result{Handle: handle, Code: code, Envelope: env}, nil
}

func (s *Session) transition(to domain.SessionState) {
	s.mu.Lock()
	from := s.state
	s.state = to
	s.mu.Unlock()
	s.log.Info("session state changed", "from", from.String(), "to", to.String())
}

func (s *Session) fail(err error) error {
	s.mu.Lock()
	from := s.state
	s.state = domain.StateFailed
	s.err = err
	s.mu.Unlock()
	s.log.Error("pairing session failed", "state", from.String(), "err", err)
	return err
}
