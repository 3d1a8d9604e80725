package rendezvous

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"proxylens/internal/domain"
)

// DefaultDirectory is the public rendezvous directory.
const DefaultDirectory = "rendezvous.mypico.org"

// Response size caps. A token is short; a channel may hold a full envelope.
const (
	maxTokenBytes   = 1 << 10
	maxChannelBytes = 4 << 20
)

type HTTP struct {
	Base    string // e.g. https://rendezvous.mypico.org
	HTTP    *http.Client
	Timeout time.Duration // per request; zero means only ctx bounds it
	Log     *slog.Logger
}

// NewHTTP returns a client for the directory at base. A nil client falls back
// to http.DefaultClient and a nil logger to slog.Default().
func NewHTTP(base string, client *http.Client, timeout time.Duration, logger *slog.Logger) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTP{
		Base:    strings.TrimRight(base, "/"),
		HTTP:    client,
		Timeout: timeout,
		Log:     logger,
	}
}

// DirectoryURL joins a scheme and directory host into a base URL.
func DirectoryURL(scheme, host string) string {
	return scheme + "://" + strings.TrimRight(host, "/")
}

var (
	_ domain.ChannelClient = (*HTTP)(nil)
	_ domain.ChannelReader = (*HTTP)(nil)
)

// AcquireChannel asks the directory for a fresh channel.
func (c *HTTP) AcquireChannel(ctx context.Context) (domain.ChannelHandle, error) {
	u := c.Base + "/new"
	c.Log.Info("requesting new rendezvous channel", "directory", c.Base)

	body, err := c.send(ctx, http.MethodGet, u, nil, "", maxTokenBytes)
	if err != nil {
		return domain.ChannelHandle{}, err
	}
	token := strings.TrimSpace(string(body))
	if token == "" {
		return domain.ChannelHandle{}, fmt.Errorf("%w: rendezvous get %s: empty channel token", domain.ErrNetwork, u)
	}
	if url.PathEscape(token) != token {
		return domain.ChannelHandle{}, fmt.Errorf("%w: rendezvous get %s: malformed channel token %q", domain.ErrNetwork, u, token)
	}
	return domain.ChannelHandle{Token: token, Address: c.Base + "/" + token}, nil
}

// WriteEnvelope posts the serialised envelope to the channel. The response
// body is ignored.
func (c *HTTP) WriteEnvelope(ctx context.Context, h domain.ChannelHandle, env domain.EncryptedEnvelope) error {
	b, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrEncoding, err)
	}
	c.Log.Info("writing envelope to channel", "channel", h.Address, "bytes", len(b))
	_, err = c.send(ctx, http.MethodPost, h.Address, b, "application/octet-stream", 0)
	return err
}

// ReadChannel fetches the current contents of the channel.
func (c *HTTP) ReadChannel(ctx context.Context, h domain.ChannelHandle) ([]byte, error) {
	c.Log.Debug("reading channel", "channel", h.Address)
	return c.send(ctx, http.MethodGet, h.Address, nil, "", maxChannelBytes)
}

// send performs one request and returns the body. A body longer than limit
// is an error, never truncated; a zero limit leaves the body unread.
func (c *HTTP) send(ctx context.Context, method, u string, body []byte, contentType string, limit int64) ([]byte, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, fmt.Errorf("%w: rendezvous %s %s: %v", domain.ErrNetwork, strings.ToLower(method), u, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, c.transportError(method, u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: rendezvous %s %s: %s", domain.ErrNetwork, strings.ToLower(method), u, resp.Status)
	}
	if limit == 0 {
		return nil, nil
	}
	out, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, c.transportError(method, u, err)
	}
	if int64(len(out)) > limit {
		return nil, fmt.Errorf("%w: rendezvous %s %s: response exceeds %d bytes",
			domain.ErrNetwork, strings.ToLower(method), u, limit)
	}
	return out, nil
}

func (c *HTTP) transportError(method, u string, err error) error {
	var te interface{ Timeout() bool }
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &te) && te.Timeout()) {
		return fmt.Errorf("%w: %w: rendezvous %s %s", domain.ErrNetwork, domain.ErrTimeout, strings.ToLower(method), u)
	}
	return fmt.Errorf("%w: rendezvous %s %s: %v", domain.ErrNetwork, strings.ToLower(method), u, err)
}
