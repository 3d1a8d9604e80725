package types

import "errors"

var (
	// ErrRandomGeneration means the secure random source could not supply
	// bytes. There is no fallback.
	ErrRandomGeneration = errors.New("secure random generation failed")

	// ErrNetwork covers transport errors, timeouts and non-200 statuses when
	// talking to the directory or a channel.
	ErrNetwork = errors.New("rendezvous network failure")

	// ErrTimeout is wrapped alongside ErrNetwork when a request deadline expired.
	ErrTimeout = errors.New("rendezvous request timed out")

	// ErrEncoding covers malformed key sizes and oversized plaintext.
	ErrEncoding = errors.New("payload encoding failure")
)
