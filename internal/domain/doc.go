// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (wire/state) and contracts (interfaces) only.
//
// Every failure surfaced by the pairing flow wraps one of ErrRandomGeneration,
// ErrNetwork or ErrEncoding, so callers classify errors with errors.Is.
package domain
