// Package crypto exposes the minimal primitives used by the pairing flow.
//
// Contents
//
//   - Secure random bytes and per-session key material (SecretBytes,
//     NewKeyMaterial)
//   - Destination commitments (Commit)
//   - Short fingerprints for logging (Fingerprint)
//   - Standard base64 encoding (B64)
//
// # Notes
//
// Random failures are fatal: SecretBytes never degrades to a weaker source.
// Callers own the returned secrets and should wipe them once the session ends.
package crypto
