package crypto

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"

	"proxylens/internal/domain"
)

// Commit returns the commitment of a destination address: the base64
// SHA-256 of everything before the first '?'.
func Commit(destination string) domain.Commitment {
	prefix, _, _ := strings.Cut(destination, "?")
	sum := sha256.Sum256([]byte(prefix))
	return domain.Commitment(B64(sum[:]))
}

// Fingerprint returns 16 hex chars identifying b in logs without revealing it.
func Fingerprint(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:8])
}

// B64 returns standard padded base64, the encoding used on every wire field.
func B64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }
