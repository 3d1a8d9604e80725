package types

import "proxylens/internal/util/memzero"

// Key material sizes in bytes.
const (
	EncryptionKeySize     = 16 // AES-128
	IVSize                = 32 // only the first block is fed to CBC; all of it is MACed
	AuthenticationKeySize = 32 // HMAC-SHA256
)

// KeyMaterial holds the symmetric secrets of a single pairing session.
// It is never persisted.
type KeyMaterial struct {
	EncryptionKey     []byte
	IV                []byte
	AuthenticationKey []byte
}

// Wipe zeroes every secret held by k.
func (k *KeyMaterial) Wipe() {
	memzero.Zero(k.EncryptionKey, k.IV, k.AuthenticationKey)
}
