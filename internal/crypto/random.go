package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"proxylens/internal/domain"
)

// randReader is the secure source; replaced only in tests.
var randReader io.Reader = rand.Reader

// SecretBytes returns n bytes from the operating system's CSPRNG.
//
// A short or failed read is reported as domain.ErrRandomGeneration; there is no
// weaker fallback source.
func SecretBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: invalid length %d", domain.ErrRandomGeneration, n)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(randReader, b); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRandomGeneration, err)
	}
	return b, nil
}

// NewKeyMaterial draws a fresh encryption key, IV and authentication key.
func NewKeyMaterial() (domain.KeyMaterial, error) {
	encKey, err := SecretBytes(domain.EncryptionKeySize)
	if err != nil {
		return domain.KeyMaterial{}, err
	}
	iv, err := SecretBytes(domain.IVSize)
	if err != nil {
		return domain.KeyMaterial{}, err
	}
	macKey, err := SecretBytes(domain.AuthenticationKeySize)
	if err != nil {
		return domain.KeyMaterial{}, err
	}
	return domain.KeyMaterial{
		EncryptionKey:     encKey,
		IV:                iv,
		AuthenticationKey: macKey,
	}, nil
}
