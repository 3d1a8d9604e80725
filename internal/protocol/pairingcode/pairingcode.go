// Package pairingcode formats the out-of-band bundle a peer scans to find
// the rendezvous channel and the keys protecting it.
package pairingcode

import (
	"bytes"
	"encoding/json"
	"fmt"

	"proxylens/internal/crypto"
	"proxylens/internal/domain"
)

const (
	// Tag marks a proxied-authentication pairing code.
	Tag = "PA"

	CipherDescriptor = "AES/CBC/PKCS7Padding/"
	MACDescriptor    = "HmacSHA256/"
)

// Format bundles the channel address with descriptors embedding the base64
// encryption and authentication keys.
func Format(handle domain.ChannelHandle, encKey, macKey []byte) (domain.PairingCode, error) {
	if handle.Address == "" {
		return domain.PairingCode{}, fmt.Errorf("%w: channel address is empty", domain.ErrEncoding)
	}
	if len(encKey) != domain.EncryptionKeySize {
		return domain.PairingCode{}, fmt.Errorf("%w: encryption key is %d bytes, want %d",
			domain.ErrEncoding, len(encKey), domain.EncryptionKeySize)
	}
	if len(macKey) != domain.AuthenticationKeySize {
		return domain.PairingCode{}, fmt.Errorf("%w: authentication key is %d bytes, want %d",
			domain.ErrEncoding, len(macKey), domain.AuthenticationKeySize)
	}
	return domain.PairingCode{
		Tag:            Tag,
		ChannelAddress: handle.Address,
		EncryptionKey:  CipherDescriptor + crypto.B64(encKey),
		MACKey:         MACDescriptor + crypto.B64(macKey),
	}, nil
}

// Encode renders code as the compact JSON text placed in the scannable image.
func Encode(code domain.PairingCode) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(code); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrEncoding, err)
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}
