package envelope

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"regexp"
	"unicode/utf8"

	"proxylens/internal/domain"
)

// MaxPlaintextSize bounds the serialised payload. Larger payloads are
// rejected rather than truncated.
const MaxPlaintextSize = 1 << 20

// space matches what a JavaScript regexp treats as \s: ASCII whitespace,
// vertical tab, Unicode space separators (including U+00A0), line and
// paragraph separators and the BOM.
const space = `[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

var (
	newlineIndent = regexp.MustCompile(`\n` + space + `+`)
	whitespaceRun = regexp.MustCompile(space + `+`)
)

// Minify strips whitespace following newlines and collapses every remaining
// whitespace run to a single space.
func Minify(html string) string {
	html = newlineIndent.ReplaceAllString(html, "\n")
	return whitespaceRun.ReplaceAllString(html, " ")
}

// Marshal serialises p as compact JSON in field order without escaping
// HTML characters. Fields must be valid UTF-8. The output equals a browser's
// JSON.stringify except that U+2028 and U+2029 are written as \u escapes,
// which any JSON parser reads back to the same string.
func Marshal(p domain.SecurePayload) ([]byte, error) {
	for name, v := range map[string]string{
		"sa": p.ServiceAddress,
		"sc": string(p.ServiceCommitment),
		"lf": p.LoginForm,
		"cs": p.Cookies,
	} {
		if !utf8.ValidString(v) {
			return nil, fmt.Errorf("%w: field %s is not valid UTF-8", domain.ErrEncoding, name)
		}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEncoding, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Build canonicalises, serialises, encrypts and authenticates p.
//
// The returned envelope owns copies of its byte slices; wiping keys
// afterwards does not affect it.
func Build(p domain.SecurePayload, keys domain.KeyMaterial) (domain.EncryptedEnvelope, error) {
	if err := checkKeys(keys); err != nil {
		return domain.EncryptedEnvelope{}, err
	}

	p.LoginForm = Minify(p.LoginForm)
	plaintext, err := Marshal(p)
	if err != nil {
		return domain.EncryptedEnvelope{}, err
	}
	if len(plaintext) > MaxPlaintextSize {
		return domain.EncryptedEnvelope{}, fmt.Errorf("%w: plaintext is %d bytes, limit %d",
			domain.ErrEncoding, len(plaintext), MaxPlaintextSize)
	}

	ciphertext, err := encryptCBC(keys.EncryptionKey, keys.IV[:aes.BlockSize], plaintext)
	if err != nil {
		return domain.EncryptedEnvelope{}, err
	}

	iv := append([]byte(nil), keys.IV...)
	return domain.EncryptedEnvelope{
		IV:         iv,
		Ciphertext: ciphertext,
		MAC:        Tag(keys.AuthenticationKey, iv, ciphertext),
	}, nil
}

// Tag computes HMAC-SHA256(macKey, iv || ciphertext).
func Tag(macKey, iv, ciphertext []byte) []byte {
	m := hmac.New(sha256.New, macKey)
	m.Write(iv)
	m.Write(ciphertext)
	return m.Sum(nil)
}

func checkKeys(k domain.KeyMaterial) error {
	switch {
	case len(k.EncryptionKey) != domain.EncryptionKeySize:
		return fmt.Errorf("%w: encryption key is %d bytes, want %d",
			domain.ErrEncoding, len(k.EncryptionKey), domain.EncryptionKeySize)
	case len(k.IV) != domain.IVSize:
		return fmt.Errorf("%w: iv is %d bytes, want %d",
			domain.ErrEncoding, len(k.IV), domain.IVSize)
	case len(k.AuthenticationKey) != domain.AuthenticationKeySize:
		return fmt.Errorf("%w: authentication key is %d bytes, want %d",
			domain.ErrEncoding, len(k.AuthenticationKey), domain.AuthenticationKeySize)
	}
	return nil
}

func encryptCBC(key, iv, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEncoding, err)
	}
	padded := pkcs7Pad(plaintext, block.BlockSize())
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)
	return out, nil
}

// pkcs7Pad always adds between 1 and size bytes of padding.
func pkcs7Pad(b []byte, size int) []byte {
	n := size - len(b)%size
	out := make([]byte, len(b), len(b)+n)
	copy(out, b)
	return append(out, bytes.Repeat([]byte{byte(n)}, n)...)
}
