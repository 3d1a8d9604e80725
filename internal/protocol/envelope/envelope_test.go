package envelope_test

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"proxylens/internal/crypto"
	"proxylens/internal/domain"
	"proxylens/internal/protocol/envelope"
)

func seq(start byte, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = start + byte(i)
	}
	return b
}

// vectorKeys returns the fixed test vector: encKey 00..0f, IV 10..2f,
// macKey 30..4f.
func vectorKeys() domain.KeyMaterial {
	return domain.KeyMaterial{
		EncryptionKey:     seq(0x00, domain.EncryptionKeySize),
		IV:                seq(0x10, domain.IVSize),
		AuthenticationKey: seq(0x30, domain.AuthenticationKeySize),
	}
}

func vectorPayload() domain.SecurePayload {
	return domain.SecurePayload{
		ServiceAddress:    "https://a",
		ServiceCommitment: "abc",
		LoginForm:         "<form></form>",
		Cookies:           "session=1",
	}
}

// open verifies and decrypts env the way the receiving peer does.
func open(t *testing.T, keys domain.KeyMaterial, env domain.EncryptedEnvelope) ([]byte, bool) {
	t.Helper()
	if !hmac.Equal(env.MAC, envelope.Tag(keys.AuthenticationKey, env.IV, env.Ciphertext)) {
		return nil, false
	}
	block, err := aes.NewCipher(keys.EncryptionKey)
	if err != nil {
		t.Fatalf("aes.NewCipher: %v", err)
	}
	out := make([]byte, len(env.Ciphertext))
	cipher.NewCBCDecrypter(block, env.IV[:aes.BlockSize]).CryptBlocks(out, env.Ciphertext)
	pad := int(out[len(out)-1])
	if pad == 0 || pad > aes.BlockSize {
		t.Fatalf("bad padding byte %d", pad)
	}
	return out[:len(out)-pad], true
}

func TestMarshal_FieldOrderAndNoHTMLEscape(t *testing.T) {
	got, err := envelope.Marshal(vectorPayload())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	const want = `{"sa":"https://a","sc":"abc","lf":"<form></form>","cs":"session=1"}`
	if string(got) != want {
		t.Fatalf("got %s\nwant %s", got, want)
	}
}

func TestBuild_GoldenVector(t *testing.T) {
	env, err := envelope.Build(vectorPayload(), vectorKeys())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	b, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	const want = `{"iv":"EBESExQVFhcYGRobHB0eHyAhIiMkJSYnKCkqKywtLi8=",` +
		`"ciphertext":"qMISwLlENpSyppYRVhExb8AqFaspvYvSa2GQA4YQv9B3qQ5l5+r/5YHQPsiQispLN/IElh/t/mG0TcTwFkP/+JoZgWa+cOEyBHmTsZj8czY=",` +
		`"mac":"kYLl7XslHuYZnTBt8MzECKLTweX4nCj+ZZ6ppLc2cbg="}`
	if string(b) != want {
		t.Fatalf("got  %s\nwant %s", b, want)
	}
}

func TestBuild_RoundTrip(t *testing.T) {
	keys, err := crypto.NewKeyMaterial()
	if err != nil {
		t.Fatalf("NewKeyMaterial: %v", err)
	}
	p := domain.SecurePayload{
		ServiceAddress:    "https://bank.example/login?next=%2F&lang=en",
		ServiceCommitment: crypto.Commit("https://bank.example/session"),
		LoginForm:         "<form action=\"/session\">\n   <input name=\"user\">\n</form>",
		Cookies:           "a=1; b=2",
	}

	env, err := envelope.Build(p, keys)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	pt, ok := open(t, keys, env)
	if !ok {
		t.Fatal("MAC verification failed on untouched envelope")
	}

	p.LoginForm = envelope.Minify(p.LoginForm)
	want, err := envelope.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(pt, want) {
		t.Fatalf("round trip mismatch:\n got %s\nwant %s", pt, want)
	}
}

func TestBuild_TamperDetected(t *testing.T) {
	keys := vectorKeys()
	env, err := envelope.Build(vectorPayload(), keys)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	flip := func(field []byte) {
		for i := range field {
			for bit := 0; bit < 8; bit++ {
				field[i] ^= 1 << bit
				if _, ok := open(t, keys, env); ok {
					t.Fatalf("flipping byte %d bit %d went undetected", i, bit)
				}
				field[i] ^= 1 << bit
			}
		}
	}
	flip(env.Ciphertext)
	flip(env.IV)

	if _, ok := open(t, keys, env); !ok {
		t.Fatal("restored envelope should verify")
	}
}

func TestBuild_DoesNotAliasKeyIV(t *testing.T) {
	keys := vectorKeys()
	env, err := envelope.Build(vectorPayload(), keys)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	keys.Wipe()
	if bytes.Equal(env.IV, make([]byte, domain.IVSize)) {
		t.Fatal("envelope IV was wiped together with the key material")
	}
}

func TestBuild_BadKeySizes(t *testing.T) {
	cases := map[string]func(*domain.KeyMaterial){
		"aes-256 key":    func(k *domain.KeyMaterial) { k.EncryptionKey = seq(0, 32) },
		"block-size iv":  func(k *domain.KeyMaterial) { k.IV = seq(0, 16) },
		"short mac key":  func(k *domain.KeyMaterial) { k.AuthenticationKey = seq(0, 16) },
		"missing enckey": func(k *domain.KeyMaterial) { k.EncryptionKey = nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			keys := vectorKeys()
			mutate(&keys)
			if _, err := envelope.Build(vectorPayload(), keys); !errors.Is(err, domain.ErrEncoding) {
				t.Fatalf("want ErrEncoding, got %v", err)
			}
		})
	}
}

func TestBuild_OversizedPlaintext(t *testing.T) {
	p := vectorPayload()
	p.LoginForm = strings.Repeat("a", envelope.MaxPlaintextSize)
	if _, err := envelope.Build(p, vectorKeys()); !errors.Is(err, domain.ErrEncoding) {
		t.Fatalf("want ErrEncoding, got %v", err)
	}
}

func TestMinify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"<form></form>", "<form></form>"},
		{"<form>\n    <input>\n\t<b>  x</b>\n</form>", "<form> <input> <b> x</b> </form>"},
		{"  lead\r\n  trail  ", " lead trail "},
		{"<b>a\u00a0\u00a0b</b>\n\v\u3000<i>", "<b>a b</b> <i>"},
	}
	for _, c := range cases {
		if got := envelope.Minify(c.in); got != c.want {
			t.Fatalf("Minify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMarshal_RejectsInvalidUTF8(t *testing.T) {
	p := vectorPayload()
	p.Cookies = "sid=\xff"
	if _, err := envelope.Marshal(p); !errors.Is(err, domain.ErrEncoding) {
		t.Fatalf("Marshal: want ErrEncoding, got %v", err)
	}
	p = vectorPayload()
	p.LoginForm = "<form>\xc3</form>"
	if _, err := envelope.Build(p, vectorKeys()); !errors.Is(err, domain.ErrEncoding) {
		t.Fatalf("Build: want ErrEncoding, got %v", err)
	}
}

func TestMarshal_LineSeparatorsRoundTrip(t *testing.T) {
	p := vectorPayload()
	p.Cookies = "a\u2028b\u2029c"
	b, err := envelope.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back domain.SecurePayload
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != p {
		t.Fatalf("round trip changed payload: %+v", back)
	}
}

func TestEnvelope_FieldsAreStandardBase64(t *testing.T) {
	env, err := envelope.Build(vectorPayload(), vectorKeys())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b, _ := json.Marshal(env)
	var wire map[string]string
	if err := json.Unmarshal(b, &wire); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range []string{"iv", "ciphertext", "mac"} {
		if _, err := base64.StdEncoding.DecodeString(wire[k]); err != nil {
			t.Fatalf("%s is not standard base64: %v", k, err)
		}
	}
	if len(wire) != 3 {
		t.Fatalf("unexpected keys in %v", wire)
	}
}
