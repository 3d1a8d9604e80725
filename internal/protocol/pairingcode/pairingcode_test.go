package pairingcode_test

import (
	"errors"
	"strings"
	"testing"

	"proxylens/internal/domain"
	"proxylens/internal/protocol/pairingcode"
)

func seq(start byte, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = start + byte(i)
	}
	return b
}

func TestFormatAndEncode(t *testing.T) {
	h := domain.ChannelHandle{Token: "abc", Address: "https://rendezvous.example/abc"}
	code, err := pairingcode.Format(h, seq(0x00, 16), seq(0x30, 32))
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	s, err := pairingcode.Encode(code)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	const want = `{"t":"PA","ta":"https://rendezvous.example/abc",` +
		`"ek":"AES/CBC/PKCS7Padding/AAECAwQFBgcICQoLDA0ODw==",` +
		`"mk":"HmacSHA256/MDEyMzQ1Njc4OTo7PD0+P0BBQkNERUZHSElKS0xNTk8="}`
	if s != want {
		t.Fatalf("got  %s\nwant %s", s, want)
	}
}

func TestEncode_AddressNotEscaped(t *testing.T) {
	h := domain.ChannelHandle{Address: "https://r.example/c?a=1&b=2"}
	code, err := pairingcode.Format(h, seq(0, 16), seq(0, 32))
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	s, err := pairingcode.Encode(code)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(s, "a=1&b=2") {
		t.Fatalf("address was escaped: %s", s)
	}
}

func TestFormat_Rejects(t *testing.T) {
	h := domain.ChannelHandle{Address: "https://r.example/c"}
	if _, err := pairingcode.Format(domain.ChannelHandle{}, seq(0, 16), seq(0, 32)); !errors.Is(err, domain.ErrEncoding) {
		t.Fatalf("empty address: want ErrEncoding, got %v", err)
	}
	if _, err := pairingcode.Format(h, seq(0, 32), seq(0, 32)); !errors.Is(err, domain.ErrEncoding) {
		t.Fatalf("wrong enc key: want ErrEncoding, got %v", err)
	}
	if _, err := pairingcode.Format(h, seq(0, 16), seq(0, 8)); !errors.Is(err, domain.ErrEncoding) {
		t.Fatalf("wrong mac key: want ErrEncoding, got %v", err)
	}
}
