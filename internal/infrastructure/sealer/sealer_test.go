package sealer

import (
	"errors"
	"testing"
)

func TestSealOpen(t *testing.T) {
	s, err := New("secret")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sealed, err := s.Seal("eyJhbGciOi.token")
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if sealed == "eyJhbGciOi.token" {
		t.Fatalf("sealed value must not be the plain text")
	}
	again, _ := s.Seal("eyJhbGciOi.token")
	if again == sealed {
		t.Fatalf("each seal should use a fresh nonce")
	}

	plain, err := s.Open(sealed)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if plain != "eyJhbGciOi.token" {
		t.Fatalf("round trip mismatch: %q", plain)
	}
}

func TestEmptyValues(t *testing.T) {
	s, _ := New("secret")
	if v, err := s.Seal(""); err != nil || v != "" {
		t.Fatalf("Seal(\"\") = %q, %v", v, err)
	}
	if v, err := s.Open(""); err != nil || v != "" {
		t.Fatalf("Open(\"\") = %q, %v", v, err)
	}
	if _, err := New(""); !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("expected ErrEmptySecret, got %v", err)
	}
}

func TestOpenRejects(t *testing.T) {
	a, _ := New("one")
	b, _ := New("two")
	sealed, _ := a.Seal("token")

	if _, err := b.Open(sealed); !errors.Is(err, ErrTampered) {
		t.Fatalf("other key: expected ErrTampered, got %v", err)
	}
	if _, err := a.Open("!!not-base64!!"); !errors.Is(err, ErrMalformed) {
		t.Fatalf("garbage: expected ErrMalformed, got %v", err)
	}
	if _, err := a.Open("c2hvcnQ"); !errors.Is(err, ErrMalformed) {
		t.Fatalf("short: expected ErrMalformed, got %v", err)
	}
}
