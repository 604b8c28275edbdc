package securesession

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MrEthical07/securesession/keyderive"
)

func TestJWSRoundTrip(t *testing.T) {
	manager := NewJWSManager(testKey())

	session := NewSession()
	session.Insert("lol", []byte("wat"))
	transport := &SessionTransport{Session: session}

	blob, err := manager.Serialize(transport)
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}

	// Compact JWS: three dot-separated base64url segments.
	if parts := strings.Split(string(blob), "."); len(parts) != 3 {
		t.Fatalf("expected a compact JWS token, got %q", blob)
	}

	parsed, err := manager.Deserialize(blob)
	if err != nil {
		t.Fatalf("Deserialize error: %v", err)
	}
	if !parsed.Equal(transport) {
		t.Fatal("round trip mismatch")
	}

	value, ok := parsed.Session.Get("lol")
	if !ok || !bytes.Equal(value, []byte("wat")) {
		t.Fatalf("Get(lol) = %q, %v; want wat, true", value, ok)
	}
}

func TestJWSIsNotEncrypted(t *testing.T) {
	manager := NewJWSManager(testKey())
	if manager.IsEncrypted() {
		t.Fatal("JWS managers must not report IsEncrypted")
	}
}

func TestJWSTamperDetection(t *testing.T) {
	manager := NewJWSManager(testKey())

	session := NewSession()
	session.Insert("lol", []byte("wat"))

	blob, err := manager.Serialize(&SessionTransport{Session: session})
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}

	// Flip a character in the payload segment.
	tampered := append([]byte(nil), blob...)
	i := bytes.IndexByte(tampered, '.') + 1
	if tampered[i] == 'A' {
		tampered[i] = 'B'
	} else {
		tampered[i] = 'A'
	}

	if _, err := manager.Deserialize(tampered); !errors.Is(err, ErrValidation) {
		t.Fatalf("tampered token: got %v, want ErrValidation", err)
	}
}

func TestJWSWrongKeyRejected(t *testing.T) {
	manager := NewJWSManager(testKey())

	var otherKey [KeySize]byte
	copy(otherKey[:], "76543210765432107654321076543210")
	other := NewJWSManager(otherKey)

	session := NewSession()
	session.Insert("lol", []byte("wat"))

	blob, err := manager.Serialize(&SessionTransport{Session: session})
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}

	if _, err := other.Deserialize(blob); !errors.Is(err, ErrValidation) {
		t.Fatalf("wrong-key decode: got %v, want ErrValidation", err)
	}
}

func TestJWSExpiryIsAdvisory(t *testing.T) {
	manager := NewJWSManager(testKey())

	// An expiry in the past must round-trip: the codec carries it, the
	// caller interprets it.
	expires := time.Now().Add(-24 * time.Hour).UTC()
	session := NewSession()
	session.Insert("lol", []byte("wat"))
	transport := &SessionTransport{Expires: &expires, Session: session}

	blob, err := manager.Serialize(transport)
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}

	parsed, err := manager.Deserialize(blob)
	if err != nil {
		t.Fatalf("Deserialize of expired transport failed: %v", err)
	}
	if parsed.Expires == nil || !parsed.Expires.Equal(expires) {
		t.Fatalf("Expires = %v, want %v", parsed.Expires, expires)
	}
}

func TestJWSFromPasswordDeterministic(t *testing.T) {
	cfg := KeyConfig{Scrypt: keyderive.TestParams()}

	first, err := JWSManagerFromPassword([]byte("hunter2"), cfg)
	if err != nil {
		t.Fatalf("JWSManagerFromPassword error: %v", err)
	}
	second, err := JWSManagerFromPassword([]byte("hunter2"), cfg)
	if err != nil {
		t.Fatalf("JWSManagerFromPassword error: %v", err)
	}

	session := NewSession()
	session.Insert("lol", []byte("wat"))
	transport := &SessionTransport{Session: session}

	blob, err := first.Serialize(transport)
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}
	parsed, err := second.Deserialize(blob)
	if err != nil {
		t.Fatalf("Deserialize error: %v", err)
	}
	if !parsed.Equal(transport) {
		t.Fatal("password-derived managers disagree")
	}
}
