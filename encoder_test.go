package securesession

import (
	"bytes"
	"testing"
	"time"
)

func TestEncodeDecodeTransportRoundTrip(t *testing.T) {
	session := NewSession()
	session.Insert("lol", []byte("wat"))
	session.Insert("empty", nil)
	session.Insert("big", bytes.Repeat([]byte{0xAB}, 1024))

	expires := time.Date(2026, 8, 23, 12, 0, 0, 987654321, time.UTC)

	cases := []struct {
		name      string
		transport *SessionTransport
	}{
		{"no expiry", &SessionTransport{Session: session}},
		{"with expiry", &SessionTransport{Expires: &expires, Session: session}},
		{"empty session", &SessionTransport{Session: NewSession()}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := encodeTransport(tc.transport)
			if err != nil {
				t.Fatalf("encodeTransport error: %v", err)
			}

			decoded, err := decodeTransport(encoded)
			if err != nil {
				t.Fatalf("decodeTransport error: %v", err)
			}

			if !decoded.Equal(tc.transport) {
				t.Fatalf("round trip mismatch: got %+v, want %+v", decoded, tc.transport)
			}
		})
	}
}

func TestDecodeTransportCanonical(t *testing.T) {
	session := NewSession()
	session.Insert("b", []byte("2"))
	session.Insert("a", []byte("1"))
	transport := &SessionTransport{Session: session}

	first, err := encodeTransport(transport)
	if err != nil {
		t.Fatalf("encodeTransport error: %v", err)
	}
	second, err := encodeTransport(transport)
	if err != nil {
		t.Fatalf("encodeTransport error: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Fatal("expected identical transports to encode identically")
	}
}

func TestDecodeTransportRejectsUnknownVersion(t *testing.T) {
	encoded, err := encodeTransport(&SessionTransport{Session: NewSession()})
	if err != nil {
		t.Fatalf("encodeTransport error: %v", err)
	}

	encoded[0] = 99
	if _, err := decodeTransport(encoded); err == nil {
		t.Fatal("expected unknown version to be rejected")
	}
}

func TestDecodeTransportRejectsUnknownFlags(t *testing.T) {
	encoded, err := encodeTransport(&SessionTransport{Session: NewSession()})
	if err != nil {
		t.Fatalf("encodeTransport error: %v", err)
	}

	encoded[1] |= 0x80
	if _, err := decodeTransport(encoded); err == nil {
		t.Fatal("expected unknown flags to be rejected")
	}
}

func TestDecodeTransportRejectsTrailingBytes(t *testing.T) {
	session := NewSession()
	session.Insert("lol", []byte("wat"))

	encoded, err := encodeTransport(&SessionTransport{Session: session})
	if err != nil {
		t.Fatalf("encodeTransport error: %v", err)
	}

	if _, err := decodeTransport(append(encoded, 0x00)); err == nil {
		t.Fatal("expected trailing bytes to be rejected")
	}
}

func TestDecodeTransportRejectsTruncation(t *testing.T) {
	session := NewSession()
	session.Insert("lol", []byte("wat"))
	expires := time.Now().UTC()

	encoded, err := encodeTransport(&SessionTransport{Expires: &expires, Session: session})
	if err != nil {
		t.Fatalf("encodeTransport error: %v", err)
	}

	for i := 0; i < len(encoded); i++ {
		if _, err := decodeTransport(encoded[:i]); err == nil {
			t.Fatalf("expected truncation at %d bytes to be rejected", i)
		}
	}
}

func TestDecodeTransportRejectsOversizedValueLength(t *testing.T) {
	// version, no flags, one entry, key "k", claimed value length far past
	// the end of the payload.
	payload := []byte{
		payloadVersion, 0x00,
		0x00, 0x00, 0x00, 0x01, // count = 1
		0x00, 0x01, 'k', // key
		0xFF, 0xFF, 0xFF, 0xFF, // value length = 2^32-1
	}

	if _, err := decodeTransport(payload); err == nil {
		t.Fatal("expected oversized value length to be rejected")
	}
}
