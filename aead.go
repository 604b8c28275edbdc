package securesession

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/MrEthical07/securesession/keyderive"
)

// Wire format, fixed per blob (offsets in bytes):
//
//	0..8    nonce (8 bytes, random per encryption)
//	8..24   authentication tag (16 bytes)
//	24..N   ciphertext (decrypts to 16 padding bytes + payload)
//
// Anything 40 bytes or shorter cannot hold a nonce, a tag, the padding, and
// a non-empty payload, and is rejected before any decryption is attempted.
const (
	// NonceSize is the number of random nonce bytes at the front of a blob.
	NonceSize = 8
	// TagSize is the size of the authentication tag following the nonce.
	TagSize = 16
	// PaddingSize is the number of random bytes prepended to the payload
	// before sealing. The padding decorrelates the fixed payload prefix
	// from the leading ciphertext bytes and guarantees a minimum plaintext
	// size.
	PaddingSize = 16

	headerSize  = NonceSize + TagSize
	minBlobSize = headerSize + PaddingSize + 1
)

// AEADManager seals sessions with an AEAD cipher, providing confidentiality,
// integrity, and authenticity in one construction.
//
// The 8-byte wire nonce is drawn fresh from crypto/rand for every Serialize
// call and expanded to the cipher's 12-byte nonce with a fixed zero prefix.
// Nonce uniqueness under one key rests entirely on those 64 random bits,
// which bounds safe use of a single key at roughly 2^32 encryptions.
type AEADManager struct {
	algorithm Algorithm
	aead      cipher.AEAD
}

var _ SessionManager = (*AEADManager)(nil)

// NewAEADManager creates a manager from a saved 32-byte key.
func NewAEADManager(algorithm Algorithm, key [KeySize]byte) (*AEADManager, error) {
	aead, err := newAEAD(algorithm, key)
	if err != nil {
		return nil, err
	}
	return &AEADManager{algorithm: algorithm, aead: aead}, nil
}

// AEADManagerFromPassword derives the key from password with scrypt and
// creates a manager. Derivation may take hundreds of milliseconds to seconds
// with production parameters; do it once at startup.
func AEADManagerFromPassword(algorithm Algorithm, password []byte, cfg KeyConfig) (*AEADManager, error) {
	cfg = cfg.withDefaults()
	key, err := keyderive.Key(password, cfg.Salt, cfg.Scrypt)
	if err != nil {
		return nil, err
	}
	return NewAEADManager(algorithm, key)
}

func newAEAD(algorithm Algorithm, key [KeySize]byte) (cipher.AEAD, error) {
	switch algorithm {
	case ChaCha20Poly1305:
		return chacha20poly1305.New(key[:])
	case AES256GCM:
		block, err := aes.NewCipher(key[:])
		if err != nil {
			return nil, err
		}
		return cipher.NewGCM(block)
	default:
		return nil, fmt.Errorf("unsupported algorithm %s", algorithm)
	}
}

// Algorithm returns the AEAD construction this manager was built with.
func (m *AEADManager) Algorithm() Algorithm {
	return m.algorithm
}

// IsEncrypted reports true: AEAD blobs are encrypted as well as signed.
func (m *AEADManager) IsEncrypted() bool {
	return true
}

// Serialize seals the transport into nonce || tag || ciphertext.
func (m *AEADManager) Serialize(transport *SessionTransport) ([]byte, error) {
	payload, err := encodeTransport(transport)
	if err != nil {
		return nil, err
	}

	var nonce [NonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("%w: nonce generation failed", ErrInternal)
	}

	plaintext := make([]byte, PaddingSize+len(payload))
	if _, err := io.ReadFull(rand.Reader, plaintext[:PaddingSize]); err != nil {
		return nil, fmt.Errorf("%w: padding generation failed", ErrInternal)
	}
	copy(plaintext[PaddingSize:], payload)

	// Seal returns ciphertext || tag; the wire format wants the tag first.
	sealed := m.aead.Seal(nil, expandNonce(nonce), plaintext, nil)
	ciphertext, tag := sealed[:len(plaintext)], sealed[len(plaintext):]

	blob := make([]byte, headerSize+len(ciphertext))
	copy(blob[:NonceSize], nonce[:])
	copy(blob[NonceSize:headerSize], tag)
	copy(blob[headerSize:], ciphertext)

	return blob, nil
}

// Deserialize authenticates and decrypts a blob produced by Serialize.
func (m *AEADManager) Deserialize(blob []byte) (*SessionTransport, error) {
	if len(blob) < minBlobSize {
		return nil, fmt.Errorf("%w: blob too short", ErrValidation)
	}

	var nonce [NonceSize]byte
	copy(nonce[:], blob[:NonceSize])
	tag := blob[NonceSize:headerSize]
	ciphertext := blob[headerSize:]

	sealed := make([]byte, 0, len(ciphertext)+TagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := m.aead.Open(nil, expandNonce(nonce), sealed, nil)
	if err != nil {
		// No detail from the cipher: tag mismatch and malformed input are
		// indistinguishable to the caller on purpose.
		return nil, fmt.Errorf("%w: authentication failed", ErrValidation)
	}

	transport, err := decodeTransport(plaintext[PaddingSize:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTransport, err)
	}

	return transport, nil
}

// expandNonce widens the 8-byte wire nonce to the 12-byte nonce both
// supported ciphers take, placing the random bytes in the low positions.
func expandNonce(nonce [NonceSize]byte) []byte {
	full := make([]byte, chacha20poly1305.NonceSize)
	copy(full[chacha20poly1305.NonceSize-NonceSize:], nonce[:])
	return full
}
