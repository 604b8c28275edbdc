package securesession

import (
	"fmt"

	"github.com/MrEthical07/securesession/keyderive"
)

// KeySize is the size in bytes of the symmetric key every manager holds.
const KeySize = keyderive.KeySize

// SessionManager is the capability shared by every session codec. Concrete
// managers differ in construction (algorithm, key source) but present one
// contract to callers, so an alternative scheme can be swapped in without
// changing caller code.
type SessionManager interface {
	// Serialize converts a transport into an opaque byte blob. It fails
	// with ErrInternal only if secure randomness cannot be obtained.
	Serialize(transport *SessionTransport) ([]byte, error)

	// Deserialize authenticates a blob and recovers the transport. It fails
	// with ErrValidation for structurally invalid or tampered input and
	// with ErrMalformedTransport for an authenticated payload that does not
	// parse. No partial plaintext is ever returned.
	Deserialize(blob []byte) (*SessionTransport, error)

	// IsEncrypted reports whether blobs produced by this manager are
	// encrypted, as opposed to only signed.
	IsEncrypted() bool
}

// Algorithm tags the AEAD construction an [AEADManager] uses. The algorithm
// is selected once at construction; all variants share the same wire format.
type Algorithm uint8

const (
	// ChaCha20Poly1305 is an exported constant selecting the ChaCha20-Poly1305 AEAD.
	ChaCha20Poly1305 Algorithm = iota
	// AES256GCM is an exported constant selecting the AES-256-GCM AEAD.
	AES256GCM
)

func (a Algorithm) String() string {
	switch a {
	case ChaCha20Poly1305:
		return "chacha20poly1305"
	case AES256GCM:
		return "aes256gcm"
	default:
		return fmt.Sprintf("algorithm(%d)", uint8(a))
	}
}

// KeyConfig controls password-based manager construction. The zero value
// selects [keyderive.DefaultSalt] and [keyderive.DefaultParams].
//
// KeyConfig instances are intended to be configured during initialization
// and then treated as immutable.
type KeyConfig struct {
	// Salt overrides the application-wide derivation salt. Changing it
	// changes every derived key.
	Salt []byte
	// Scrypt overrides the cost parameters. Tests should pass
	// keyderive.TestParams().
	Scrypt keyderive.Params
}

func (c KeyConfig) withDefaults() KeyConfig {
	if len(c.Salt) == 0 {
		c.Salt = keyderive.DefaultSalt
	}
	if c.Scrypt == (keyderive.Params{}) {
		c.Scrypt = keyderive.DefaultParams()
	}
	return c
}
