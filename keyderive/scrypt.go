package keyderive

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

// KeySize is the size in bytes of every derived key.
const KeySize = 32

// DefaultSalt is the application-wide derivation salt used when the caller
// does not supply one. It is deliberately fixed (not per-session) so that a
// key can be re-derived from the password alone; deployments that want
// domain separation override it at manager construction.
var DefaultSalt = []byte("securesession-scrypt-salt-v1")

// Params are the scrypt cost parameters.
type Params struct {
	// N is the CPU/memory cost. Must be a power of two greater than one.
	N int
	// R is the block size.
	R int
	// P is the parallelism factor.
	P int
}

// DefaultParams returns the production cost parameters. Deriving a key with
// them takes a deliberately large amount of computation; do it once at
// startup, never per request.
func DefaultParams() Params {
	return Params{N: 1 << 12, R: 8, P: 1}
}

// TestParams returns deliberately cheap parameters for automated tests.
// Never use them outside of tests.
func TestParams() Params {
	return Params{N: 1 << 1, R: 8, P: 1}
}

// Validate reports whether the parameters are usable.
func (p Params) Validate() error {
	if p.N <= 1 || p.N&(p.N-1) != 0 {
		return errors.New("scrypt N must be a power of two greater than one")
	}
	if p.R <= 0 {
		return errors.New("scrypt r must be > 0")
	}
	if p.P <= 0 {
		return errors.New("scrypt p must be > 0")
	}
	if uint64(p.R)*uint64(p.P) >= 1<<30 {
		return errors.New("scrypt r*p must be < 2^30")
	}
	return nil
}

// Key derives a KeySize-byte key from password under salt. The result is
// deterministic for identical inputs.
//
// Invalid parameters or an empty salt are reported as errors. A failure of
// the scrypt primitive after successful validation panics: there is no safe
// degraded behavior for a broken key-derivation primitive.
func Key(password, salt []byte, p Params) ([KeySize]byte, error) {
	var key [KeySize]byte

	if err := p.Validate(); err != nil {
		return key, err
	}
	if len(salt) == 0 {
		return key, errors.New("derivation salt must not be empty")
	}

	derived, err := scrypt.Key(password, salt, p.N, p.R, p.P, KeySize)
	if err != nil {
		panic(fmt.Sprintf("keyderive: scrypt failed: %v", err))
	}

	copy(key[:], derived)
	return key, nil
}
