package securesession

import (
	"encoding/base64"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrEthical07/securesession/keyderive"
)

// transportClaim carries the base64url-encoded transport payload inside a
// JWS token.
const transportClaim = "st"

// JWSManager signs sessions without encrypting them: the transport payload
// travels base64url-encoded inside an HS256 JWS, readable by anyone but
// modifiable by no one without the key. Use it when session contents are
// not secret and inspectability is wanted; use [AEADManager] otherwise.
//
// When the transport carries an expiry, it is mirrored into the standard
// "exp" claim so intermediaries can read it, but Deserialize never enforces
// it: expiry stays advisory metadata for the caller, exactly as with the
// encrypted managers.
type JWSManager struct {
	key []byte
}

var _ SessionManager = (*JWSManager)(nil)

// NewJWSManager creates a signing-only manager from a saved 32-byte key.
func NewJWSManager(key [KeySize]byte) *JWSManager {
	return &JWSManager{key: append([]byte(nil), key[:]...)}
}

// JWSManagerFromPassword derives the signing key from password with scrypt
// and creates a manager.
func JWSManagerFromPassword(password []byte, cfg KeyConfig) (*JWSManager, error) {
	cfg = cfg.withDefaults()
	key, err := keyderive.Key(password, cfg.Salt, cfg.Scrypt)
	if err != nil {
		return nil, err
	}
	return NewJWSManager(key), nil
}

// IsEncrypted reports false: JWS blobs are signed but readable.
func (m *JWSManager) IsEncrypted() bool {
	return false
}

// Serialize encodes the transport into a signed compact JWS token.
func (m *JWSManager) Serialize(transport *SessionTransport) ([]byte, error) {
	payload, err := encodeTransport(transport)
	if err != nil {
		return nil, err
	}

	claims := jwt.MapClaims{
		transportClaim: base64.RawURLEncoding.EncodeToString(payload),
	}
	if transport.Expires != nil {
		claims["exp"] = jwt.NewNumericDate(*transport.Expires)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
	if err != nil {
		return nil, fmt.Errorf("%w: token signing failed", ErrInternal)
	}

	return []byte(token), nil
}

// Deserialize verifies the token signature and recovers the transport.
func (m *JWSManager) Deserialize(blob []byte) (*SessionTransport, error) {
	// Claim validation is off: the exp claim is a mirror of the advisory
	// transport expiry and must not cause rejection here.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	claims := jwt.MapClaims{}
	if _, err := parser.ParseWithClaims(string(blob), claims, func(*jwt.Token) (interface{}, error) {
		return m.key, nil
	}); err != nil {
		return nil, fmt.Errorf("%w: invalid token", ErrValidation)
	}

	encoded, ok := claims[transportClaim].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing transport claim", ErrValidation)
	}

	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: transport claim is not base64url", ErrMalformedTransport)
	}

	transport, err := decodeTransport(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTransport, err)
	}

	return transport, nil
}
