package securesession

import "time"

// SessionTransport is the envelope that managers encrypt and decrypt: an
// optional expiry timestamp paired with the session data.
//
// Expires is advisory metadata interpreted by the caller. Managers carry it
// through serialization unchanged but never inspect or enforce it.
type SessionTransport struct {
	Expires *time.Time
	Session *Session
}

// Equal reports structural equality of two transports. Expiry timestamps
// compare with time.Time.Equal, so a UTC-normalized round trip of the same
// instant still matches.
func (t *SessionTransport) Equal(other *SessionTransport) bool {
	if t == nil || other == nil {
		return t == other
	}
	if (t.Expires == nil) != (other.Expires == nil) {
		return false
	}
	if t.Expires != nil && !t.Expires.Equal(*other.Expires) {
		return false
	}
	return t.Session.Equal(other.Session)
}
