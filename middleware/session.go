package middleware

import (
	"context"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/MrEthical07/securesession"
)

type sessionContextKey struct{}

// DefaultCookieName is used when Config.CookieName is empty.
const DefaultCookieName = "session"

// Config controls the session cookie. The zero value is usable: cookie name
// "session", path "/", SameSite Lax, HttpOnly, no expiry stamp.
type Config struct {
	CookieName string
	// TTL, when positive, stamps each outgoing transport with
	// Expires = now + TTL and sets the cookie Max-Age to match.
	TTL      time.Duration
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

func (c Config) withDefaults() Config {
	if c.CookieName == "" {
		c.CookieName = DefaultCookieName
	}
	if c.Path == "" {
		c.Path = "/"
	}
	if c.SameSite == 0 {
		c.SameSite = http.SameSiteLaxMode
	}
	return c
}

// FromContext returns the session installed by [Session] for this request.
func FromContext(ctx context.Context) (*securesession.Session, bool) {
	s, ok := ctx.Value(sessionContextKey{}).(*securesession.Session)
	return s, ok
}

// Session returns middleware that loads the session cookie through manager
// and saves it back on the response. Handlers read and mutate the session
// via [FromContext]; the cookie is written just before response headers go
// out, so mutations made at any point during the handler are captured.
func Session(manager securesession.SessionManager, cfg Config) func(http.Handler) http.Handler {
	cfg = cfg.withDefaults()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := loadSession(manager, r, cfg.CookieName)

			sw := &sessionWriter{ResponseWriter: w}
			sw.save = func() {
				writeCookie(w, manager, session, cfg)
			}

			ctx := context.WithValue(r.Context(), sessionContextKey{}, session)
			next.ServeHTTP(sw, r.WithContext(ctx))

			// Handler wrote nothing; headers are still open.
			if !sw.wroteHeader {
				sw.wroteHeader = true
				sw.save()
			}
		})
	}
}

func loadSession(manager securesession.SessionManager, r *http.Request, name string) *securesession.Session {
	cookie, err := r.Cookie(name)
	if err != nil {
		return securesession.NewSession()
	}

	blob, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return securesession.NewSession()
	}

	transport, err := manager.Deserialize(blob)
	if err != nil || transport.Session == nil {
		return securesession.NewSession()
	}

	return transport.Session
}

func writeCookie(w http.ResponseWriter, manager securesession.SessionManager, session *securesession.Session, cfg Config) {
	transport := &securesession.SessionTransport{Session: session}
	if cfg.TTL > 0 {
		expires := time.Now().Add(cfg.TTL).UTC()
		transport.Expires = &expires
	}

	blob, err := manager.Serialize(transport)
	if err != nil {
		// Degraded host entropy; leave the client's existing cookie alone.
		return
	}

	cookie := &http.Cookie{
		Name:     cfg.CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(blob),
		Path:     cfg.Path,
		Domain:   cfg.Domain,
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: cfg.SameSite,
	}
	if cfg.TTL > 0 {
		cookie.MaxAge = int(cfg.TTL / time.Second)
	}

	http.SetCookie(w, cookie)
}

// sessionWriter defers the cookie write until the first header write so the
// handler can keep mutating the session up to that point.
type sessionWriter struct {
	http.ResponseWriter
	save        func()
	wroteHeader bool
}

func (w *sessionWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.save()
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}
