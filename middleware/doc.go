// Package middleware carries sessions across HTTP requests in a cookie.
//
// The [Session] middleware deserializes the cookie on the way in, exposes
// the session through the request context, and writes the re-serialized
// cookie on the way out. A missing, tampered, or otherwise invalid cookie is
// never an error: the request simply starts with a fresh empty session.
//
// Browsers cap a cookie at roughly 4096 bytes of name plus value; keep
// session contents small or move bulk data elsewhere.
//
// # What this package must NOT do
//
//   - Interpret the session expiry — it only stamps it from the configured
//     TTL for the caller to read.
//   - Hold any server-side session state.
package middleware
