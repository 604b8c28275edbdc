// Package securesession provides authenticated encryption for client-held
// sessions: a mutable key/value [Session] is sealed into an opaque,
// tamper-evident byte blob that can safely be handed to an untrusted client
// (typically as a cookie) and recovered later.
//
// Keys are either supplied directly (32 bytes) or derived from a password
// with scrypt via [AEADManagerFromPassword]; derivation is deliberately slow
// and should be treated as a one-time startup cost.
//
// # Architecture boundaries
//
// securesession is the public surface. It exposes [SessionManager],
// [AEADManager], [JWSManager], [Session], [SessionTransport], and the typed
// errors. Key derivation lives in the keyderive sub-package; the cookie
// plumbing lives in the middleware sub-package. How the blob reaches and
// leaves the client is otherwise the caller's concern.
//
// # What this package must NOT do
//
//   - Interpret or enforce the expiry carried in a [SessionTransport] — it
//     is advisory metadata for the caller.
//   - Store sessions server-side, or perform any I/O beyond reading
//     crypto/rand.
//   - Log or embed keys, passwords, or plaintext in errors or output.
//
// # Concurrency contract
//
// A constructed manager is immutable and safe for concurrent use by multiple
// goroutines without external locking. Serialize and Deserialize are pure
// transforms apart from reading OS entropy.
package securesession
