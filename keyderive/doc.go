// Package keyderive turns a low-entropy password into a fixed-size symmetric
// key using scrypt, a deliberately slow, memory-hard function.
//
// Derivation is deterministic: the same password, salt, and parameters always
// produce the same key, so a key can be recovered from the password alone.
// Rotating a key therefore means changing the password or the salt.
//
// # Architecture boundaries
//
// This package owns key derivation only. Managers in the root package call
// it once at construction; nothing here touches sessions or the wire format.
//
// # What this package must NOT do
//
//   - Import any other securesession package.
//   - Log or return password or key material in error values.
//   - Cache derived keys.
package keyderive
