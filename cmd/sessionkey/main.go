// Command sessionkey derives a session encryption key from a password.
//
// The password is read from stdin, never from argv, so it cannot leak into
// the process table or shell history. The derived key is printed on stdout.
//
// Derivation with production parameters is deliberately slow; run this once
// and hand the key to the service so it does not pay the scrypt cost on
// every boot.
//
// Usage:
//
//	printf '%s' 'correct-horse' | sessionkey
//	printf '%s' 'correct-horse' | sessionkey -encoding hex -salt my-deployment
package main

import (
	"encoding/base64"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MrEthical07/securesession/keyderive"
)

func main() {
	var (
		salt     = flag.String("salt", "", "override the built-in derivation salt")
		logN     = flag.Int("log-n", 12, "scrypt cost exponent (N = 2^log-n)")
		r        = flag.Int("r", 8, "scrypt block size")
		p        = flag.Int("p", 1, "scrypt parallelism")
		encoding = flag.String("encoding", "base64", "output encoding: base64 or hex")
	)
	flag.Parse()

	if *logN < 1 || *logN > 30 {
		fmt.Fprintln(os.Stderr, "log-n must be between 1 and 30")
		os.Exit(2)
	}

	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read password:", err)
		os.Exit(1)
	}
	password := []byte(strings.TrimRight(string(raw), "\r\n"))
	if len(password) == 0 {
		fmt.Fprintln(os.Stderr, "empty password")
		os.Exit(2)
	}

	saltBytes := keyderive.DefaultSalt
	if *salt != "" {
		saltBytes = []byte(*salt)
	}

	key, err := keyderive.Key(password, saltBytes, keyderive.Params{N: 1 << *logN, R: *r, P: *p})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	switch *encoding {
	case "base64":
		fmt.Println(base64.RawURLEncoding.EncodeToString(key[:]))
	case "hex":
		fmt.Println(hex.EncodeToString(key[:]))
	default:
		fmt.Fprintln(os.Stderr, "unknown encoding:", *encoding)
		os.Exit(2)
	}
}
