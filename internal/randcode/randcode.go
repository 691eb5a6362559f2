// Package randcode generates the short alphanumeric bearer tokens used for
// registration codes and session ids: 16 characters drawn uniformly from
// [A-Za-z0-9], using a cryptographically strong random source.
package randcode

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

const (
	// Length is the fixed size of every generated code, per the wire schema.
	Length   = 16
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Generate returns a fresh Length-character code drawn uniformly from the
// alphanumeric alphabet, reading from rng (nil selects crypto/rand.Reader).
func Generate(rng io.Reader) (string, error) {
	if rng == nil {
		rng = rand.Reader
	}
	n := big.NewInt(int64(len(alphabet)))
	out := make([]byte, Length)
	for i := range out {
		idx, err := rand.Int(rng, n)
		if err != nil {
			return "", fmt.Errorf("randcode: generate: %w", err)
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}
