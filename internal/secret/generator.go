// Package secret generates random alphanumeric secrets.
// All generation draws from crypto/rand through zcrypto.
package secret

import (
	"github.com/zarlcorp/core/pkg/zcrypto"
)

// Alphabet is the set of characters a generated secret is drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultLength is the length used when the caller has no preference.
const DefaultLength = 16

// bytes at or above this bound are rejected so every symbol is equally likely.
const rejectAbove = 256 - 256%len(Alphabet)

// Generator produces random secrets. The zero value is ready to use.
type Generator struct{}

// New creates a generator.
func New() *Generator {
	return &Generator{}
}

// Generate returns a string of exactly length characters drawn uniformly
// from Alphabet. A length of zero or less yields the empty string.
func (g *Generator) Generate(length int) string {
	if length <= 0 {
		return ""
	}

	out := make([]byte, 0, length)
	for len(out) < length {
		// oversample a little so most calls need a single read
		buf := mustRandBytes(length - len(out) + 8)
		for _, b := range buf {
			if int(b) >= rejectAbove {
				continue
			}
			out = append(out, Alphabet[int(b)%len(Alphabet)])
			if len(out) == length {
				break
			}
		}
	}

	return string(out)
}

// mustRandBytes returns n cryptographically random bytes.
func mustRandBytes(n int) []byte {
	b, err := zcrypto.RandBytes(n)
	if err != nil {
		// crypto/rand failure is unrecoverable
		panic("zcrypto: " + err.Error())
	}
	return b
}
