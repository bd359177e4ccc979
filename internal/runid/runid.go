// Package runid mints identifiers for runs and for the dead and wild cards a
// run adds to its deck.
package runid

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RunIDLength is the length of a run id.
const RunIDLength = 26

// tokenLength is the number of base32 characters in a card token.
const tokenLength = 8

// RandSource is the slice of a random source the generator needs.
// *rand.Rand from math/rand/v2 satisfies it.
type RandSource interface {
	IntN(n int) int
}

// Generator mints ids from a clock and an optional random source. A nil
// source falls back to crypto/rand.
type Generator struct {
	clock      quartz.Clock
	randSource RandSource
}

// NewGenerator creates a generator. A nil clock means the real clock.
func NewGenerator(clock quartz.Clock, randSource RandSource) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, randSource: randSource}
}

// RunID returns a UUIDv7 encoded as 26 base32 characters. Ids sort by
// creation time.
func (g *Generator) RunID() string {
	var uuid [16]byte

	now := g.clock.Now().UnixMilli()
	for i := 0; i < 6; i++ {
		uuid[i] = byte(now >> (40 - 8*i))
	}
	g.fill(uuid[6:])

	// version 7, variant 10
	uuid[6] = (uuid[6] & 0x0f) | 0x70
	uuid[8] = (uuid[8] & 0x3f) | 0x80

	return encodeBase32(uuid[:], RunIDLength)
}

// DeadCardID returns a fresh id for a dead card, e.g. "dead-4k2m9q0a".
func (g *Generator) DeadCardID() string {
	return "dead-" + g.token()
}

// WildCardID returns a fresh id for a wild card.
func (g *Generator) WildCardID() string {
	return "wild-" + g.token()
}

func (g *Generator) token() string {
	var raw [5]byte
	g.fill(raw[:])
	return encodeBase32(raw[:], tokenLength)
}

func (g *Generator) fill(buf []byte) {
	if g.randSource != nil {
		for i := range buf {
			buf[i] = byte(g.randSource.IntN(256))
		}
		return
	}
	if _, err := rand.Read(buf); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}
}

// encodeBase32 encodes data as n characters, left-padding the bit stream
// with zeros so that n*5 bits are covered.
func encodeBase32(data []byte, n int) string {
	total := len(data) * 8
	pad := n*5 - total
	bit := func(j int) byte {
		j -= pad
		if j < 0 {
			return 0
		}
		return (data[j/8] >> (7 - j%8)) & 1
	}

	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		var v byte
		for k := 0; k < 5; k++ {
			v = v<<1 | bit(i*5+k)
		}
		b.WriteByte(alphabet[v])
	}
	return b.String()
}

// Validate checks if a run id is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != RunIDLength {
		return fmt.Errorf("run ID must be exactly %d characters, got %d", RunIDLength, len(id))
	}
	// Two pad bits keep the first character in 0-7.
	if id[0] > '7' {
		return fmt.Errorf("run ID first character must be 0-7, got %c", id[0])
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
