// Package gameid generates round identifiers: UUIDv7 values encoded as
// 26-character Crockford base32, so IDs sort by creation time.
package gameid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Crockford's base32 alphabet, lowercase
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the length of every generated ID
const Length = 26

// generator produces round IDs. A nil reader uses crypto/rand.
type generator struct {
	rand io.Reader
}

// newGenerator creates a generator that draws its random bits from r
func newGenerator(r io.Reader) *generator {
	return &generator{rand: r}
}

// Generate creates a new round ID from crypto/rand
func Generate() string {
	return newGenerator(nil).Generate()
}

// Generate creates a new round ID
func (g *generator) Generate() string {
	var (
		id  uuid.UUID
		err error
	)
	if g.rand != nil {
		id, err = uuid.NewV7FromReader(g.rand)
	} else {
		id, err = uuid.NewV7()
	}
	if err != nil {
		panic("gameid: generating uuid: " + err.Error())
	}
	return encodeBase32(id)
}

// encodeBase32 packs the 128 bits of data into 26 five-bit groups, high bits
// first. The final group is padded with two zero bits.
func encodeBase32(data [16]byte) string {
	result := make([]byte, Length)
	for i := range Length {
		bitOffset := i * 5
		byteIndex := bitOffset / 8
		bitIndex := bitOffset % 8

		var value uint8
		if bitIndex <= 3 {
			value = (data[byteIndex] >> (3 - bitIndex)) & 0x1f
		} else {
			value = (data[byteIndex] << (bitIndex - 3)) & 0x1f
			if byteIndex+1 < len(data) {
				value |= data[byteIndex+1] >> (11 - bitIndex)
			}
		}
		result[i] = alphabet[value]
	}
	return string(result)
}

// validate checks id looks like a generated round ID
func validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("round ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("round ID first character must be 0-7, got %c", id[0])
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
