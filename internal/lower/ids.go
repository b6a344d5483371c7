package lower

import (
	"strings"

	"github.com/pborman/uuid"
)

// Identifier lengths, without the leading underscore.
const (
	PlaceholderIDLen = 12
	CollectorIDLen   = 16
)

// IDGen invents identifiers for generated code and placeholder elements.
// An id is "_" followed by n alphanumerics, valid both as a JavaScript
// identifier and as an HTML id.
type IDGen interface {
	NewID(n int) string
}

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

type randomIDs struct{}

// RandomIDs draws ids from random UUIDs.
func RandomIDs() IDGen { return randomIDs{} }

func (randomIDs) NewID(n int) string {
	var sb strings.Builder
	sb.Grow(n + 1)
	sb.WriteByte('_')
	for sb.Len() <= n {
		for _, b := range uuid.NewRandom() {
			if sb.Len() > n {
				break
			}
			sb.WriteByte(idAlphabet[int(b)%len(idAlphabet)])
		}
	}
	return sb.String()
}
