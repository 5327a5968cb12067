package piemenu

import (
	"strconv"
	"sync/atomic"
)

// Token is the opaque identity of one controller. Tokens are unique within
// the process and compared by value against ActivationState.Owner.
// The zero Token means "no owner".
type Token uint64

// NoToken is the zero Token.
const NoToken Token = 0

var tokenCounter atomic.Uint64

// NewToken mints a fresh, never-zero token.
func NewToken() Token {
	return Token(tokenCounter.Add(1))
}

// String returns the token formatted for logs.
func (t Token) String() string {
	if t == NoToken {
		return "none"
	}
	return "#" + strconv.FormatUint(uint64(t), 10)
}
