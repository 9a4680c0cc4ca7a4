package nasc

// Token is an opaque identity handle standing in for an interface binding.
// Two tokens minted from the same description are distinct values — the
// description is for humans, not for equality.
type Token struct {
	description string
}

// process-wide set of every token ever minted, consulted by IsToken. The
// core is single-writer (see package doc), so this is a plain map.
var tokenRegistry = make(map[*Token]struct{})

// CreateToken allocates a fresh, distinguishable Token carrying description
// for error messages and debug output.
func CreateToken(description string) *Token {
	t := &Token{description: description}
	tokenRegistry[t] = struct{}{}
	return t
}

// IsToken reports whether v is a Token minted by CreateToken.
func IsToken(v any) bool {
	t, ok := v.(*Token)
	if !ok {
		return false
	}
	_, exists := tokenRegistry[t]
	return exists
}

// Description returns the human-readable string the token was created with.
func (t *Token) Description() string { return t.description }

// String renders the token for error messages and debug snapshots.
func (t *Token) String() string { return t.description }

// Key is anything that can be used as a registration or resolution key: a
// *Token or a *Constructor. It is a type alias rather than an interface so
// both pointer types can be compared and used directly as Go map keys.
type Key = any

// isValidKey reports whether key is a Token or a Constructor, the two kinds
// of identity the resolution algorithm accepts (spec: InvalidToken for
// anything else).
func isValidKey(key Key) bool {
	if IsToken(key) {
		return true
	}
	_, ok := key.(*Constructor)
	return ok
}

// describeKey renders a Key for error messages and chain rendering.
func describeKey(key Key) string {
	switch k := key.(type) {
	case *Token:
		return k.Description()
	case *Constructor:
		return k.String()
	default:
		return "<invalid key>"
	}
}
