package cpu

// Flags is the condition register set by CMP.
type Flags uint8

const (
	FLAG_EQUAL   = Flags(1 << 0) // E
	FLAG_GREATER = Flags(1 << 1) // G
	FLAG_LESS    = Flags(1 << 2) // L
	FLAG_MASK    = FLAG_EQUAL | FLAG_GREATER | FLAG_LESS
)

// Equal returns true if the last comparison found equality.
func (fl Flags) Equal() bool {
	return (fl & FLAG_EQUAL) != 0
}

// Greater returns true if the last comparison found a > b.
func (fl Flags) Greater() bool {
	return (fl & FLAG_GREATER) != 0
}

// Less returns true if the last comparison found a < b.
func (fl Flags) Less() bool {
	return (fl & FLAG_LESS) != 0
}

// String renders the flags as "LGE", with '-' for clear bits.
func (fl Flags) String() string {
	out := []byte("---")
	if fl.Less() {
		out[0] = 'L'
	}
	if fl.Greater() {
		out[1] = 'G'
	}
	if fl.Equal() {
		out[2] = 'E'
	}
	return string(out)
}

// compareFlags returns the single flag describing a vs b.
func compareFlags(a, b uint8) Flags {
	switch {
	case a == b:
		return FLAG_EQUAL
	case a > b:
		return FLAG_GREATER
	default:
		return FLAG_LESS
	}
}
