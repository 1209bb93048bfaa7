package facts

import "fmt"

// MinOperand and MaxOperand bound every multiplication fact.
const (
	MinOperand = 1
	MaxOperand = 12
)

// Fact is an unordered multiplication pair stored in canonical form (A <= B).
type Fact struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Canonical returns the fact for a×b with the operands ordered (min, max).
func Canonical(a, b int) Fact {
	if a > b {
		a, b = b, a
	}
	return Fact{A: a, B: b}
}

// Answer returns the product.
func (f Fact) Answer() int {
	return f.A * f.B
}

// Key renders the fact as "AxB", the form used in storage and display.
func (f Fact) Key() string {
	return fmt.Sprintf("%dx%d", f.A, f.B)
}

func (f Fact) String() string {
	return fmt.Sprintf("%d × %d", f.A, f.B)
}

// Valid reports whether both operands are in range.
func (f Fact) Valid() bool {
	return InRange(f.A) && InRange(f.B)
}

// InRange reports whether n is a legal operand.
func InRange(n int) bool {
	return n >= MinOperand && n <= MaxOperand
}

// universe is computed once; callers get a copy.
var universe = buildUniverse()

func buildUniverse() []Fact {
	out := make([]Fact, 0, UniverseSize)
	for a := MinOperand; a <= MaxOperand; a++ {
		for b := a; b <= MaxOperand; b++ {
			out = append(out, Fact{A: a, B: b})
		}
	}
	return out
}

// UniverseSize is the number of canonical facts: 12·13/2.
const UniverseSize = 78

// Universe returns all canonical facts in row-major order.
func Universe() []Fact {
	out := make([]Fact, len(universe))
	copy(out, universe)
	return out
}
