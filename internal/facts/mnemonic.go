package facts

import "fmt"

// mnemonics holds the curated hints for facts kids historically trip on.
var mnemonics = map[Fact]string{
	{6, 7}:   "Six times seven is forty-two, the answer to everything!",
	{6, 8}:   "Six and eight went on a date, the answer is forty-eight!",
	{7, 8}:   "Seven ate (8) fifty-six: 7 x 8 = 56!",
	{8, 8}:   "I ate and I ate till I was sick on the floor: 8 x 8 = 64!",
	{6, 9}:   "If 6 times 10 is 60, take away one 6 and that's 54!",
	{7, 9}:   "7 x 9: the digits add to 9 and start with 6, so 63!",
	{8, 9}:   "8 x 9: the digits add to 9 and start with 7, so 72!",
	{9, 9}:   "9 x 9: the digits add to 9 and start with 8, so 81!",
	{7, 7}:   "Seven touchdown! 7 x 7 = 49!",
	{4, 7}:   "4 x 7 = 28, there are 28 days in February!",
	{3, 7}:   "3 weeks = 21 days, so 3 x 7 = 21!",
	{6, 6}:   "6 x 6 = 36, three dozen!",
	{8, 12}:  "8 x 12 = 96, almost 100!",
	{7, 12}:  "7 x 12 = 84, seven dozen!",
	{9, 12}:  "9 x 12 = 108, just over 100!",
	{11, 12}: "11 x 12 = 132, eleven dozen!",
	{12, 12}: "12 x 12 = 144, a gross! That's a dozen dozen!",
}

const defaultMnemonic = "Say the answer three times: %[1]d, %[1]d, %[1]d. Now you've got it!"

// Mnemonic returns a memory hint for a×b in either operand order. Facts
// without a curated hint, including out-of-range ones, get the generic
// repeat-it template.
func Mnemonic(a, b int) string {
	if hint, ok := CuratedMnemonic(a, b); ok {
		return hint
	}
	return DefaultMnemonic(a * b)
}

// CuratedMnemonic looks up only the curated table.
func CuratedMnemonic(a, b int) (string, bool) {
	hint, ok := mnemonics[Canonical(a, b)]
	return hint, ok
}

// DefaultMnemonic renders the fallback template for a product.
func DefaultMnemonic(answer int) string {
	return fmt.Sprintf(defaultMnemonic, answer)
}

// CuratedFacts returns the facts that have a curated hint, in universe order.
func CuratedFacts() []Fact {
	var out []Fact
	for _, f := range universe {
		if _, ok := mnemonics[f]; ok {
			out = append(out, f)
		}
	}
	return out
}
