package facts

import (
	"strings"
	"testing"
)

func TestMnemonicSymmetric(t *testing.T) {
	for _, f := range Universe() {
		if Mnemonic(f.A, f.B) != Mnemonic(f.B, f.A) {
			t.Errorf("Mnemonic(%d, %d) differs from reversed order", f.A, f.B)
		}
	}
}

func TestMnemonicCurated(t *testing.T) {
	got := Mnemonic(7, 8)
	if !strings.Contains(got, "56") {
		t.Errorf("Mnemonic(7, 8) = %q, want mention of 56", got)
	}
	if _, ok := CuratedMnemonic(8, 7); !ok {
		t.Error("CuratedMnemonic(8, 7) not found")
	}
}

func TestMnemonicHardFactsCovered(t *testing.T) {
	hard := []Fact{{6, 7}, {7, 8}, {8, 8}, {9, 9}, {6, 8}, {12, 12}}
	for _, f := range hard {
		if _, ok := CuratedMnemonic(f.A, f.B); !ok {
			t.Errorf("no curated mnemonic for %v", f)
		}
	}
	if n := len(CuratedFacts()); n != 17 {
		t.Errorf("len(CuratedFacts()) = %d, want 17", n)
	}
}

func TestMnemonicFallback(t *testing.T) {
	got := Mnemonic(2, 3)
	want := "Say the answer three times: 6, 6, 6. Now you've got it!"
	if got != want {
		t.Errorf("Mnemonic(2, 3) = %q, want %q", got, want)
	}

	// Out-of-range operands still get a hint.
	got = Mnemonic(13, 2)
	if !strings.Contains(got, "26") {
		t.Errorf("Mnemonic(13, 2) = %q, want fallback mentioning 26", got)
	}
}
