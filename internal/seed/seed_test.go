package seed

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/vovakirdan/worldforge/internal/core"
	"github.com/vovakirdan/worldforge/internal/difficulty"
)

func TestDecodeDotted(t *testing.T) {
	tok := Decode("2.3.1.myseed")

	if !tok.HasSize || tok.Size != core.SizeMedium {
		t.Errorf("Size = %v (%v), expected Medium", tok.Size, tok.HasSize)
	}
	if !tok.HasDifficulty || tok.Difficulty != difficulty.KindMaster {
		t.Errorf("Difficulty = %v (%v), expected Master", tok.Difficulty, tok.HasDifficulty)
	}
	if !tok.HasEvil || tok.Evil != core.EvilCorruption {
		t.Errorf("Evil = %v (%v), expected Corruption", tok.Evil, tok.HasEvil)
	}
	if tok.Raw != "myseed" {
		t.Errorf("Raw = %q, expected myseed", tok.Raw)
	}
}

func TestDecodeNoOverrides(t *testing.T) {
	tests := []struct {
		name string
		in   string
		raw  string
	}{
		{"plain", "hello", "hello"},
		{"non-numeric fields", "a.b.c.d", "a.b.c.d"},
		{"out of range", "5.0.3.x", "x"},
		{"three fields", "1.2.3", "1.2.3"},
		{"five fields", "1.2.1.a.b", "1.2.1.a.b"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tok := Decode(tc.in)
			if tok.HasOverrides() {
				t.Errorf("Decode(%q) has overrides: %+v", tc.in, tok)
			}
			if tok.Raw != tc.raw {
				t.Errorf("Raw = %q, expected %q", tok.Raw, tc.raw)
			}
			if tok.Flags.Any() {
				t.Errorf("unexpected flags %v", tok.Flags.Names())
			}
		})
	}
}

func TestDecodePartialOverrides(t *testing.T) {
	tok := Decode("3.x.2.abc")
	if !tok.HasSize || tok.Size != core.SizeLarge {
		t.Error("expected Large size override")
	}
	if tok.HasDifficulty {
		t.Error("non-numeric difficulty should be ignored")
	}
	if !tok.HasEvil || tok.Evil != core.EvilCrimson {
		t.Error("expected Crimson override")
	}
	if tok.Raw != "abc" {
		t.Errorf("Raw = %q", tok.Raw)
	}
}

func TestDecodeMagicPhrases(t *testing.T) {
	tests := []struct {
		in   string
		want Flags
	}{
		{"not the bees", Flags{NotTheBees: true}},
		{"Not The Bees!", Flags{NotTheBees: true}},
		{"FOR THE WORTHY", Flags{ForTheWorthy: true}},
		{"celebrationmk10", Flags{Celebration: true}},
		{"constant", Flags{Constant: true}},
		{"TheConstant", Flags{Constant: true}},
		{"the constant", Flags{Constant: true}},
		{"eye4aneye", Flags{Constant: true}},
		{"EyeForAnEye", Flags{Constant: true}},
		{"not the bees please", Flags{}},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			tok := Decode(tc.in)
			if tok.Flags != tc.want {
				t.Errorf("Flags = %+v, expected %+v", tok.Flags, tc.want)
			}
			if tok.Raw != tc.in {
				t.Errorf("Raw = %q, expected input unchanged", tok.Raw)
			}
			if tok.HasOverrides() {
				t.Error("magic phrase produced overrides")
			}
		})
	}
}

func TestDecodeDoesNotLeakFlags(t *testing.T) {
	if !Decode("not the bees").Flags.NotTheBees {
		t.Fatal("expected bee flag")
	}
	if Decode("hello").Flags.Any() {
		t.Error("flag leaked into the next decode")
	}
}

func TestDottedSeedIsNotMagic(t *testing.T) {
	tok := Decode("1.1.1.for the worthy")
	if tok.Flags.ForTheWorthy {
		t.Error("fourth field must not be matched against magic phrases")
	}
	if tok.Raw != "for the worthy" {
		t.Errorf("Raw = %q", tok.Raw)
	}
}

func TestRandom(t *testing.T) {
	s := Random(rand.New(rand.NewSource(1)))
	if _, err := strconv.Atoi(s); err != nil {
		t.Errorf("Random() = %q, expected a number", s)
	}
}
