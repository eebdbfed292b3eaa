// Package seed decodes the world seed mini-language: magic phrases that
// toggle generation flags and the dotted "size.difficulty.evil.seed" form
// that overrides the other creation options.
package seed

import (
	"math/rand"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/vovakirdan/worldforge/internal/core"
	"github.com/vovakirdan/worldforge/internal/difficulty"
)

// Flags are the independent generation toggles set by magic phrases.
type Flags struct {
	NotTheBees   bool
	ForTheWorthy bool
	Celebration  bool
	Constant     bool
}

// Any reports whether at least one flag is set.
func (f Flags) Any() bool {
	return f.NotTheBees || f.ForTheWorthy || f.Celebration || f.Constant
}

// Names returns the set flags in a fixed order.
func (f Flags) Names() []string {
	var names []string
	if f.NotTheBees {
		names = append(names, "not-the-bees")
	}
	if f.ForTheWorthy {
		names = append(names, "for-the-worthy")
	}
	if f.Celebration {
		names = append(names, "celebration")
	}
	if f.Constant {
		names = append(names, "constant")
	}
	return names
}

// Token is the decoded view of a raw seed string. Each override applies
// only when its Has flag is set.
type Token struct {
	Size    core.WorldSize
	HasSize bool

	Difficulty    difficulty.Kind
	HasDifficulty bool

	Evil    core.Evil
	HasEvil bool

	// Raw is the free-form seed: the whole input, or the fourth field of
	// the dotted form.
	Raw   string
	Flags Flags
}

// HasOverrides reports whether any option override was decoded.
func (t Token) HasOverrides() bool {
	return t.HasSize || t.HasDifficulty || t.HasEvil
}

var fold = cases.Fold()

var magicPhrases = map[string]func(*Flags){
	"not the bees":  func(f *Flags) { f.NotTheBees = true },
	"not the bees!": func(f *Flags) { f.NotTheBees = true },
	"for the worthy": func(f *Flags) {
		f.ForTheWorthy = true
	},
	"celebrationmk10": func(f *Flags) { f.Celebration = true },
	"constant":        func(f *Flags) { f.Constant = true },
	"theconstant":     func(f *Flags) { f.Constant = true },
	"the constant":    func(f *Flags) { f.Constant = true },
	"eye4aneye":       func(f *Flags) { f.Constant = true },
	"eyeforaneye":     func(f *Flags) { f.Constant = true },
}

// Decode parses raw. It never fails: fields of the dotted form that are
// not numbers or out of range are ignored one by one, and input whose first
// three fields are all non-numeric passes through verbatim.
func Decode(raw string) Token {
	tok := Token{Raw: raw}

	if set, ok := magicPhrases[fold.String(raw)]; ok {
		set(&tok.Flags)
	}

	fields := strings.Split(raw, ".")
	if len(fields) != 4 || !numericPrefix(fields[:3]) {
		return tok
	}

	if n, err := strconv.Atoi(fields[0]); err == nil {
		switch n {
		case 1:
			tok.Size, tok.HasSize = core.SizeSmall, true
		case 2:
			tok.Size, tok.HasSize = core.SizeMedium, true
		case 3:
			tok.Size, tok.HasSize = core.SizeLarge, true
		}
	}

	if n, err := strconv.Atoi(fields[1]); err == nil {
		switch n {
		case 1:
			tok.Difficulty, tok.HasDifficulty = difficulty.KindClassic, true
		case 2:
			tok.Difficulty, tok.HasDifficulty = difficulty.KindExpert, true
		case 3:
			tok.Difficulty, tok.HasDifficulty = difficulty.KindMaster, true
		case 4:
			tok.Difficulty, tok.HasDifficulty = difficulty.KindJourney, true
		}
	}

	if n, err := strconv.Atoi(fields[2]); err == nil {
		switch n {
		case 1:
			tok.Evil, tok.HasEvil = core.EvilCorruption, true
		case 2:
			tok.Evil, tok.HasEvil = core.EvilCrimson, true
		}
	}

	tok.Raw = fields[3]
	return tok
}

// numericPrefix reports whether any option field is a number. Without one
// the input is an ordinary seed that happens to contain three dots, so
// "a.b.c.d" stays "a.b.c.d" rather than being cut down to "d".
func numericPrefix(fields []string) bool {
	for _, f := range fields {
		if _, err := strconv.Atoi(f); err == nil {
			return true
		}
	}
	return false
}

// Random returns a numeric seed string.
func Random(rng *rand.Rand) string {
	return strconv.Itoa(rng.Intn(2147483647))
}
