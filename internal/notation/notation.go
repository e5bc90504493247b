// Package notation parses compact dice notation into roll specs.
//
// An expression is a sequence of tokens separated by + or -. Each token is
// either a flat modifier ("5") or a die set ("3d6"), optionally stacked with
// suffixes: "dN" drop count ("4d6d1" drops the lowest, "4d6d-1" the
// highest), "e" exploding dice, "mN" minimum clamp, and "rN" reroll values
// ("3d6r1r2" redraws ones and twos). A leading "d" implies a single die, so
// "d20" reads as "1d20".
package notation

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/rolld/internal/models"
)

// Parse turns one dice expression into a RollSpec. It is a pure function of
// its input: no randomness, no state. The only error it returns is a
// *FormatError naming the token that could not be interpreted.
func Parse(text string) (*models.RollSpec, error) {
	spec := &models.RollSpec{}

	for _, tok := range tokenize(strings.ToLower(text)) {
		term, err := interpretToken(tok)
		if err != nil {
			return nil, err
		}

		switch t := term.(type) {
		case modifierTerm:
			spec.Modifiers = append(spec.Modifiers, int(t))
		case dieSetTerm:
			spec.DieSets = append(spec.DieSets, models.DieSetSpec(t))
		}
	}

	return spec, nil
}

// token is one sign-delimited chunk of the expression. The sign itself is
// not part of the text.
type token struct {
	text     string
	negative bool
}

// tokenize splits the lower-cased expression on + and - in a single forward
// scan. A sign with nothing accumulated yet is the next token's sign rather
// than a separator, and a sign directly after the die marker "d" stays
// inside the token (that is how "4d6d-1" carries a negative drop count).
func tokenize(text string) []token {
	var tokens []token

	start := 0
	negative := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '+' && c != '-' {
			continue
		}

		if i == start {
			negative = c == '-'
			start = i + 1
			continue
		}
		if text[i-1] == 'd' {
			continue
		}

		tokens = append(tokens, token{text: text[start:i], negative: negative})
		negative = c == '-'
		start = i + 1
	}

	// The final token is closed unconditionally; an empty one (empty input
	// or a trailing sign) fails interpretation like any other bad token.
	return append(tokens, token{text: text[start:], negative: negative})
}

// term is the interpreted form of a token: either a flat modifier or a die
// set.
type term interface {
	isTerm()
}

type modifierTerm int

type dieSetTerm models.DieSetSpec

func (modifierTerm) isTerm() {}
func (dieSetTerm) isTerm()   {}

// interpretToken decodes one token. Steps, in order: prepend the implicit
// "1" count, strip the exploding flag, extract minimum-clamp and reroll
// suffixes, then split what remains on "d" into the count/size/drop core.
func interpretToken(tok token) (term, error) {
	text := tok.text
	if strings.HasPrefix(text, "d") {
		text = "1" + text
	}

	// Any "e" marks the set exploding; all of them are removed before the
	// suffix scan so they cannot sit inside a digit run.
	exploding := strings.Contains(text, "e")
	if exploding {
		text = strings.ReplaceAll(text, "e", "")
	}

	var (
		minimum int
		rerolls []int
		core    strings.Builder
	)
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case 'm':
			value, width, ok := scanInt(text[i+1:])
			if !ok {
				return nil, &FormatError{Token: tok.text}
			}
			minimum = value // last m suffix wins
			i += width
		case 'r':
			value, width, ok := scanInt(text[i+1:])
			if !ok {
				return nil, &FormatError{Token: tok.text}
			}
			rerolls = append(rerolls, value)
			i += width
		default:
			core.WriteByte(text[i])
		}
	}

	pieces := strings.Split(core.String(), "d")
	values := make([]int, len(pieces))
	for i, piece := range pieces {
		v, err := strconv.Atoi(piece)
		if err != nil {
			return nil, &FormatError{Token: tok.text}
		}
		values[i] = v
	}

	switch len(values) {
	case 1:
		value := values[0]
		if tok.negative {
			value = -value
		}
		return modifierTerm(value), nil

	case 2, 3:
		set := models.DieSetSpec{
			Count:        values[0],
			DieSize:      values[1],
			Exploding:    exploding,
			RerollValues: rerolls,
			Minimum:      minimum,
		}
		if len(values) == 3 {
			set.DropCount = values[2]
		}
		if tok.negative {
			set.Count = -set.Count
		}
		if set.DieSize < 1 || set.Count == 0 {
			return nil, &FormatError{Token: tok.text}
		}
		return dieSetTerm(set), nil

	default:
		return nil, &FormatError{Token: tok.text}
	}
}

// scanInt parses the leading digit run of s, returning the parsed value and
// the run's width. ok is false when there is no digit run or it does not fit
// in an int.
func scanInt(s string) (int, int, bool) {
	width := 0
	for width < len(s) && s[width] >= '0' && s[width] <= '9' {
		width++
	}

	value, err := strconv.Atoi(s[:width])
	if err != nil {
		return 0, 0, false
	}
	return value, width, true
}
