// Package lexer is a small table-driven scanner shared by the language
// grammars. A grammar is an ordered list of rules; at every position the
// longest match wins and ties go to the rule listed first.
package lexer

import (
	"regexp"
	"unicode/utf8"
)

// Rule matches either a fixed literal or an anchored pattern.
type Rule[K comparable] struct {
	Kind    K
	Literal string
	Pattern *regexp.Regexp
	// Capture keeps the matched text on the lexeme.
	Capture bool
	// Skip drops the match from the output (whitespace, comments).
	Skip bool
}

// Lit returns a literal rule.
func Lit[K comparable](kind K, literal string) Rule[K] {
	return Rule[K]{Kind: kind, Literal: literal}
}

// Lits returns one literal rule per spelling, all producing kind.
func Lits[K comparable](kind K, literals ...string) []Rule[K] {
	rules := make([]Rule[K], len(literals))
	for i, l := range literals {
		rules[i] = Lit(kind, l)
	}
	return rules
}

// Pat returns a pattern rule. The expression is anchored at the scan
// position and matched leftmost-longest.
func Pat[K comparable](kind K, expr string) Rule[K] {
	re := regexp.MustCompile(`^(?:` + expr + `)`)
	re.Longest()
	return Rule[K]{Kind: kind, Pattern: re}
}

// Capturing marks the rule as keeping its matched text.
func (r Rule[K]) Capturing() Rule[K] {
	r.Capture = true
	return r
}

// Skipped marks the rule as discarded from the output.
func (r Rule[K]) Skipped() Rule[K] {
	r.Skip = true
	return r
}

// Lexeme is one scanned unit.
type Lexeme[K comparable] struct {
	Kind   K
	Text   string
	Offset int
}

// Grammar is a compiled rule table.
type Grammar[K comparable] struct {
	rules    []Rule[K]
	byFirst  map[byte][]int // literal rule indexes by first byte
	patterns []int
	fallback K
}

// NewGrammar compiles rules. fallback is emitted, one rune at a time, for
// input no rule matches.
func NewGrammar[K comparable](fallback K, rules ...[]Rule[K]) *Grammar[K] {
	g := &Grammar[K]{
		byFirst:  make(map[byte][]int),
		fallback: fallback,
	}
	for _, group := range rules {
		for _, r := range group {
			idx := len(g.rules)
			g.rules = append(g.rules, r)
			if r.Pattern != nil {
				g.patterns = append(g.patterns, idx)
				continue
			}
			if r.Literal == "" {
				panic("lexer: rule without literal or pattern")
			}
			g.byFirst[r.Literal[0]] = append(g.byFirst[r.Literal[0]], idx)
		}
	}
	return g
}

// Scan tokenizes src. It never fails: unmatched input becomes fallback
// lexemes.
func (g *Grammar[K]) Scan(src string) []Lexeme[K] {
	var out []Lexeme[K]

	for pos := 0; pos < len(src); {
		best, length := g.match(src[pos:])
		if length == 0 {
			_, size := utf8.DecodeRuneInString(src[pos:])
			out = append(out, Lexeme[K]{Kind: g.fallback, Text: src[pos : pos+size], Offset: pos})
			pos += size
			continue
		}

		r := g.rules[best]
		if !r.Skip {
			lx := Lexeme[K]{Kind: r.Kind, Offset: pos}
			if r.Capture {
				lx.Text = src[pos : pos+length]
			}
			out = append(out, lx)
		}
		pos += length
	}

	return out
}

// match returns the winning rule index and match length (0 if none).
func (g *Grammar[K]) match(rest string) (int, int) {
	best, length := -1, 0

	consider := func(idx, n int) {
		if n > length || (n == length && n > 0 && idx < best) {
			best, length = idx, n
		}
	}

	for _, idx := range g.byFirst[rest[0]] {
		lit := g.rules[idx].Literal
		if len(lit) <= len(rest) && rest[:len(lit)] == lit {
			consider(idx, len(lit))
		}
	}
	for _, idx := range g.patterns {
		if loc := g.rules[idx].Pattern.FindStringIndex(rest); loc != nil {
			consider(idx, loc[1])
		}
	}

	return best, length
}
