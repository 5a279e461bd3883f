package policy

import (
	"fmt"
	"strings"
)

// pattern is a compiled glob. `*` matches any rune sequence, `?` matches a
// single rune, everything else is literal. Matching is anchored to the whole
// label and case-sensitive.
type pattern struct {
	source string
	runes  []rune
}

func compilePattern(source string) (pattern, error) {
	if strings.TrimSpace(source) == "" {
		return pattern{}, fmt.Errorf("empty label pattern")
	}
	return pattern{source: source, runes: []rune(source)}, nil
}

func (p pattern) match(label string) bool {
	return globMatch(p.runes, []rune(label))
}

// globMatch implements anchored glob matching with iterative `*` backtracking.
func globMatch(pattern, input []rune) bool {
	var (
		pi, si         int
		starPi, starSi = -1, 0
	)
	for si < len(input) {
		switch {
		case pi < len(pattern) && (pattern[pi] == '?' || pattern[pi] == input[si]):
			pi++
			si++
		case pi < len(pattern) && pattern[pi] == '*':
			starPi = pi
			starSi = si
			pi++
		case starPi >= 0:
			starSi++
			pi = starPi + 1
			si = starSi
		default:
			return false
		}
	}
	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}
	return pi == len(pattern)
}
