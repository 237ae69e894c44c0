// Package alphabet translates normalized words to and from the dense,
// frequency-ranked integer indices the trie and CharCount packages operate
// on, mirroring the bijection a dictionary load derives once and reuses
// for the life of a run.
package alphabet

import (
	"sort"
	"strings"
	"unicode"

	"github.com/dfhoughton/ranagrams/internal/charcount"
)

// Normalize trims, lowercases, and strips every non-letter rune from s.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Translator is the bijection between normalized characters and the dense
// index space used everywhere else in the engine. Indices are assigned by
// descending frequency across the corpus it was built from, so common
// letters land at low indices and the trie's dense child arrays stay
// small near the root.
type Translator struct {
	charToIndex map[rune]int
	indexToChar []rune
}

// NewTranslator builds a Translator from the frequency of letters across
// words, after normalization. Ties break on rune value for determinism.
func NewTranslator(words []string) *Translator {
	freq := make(map[rune]int)
	for _, w := range words {
		for _, r := range Normalize(w) {
			freq[r]++
		}
	}
	runes := make([]rune, 0, len(freq))
	for r := range freq {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool {
		fi, fj := freq[runes[i]], freq[runes[j]]
		if fi != fj {
			return fi > fj
		}
		return runes[i] < runes[j]
	})
	charToIndex := make(map[rune]int, len(runes))
	for i, r := range runes {
		charToIndex[r] = i
	}
	return &Translator{charToIndex: charToIndex, indexToChar: runes}
}

// AlphabetSize returns the number of distinct letters the translator knows.
func (t *Translator) AlphabetSize() int {
	return len(t.indexToChar)
}

// Translate normalizes s and converts it to a slice of dense indices. It
// reports false if s, once normalized, contains a letter outside the
// alphabet this translator was built from.
func (t *Translator) Translate(s string) ([]int, bool) {
	normalized := Normalize(s)
	out := make([]int, 0, len(normalized))
	for _, r := range normalized {
		i, ok := t.charToIndex[r]
		if !ok {
			return nil, false
		}
		out = append(out, i)
	}
	return out, true
}

// Untranslate converts a slice of dense indices back to its string form.
// It reports false if any index is out of range.
func (t *Translator) Untranslate(indices []int) (string, bool) {
	var b strings.Builder
	for _, i := range indices {
		if i < 0 || i >= len(t.indexToChar) {
			return "", false
		}
		b.WriteRune(t.indexToChar[i])
	}
	return b.String(), true
}

// Count normalizes and translates s, then folds the result into a fresh
// CharCount. It reports false under the same condition as Translate.
func (t *Translator) Count(s string) (*charcount.CharCount, bool) {
	indices, ok := t.Translate(s)
	if !ok {
		return nil, false
	}
	cc := charcount.New(t.AlphabetSize())
	if err := cc.Add(indices); err != nil {
		return nil, false
	}
	return cc, true
}

// UnfamiliarCharacter normalizes s and reports the longest familiar prefix
// and the remaining suffix starting at the first letter this translator
// does not recognize. If every letter is familiar, suffix is empty.
func (t *Translator) UnfamiliarCharacter(s string) (prefix, suffix string) {
	normalized := Normalize(s)
	runes := []rune(normalized)
	for i, r := range runes {
		if _, ok := t.charToIndex[r]; !ok {
			return string(runes[:i]), string(runes[i:])
		}
	}
	return normalized, ""
}
