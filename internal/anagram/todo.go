// Package anagram defines the partial-anagram search node the engine
// shuttles between workers, and the rule for expanding one into its
// children by consulting a trie.
package anagram

import (
	"strings"

	"github.com/dfhoughton/ranagrams/internal/alphabet"
	"github.com/dfhoughton/ranagrams/internal/charcount"
	"github.com/dfhoughton/ranagrams/internal/wtrie"
)

// ToDo is one node of the search tree: the word chosen to get here, the
// letters still left to place, and a link back to the parent so the full
// sequence of words can be recovered without every node carrying its own
// copy of the history.
type ToDo struct {
	parent   *ToDo
	word     []int
	residual *charcount.CharCount
}

// Seed returns the root ToDo for a search over the given residual.
func Seed(residual *charcount.CharCount) *ToDo {
	return &ToDo{residual: residual}
}

// Done reports whether every letter of the original phrase has been
// placed into some word along this ToDo's lineage.
func (d *ToDo) Done() bool {
	return d.residual.IsEmpty()
}

func (d *ToDo) child(word []int, residual *charcount.CharCount) *ToDo {
	return &ToDo{parent: d, word: word, residual: residual}
}

// Words returns the sequence of chosen words from the seed down to d, in
// the order they were chosen.
func (d *ToDo) Words() [][]int {
	var words [][]int
	for n := d; n != nil && len(n.word) > 0; n = n.parent {
		words = append(words, n.word)
	}
	for i, j := 0, len(words)-1; i < j; i, j = i+1, j-1 {
		words[i], words[j] = words[j], words[i]
	}
	return words
}

// String renders the full anagram as space-separated words.
func (d *ToDo) String(tr *alphabet.Translator) string {
	words := d.Words()
	parts := make([]string, 0, len(words))
	for _, w := range words {
		if s, ok := tr.Untranslate(w); ok {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Improver adapts a Trie into the engine's Worker contract: improving a
// ToDo means asking the trie for every word that can be peeled off its
// residual at or after the last word chosen, and inspecting one means
// checking whether it is already a complete anagram.
type Improver struct {
	Trie    *wtrie.Trie
	Shuffle func([]wtrie.Pair)
}

// Improve returns one child ToDo per word the trie reports reachable from
// d's residual, honoring d's own word as the sort key so permutations of
// the same word multiset are never produced twice.
func (imp *Improver) Improve(d *ToDo) []*ToDo {
	pairs := imp.Trie.WordsFor(d.residual, d.word, imp.Shuffle)
	children := make([]*ToDo, len(pairs))
	for i, p := range pairs {
		children[i] = d.child(p.Word, p.Residual)
	}
	return children
}

// Inspect reports whether d is a finished anagram.
func (imp *Improver) Inspect(d *ToDo) bool {
	return d.Done()
}
