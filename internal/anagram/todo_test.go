package anagram

import (
	"testing"

	"github.com/dfhoughton/ranagrams/internal/alphabet"
	"github.com/dfhoughton/ranagrams/internal/wtrie"
)

func buildImprover(t *testing.T, words []string) (*Improver, *alphabet.Translator) {
	t.Helper()
	tr := alphabet.NewTranslator(words)
	b := wtrie.NewBuilder()
	for _, w := range words {
		idx, _ := tr.Translate(w)
		b.Add(idx)
	}
	trie, err := wtrie.New(b.Build(), tr.AlphabetSize(), false, 0)
	if err != nil {
		t.Fatalf("wtrie.New: %v", err)
	}
	return &Improver{Trie: trie}, tr
}

func TestSeedIsNotDoneUntilResidualEmpty(t *testing.T) {
	imp, tr := buildImprover(t, []string{"eat", "ate"})
	residual, _ := tr.Count("eat")
	seed := Seed(residual)
	if seed.Done() {
		t.Fatal("seed with a non-empty residual should not be done")
	}
	if imp.Inspect(seed) != seed.Done() {
		t.Fatal("Inspect should forward to Done")
	}
}

func TestImproveProducesWordChildren(t *testing.T) {
	imp, tr := buildImprover(t, []string{"eat", "ate"})
	residual, _ := tr.Count("eat")
	seed := Seed(residual)
	children := imp.Improve(seed)
	if len(children) == 0 {
		t.Fatal("expected at least one child from improving the seed")
	}
	for _, c := range children {
		if !c.Done() {
			t.Fatalf("expected single-word anagram of 'eat' to be done, got residual sum nonzero")
		}
	}
}

func TestStringRendersWordsInOrder(t *testing.T) {
	imp, tr := buildImprover(t, []string{"a", "t", "e", "eat"})
	residual, _ := tr.Count("eat")
	seed := Seed(residual)
	var finished *ToDo
	frontier := []*ToDo{seed}
	for len(frontier) > 0 && finished == nil {
		var next []*ToDo
		for _, n := range frontier {
			for _, c := range imp.Improve(n) {
				if c.Done() {
					finished = c
					break
				}
				next = append(next, c)
			}
			if finished != nil {
				break
			}
		}
		frontier = next
	}
	if finished == nil {
		t.Fatal("expected to find a completed anagram of 'eat'")
	}
	s := finished.String(tr)
	if s == "" {
		t.Fatal("expected a non-empty rendered anagram")
	}

	aIdx, _ := tr.Translate("a")
	eIdx, _ := tr.Translate("e")
	tIdx, _ := tr.Translate("t")
	chain := seed.child(aIdx, residual).child(eIdx, residual).child(tIdx, residual)
	if got := chain.String(tr); got != "a e t" {
		t.Fatalf("expected words in the order they were chosen, got %q", got)
	}
}
