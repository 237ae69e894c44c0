package wtrie

import (
	"testing"

	"github.com/dfhoughton/ranagrams/internal/alphabet"
	"github.com/dfhoughton/ranagrams/internal/charcount"
)

func buildTestTrie(t *testing.T, words []string, useCache bool) (*Trie, *alphabet.Translator) {
	t.Helper()
	tr := alphabet.NewTranslator(words)
	b := NewBuilder()
	for _, w := range words {
		idx, ok := tr.Translate(w)
		if !ok {
			t.Fatalf("could not translate %q", w)
		}
		b.Add(idx)
	}
	trie, err := New(b.Build(), tr.AlphabetSize(), useCache, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return trie, tr
}

func pairsToWords(t *testing.T, tr *alphabet.Translator, pairs []Pair) []string {
	t.Helper()
	out := make([]string, 0, len(pairs))
	for _, p := range pairs {
		s, ok := tr.Untranslate(p.Word)
		if !ok {
			t.Fatalf("could not untranslate %v", p.Word)
		}
		out = append(out, s)
	}
	return out
}

func TestWordsForFindsAllSubsetsOfResidual(t *testing.T) {
	cases := []struct {
		description string
		dictionary  []string
		phrase      string
		useCache    bool
	}{
		{"uncached small dictionary", []string{"eat", "ate", "tea", "at"}, "eat", false},
		{"cached small dictionary", []string{"eat", "ate", "tea", "at"}, "eat", true},
	}
	for _, tc := range cases {
		t.Run(tc.description, func(t *testing.T) {
			trie, tr := buildTestTrie(t, tc.dictionary, tc.useCache)
			residual, ok := tr.Count(tc.phrase)
			if !ok {
				t.Fatalf("could not count phrase %q", tc.phrase)
			}
			pairs := trie.WordsFor(residual, nil, nil)
			words := pairsToWords(t, tr, pairs)
			found := map[string]bool{}
			for _, w := range words {
				found[w] = true
			}
			if !found["eat"] || !found["ate"] || !found["tea"] || !found["at"] {
				t.Fatalf("expected eat/ate/tea/at among %v", words)
			}
		})
	}
}

func TestWordsForRespectsSortKey(t *testing.T) {
	trie, tr := buildTestTrie(t, []string{"at", "eat"}, false)
	residual, _ := tr.Count("eat")
	atIdx, _ := tr.Translate("at")
	pairs := trie.WordsFor(residual, atIdx, nil)
	for _, p := range pairs {
		if geKey(atIdx, p.Word) && !geKey(p.Word, atIdx) {
			t.Fatalf("found word %v before sort key %v", p.Word, atIdx)
		}
	}
}

func TestWordsForDropsUncoveredResidual(t *testing.T) {
	trie, tr := buildTestTrie(t, []string{"cat"}, false)
	cc := charcount.New(tr.AlphabetSize() + 1)
	idx, _ := tr.Translate("cat")
	_ = cc.Add(idx)
	_ = cc.Add([]int{tr.AlphabetSize()})
	pairs := trie.WordsFor(cc, nil, nil)
	if pairs != nil {
		t.Fatalf("expected nil result when a residual letter is never covered, got %v", pairs)
	}
}

func TestCacheAndDirectPathsAgree(t *testing.T) {
	words := []string{"eat", "ate", "tea", "at", "a", "t", "e"}
	cached, tr := buildTestTrie(t, words, true)
	direct, _ := buildTestTrie(t, words, false)
	residual1, _ := tr.Count("eat")
	residual2, _ := tr.Count("eat")
	got := pairsToWords(t, tr, cached.WordsFor(residual1, nil, nil))
	want := pairsToWords(t, tr, direct.WordsFor(residual2, nil, nil))
	if len(got) != len(want) {
		t.Fatalf("cached and direct enumeration disagree: %v vs %v", got, want)
	}
}

func TestNewRejectsOversizedCachedAlphabet(t *testing.T) {
	root := NewBuilder().Build()
	if _, err := New(root, MaxCacheableAlphabet+1, true, 0); err == nil {
		t.Fatal("expected error constructing a cached trie over an oversized alphabet")
	}
	if _, err := New(root, MaxCacheableAlphabet+1, false, 0); err != nil {
		t.Fatalf("uncached trie over a large alphabet should be fine: %v", err)
	}
}

func TestNewHonorsCustomCacheAlphabetLimit(t *testing.T) {
	root := NewBuilder().Build()
	if _, err := New(root, 10, true, 8); err == nil {
		t.Fatal("expected error: alphabet of 10 exceeds a custom ceiling of 8")
	}
	if _, err := New(root, 10, true, 12); err != nil {
		t.Fatalf("alphabet of 10 should fit under a custom ceiling of 12: %v", err)
	}
}
