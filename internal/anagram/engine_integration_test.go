package anagram

import (
	"sort"
	"testing"

	"github.com/dfhoughton/ranagrams/internal/alphabet"
	"github.com/dfhoughton/ranagrams/internal/engine"
	"github.com/dfhoughton/ranagrams/internal/wtrie"
)

// buildEngineFixture wires internal/wtrie, internal/anagram, and
// internal/engine together over a tiny dictionary, the way
// cmd/ranagrams.runAnagrams does.
func buildEngineFixture(t *testing.T, words []string) (*Improver, *alphabet.Translator) {
	t.Helper()
	tr := alphabet.NewTranslator(words)
	b := wtrie.NewBuilder()
	for _, w := range words {
		idx, ok := tr.Translate(w)
		if !ok {
			t.Fatalf("could not translate %q", w)
		}
		b.Add(idx)
	}
	trie, err := wtrie.New(b.Build(), tr.AlphabetSize(), true, 0)
	if err != nil {
		t.Fatalf("wtrie.New: %v", err)
	}
	return &Improver{Trie: trie}, tr
}

// TestEngineFindsAllAnagramsOfCat drives the engine over a three-word
// dictionary that is itself a closed set of anagrams of "cat", mirroring
// the cat/act/tac end-to-end scenario: every anagram of the phrase is
// exactly one of the dictionary's single words, no more and no fewer.
func TestEngineFindsAllAnagramsOfCat(t *testing.T) {
	imp, tr := buildEngineFixture(t, []string{"cat", "act", "tac"})
	residual, ok := tr.Count("cat")
	if !ok {
		t.Fatalf("could not count phrase %q", "cat")
	}
	seed := Seed(residual)

	results, kill := engine.Run[*ToDo](2, []*ToDo{seed}, imp)
	defer kill.Store(true)

	var got []string
	for r := range results {
		if !r.Ok {
			break
		}
		got = append(got, r.Item.String(tr))
	}
	sort.Strings(got)

	want := []string{"act", "cat", "tac"}
	if len(got) != len(want) {
		t.Fatalf("expected exactly %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected exactly %v, got %v", want, got)
		}
	}
}

// TestEngineFindsMultiWordAnagrams covers the two-letter-tile case (a, b,
// ab, ba): some anagrams of "ab" are single dictionary words and some are
// two-word sequences, so the engine must surface both kinds. The sort key
// lets the two-word anagram through in only one of its two orders.
func TestEngineFindsMultiWordAnagrams(t *testing.T) {
	imp, tr := buildEngineFixture(t, []string{"a", "b", "ab", "ba"})
	residual, ok := tr.Count("ab")
	if !ok {
		t.Fatalf("could not count phrase %q", "ab")
	}
	seed := Seed(residual)

	results, kill := engine.Run[*ToDo](3, []*ToDo{seed}, imp)
	defer kill.Store(true)

	found := map[string]bool{}
	for r := range results {
		if !r.Ok {
			break
		}
		found[r.Item.String(tr)] = true
	}

	for _, want := range []string{"ab", "ba", "a b"} {
		if !found[want] {
			t.Fatalf("expected anagram %q among results %v", want, keysOf(found))
		}
	}
	if found["b a"] {
		t.Fatalf("expected %q to be produced only as %q, got %v", "b a", "a b", keysOf(found))
	}
}

func keysOf(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
