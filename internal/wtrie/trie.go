// Package wtrie is the dense, frequency-indexed word trie anagram search
// walks over: given a residual letter multiset and a lexicographic sort
// key, it enumerates every dictionary word that can be peeled off the
// residual at or after that key.
package wtrie

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/dfhoughton/ranagrams/internal/charcount"
)

// Node is a single frozen trie node. Its children slice is dense but
// truncated: it holds exactly as many entries as the highest populated
// child index requires, so leaves and shallow branches stay small.
type Node struct {
	terminal bool
	children []*Node
}

func (n *Node) child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Pair is one (word, residual-after-removing-word) result from a walk.
type Pair struct {
	Word     []int
	Residual *charcount.CharCount
}

// MaxCacheableAlphabet is the largest alphabet size words_for will agree
// to memoize for; fingerprints over larger alphabets risk overflowing the
// assumptions the memo cache's key space was designed around.
const MaxCacheableAlphabet = 38

// Trie pairs a frozen Node tree with the translator-sized residual space
// it was built over, and optionally a memoization cache keyed by residual
// fingerprint.
type Trie struct {
	root   *Node
	size   int
	powers []*big.Int
	cache  *memoCache
}

// New wraps root for lookups over an alphabet of the given size. If
// useCache is true and size exceeds maxCacheableAlphabet, New returns an
// error: this is an invariant violation the caller must treat as fatal.
// maxCacheableAlphabet lets a caller (e.g. one reading
// internal/config's EngineConfig.MaxCacheAlpha) tighten or loosen the
// ceiling; a value of 0 or less falls back to MaxCacheableAlphabet.
func New(root *Node, alphabetSize int, useCache bool, maxCacheableAlphabet int) (*Trie, error) {
	limit := maxCacheableAlphabet
	if limit <= 0 {
		limit = MaxCacheableAlphabet
	}
	if useCache && alphabetSize > limit {
		return nil, fmt.Errorf("wtrie: alphabet of size %d exceeds the %d-letter limit for a cached trie", alphabetSize, limit)
	}
	t := &Trie{root: root, size: alphabetSize, powers: charcount.PowersOfTen(alphabetSize)}
	if useCache {
		t.cache = newMemoCache()
	}
	return t, nil
}

// WordsFor enumerates every (word, residual) pair reachable by peeling one
// dictionary word off residual, restricted to words lexicographically at
// or after sortKey (by dense index, not by rune). If shuffle is non-nil it
// is applied to the result slice before it is returned; pass nil to keep
// results in lexicographic order.
//
// When caching is enabled, the unfiltered enumeration (as if sortKey were
// empty) is computed once per distinct residual fingerprint and reused;
// each call then binary-searches that shared list for the first word at
// or after sortKey. residual must not be fingerprinted by any other code
// path before or after this call, since WordsFor fingerprints it itself
// when caching is enabled.
func (t *Trie) WordsFor(residual *charcount.CharCount, sortKey []int, shuffle func([]Pair)) []Pair {
	var list []Pair
	if t.cache != nil {
		if !residual.Fingerprinted() {
			residual.CalculateFingerprint(t.powers)
		}
		key := residual.Fingerprint().String()
		cached, ok := t.cache.get(key)
		if !ok {
			cached = t.walk(residual, nil)
			for _, p := range cached {
				p.Residual.CalculateFingerprint(t.powers)
			}
			t.cache.put(key, cached)
		}
		idx := sort.Search(len(cached), func(i int) bool {
			return geKey(cached[i].Word, sortKey)
		})
		list = make([]Pair, len(cached)-idx)
		copy(list, cached[idx:])
	} else {
		list = t.walk(residual, sortKey)
	}
	if shuffle != nil {
		shuffle(list)
	}
	return list
}

// walk performs the full recursive descent for one residual and sort key,
// then applies the dead-letter filter: if any index of residual was never
// covered by a produced word anywhere in the walk, no subset of residual
// can ever complete an anagram from here, so the whole result is dropped.
func (t *Trie) walk(residual *charcount.CharCount, sortKey []int) []Pair {
	covered := residual.ToSet()
	var pairs []Pair
	t.walkNode(t.root, nil, residual, covered, 0, sortKey, len(sortKey) > 0, &pairs)
	if !covered.IsEmpty() {
		return nil
	}
	return pairs
}

func (t *Trie) walkNode(node *Node, seed []int, residual *charcount.CharCount, covered *charcount.CharSet, level int, sortKey []int, sorting bool, pairs *[]Pair) {
	// A proper prefix of the sort key sorts before it, so it is not recorded.
	if node.terminal && len(seed) > 0 && !(sorting && level < len(sortKey)) {
		word := make([]int, len(seed))
		copy(word, seed)
		*pairs = append(*pairs, Pair{Word: word, Residual: residual.Clone()})
		covered.Remove(seed)
	}
	if residual.IsEmpty() {
		return
	}
	start := residual.First()
	stillSorting := sorting && level < len(sortKey)
	sortChar := 0
	if stillSorting {
		sortChar = sortKey[level]
		if sortChar > start {
			start = sortChar
		}
	}
	for c := start; c < residual.Last(); c++ {
		if !residual.Has(c) {
			continue
		}
		child := node.child(c)
		if child == nil {
			continue
		}
		next := residual.Clone()
		next.Decrement(c)
		longer := append(append(make([]int, 0, len(seed)+1), seed...), c)
		childSorting := stillSorting && c == sortChar
		t.walkNode(child, longer, next, covered, level+1, sortKey, childSorting, pairs)
	}
}

// geKey reports whether a is lexicographically at or after b, comparing
// element-wise and treating a longer-but-matching prefix as greater.
func geKey(a, b []int) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] > b[i] {
			return true
		}
		if a[i] < b[i] {
			return false
		}
	}
	return len(a) >= len(b)
}
