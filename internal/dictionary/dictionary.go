// Package dictionary loads the line-delimited word list anagrams are
// built from, derives the alphabet translator and search trie from it,
// and keeps an auxiliary patricia index over the raw words for fast
// membership and prefix queries used in diagnostics.
package dictionary

import (
	"bufio"
	"fmt"
	"os"

	patricia "github.com/tchap/go-patricia/v2/patricia"

	"github.com/dfhoughton/ranagrams/internal/alphabet"
	"github.com/dfhoughton/ranagrams/internal/wtrie"
)

// Dictionary bundles the translator, search trie, and an auxiliary raw
// word index loaded from one dictionary file.
type Dictionary struct {
	Translator *alphabet.Translator
	Trie       *wtrie.Trie
	WordCount  int

	index *patricia.Trie
}

// Options controls how a dictionary file is loaded.
type Options struct {
	MinWordLength int
	UseCache      bool
	BuildAuxIndex bool
	// MaxCacheAlphabet overrides wtrie.MaxCacheableAlphabet, the largest
	// alphabet size a cached trie will agree to build over. 0 or less
	// means "use wtrie's own default."
	MaxCacheAlphabet int
	// RejectDupWords makes a repeated normalized word (after exclusion
	// and minimum-length filtering) a load error instead of a silently
	// discarded duplicate.
	RejectDupWords bool
	// Exclude lists words (normalized before comparison) to drop before
	// the trie is built.
	Exclude []string
}

// Load reads path in full, normalizes and filters its lines, and builds
// the translator, search trie, and auxiliary index from the survivors.
func Load(path string, opts Options) (*Dictionary, error) {
	words, err := readLines(path)
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(opts.Exclude))
	for _, w := range opts.Exclude {
		excluded[alphabet.Normalize(w)] = true
	}

	filtered := make([]string, 0, len(words))
	for _, w := range words {
		n := alphabet.Normalize(w)
		if n == "" {
			continue
		}
		if excluded[n] {
			continue
		}
		if opts.MinWordLength > 0 && len([]rune(n)) < opts.MinWordLength {
			continue
		}
		filtered = append(filtered, n)
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("dictionary: no usable words found in %s", path)
	}

	translator := alphabet.NewTranslator(filtered)
	builder := wtrie.NewBuilder()

	var index *patricia.Trie
	if opts.BuildAuxIndex {
		index = patricia.NewTrie()
	}

	seen := make(map[string]bool, len(filtered))
	count := 0
	for _, w := range filtered {
		if seen[w] {
			if opts.RejectDupWords {
				return nil, fmt.Errorf("dictionary: duplicate word %q in %s", w, path)
			}
			continue
		}
		seen[w] = true
		idx, ok := translator.Translate(w)
		if !ok {
			continue
		}
		builder.Add(idx)
		if index != nil {
			index.Insert(patricia.Prefix(w), true)
		}
		count++
	}

	trie, err := wtrie.New(builder.Build(), translator.AlphabetSize(), opts.UseCache, opts.MaxCacheAlphabet)
	if err != nil {
		return nil, err
	}

	return &Dictionary{
		Translator: translator,
		Trie:       trie,
		WordCount:  count,
		index:      index,
	}, nil
}

// Contains reports whether the normalized form of word appears in the
// dictionary. It always reports false if the auxiliary index was not
// built.
func (d *Dictionary) Contains(word string) bool {
	if d.index == nil {
		return false
	}
	n := alphabet.Normalize(word)
	return d.index.Match(patricia.Prefix(n))
}

// HasPrefix reports whether any dictionary word starts with the
// normalized form of prefix. It always reports false if the auxiliary
// index was not built.
func (d *Dictionary) HasPrefix(prefix string) bool {
	if d.index == nil {
		return false
	}
	n := alphabet.Normalize(prefix)
	found := false
	_ = d.index.VisitSubtree(patricia.Prefix(n), func(_ patricia.Prefix, _ patricia.Item) error {
		found = true
		return patricia.SkipSubtree
	})
	return found
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: could not read dictionary: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dictionary: could not read words from dictionary: %w", err)
	}
	return lines, nil
}
