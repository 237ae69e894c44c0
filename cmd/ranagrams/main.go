// Copyright 2025 The ranagrams Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the ranagrams command-line anagram finder.

ranagrams enumerates anagrams of a phrase drawn from a dictionary of
words: it finds every sequence of dictionary words whose combined letters
match the phrase's letters exactly. Under the hood it builds a numeric
trie over the dictionary, walks it with a sort-key discipline that
produces each anagram exactly once, and fans the search out across a
roster of worker goroutines that share surplus work through a common
buffer.

# Modes

The default mode prints one anagram per line. --words-in prints just the
dictionary words that can be drawn from the phrase's letters; --strict
and --prove narrow that list to words that participate in at least one
complete anagram.
*/
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/dfhoughton/ranagrams/internal/anagram"
	"github.com/dfhoughton/ranagrams/internal/charcount"
	"github.com/dfhoughton/ranagrams/internal/config"
	"github.com/dfhoughton/ranagrams/internal/dictionary"
	"github.com/dfhoughton/ranagrams/internal/engine"
	"github.com/dfhoughton/ranagrams/internal/logger"
	"github.com/dfhoughton/ranagrams/internal/output"
	"github.com/dfhoughton/ranagrams/internal/utils"
	"github.com/dfhoughton/ranagrams/internal/wtrie"
)

const (
	version = "0.1.0"
	appName = "ranagrams"
	gh      = "https://github.com/dfhoughton/ranagrams"
)

func main() {
	defaultDict := defaultDictionaryPath()
	defCfgPath := defaultConfigPath()
	cfgPath := flag.String("config", defCfgPath, "path to a TOML config file of engine/dictionary/CLI defaults")
	verbose := flag.Bool("verbose", false, "enable debug-level operational logging")

	// A first, lenient pass just to pick up --config/--verbose before the
	// rest of the flags (whose defaults config.InitConfig may override)
	// are registered, tolerating every flag it doesn't itself know about
	// so placement relative to --config/--verbose doesn't matter; the
	// real flag.Parse below re-parses everything for keeps.
	if found, ok := scanEarlyFlag(os.Args[1:], "config"); ok {
		*cfgPath = found
	}
	if _, ok := scanEarlyFlag(os.Args[1:], "verbose"); ok {
		*verbose = true
	}

	cfg := config.DefaultConfig()
	if *cfgPath != "" {
		loaded, err := config.InitConfig(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ranagrams: could not load config from %s, using defaults: %v\n", *cfgPath, err)
		} else {
			cfg = loaded
		}
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	applog := logger.New(appName)
	applog.Debugf("using config file: %s", *cfgPath)

	threadDefault := runtime.NumCPU()
	if cfg.CLI.DefaultThreads > 0 {
		threadDefault = cfg.CLI.DefaultThreads
	}
	formatDefault := "text"
	if cfg.CLI.DefaultFormat != "" {
		formatDefault = cfg.CLI.DefaultFormat
	}

	dictPath := flag.String("dictionary", defaultDict, "a line-delimited list of words usable in anagrams")
	flag.StringVar(dictPath, "d", defaultDict, "shorthand for --dictionary")
	wordsIn := flag.Bool("words-in", false, "print the set of words composable from the phrase's letters")
	flag.BoolVar(wordsIn, "w", false, "shorthand for --words-in")
	strict := flag.Bool("strict", false, "with --words-in, restrict to words occurring in at least one complete anagram")
	prove := flag.Bool("prove", false, "like --strict, plus print a witnessing anagram after each word")
	threads := flag.Int("threads", threadDefault, "the number of worker goroutines to use")
	flag.IntVar(threads, "t", threadDefault, "shorthand for --threads")
	limit := flag.Int("limit", 0, "stop after this many anagrams (0 means no limit)")
	flag.IntVar(limit, "l", 0, "shorthand for --limit")
	minWordLength := flag.Int("minimum-word-length", cfg.Dictionary.MinWordLength, "skip dictionary words shorter than this")
	flag.IntVar(minWordLength, "m", cfg.Dictionary.MinWordLength, "shorthand for --minimum-word-length")
	noCache := flag.Bool("no-cache", !cfg.Engine.CacheEnabled, "disable trie memoization")
	flag.BoolVar(noCache, "C", !cfg.Engine.CacheEnabled, "shorthand for --no-cache")
	random := flag.Bool("random", false, "shuffle the order anagrams and words are discovered in")
	flag.BoolVar(random, "r", false, "shorthand for --random")
	format := flag.String("format", formatDefault, "output format: text or msgpack")
	showVersion := flag.Bool("version", false, "show version and exit")

	var include, exclude repeatableFlag
	flag.Var(&include, "include", "force this word to appear in every anagram (repeatable)")
	flag.Var(&include, "i", "shorthand for --include")
	flag.Var(&exclude, "exclude", "remove this word from the dictionary (repeatable)")
	flag.Var(&exclude, "x", "shorthand for --exclude")

	flag.Parse()

	if *showVersion {
		printVersionBanner()
		os.Exit(0)
	}

	if (*strict || *prove) && !*wordsIn {
		fmt.Fprintln(os.Stderr, "ranagrams: --strict and --prove require --words-in")
		os.Exit(1)
	}
	if *limit != 0 && *wordsIn {
		fmt.Fprintln(os.Stderr, "ranagrams: --limit conflicts with --words-in")
		os.Exit(1)
	}
	phrase := strings.Join(flag.Args(), " ")
	if strings.TrimSpace(phrase) == "" {
		fmt.Fprintln(os.Stderr, "ranagrams: a phrase is required")
		flag.Usage()
		os.Exit(1)
	}

	// --strict/--prove need every dictionary word available to verify
	// candidates against, so the minimum-length filter is skipped.
	effectiveMinLen := *minWordLength
	if *strict || *prove {
		effectiveMinLen = 0
	}

	// --strict/--prove and --include both consult the auxiliary word
	// index, so force it on even when the config file disables it.
	buildAuxIndex := cfg.Dictionary.BuildAuxIndex
	if (*strict || *prove || len(include) > 0) && !buildAuxIndex {
		applog.Debug("forcing auxiliary dictionary index on", "strict", *strict, "prove", *prove, "include", len(include) > 0)
		buildAuxIndex = true
	}

	dict, err := dictionary.Load(*dictPath, dictionary.Options{
		MinWordLength:    effectiveMinLen,
		UseCache:         !*noCache,
		BuildAuxIndex:    buildAuxIndex,
		MaxCacheAlphabet: cfg.Engine.MaxCacheAlpha,
		RejectDupWords:   cfg.Dictionary.RejectDupWords,
		Exclude:          exclude,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ranagrams: could not read dictionary: %v\n", err)
		os.Exit(1)
	}
	applog.Debugf("dictionary loaded: %s words, alphabet size %d, cache %v",
		utils.FormatWithCommas(dict.WordCount), dict.Translator.AlphabetSize(), !*noCache)

	cc, prefix := buildResidual(dict, phrase, include)

	emitter, err := output.New(os.Stdout, output.Format(*format))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ranagrams: %v\n", err)
		os.Exit(1)
	}

	slopFactor := cfg.Engine.SlopFactor

	if *wordsIn {
		applog.Debug("mode: words-in", "strict", *strict, "prove", *prove)
		runWordsIn(dict, cc, *strict, *prove, *random, slopFactor, emitter)
		return
	}

	applog.Debug("mode: anagram search", "threads", *threads, "limit", *limit, "slopFactor", slopFactor)
	runAnagrams(dict, cc, prefix, *threads, *limit, slopFactor, *random, emitter, applog)
}

func defaultDictionaryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := home + "/.anagram-dictionary.txt"
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// defaultConfigPath mirrors the teacher's own per-platform config
// directory convention (~/.config/<app>/config.toml), substituting this
// binary's own name.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// scanEarlyFlag looks for "--name value", "--name=value", or a short-form
// "-name"/"-name=value" among args without needing every other flag to be
// registered first, so --config/--verbose can be read before the rest of
// the flags (whose defaults may depend on the loaded config) exist.
func scanEarlyFlag(args []string, name string) (string, bool) {
	long, short := "--"+name, "-"+name
	for i, a := range args {
		switch {
		case a == long || a == short:
			if i+1 < len(args) {
				return args[i+1], true
			}
			return "", true
		case strings.HasPrefix(a, long+"="):
			return strings.TrimPrefix(a, long+"="), true
		case strings.HasPrefix(a, short+"="):
			return strings.TrimPrefix(a, short+"="), true
		}
	}
	return "", false
}

// buildResidual assembles the initial CharCount from the phrase and any
// --include words, aborting the process with exit code 1 on any
// configuration error, per the driver's error-handling contract.
func buildResidual(dict *dictionary.Dictionary, phrase string, include []string) (*charcount.CharCount, string) {
	tr := dict.Translator
	cc, ok := tr.Count("")
	if !ok {
		log.Fatal("could not build an empty character count")
	}
	for _, word := range strings.Fields(phrase) {
		idx, ok := tr.Translate(word)
		if !ok {
			prefix, suffix := tr.UnfamiliarCharacter(word)
			fmt.Fprintf(os.Stderr, "ranagrams: %q contains a character not in any dictionary word (at %q|%q)\n", word, prefix, suffix)
			os.Exit(1)
		}
		if err := cc.Add(idx); err != nil {
			fmt.Fprintf(os.Stderr, "ranagrams: %v\n", err)
			os.Exit(1)
		}
	}

	var prefix strings.Builder
	for _, word := range include {
		if !dict.Contains(word) {
			if dict.HasPrefix(word) {
				fmt.Fprintf(os.Stderr, "ranagrams: %q is not a dictionary word (did you mean a word starting with it?)\n", word)
			} else {
				fmt.Fprintf(os.Stderr, "ranagrams: %q is not a dictionary word\n", word)
			}
			os.Exit(1)
		}
		idx, ok := tr.Translate(word)
		if !ok {
			p, s := tr.UnfamiliarCharacter(word)
			fmt.Fprintf(os.Stderr, "ranagrams: %q contains a character not in any dictionary word (at %q|%q)\n", word, p, s)
			os.Exit(1)
		}
		if ok, pos := cc.Subtract(idx); !ok {
			fmt.Fprintf(os.Stderr, "ranagrams: %q contains characters not present in the input phrase (at position %d)\n", word, pos)
			os.Exit(1)
		}
		prefix.WriteString(word)
		prefix.WriteString(" ")
	}
	cc.SetLimits()
	return cc, prefix.String()
}

func runAnagrams(dict *dictionary.Dictionary, cc *charcount.CharCount, prefix string, threads, limit, slopFactor int, random bool, emitter output.Emitter, applog *log.Logger) {
	imp := &anagram.Improver{Trie: dict.Trie, Shuffle: shuffler(random)}
	seed := anagram.Seed(cc)
	results, kill := engine.RunWithSlopFactor[*anagram.ToDo](threads, slopFactor, []*anagram.ToDo{seed}, imp)

	count := 0
	for r := range results {
		if !r.Ok {
			break
		}
		words := strings.Fields(r.Item.String(dict.Translator))
		if err := emitter.Anagram(prefix, words); err != nil {
			fmt.Fprintf(os.Stderr, "ranagrams: %v\n", err)
			os.Exit(1)
		}
		count++
		if limit > 0 && count == limit {
			kill.Store(true)
			break
		}
	}
	applog.Debugf("search done: %s anagrams emitted", utils.FormatWithCommas(count))
	_ = emitter.Close()
}

func runWordsIn(dict *dictionary.Dictionary, cc *charcount.CharCount, strict, prove, random bool, slopFactor int, emitter output.Emitter) {
	pairs := dict.Trie.WordsFor(cc, nil, shuffler(random))
	words := make([]string, 0, len(pairs))
	residualByWord := make(map[string]*charcount.CharCount, len(pairs))
	for _, p := range pairs {
		s, ok := dict.Translator.Untranslate(p.Word)
		if !ok {
			continue
		}
		words = append(words, s)
		residualByWord[s] = p.Residual
	}
	if !strict && !prove {
		sort.Strings(words)
		for _, w := range words {
			if err := emitter.Word(w); err != nil {
				fmt.Fprintf(os.Stderr, "ranagrams: %v\n", err)
				os.Exit(1)
			}
		}
		_ = emitter.Close()
		return
	}

	sort.Strings(words)
	witnessed := make(map[string][]string)
	for _, w := range words {
		witness, ok := witnessed[w]
		if !ok {
			residual := residualByWord[w]
			witness, ok = findWitness(dict, residual, slopFactor)
			if !ok {
				continue
			}
			witness = append([]string{w}, witness...)
			for _, ww := range witness {
				if _, already := witnessed[ww]; !already {
					witnessed[ww] = witness
				}
			}
		}
		if err := emitter.Word(w); err != nil {
			fmt.Fprintf(os.Stderr, "ranagrams: %v\n", err)
			os.Exit(1)
		}
		if prove {
			if err := emitter.Witness(witness); err != nil {
				fmt.Fprintf(os.Stderr, "ranagrams: %v\n", err)
				os.Exit(1)
			}
		}
	}
	_ = emitter.Close()
}

// findWitness runs a single-threaded search over residual until the first
// complete anagram is found, then cancels the engine.
func findWitness(dict *dictionary.Dictionary, residual *charcount.CharCount, slopFactor int) ([]string, bool) {
	imp := &anagram.Improver{Trie: dict.Trie}
	seed := anagram.Seed(residual.Clone())
	results, kill := engine.RunWithSlopFactor[*anagram.ToDo](1, slopFactor, []*anagram.ToDo{seed}, imp)
	for r := range results {
		if !r.Ok {
			return nil, false
		}
		kill.Store(true)
		rest := strings.Fields(r.Item.String(dict.Translator))
		return rest, true
	}
	return nil, false
}

// shuffler returns a Fisher-Yates shuffle over a Pair slice when enabled,
// or nil (meaning "leave results in lexicographic order") otherwise. The
// random number source is an external collaborator per the driver's
// scope; this is the one place it is consulted.
func shuffler(enabled bool) func([]wtrie.Pair) {
	if !enabled {
		return nil
	}
	return func(pairs []wtrie.Pair) {
		rand.Shuffle(len(pairs), func(i, j int) {
			pairs[i], pairs[j] = pairs[j], pairs[i]
		})
	}
}

func printVersionBanner() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})
	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print(fmt.Sprintf("[%s] finds anagrams of a phrase", appName))
	logger.Print("", "version", version)
	logger.Print("", "gh", gh)
	logger.Print("")
}
