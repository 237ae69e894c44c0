package dictionary

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDict(t *testing.T, words ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.txt")
	content := ""
	for _, w := range words {
		content += w + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("could not write test dictionary: %v", err)
	}
	return path
}

func TestLoadBuildsTrieAndTranslator(t *testing.T) {
	path := writeDict(t, "cat", "act", "tac", "", "  dog  ")
	d, err := Load(path, Options{BuildAuxIndex: true})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.WordCount != 4 {
		t.Fatalf("expected 4 words, got %d", d.WordCount)
	}
	if !d.Contains("cat") {
		t.Fatal("expected dictionary to contain 'cat'")
	}
	if d.Contains("zzz") {
		t.Fatal("did not expect dictionary to contain 'zzz'")
	}
}

func TestLoadAppliesExcludeAndMinLength(t *testing.T) {
	path := writeDict(t, "a", "cat", "catastrophe")
	d, err := Load(path, Options{MinWordLength: 2, Exclude: []string{"catastrophe"}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.WordCount != 1 {
		t.Fatalf("expected only 'cat' to survive filtering, got %d words", d.WordCount)
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load("/no/such/file.txt", Options{}); err == nil {
		t.Fatal("expected error loading a nonexistent dictionary")
	}
}

func TestLoadRejectsEmptyDictionary(t *testing.T) {
	path := writeDict(t, "", "   ")
	if _, err := Load(path, Options{}); err == nil {
		t.Fatal("expected error when no usable words remain")
	}
}

func TestLoadRejectDupWords(t *testing.T) {
	path := writeDict(t, "cat", "Cat")
	if _, err := Load(path, Options{}); err != nil {
		t.Fatalf("duplicate words should be silently deduped by default: %v", err)
	}
	if _, err := Load(path, Options{RejectDupWords: true}); err == nil {
		t.Fatal("expected RejectDupWords to turn a duplicate normalized word into a load error")
	}
}
