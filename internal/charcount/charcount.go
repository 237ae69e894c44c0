// Package charcount implements the residual multiset of letters tracked
// while a partial anagram is assembled, and the fingerprint used to key
// the trie's memoization cache.
package charcount

import (
	"fmt"
	"math/big"
)

// CharSet is a dense presence test over the same index space as a
// CharCount, used by the trie walk to notice that some letter of the
// original residual was never spent on any produced word.
type CharSet struct {
	present []bool
	count   int
}

// NewCharSet builds a CharSet marking every index with a positive count.
func NewCharSet(counts []int) *CharSet {
	present := make([]bool, len(counts))
	count := 0
	for i, c := range counts {
		if c > 0 {
			present[i] = true
			count++
		}
	}
	return &CharSet{present: present, count: count}
}

// Remove clears every index named in word, stopping early once the set
// is empty. A blank word against an already-empty set is a no-op.
func (s *CharSet) Remove(word []int) {
	if len(word) == 0 && s.IsEmpty() {
		return
	}
	for _, i := range word {
		if i >= 0 && i < len(s.present) && s.present[i] {
			s.present[i] = false
			s.count--
		}
		if s.IsEmpty() {
			break
		}
	}
}

// IsEmpty reports whether every index has been removed.
func (s *CharSet) IsEmpty() bool {
	return s.count == 0
}

// CharCount is a mutable multiset of letter indices, the residual letters
// still available to extend a partial anagram. The zero value is not
// usable; construct with New.
type CharCount struct {
	counts        []int
	sum           int
	first         int
	last          int // exclusive upper bound on populated indices
	fingerprint   *big.Int
	fingerprinted bool
}

// New returns an empty CharCount sized for an alphabet of the given size.
func New(alphabetSize int) *CharCount {
	return &CharCount{counts: make([]int, alphabetSize), first: 0, last: 1}
}

// Sum returns the total number of letters still held.
func (c *CharCount) Sum() int { return c.sum }

// First returns the lowest index with a positive count, or 0 if empty.
func (c *CharCount) First() int { return c.first }

// Last returns one past the highest index with a positive count, or 1 if empty.
func (c *CharCount) Last() int { return c.last }

// Has reports whether index i currently has a positive count.
func (c *CharCount) Has(i int) bool {
	return i >= 0 && i < len(c.counts) && c.counts[i] > 0
}

// CountAt returns the raw count at index i.
func (c *CharCount) CountAt(i int) int { return c.counts[i] }

// IsEmpty reports whether the multiset holds no letters.
func (c *CharCount) IsEmpty() bool { return c.sum == 0 }

// Fingerprinted reports whether CalculateFingerprint has run on this value.
func (c *CharCount) Fingerprinted() bool { return c.fingerprinted }

// Fingerprint returns the previously calculated fingerprint, or nil if
// CalculateFingerprint has not yet been called.
func (c *CharCount) Fingerprint() *big.Int { return c.fingerprint }

func (c *CharCount) checkMutable() {
	if c.fingerprinted {
		panic("charcount: mutation after fingerprinting is forbidden; clone first")
	}
}

// Add increments the count at every index of word. It reports an error,
// leaving the receiver partially mutated, if any index is out of range.
func (c *CharCount) Add(word []int) error {
	c.checkMutable()
	for pos, i := range word {
		if i < 0 || i >= len(c.counts) {
			return fmt.Errorf("charcount: index %d at position %d out of range [0,%d)", i, pos, len(c.counts))
		}
		c.increment(i)
	}
	return nil
}

func (c *CharCount) increment(i int) {
	c.counts[i]++
	if c.sum == 0 {
		c.first = i
		c.last = i + 1
	} else {
		if i < c.first {
			c.first = i
		}
		if i+1 > c.last {
			c.last = i + 1
		}
	}
	c.sum++
}

// Subtract decrements the count at every index of word. It stops and
// reports the failing position if any index is out of range or already
// zero, leaving the receiver partially mutated up to that point.
func (c *CharCount) Subtract(word []int) (ok bool, failedAt int) {
	c.checkMutable()
	for pos, i := range word {
		if i < 0 || i >= len(c.counts) || c.counts[i] == 0 {
			return false, pos
		}
		c.decrement(i)
	}
	return true, -1
}

// Decrement removes one occurrence of letter i, maintaining first/last in
// O(1) for the common case and O(alphabet size) only when the removed
// letter was the sole occupant of an endpoint.
func (c *CharCount) Decrement(i int) {
	c.checkMutable()
	c.decrement(i)
}

func (c *CharCount) decrement(i int) {
	c.counts[i]--
	c.sum--
	if c.sum == 0 {
		c.first = 0
		c.last = 1
		return
	}
	if c.first == c.last-1 {
		return
	}
	switch {
	case c.sum == 1:
		for j := c.first; j < c.last; j++ {
			if c.counts[j] > 0 {
				c.first = j
				c.last = j + 1
				break
			}
		}
	case i == c.first:
		for j := c.first; j < c.last; j++ {
			if c.counts[j] > 0 {
				c.first = j
				break
			}
		}
	case i == c.last-1:
		for j := c.last - 1; j >= c.first; j-- {
			if c.counts[j] > 0 {
				c.last = j + 1
				break
			}
		}
	}
}

// SetLimits recomputes first and last by scanning every index. Useful once
// after a batch of Add/Subtract calls that may have left first/last stale
// relative to how the caller wants to interpret an all-zero setup.
func (c *CharCount) SetLimits() {
	c.checkMutable()
	first, last := 0, 1
	found := false
	for i, v := range c.counts {
		if v > 0 {
			if !found {
				first = i
				found = true
			}
			last = i + 1
		}
	}
	c.first, c.last = first, last
}

// ToSet returns a CharSet snapshot of which indices currently have a
// positive count.
func (c *CharCount) ToSet() *CharSet {
	return NewCharSet(c.counts)
}

// Clone returns an independent, mutable copy. The clone is never marked
// fingerprinted even if the receiver is, since mutation following a
// fingerprint calculation must happen on a fresh copy.
func (c *CharCount) Clone() *CharCount {
	counts := make([]int, len(c.counts))
	copy(counts, c.counts)
	return &CharCount{counts: counts, sum: c.sum, first: c.first, last: c.last}
}

// CalculateFingerprint computes and caches a base-10 positional digest of
// the residual: digit i is counts[i] mod 10, weighted by powers[i]. Once
// computed the receiver is frozen; subsequent mutation attempts panic.
// powers must have at least len(c.counts) entries, powers[k] == 10^k.
func (c *CharCount) CalculateFingerprint(powers []*big.Int) *big.Int {
	if c.fingerprinted {
		return c.fingerprint
	}
	fp := new(big.Int)
	tmp := new(big.Int)
	for i := c.first; i < c.last; i++ {
		digit := c.counts[i] % 10
		if digit == 0 {
			continue
		}
		tmp.Mul(big.NewInt(int64(digit)), powers[i])
		fp.Add(fp, tmp)
	}
	c.fingerprint = fp
	c.fingerprinted = true
	return fp
}

// Equal reports structural equality. When both receivers have already been
// fingerprinted, the fingerprints alone decide it; otherwise it falls back
// to comparing sum and every count across the union of both receivers'
// populated ranges.
func (c *CharCount) Equal(other *CharCount) bool {
	if c.fingerprinted && other.fingerprinted {
		return c.fingerprint.Cmp(other.fingerprint) == 0
	}
	if c.sum != other.sum {
		return false
	}
	n := len(c.counts)
	if len(other.counts) != n {
		return false
	}
	for i := 0; i < n; i++ {
		if c.counts[i] != other.counts[i] {
			return false
		}
	}
	return true
}

// PowersOfTen precomputes 10^0 .. 10^(n-1) for use with CalculateFingerprint.
func PowersOfTen(n int) []*big.Int {
	powers := make([]*big.Int, n)
	p := big.NewInt(1)
	ten := big.NewInt(10)
	for i := 0; i < n; i++ {
		powers[i] = new(big.Int).Set(p)
		p.Mul(p, ten)
	}
	return powers
}
