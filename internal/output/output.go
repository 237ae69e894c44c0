// Package output renders anagram results either as plain lines of text,
// matching the original CLI's output, or as a stream of msgpack-encoded
// records for callers that want a structured, machine-readable format.
package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Anagram is one found anagram, optionally prefixed by words the caller
// required via --include.
type Anagram struct {
	Prefix string   `msgpack:"prefix,omitempty"`
	Words  []string `msgpack:"words"`
}

// WordRecord is one entry of a --words-in listing.
type WordRecord struct {
	Word string `msgpack:"word"`
}

// WitnessRecord is the anagram that proves a --words-in --prove word
// really does participate in a complete anagram.
type WitnessRecord struct {
	Words []string `msgpack:"words"`
}

// Emitter writes anagram results to an underlying stream in one of the
// supported formats.
type Emitter interface {
	Anagram(prefix string, words []string) error
	Word(word string) error
	Witness(words []string) error
	Close() error
}

// Format names a supported output encoding.
type Format string

const (
	// FormatText writes one space-joined anagram per line, matching the
	// original CLI's plain output.
	FormatText Format = "text"
	// FormatMsgpack writes a stream of msgpack-encoded records, one per
	// result, for consumption by other programs.
	FormatMsgpack Format = "msgpack"
)

// New returns an Emitter writing to w in the given format.
func New(w io.Writer, format Format) (Emitter, error) {
	switch format {
	case "", FormatText:
		return &textEmitter{w: bufio.NewWriter(w)}, nil
	case FormatMsgpack:
		return &msgpackEmitter{enc: msgpack.NewEncoder(w)}, nil
	default:
		return nil, fmt.Errorf("output: unknown format %q", format)
	}
}

type textEmitter struct {
	w *bufio.Writer
}

func (e *textEmitter) Anagram(prefix string, words []string) error {
	if prefix != "" {
		if _, err := e.w.WriteString(prefix); err != nil {
			return err
		}
	}
	for i, word := range words {
		if i > 0 {
			if _, err := e.w.WriteString(" "); err != nil {
				return err
			}
		}
		if _, err := e.w.WriteString(word); err != nil {
			return err
		}
	}
	_, err := e.w.WriteString("\n")
	if err == nil {
		err = e.w.Flush()
	}
	return err
}

func (e *textEmitter) Word(word string) error {
	_, err := e.w.WriteString(word + "\n")
	if err == nil {
		err = e.w.Flush()
	}
	return err
}

func (e *textEmitter) Witness(words []string) error {
	if _, err := e.w.WriteString("\t"); err != nil {
		return err
	}
	for i, word := range words {
		if i > 0 {
			if _, err := e.w.WriteString(" "); err != nil {
				return err
			}
		}
		if _, err := e.w.WriteString(word); err != nil {
			return err
		}
	}
	_, err := e.w.WriteString("\n")
	if err == nil {
		err = e.w.Flush()
	}
	return err
}

func (e *textEmitter) Close() error {
	return e.w.Flush()
}

type msgpackEmitter struct {
	enc *msgpack.Encoder
}

func (e *msgpackEmitter) Anagram(prefix string, words []string) error {
	return e.enc.Encode(Anagram{Prefix: prefix, Words: words})
}

func (e *msgpackEmitter) Word(word string) error {
	return e.enc.Encode(WordRecord{Word: word})
}

func (e *msgpackEmitter) Witness(words []string) error {
	return e.enc.Encode(WitnessRecord{Words: words})
}

func (e *msgpackEmitter) Close() error {
	return nil
}
