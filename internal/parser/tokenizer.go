package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// tokenizer walks a line lazily, one whitespace-delimited token at a time,
// with a single token of lookahead.
type tokenizer struct {
	line    string
	pos     int
	peeked  string
	hasPeek bool
}

func newTokenizer(line string) *tokenizer {
	return &tokenizer{line: line}
}

func (t *tokenizer) scan() (string, bool) {
	for t.pos < len(t.line) {
		r, size := utf8.DecodeRuneInString(t.line[t.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		t.pos += size
	}
	if t.pos >= len(t.line) {
		return "", false
	}

	start := t.pos
	for t.pos < len(t.line) {
		r, size := utf8.DecodeRuneInString(t.line[t.pos:])
		if unicode.IsSpace(r) {
			break
		}
		t.pos += size
	}
	return t.line[start:t.pos], true
}

func (t *tokenizer) next() (string, bool) {
	if t.hasPeek {
		t.hasPeek = false
		return t.peeked, true
	}
	return t.scan()
}

// peek returns the next token without consuming it.
func (t *tokenizer) peek() (string, bool) {
	if !t.hasPeek {
		tok, ok := t.scan()
		if !ok {
			return "", false
		}
		t.peeked, t.hasPeek = tok, true
	}
	return t.peeked, true
}

// rest consumes every remaining token. The result is never nil.
func (t *tokenizer) rest() []string {
	tokens := []string{}
	for tok, ok := t.next(); ok; tok, ok = t.next() {
		tokens = append(tokens, tok)
	}
	return tokens
}

func (t *tokenizer) join() string {
	return strings.Join(t.rest(), " ")
}

// skipTo consumes tokens up to and including the first one equal to word.
func (t *tokenizer) skipTo(word string) bool {
	for tok, ok := t.next(); ok; tok, ok = t.next() {
		if tok == word {
			return true
		}
	}
	return false
}
