// Package parser decodes lines an engine writes to its controller under the
// USI protocol. Parse is pure and safe for concurrent use.
package parser

import (
	"fmt"
	"strconv"

	"usi_bridge/internal/domain/usi"
	"usi_bridge/internal/errors"
)

type commandParser func(t *tokenizer) (usi.Command, error)

var commands = map[string]commandParser{
	"bestmove":  parseBestMove,
	"checkmate": parseCheckmate,
	"id":        parseId,
	"info":      parseInfo,
	"option":    parseOption,
	"readyok":   func(*tokenizer) (usi.Command, error) { return usi.ReadyOk{}, nil },
	"usiok":     func(*tokenizer) (usi.Command, error) { return usi.UsiOk{}, nil },
}

// Parse decodes one line. A line with no tokens fails with
// errors.ErrIllegalSyntax; an unrecognized leading keyword yields
// usi.Unknown and no error.
func Parse(line string) (usi.Command, error) {
	t := newTokenizer(line)

	keyword, ok := t.next()
	if !ok {
		return nil, illegal("empty line")
	}

	parse, ok := commands[keyword]
	if !ok {
		return usi.Unknown{Token: keyword}, nil
	}
	return parse(t)
}

func illegal(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errors.ErrIllegalSyntax}, args...)...)
}

func nextInt32(t *tokenizer, what string) (int32, error) {
	tok, ok := t.next()
	if !ok {
		return 0, illegal("%s: missing value", what)
	}
	return atoi32(tok, what)
}

func atoi32(tok, what string) (int32, error) {
	v, err := strconv.ParseInt(tok, 10, 32)
	if err != nil {
		return 0, illegal("%s: %q is not an int32", what, tok)
	}
	return int32(v), nil
}

func nextUint64(t *tokenizer, what string) (uint64, error) {
	tok, ok := t.next()
	if !ok {
		return 0, illegal("%s: missing value", what)
	}
	v, err := strconv.ParseUint(tok, 10, 64)
	if err != nil {
		return 0, illegal("%s: %q is not a uint64", what, tok)
	}
	return v, nil
}
