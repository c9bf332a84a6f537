package parser

import (
	"github.com/samber/lo"

	"usi_bridge/internal/domain/usi"
)

const emptyLiteral = "<empty>"

type optionParser func(t *tokenizer) (usi.OptionKind, error)

var optionKinds = map[string]optionParser{
	"check":    parseCheck,
	"spin":     parseSpin,
	"combo":    parseCombo,
	"button":   func(t *tokenizer) (usi.OptionKind, error) { return usi.Button{Default: stringDefault(t)}, nil },
	"string":   func(t *tokenizer) (usi.OptionKind, error) { return usi.String{Default: stringDefault(t)}, nil },
	"filename": func(t *tokenizer) (usi.OptionKind, error) { return usi.Filename{Default: stringDefault(t)}, nil },
}

// option name <name> type <type> ...
func parseOption(t *tokenizer) (usi.Command, error) {
	if tok, _ := t.next(); tok != "name" {
		return nil, illegal("option: expected name, got %q", tok)
	}
	name, ok := t.next()
	if !ok {
		return nil, illegal("option: missing name")
	}
	if tok, _ := t.next(); tok != "type" {
		return nil, illegal("option %s: expected type, got %q", name, tok)
	}
	typ, _ := t.next()
	parse, ok := optionKinds[typ]
	if !ok {
		return nil, illegal("option %s: unknown type %q", name, typ)
	}

	kind, err := parse(t)
	if err != nil {
		return nil, err
	}
	return usi.Option{Name: name, Kind: kind}, nil
}

func parseCheck(t *tokenizer) (usi.OptionKind, error) {
	if !t.skipTo("default") {
		return usi.Check{}, nil
	}

	// A missing or non-bool value leaves the default unset.
	tok, _ := t.next()
	switch tok {
	case "true":
		return usi.Check{Default: lo.ToPtr(true)}, nil
	case "false":
		return usi.Check{Default: lo.ToPtr(false)}, nil
	}
	return usi.Check{}, nil
}

func parseSpin(t *tokenizer) (usi.OptionKind, error) {
	var spin usi.Spin

	for key, ok := t.next(); ok; key, ok = t.next() {
		var target **int32
		switch key {
		case "default":
			target = &spin.Default
		case "min":
			target = &spin.Min
		case "max":
			target = &spin.Max
		default:
			continue
		}

		v, err := nextInt32(t, "option spin "+key)
		if err != nil {
			return nil, err
		}
		*target = lo.ToPtr(v)
	}
	return spin, nil
}

func parseCombo(t *tokenizer) (usi.OptionKind, error) {
	combo := usi.Combo{Vars: []string{}}

	for key, ok := t.next(); ok; key, ok = t.next() {
		switch key {
		case "default":
			if tok, ok := t.next(); ok {
				combo.Default = lo.ToPtr(defaultValue(tok))
			}
		case "var":
			// Everything after the first var belongs to the list.
			combo.Vars = t.rest()
			return combo, nil
		}
	}
	return combo, nil
}

// stringDefault scans to `default` and takes the token after it. Without
// such a token there is no default.
func stringDefault(t *tokenizer) *string {
	if !t.skipTo("default") {
		return nil
	}
	tok, ok := t.next()
	if !ok {
		return nil
	}
	return lo.ToPtr(defaultValue(tok))
}

func defaultValue(tok string) string {
	if tok == emptyLiteral {
		return ""
	}
	return tok
}
