package parser

import (
	"github.com/samber/lo"

	"usi_bridge/internal/domain/usi"
)

// Keywords followed by a single int32.
var int32Entries = map[string]func(int32) usi.InfoEntry{
	"multipv":  func(v int32) usi.InfoEntry { return usi.MultiPv{Value: v} },
	"nodes":    func(v int32) usi.InfoEntry { return usi.Nodes{Value: v} },
	"hashfull": func(v int32) usi.InfoEntry { return usi.HashFull{Value: v} },
	"nps":      func(v int32) usi.InfoEntry { return usi.Nps{Value: v} },
}

func parseInfo(t *tokenizer) (usi.Command, error) {
	entries := []usi.InfoEntry{}

	for {
		keyword, ok := t.next()
		if !ok {
			return usi.Info{Entries: entries}, nil
		}

		if build, ok := int32Entries[keyword]; ok {
			v, err := nextInt32(t, "info "+keyword)
			if err != nil {
				return nil, err
			}
			entries = append(entries, build(v))
			continue
		}

		switch keyword {
		case "depth":
			depth, err := parseDepth(t)
			if err != nil {
				return nil, err
			}
			entries = append(entries, depth)
		case "time":
			ms, err := nextUint64(t, "info time")
			if err != nil {
				return nil, err
			}
			entries = append(entries, usi.Time{Millis: ms})
		case "score":
			score, err := parseScore(t)
			if err != nil {
				return nil, err
			}
			entries = append(entries, score)
		case "currmove":
			move, ok := t.next()
			if !ok {
				return nil, illegal("info currmove: missing move")
			}
			entries = append(entries, usi.CurrMove{Move: move})
		case "pv":
			// pv and string swallow the rest of the line.
			entries = append(entries, usi.Pv{Moves: t.rest()})
			return usi.Info{Entries: entries}, nil
		case "string":
			entries = append(entries, usi.Text{Value: t.join()})
			return usi.Info{Entries: entries}, nil
		default:
			return nil, illegal("info: unknown keyword %q", keyword)
		}
	}
}

func parseDepth(t *tokenizer) (usi.Depth, error) {
	depth, err := nextInt32(t, "info depth")
	if err != nil {
		return usi.Depth{}, err
	}

	entry := usi.Depth{Depth: depth}
	if tok, ok := t.peek(); ok && tok == "seldepth" {
		t.next()
		sel, err := nextInt32(t, "info seldepth")
		if err != nil {
			return usi.Depth{}, err
		}
		entry.SelDepth = lo.ToPtr(sel)
	}
	return entry, nil
}

// score cp <n> [bound] | score mate <n> [bound] | score mate +|-
func parseScore(t *tokenizer) (usi.Score, error) {
	unit, ok := t.next()
	if !ok {
		return usi.Score{}, illegal("info score: missing unit")
	}

	switch unit {
	case "cp":
		v, err := nextInt32(t, "info score cp")
		if err != nil {
			return usi.Score{}, err
		}
		return usi.Score{Value: v, Kind: scoreBound(t, usi.CpExact, usi.CpLowerbound, usi.CpUpperbound)}, nil
	case "mate":
		tok, ok := t.next()
		if !ok {
			return usi.Score{}, illegal("info score mate: missing value")
		}
		switch tok {
		case "+":
			return usi.Score{Value: 1, Kind: usi.MateSignOnly}, nil
		case "-":
			return usi.Score{Value: -1, Kind: usi.MateSignOnly}, nil
		}
		v, err := atoi32(tok, "info score mate")
		if err != nil {
			return usi.Score{}, err
		}
		return usi.Score{Value: v, Kind: scoreBound(t, usi.MateExact, usi.MateLowerbound, usi.MateUpperbound)}, nil
	}
	return usi.Score{}, illegal("info score: unknown unit %q", unit)
}

func scoreBound(t *tokenizer, exact, lower, upper usi.ScoreKind) usi.ScoreKind {
	tok, _ := t.peek()
	switch tok {
	case "lowerbound":
		t.next()
		return lower
	case "upperbound":
		t.next()
		return upper
	}
	return exact
}
