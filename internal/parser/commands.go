package parser

import (
	"github.com/samber/lo"

	"usi_bridge/internal/domain/usi"
)

// bestmove resign | win | <move> [ponder <move>]
func parseBestMove(t *tokenizer) (usi.Command, error) {
	move, ok := t.next()
	if !ok {
		return nil, illegal("bestmove: missing move")
	}

	next, ok := t.next()
	if !ok {
		switch move {
		case "resign":
			return usi.BestMove{Kind: usi.BestMoveResign}, nil
		case "win":
			return usi.BestMove{Kind: usi.BestMoveWin}, nil
		}
		return usi.BestMove{Kind: usi.BestMoveMove, Move: move}, nil
	}

	if next != "ponder" {
		return nil, illegal("bestmove: unexpected %q after move", next)
	}
	ponder, ok := t.next()
	if !ok {
		return nil, illegal("bestmove: missing ponder move")
	}
	if extra, ok := t.next(); ok {
		return nil, illegal("bestmove: unexpected %q after ponder move", extra)
	}

	return usi.BestMove{Kind: usi.BestMoveMove, Move: move, Ponder: lo.ToPtr(ponder)}, nil
}

// checkmate notimplemented | nomate | timeout | <move>+
func parseCheckmate(t *tokenizer) (usi.Command, error) {
	first, ok := t.next()
	if !ok {
		return nil, illegal("checkmate: missing result")
	}

	switch first {
	case "notimplemented", "nomate":
		return usi.Checkmate{Kind: usi.CheckmateNoMate}, nil
	case "timeout":
		return usi.Checkmate{Kind: usi.CheckmateTimeout}, nil
	}

	moves := append([]string{first}, t.rest()...)
	return usi.Checkmate{Kind: usi.CheckmateMate, Moves: moves}, nil
}

// id name|author <text>
func parseId(t *tokenizer) (usi.Command, error) {
	field, _ := t.next()

	switch field {
	case "name":
		return usi.Id{Field: usi.IdName, Value: t.join()}, nil
	case "author":
		return usi.Id{Field: usi.IdAuthor, Value: t.join()}, nil
	}
	return nil, illegal("id: expected name or author, got %q", field)
}
