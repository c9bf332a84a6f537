package usi

// Command is one decoded engine->GUI line. The set of variants is closed.
type Command interface {
	Keyword() string
	command()
}

type BestMoveKind int

const (
	BestMoveMove BestMoveKind = iota
	BestMoveResign
	BestMoveWin
)

func (k BestMoveKind) String() string {
	switch k {
	case BestMoveResign:
		return "resign"
	case BestMoveWin:
		return "win"
	default:
		return "move"
	}
}

// BestMove is `bestmove resign|win|<move> [ponder <move>]`.
// Move and Ponder are only set for BestMoveMove.
type BestMove struct {
	Kind   BestMoveKind `json:"kind" bson:"kind"`
	Move   string       `json:"move,omitempty" bson:"move,omitempty"`
	Ponder *string      `json:"ponder,omitempty" bson:"ponder,omitempty"`
}

type CheckmateKind int

const (
	CheckmateMate CheckmateKind = iota
	CheckmateNoMate
	CheckmateTimeout
)

func (k CheckmateKind) String() string {
	switch k {
	case CheckmateNoMate:
		return "nomate"
	case CheckmateTimeout:
		return "timeout"
	default:
		return "mate"
	}
}

// Checkmate is the answer to a tsume search. Moves holds at least one move
// when Kind is CheckmateMate.
type Checkmate struct {
	Kind  CheckmateKind `json:"kind" bson:"kind"`
	Moves []string      `json:"moves,omitempty" bson:"moves,omitempty"`
}

type IdField int

const (
	IdName IdField = iota
	IdAuthor
)

func (f IdField) String() string {
	if f == IdAuthor {
		return "author"
	}
	return "name"
}

type Id struct {
	Field IdField `json:"field" bson:"field"`
	Value string  `json:"value" bson:"value"`
}

// Info keeps entries in the order the engine reported them.
type Info struct {
	Entries []InfoEntry `json:"entries" bson:"entries"`
}

type Option struct {
	Name string     `json:"name" bson:"name"`
	Kind OptionKind `json:"kind" bson:"kind"`
}

type ReadyOk struct{}

type UsiOk struct{}

// Unknown is any line whose leading token is not a known command.
type Unknown struct {
	Token string `json:"token" bson:"token"`
}

func (BestMove) Keyword() string  { return "bestmove" }
func (Checkmate) Keyword() string { return "checkmate" }
func (Id) Keyword() string        { return "id" }
func (Info) Keyword() string      { return "info" }
func (Option) Keyword() string    { return "option" }
func (ReadyOk) Keyword() string   { return "readyok" }
func (UsiOk) Keyword() string     { return "usiok" }
func (u Unknown) Keyword() string { return u.Token }

func (BestMove) command()  {}
func (Checkmate) command() {}
func (Id) command()        {}
func (Info) command()      {}
func (Option) command()    {}
func (ReadyOk) command()   {}
func (UsiOk) command()     {}
func (Unknown) command()   {}
