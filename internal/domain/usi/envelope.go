package usi

// Envelope is the wire view of a command: its keyword plus a payload that
// spells enums out as strings.
type Envelope struct {
	Kind    string `json:"kind" bson:"kind"`
	Payload any    `json:"payload,omitempty" bson:"payload,omitempty"`
}

type bestMoveView struct {
	Result string  `json:"result" bson:"result"`
	Move   string  `json:"move,omitempty" bson:"move,omitempty"`
	Ponder *string `json:"ponder,omitempty" bson:"ponder,omitempty"`
}

type checkmateView struct {
	Result string   `json:"result" bson:"result"`
	Moves  []string `json:"moves,omitempty" bson:"moves,omitempty"`
}

type idView struct {
	Field string `json:"field" bson:"field"`
	Value string `json:"value" bson:"value"`
}

type scoreView struct {
	Value int32  `json:"value" bson:"value"`
	Kind  string `json:"kind" bson:"kind"`
}

type optionView struct {
	Name string     `json:"name" bson:"name"`
	Type string     `json:"type" bson:"type"`
	Spec OptionKind `json:"spec" bson:"spec"`
}

func NewEnvelope(cmd Command) Envelope {
	env := Envelope{Kind: cmd.Keyword()}

	switch c := cmd.(type) {
	case BestMove:
		env.Payload = bestMoveView{Result: c.Kind.String(), Move: c.Move, Ponder: c.Ponder}
	case Checkmate:
		env.Payload = checkmateView{Result: c.Kind.String(), Moves: c.Moves}
	case Id:
		env.Payload = idView{Field: c.Field.String(), Value: c.Value}
	case Info:
		entries := make([]Envelope, 0, len(c.Entries))
		for _, e := range c.Entries {
			entries = append(entries, infoEnvelope(e))
		}
		env.Payload = entries
	case Option:
		env.Payload = optionView{Name: c.Name, Type: c.Kind.Type(), Spec: c.Kind}
	case Unknown:
		env.Kind = "unknown"
		env.Payload = c
	}

	return env
}

func infoEnvelope(e InfoEntry) Envelope {
	if s, ok := e.(Score); ok {
		return Envelope{Kind: s.Keyword(), Payload: scoreView{Value: s.Value, Kind: s.Kind.String()}}
	}
	return Envelope{Kind: e.Keyword(), Payload: e}
}
