package usi

// OptionKind is the typed body of an `option` line.
type OptionKind interface {
	Type() string
	optionKind()
}

type Check struct {
	Default *bool `json:"default,omitempty" bson:"default,omitempty"`
}

type Spin struct {
	Default *int32 `json:"default,omitempty" bson:"default,omitempty"`
	Min     *int32 `json:"min,omitempty" bson:"min,omitempty"`
	Max     *int32 `json:"max,omitempty" bson:"max,omitempty"`
}

type Combo struct {
	Default *string  `json:"default,omitempty" bson:"default,omitempty"`
	Vars    []string `json:"vars" bson:"vars"`
}

type Button struct {
	Default *string `json:"default,omitempty" bson:"default,omitempty"`
}

type String struct {
	Default *string `json:"default,omitempty" bson:"default,omitempty"`
}

type Filename struct {
	Default *string `json:"default,omitempty" bson:"default,omitempty"`
}

func (Check) Type() string    { return "check" }
func (Spin) Type() string     { return "spin" }
func (Combo) Type() string    { return "combo" }
func (Button) Type() string   { return "button" }
func (String) Type() string   { return "string" }
func (Filename) Type() string { return "filename" }

func (Check) optionKind()    {}
func (Spin) optionKind()     {}
func (Combo) optionKind()    {}
func (Button) optionKind()   {}
func (String) optionKind()   {}
func (Filename) optionKind() {}
