package usi

import (
	"math"
	"time"
)

// InfoEntry is one keyword group of an `info` line.
type InfoEntry interface {
	Keyword() string
	infoEntry()
}

type ScoreKind int

const (
	CpExact ScoreKind = iota
	CpLowerbound
	CpUpperbound
	MateExact
	MateLowerbound
	MateUpperbound
	// MateSignOnly is `mate +` or `mate -`; the value is +1 or -1.
	MateSignOnly
)

var scoreKindNames = [...]string{
	CpExact:        "cp",
	CpLowerbound:   "cp_lowerbound",
	CpUpperbound:   "cp_upperbound",
	MateExact:      "mate",
	MateLowerbound: "mate_lowerbound",
	MateUpperbound: "mate_upperbound",
	MateSignOnly:   "mate_sign",
}

func (k ScoreKind) String() string {
	if k < 0 || int(k) >= len(scoreKindNames) {
		return "unknown"
	}
	return scoreKindNames[k]
}

func (k ScoreKind) IsMate() bool {
	return k >= MateExact
}

type Depth struct {
	Depth    int32  `json:"depth" bson:"depth"`
	SelDepth *int32 `json:"seldepth,omitempty" bson:"seldepth,omitempty"`
}

type Time struct {
	Millis uint64 `json:"ms" bson:"ms"`
}

// Duration saturates at the largest time.Duration.
func (t Time) Duration() time.Duration {
	if t.Millis > uint64(math.MaxInt64/int64(time.Millisecond)) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(t.Millis) * time.Millisecond
}

type MultiPv struct {
	Value int32 `json:"value" bson:"value"`
}

type Nodes struct {
	Value int32 `json:"value" bson:"value"`
}

// HashFull is the transposition table occupancy in permille.
type HashFull struct {
	Value int32 `json:"value" bson:"value"`
}

type Nps struct {
	Value int32 `json:"value" bson:"value"`
}

// Score is a centipawn or mate-distance evaluation. Mate values are plies.
type Score struct {
	Value int32     `json:"value" bson:"value"`
	Kind  ScoreKind `json:"kind" bson:"kind"`
}

type CurrMove struct {
	Move string `json:"move" bson:"move"`
}

// Pv is always the last entry of its line.
type Pv struct {
	Moves []string `json:"moves" bson:"moves"`
}

// Text is `info string ...`; always the last entry of its line.
type Text struct {
	Value string `json:"value" bson:"value"`
}

func (Depth) Keyword() string    { return "depth" }
func (Time) Keyword() string     { return "time" }
func (MultiPv) Keyword() string  { return "multipv" }
func (Nodes) Keyword() string    { return "nodes" }
func (HashFull) Keyword() string { return "hashfull" }
func (Nps) Keyword() string      { return "nps" }
func (Score) Keyword() string    { return "score" }
func (CurrMove) Keyword() string { return "currmove" }
func (Pv) Keyword() string       { return "pv" }
func (Text) Keyword() string     { return "string" }

func (Depth) infoEntry()    {}
func (Time) infoEntry()     {}
func (MultiPv) infoEntry()  {}
func (Nodes) infoEntry()    {}
func (HashFull) infoEntry() {}
func (Nps) infoEntry()      {}
func (Score) infoEntry()    {}
func (CurrMove) infoEntry() {}
func (Pv) infoEntry()       {}
func (Text) infoEntry()     {}
