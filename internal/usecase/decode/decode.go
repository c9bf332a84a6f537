package decode

import (
	"github.com/sourcegraph/conc/iter"

	"usi_bridge/internal/domain/usi"
	"usi_bridge/internal/parser"
)

type Result struct {
	Line    string
	Command usi.Command
	Err     error
}

// ResultView is the JSON shape of a Result.
type ResultView struct {
	Line    string        `json:"line"`
	Command *usi.Envelope `json:"command,omitempty"`
	Error   string        `json:"error,omitempty"`
}

func (r Result) View() ResultView {
	view := ResultView{Line: r.Line}
	if r.Err != nil {
		view.Error = r.Err.Error()
		return view
	}
	env := usi.NewEnvelope(r.Command)
	view.Command = &env
	return view
}

type DecodeUseCase struct {
	workers int
}

func NewDecodeUseCase(workers int) *DecodeUseCase {
	if workers < 1 {
		workers = 1
	}
	return &DecodeUseCase{workers: workers}
}

func (d *DecodeUseCase) Decode(line string) Result {
	cmd, err := parser.Parse(line)
	return Result{Line: line, Command: cmd, Err: err}
}

// DecodeBatch decodes lines on at most d.workers goroutines. Results come
// back in input order.
func (d *DecodeUseCase) DecodeBatch(lines []string) []Result {
	mapper := iter.Mapper[string, Result]{MaxGoroutines: d.workers}
	return mapper.Map(lines, func(line *string) Result {
		return d.Decode(*line)
	})
}
