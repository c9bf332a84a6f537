package parser_test

import (
	"testing"

	"github.com/samber/lo"

	"usi_bridge/internal/domain/usi"
)

func TestParseOption(t *testing.T) {
	runParseTests(t, []parseTest{
		{
			name: "check",
			line: "option name USI_Ponder type check default true",
			want: usi.Option{Name: "USI_Ponder", Kind: usi.Check{Default: lo.ToPtr(true)}},
		},
		{
			name: "check false after noise",
			line: "option name OwnBook type check foo bar default false",
			want: usi.Option{Name: "OwnBook", Kind: usi.Check{Default: lo.ToPtr(false)}},
		},
		{
			name: "check without default",
			line: "option name OwnBook type check",
			want: usi.Option{Name: "OwnBook", Kind: usi.Check{}},
		},
		{
			name: "spin any order",
			line: "option name Threads type spin max 16 default 4 min 1",
			want: usi.Option{Name: "Threads", Kind: usi.Spin{
				Default: lo.ToPtr[int32](4),
				Min:     lo.ToPtr[int32](1),
				Max:     lo.ToPtr[int32](16),
			}},
		},
		{
			name: "spin skips unknown keys",
			line: "option name Depth type spin step default -1",
			want: usi.Option{Name: "Depth", Kind: usi.Spin{Default: lo.ToPtr[int32](-1)}},
		},
		{
			name: "spin repeated key keeps last",
			line: "option name Depth type spin min 1 min 2",
			want: usi.Option{Name: "Depth", Kind: usi.Spin{Min: lo.ToPtr[int32](2)}},
		},
		{
			name: "spin bare",
			line: "option name Depth type spin",
			want: usi.Option{Name: "Depth", Kind: usi.Spin{}},
		},
		{
			name: "combo",
			line: "option name Style type combo default Normal var Solid Normal Risky",
			want: usi.Option{Name: "Style", Kind: usi.Combo{
				Default: lo.ToPtr("Normal"),
				Vars:    []string{"Solid", "Normal", "Risky"},
			}},
		},
		{
			name: "combo vars are the rest of the line",
			line: "option name Style type combo var Solid var Risky default Solid",
			want: usi.Option{Name: "Style", Kind: usi.Combo{
				Vars: []string{"Solid", "var", "Risky", "default", "Solid"},
			}},
		},
		{
			name: "combo empty default",
			line: "option name Book type combo default <empty> var <empty> a.bin",
			want: usi.Option{Name: "Book", Kind: usi.Combo{
				Default: lo.ToPtr(""),
				Vars:    []string{"<empty>", "a.bin"},
			}},
		},
		{
			name: "combo trailing default",
			line: "option name Style type combo default",
			want: usi.Option{Name: "Style", Kind: usi.Combo{Vars: []string{}}},
		},
		{
			name: "check default not a bool",
			line: "option name OwnBook type check default yes",
			want: usi.Option{Name: "OwnBook", Kind: usi.Check{}},
		},
		{
			name: "check default missing",
			line: "option name OwnBook type check default",
			want: usi.Option{Name: "OwnBook", Kind: usi.Check{}},
		},
		{
			name: "combo without vars",
			line: "option name Style type combo default Normal",
			want: usi.Option{Name: "Style", Kind: usi.Combo{Default: lo.ToPtr("Normal"), Vars: []string{}}},
		},
		{
			name: "button",
			line: "option name Clear_Hash type button",
			want: usi.Option{Name: "Clear_Hash", Kind: usi.Button{}},
		},
		{
			name: "string",
			line: "option name BookFile type string default book/standard.db",
			want: usi.Option{Name: "BookFile", Kind: usi.String{Default: lo.ToPtr("book/standard.db")}},
		},
		{
			name: "string empty literal",
			line: "option name EvalDir type string default <empty>",
			want: usi.Option{Name: "EvalDir", Kind: usi.String{Default: lo.ToPtr("")}},
		},
		{
			name: "string trailing default",
			line: "option name EvalDir type string default",
			want: usi.Option{Name: "EvalDir", Kind: usi.String{}},
		},
		{
			name: "button trailing default",
			line: "option name Clear_Hash type button default",
			want: usi.Option{Name: "Clear_Hash", Kind: usi.Button{}},
		},
		{
			name: "filename trailing default",
			line: "option name LogFile type filename default",
			want: usi.Option{Name: "LogFile", Kind: usi.Filename{}},
		},
		{
			name: "filename",
			line: "option name LogFile type filename default <empty>",
			want: usi.Option{Name: "LogFile", Kind: usi.Filename{Default: lo.ToPtr("")}},
		},
		{
			name: "filename takes only one token",
			line: "option name LogFile type filename default usi.log extra",
			want: usi.Option{Name: "LogFile", Kind: usi.Filename{Default: lo.ToPtr("usi.log")}},
		},

		{name: "missing name keyword", line: "option USI_Hash type spin", wantErr: true},
		{name: "missing name", line: "option name", wantErr: true},
		{name: "missing type keyword", line: "option name USI_Hash spin", wantErr: true},
		{name: "missing type", line: "option name USI_Hash type", wantErr: true},
		{name: "unknown type", line: "option name USI_Hash type slider", wantErr: true},
		{name: "spin value not a number", line: "option name Threads type spin default many", wantErr: true},
		{name: "spin value missing", line: "option name Threads type spin min 1 max", wantErr: true},
	})
}
