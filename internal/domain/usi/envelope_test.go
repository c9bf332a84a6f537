package usi_test

import (
	"encoding/json"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usi_bridge/internal/domain/usi"
)

func TestNewEnvelopeJSON(t *testing.T) {
	tests := []struct {
		name string
		cmd  usi.Command
		want string
	}{
		{
			name: "bestmove ponder",
			cmd:  usi.BestMove{Kind: usi.BestMoveMove, Move: "7g7f", Ponder: lo.ToPtr("8c8d")},
			want: `{"kind":"bestmove","payload":{"result":"move","move":"7g7f","ponder":"8c8d"}}`,
		},
		{
			name: "bestmove resign",
			cmd:  usi.BestMove{Kind: usi.BestMoveResign},
			want: `{"kind":"bestmove","payload":{"result":"resign"}}`,
		},
		{
			name: "checkmate",
			cmd:  usi.Checkmate{Kind: usi.CheckmateMate, Moves: []string{"G*5b"}},
			want: `{"kind":"checkmate","payload":{"result":"mate","moves":["G*5b"]}}`,
		},
		{
			name: "id",
			cmd:  usi.Id{Field: usi.IdAuthor, Value: "someone"},
			want: `{"kind":"id","payload":{"field":"author","value":"someone"}}`,
		},
		{
			name: "info",
			cmd: usi.Info{Entries: []usi.InfoEntry{
				usi.Depth{Depth: 3},
				usi.Score{Value: 1, Kind: usi.MateSignOnly},
				usi.Pv{Moves: []string{"5a4b"}},
			}},
			want: `{"kind":"info","payload":[` +
				`{"kind":"depth","payload":{"depth":3}},` +
				`{"kind":"score","payload":{"value":1,"kind":"mate_sign"}},` +
				`{"kind":"pv","payload":{"moves":["5a4b"]}}]}`,
		},
		{
			name: "option",
			cmd:  usi.Option{Name: "USI_Hash", Kind: usi.Spin{Default: lo.ToPtr[int32](256)}},
			want: `{"kind":"option","payload":{"name":"USI_Hash","type":"spin","spec":{"default":256}}}`,
		},
		{name: "usiok", cmd: usi.UsiOk{}, want: `{"kind":"usiok"}`},
		{
			name: "unknown",
			cmd:  usi.Unknown{Token: "gameover"},
			want: `{"kind":"unknown","payload":{"token":"gameover"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(usi.NewEnvelope(tt.cmd))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestScoreKind(t *testing.T) {
	assert.Equal(t, "cp_lowerbound", usi.CpLowerbound.String())
	assert.Equal(t, "unknown", usi.ScoreKind(42).String())
	assert.False(t, usi.CpUpperbound.IsMate())
	assert.True(t, usi.MateSignOnly.IsMate())
}
