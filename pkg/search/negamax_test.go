package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/blackbishop/chesscore/pkg/board"
	"github.com/blackbishop/chesscore/pkg/eval"
	"github.com/blackbishop/chesscore/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPosition(t *testing.T, fen string) *board.Position {
	t.Helper()
	p := board.New(board.NewZobristMask(1))
	require.NoError(t, p.LoadFEN(fen))
	return p
}

func TestNegamaxFindsMateInOne(t *testing.T) {
	// White to move: Qd1-d8 is a forced back-rank mate (the black king is
	// boxed in by its own pawns on f7/g7/h7).
	p := newTestPosition(t, "6k1/5ppp/8/8/8/8/8/3QK3 w - - 0 1")

	n := search.Negamax{TT: search.NewTranspositionTable(context.Background(), 1024)}
	_, score, pv, err := n.Search(context.Background(), p, 3, time.Time{})
	require.NoError(t, err)
	require.NotEmpty(t, pv)

	assert.Equal(t, board.D1, pv[0].From)
	assert.Equal(t, board.D8, pv[0].To)
	assert.Greater(t, score, eval.Score(900000))
}

func TestNegamaxHaltsOnExpiredDeadline(t *testing.T) {
	p := newTestPosition(t, board.StartFEN)
	n := search.Negamax{TT: search.NoTranspositionTable{}}

	_, _, _, err := n.Search(context.Background(), p, 6, time.Now().Add(-time.Second))
	assert.ErrorIs(t, err, search.ErrHalted)
}

func TestIterativeLaunchesAndHalts(t *testing.T) {
	p := newTestPosition(t, board.StartFEN)
	n := search.Negamax{TT: search.NewTranspositionTable(context.Background(), 1024)}
	launcher := search.NewIterative(n, nil)

	handle, out := launcher.Launch(context.Background(), p, search.Options{DepthLimit: 2})

	pv, ok := <-out
	require.True(t, ok)
	assert.NotEmpty(t, pv.Moves)

	final := handle.Halt()
	assert.NotEmpty(t, final.Moves)
}

type staticBook map[board.ZobristHash]board.Move

func (b staticBook) Probe(hash board.ZobristHash) (board.Move, bool) {
	m, ok := b[hash]
	return m, ok
}

func TestIterativeUsesBookWithinRange(t *testing.T) {
	p := newTestPosition(t, board.StartFEN)
	book := staticBook{p.Zobrist(): board.NewMove(board.E2, board.E4)}

	n := search.Negamax{TT: search.NoTranspositionTable{}}
	launcher := search.NewIterative(n, book)

	_, out := launcher.Launch(context.Background(), p, search.Options{BookPly: 15})

	pv, ok := <-out
	require.True(t, ok)
	require.Len(t, pv.Moves, 1)
	assert.Equal(t, board.NewMove(board.E2, board.E4), pv.Moves[0])
}
