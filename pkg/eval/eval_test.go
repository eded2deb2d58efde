package eval_test

import (
	"testing"

	"github.com/blackbishop/chesscore/pkg/board"
	"github.com/blackbishop/chesscore/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPosition(t *testing.T, fen string) *board.Position {
	t.Helper()
	p := board.New(board.NewZobristMask(1))
	require.NoError(t, p.LoadFEN(fen))
	return p
}

func TestMaterialBalance(t *testing.T) {
	p := newTestPosition(t, "4k3/8/8/8/8/8/8/Q3K3 w - - 0 1")
	assert.Equal(t, eval.PieceValue(board.Queen), eval.Material(p, board.White))
	assert.Equal(t, eval.Score(0), eval.Material(p, board.Black))
}

func TestEndgameWeightBounds(t *testing.T) {
	assert.Equal(t, 1.0, eval.EndgameWeight(0))
	assert.Equal(t, 0.0, eval.EndgameWeight(1200))
	assert.Equal(t, 0.0, eval.EndgameWeight(5000))
	assert.InDelta(t, 0.5, eval.EndgameWeight(600), 0.001)
}

func TestEvaluateStartingPositionIsSymmetric(t *testing.T) {
	p := newTestPosition(t, board.StartFEN)
	assert.Equal(t, eval.Score(0), eval.Evaluate(p))
}

func TestEvaluateFavorsSideToMoveWithExtraMaterial(t *testing.T) {
	p := newTestPosition(t, "4k3/8/8/8/8/8/8/Q3K3 w - - 0 1")
	assert.Greater(t, eval.Evaluate(p), eval.Score(0))

	p2 := newTestPosition(t, "4k3/8/8/8/8/8/8/Q3K3 b - - 0 1")
	assert.Less(t, eval.Evaluate(p2), eval.Score(0))
}

func TestEvaluateRewardsKingToCornerInEndgame(t *testing.T) {
	centered := newTestPosition(t, "4k3/8/8/4K3/8/8/8/8 w - - 0 1")
	cornered := newTestPosition(t, "k7/8/8/4K3/8/8/8/8 w - - 0 1")
	assert.Greater(t, eval.Evaluate(cornered), eval.Evaluate(centered))
}
