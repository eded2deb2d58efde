package board_test

import (
	"testing"

	"github.com/blackbishop/chesscore/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commitUCI(t *testing.T, p *board.Position, ucis ...string) {
	t.Helper()
	for _, uci := range ucis {
		m, err := board.ParseMove(uci)
		require.NoError(t, err)
		p.Commit(m)
	}
}

func TestMoveClocks(t *testing.T) {
	p := newTestPosition(t, board.StartFEN)

	commitUCI(t, p, "g1f3")
	assert.Equal(t, 1, p.HalfMoves())
	assert.Equal(t, 1, p.FullMoves())

	commitUCI(t, p, "g8f6")
	assert.Equal(t, 2, p.HalfMoves())
	assert.Equal(t, 2, p.FullMoves())

	// A pawn move resets the half-move clock.
	commitUCI(t, p, "e2e4")
	assert.Equal(t, 0, p.HalfMoves())
}

func TestFiftyMoveRuleDraw(t *testing.T) {
	p := newTestPosition(t, "4k3/8/8/8/8/8/8/R3K3 w - - 99 80")

	commitUCI(t, p, "a1a2")
	over := p.GameOver()
	require.NotNil(t, over)
	assert.Equal(t, board.FiftyMoveRule, over.Cause)
	assert.Equal(t, board.DrawResult, over.Result)
}

func TestThreefoldRepetitionDraw(t *testing.T) {
	p := newTestPosition(t, board.StartFEN)

	// Shuffling the knights out and back revisits the same placements with
	// the same side to move; the third visit of any position draws.
	commitUCI(t, p,
		"g1f3", "g8f6", "f3g1", "f6g8",
		"g1f3", "g8f6", "f3g1", "f6g8")
	require.Nil(t, p.GameOver())

	commitUCI(t, p, "g1f3")
	over := p.GameOver()
	require.NotNil(t, over)
	assert.Equal(t, board.Threefold, over.Cause)
}

func TestIrreversibleMoveResetsRepetitions(t *testing.T) {
	p := newTestPosition(t, board.StartFEN)

	commitUCI(t, p,
		"g1f3", "g8f6", "f3g1", "f6g8",
		"g1f3", "g8f6", "f3g1", "f6g8")
	require.Nil(t, p.GameOver())

	// A pawn move invalidates every prior repetition entry: the knights can
	// shuffle twice more without triggering the draw.
	commitUCI(t, p, "e2e4", "e7e5",
		"g1f3", "g8f6", "f3g1", "f6g8",
		"g1f3", "g8f6", "f3g1", "f6g8")
	assert.Nil(t, p.GameOver())
}

func TestStalemateDraw(t *testing.T) {
	p := newTestPosition(t, "k7/8/2Q5/8/8/8/8/4K3 w - - 0 1")

	commitUCI(t, p, "c6c7")
	over := p.GameOver()
	require.NotNil(t, over)
	assert.Equal(t, board.Stalemate, over.Cause)
	assert.Equal(t, board.DrawResult, over.Result)
}

func TestCheckmateScoresForTheMatingSide(t *testing.T) {
	p := newTestPosition(t, "6k1/5ppp/8/8/8/8/8/3QK3 w - - 0 1")

	commitUCI(t, p, "d1d8")
	over := p.GameOver()
	require.NotNil(t, over)
	assert.Equal(t, board.Checkmate, over.Cause)
	assert.Equal(t, board.WhiteWinsResult, over.Result)
}

func TestInsufficientMaterialDraw(t *testing.T) {
	p := newTestPosition(t, "4k3/8/8/3p4/8/4N3/8/4K3 w - - 0 1")

	commitUCI(t, p, "e3d5")
	over := p.GameOver()
	require.NotNil(t, over)
	assert.Equal(t, board.InsufficientMaterial, over.Cause)
	assert.Equal(t, board.DrawResult, over.Result)
}

func TestRookMoveDropsOneCastlingRight(t *testing.T) {
	p := newTestPosition(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	commitUCI(t, p, "h1g1")
	assert.Equal(t, board.QueenSide, p.CastlingRights(board.White))
	assert.Equal(t, board.AllCastlingRights, p.CastlingRights(board.Black))
}

func TestRookCaptureDropsOpponentCastlingRight(t *testing.T) {
	p := newTestPosition(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	commitUCI(t, p, "a1a8")
	assert.Equal(t, board.KingSide, p.CastlingRights(board.Black))
}

func TestPromotionWithCapture(t *testing.T) {
	p := newTestPosition(t, "1r2k3/P7/8/8/8/8/8/4K3 w - - 0 1")

	m := board.NewPromotionMove(board.A7, board.B8, board.Knight)
	affected := p.Commit(m)
	assert.ElementsMatch(t, []board.Square{board.A7, board.B8}, affected)
	assert.Equal(t, board.WKnight, p.At(board.B8))

	p.Unmake(true)
	assert.Equal(t, board.WPawn, p.At(board.A7))
	assert.Equal(t, board.BRook, p.At(board.B8))
}
