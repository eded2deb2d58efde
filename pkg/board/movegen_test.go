package board_test

import (
	"testing"

	"github.com/blackbishop/chesscore/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kiwipeteFEN is a dense middle-game position with castling, pins,
// promotions and en passant all in play.
// See: https://www.chessprogramming.org/Perft_Results (Position 2).
const kiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func TestPerftKiwipete(t *testing.T) {
	p := newTestPosition(t, kiwipeteFEN)

	tests := []struct {
		depth int
		nodes int
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.nodes, perft(p, tt.depth), "kiwipete perft(%d)", tt.depth)
	}
}

func TestEnPassantCaptureRemovesPawn(t *testing.T) {
	p := newTestPosition(t, "4k3/8/8/8/4p3/8/3P4/4K3 w - - 0 1")
	p.Commit(board.NewMove(board.D2, board.D4))
	require.Equal(t, board.D3, p.EnPassantTarget())

	capture := board.NewMove(board.E4, board.D3)
	moves := p.LegalMoves(true)
	require.Len(t, moves, 1)
	require.True(t, moves[0].Equals(capture))

	affected := p.Commit(capture)
	assert.ElementsMatch(t, []board.Square{board.E4, board.D4, board.D3}, affected)
	assert.Equal(t, board.BPawn, p.At(board.D3))
	assert.True(t, p.At(board.D4).IsEmpty(), "the captured pawn is removed from d4")

	p.Unmake(true)
	assert.Equal(t, board.WPawn, p.At(board.D4))
	assert.Equal(t, board.BPawn, p.At(board.E4))
	assert.True(t, p.At(board.D3).IsEmpty())
}

func TestCapturesAreSubsetOfLegalMoves(t *testing.T) {
	p := newTestPosition(t, kiwipeteFEN)

	all := p.LegalMoves(false)
	captures := p.LegalMoves(true)
	require.NotEmpty(t, captures)

	for _, c := range captures {
		found := false
		for _, m := range all {
			if m.Equals(c) {
				found = true
				break
			}
		}
		assert.True(t, found, "capture %v missing from the full move list", c)

		isEnPassant := p.At(c.From).Kind() == board.Pawn && c.To == p.EnPassantTarget()
		assert.True(t, !p.At(c.To).IsEmpty() || isEnPassant, "%v is not a capture", c)
	}
}

func TestCheckEvasionMoves(t *testing.T) {
	// White king on e1 checked by the rook on e8. The king can step off the
	// e-file (e2 stays attacked) and the knight can block on e4; nothing
	// can capture the rook.
	p := newTestPosition(t, "4r2k/8/8/8/8/8/3N4/4K3 w - - 0 1")
	require.True(t, p.InCheck())

	var got []string
	for _, m := range p.LegalMoves(false) {
		got = append(got, m.String())
	}
	assert.ElementsMatch(t, []string{"e1d1", "e1f1", "e1f2", "d2e4"}, got)
}

func TestPinnedPieceMayNotMove(t *testing.T) {
	// The white knight on d2 is pinned against the king by the rook on d8.
	p := newTestPosition(t, "3r3k/8/8/8/8/8/3N4/3K4 w - - 0 1")
	require.True(t, p.AttackMap(board.Black).PinCandidates.Has(board.D2))

	for _, m := range p.LegalMoves(false) {
		assert.NotEqual(t, board.D2, m.From, "pinned knight must not move: %v", m)
	}
}

func TestCommitUnmakeRestoresDerivedState(t *testing.T) {
	p := newTestPosition(t, kiwipeteFEN)

	fen := p.FEN()
	hash := p.Zobrist()
	attackWhite := p.AttackMap(board.White)
	attackBlack := p.AttackMap(board.Black)

	for _, m := range p.LegalMoves(false) {
		p.Commit(m)
		require.NoError(t, p.CheckInvariants(), "after commit of %v", m)
		p.Unmake(true)
		require.NoError(t, p.CheckInvariants(), "after unmake of %v", m)

		assert.Equal(t, fen, p.FEN())
		assert.Equal(t, hash, p.Zobrist())
		assert.Equal(t, attackWhite, p.AttackMap(board.White))
		assert.Equal(t, attackBlack, p.AttackMap(board.Black))
	}
}
