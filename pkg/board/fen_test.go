package board_test

import (
	"testing"

	"github.com/blackbishop/chesscore/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		board.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/P7/8/8/8/8/8/k6K w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"4k3/8/8/8/8/8/8/R3K3 w Q - 12 34",
	}
	for _, fen := range fens {
		p := newTestPosition(t, fen)
		assert.Equal(t, fen, p.FEN())
	}
}

func TestLoadFENRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",            // missing fields
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1", // bad piece
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN w KQkq - 0 1",  // short rank
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", // bad color
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQxq - 0 1", // bad castling
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1", // bad ep
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1", // bad halfmove
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0",  // bad fullmove
		"8/pppppppp/8/8/8/8/PPPPPPPP/8 w - - 0 1",                   // no kings
	}
	for _, fen := range bad {
		p := board.New(board.NewZobristMask(1))
		assert.Error(t, p.LoadFEN(fen), "fen %q should be rejected", fen)
	}
}

func TestLoadFENFailureLeavesPositionUntouched(t *testing.T) {
	p := newTestPosition(t, board.StartFEN)
	before := p.FEN()

	require.Error(t, p.LoadFEN("garbage"))
	assert.Equal(t, before, p.FEN())
}
