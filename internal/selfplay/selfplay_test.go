package selfplay_test

import (
	"context"
	"testing"

	"github.com/blackbishop/chesscore/internal/selfplay"
	"github.com/blackbishop/chesscore/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPlaysAndChecksInvariants(t *testing.T) {
	p := board.New(board.NewZobristMask(1))
	require.NoError(t, p.Reset())

	moves, err := selfplay.Run(context.Background(), p, 2, 6)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(moves), 6)
	assert.NotEmpty(t, moves)
}

func TestRunStopsAtGameOver(t *testing.T) {
	p := board.New(board.NewZobristMask(1))
	require.NoError(t, p.LoadFEN("6k1/5ppp/8/8/8/8/8/3QK3 w - - 0 1"))

	moves, err := selfplay.Run(context.Background(), p, 3, 10)
	require.NoError(t, err)
	require.Len(t, moves, 1) // Qd8 ends the game immediately.
	assert.NotNil(t, p.GameOver())
}
