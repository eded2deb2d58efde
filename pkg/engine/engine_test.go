package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/blackbishop/chesscore/pkg/board"
	"github.com/blackbishop/chesscore/pkg/config"
	"github.com/blackbishop/chesscore/pkg/engine"
	"github.com/blackbishop/chesscore/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()

	e, err := engine.New(context.Background(), "testcore", "test", config.Default(),
		engine.WithZobristMask(board.NewZobristMask(1)))
	require.NoError(t, err)
	return e
}

func TestEngineNewGameAndMoves(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	require.NoError(t, e.NewGame(ctx))
	assert.Equal(t, board.StartFEN, e.FEN())
	assert.Equal(t, board.White, e.SideToMove())

	affected, err := e.CommitMove(ctx, "e2e4")
	require.NoError(t, err)
	assert.ElementsMatch(t, []board.Square{board.E2, board.E4}, affected)
	assert.Equal(t, board.Black, e.SideToMove())

	require.NoError(t, e.Unmake(ctx))
	assert.Equal(t, board.StartFEN, e.FEN())
}

func TestEngineRejectsIllegalMove(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	require.NoError(t, e.NewGame(ctx))

	_, err := e.CommitMove(ctx, "e2e5")
	assert.Error(t, err)
}

func TestEngineLoadFENAndGameOver(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	require.NoError(t, e.LoadFEN(ctx, "6k1/5ppp/8/8/8/8/8/3QK3 w - - 0 1"))
	assert.Nil(t, e.GameOver())

	_, err := e.CommitMove(ctx, "d1d8")
	require.NoError(t, err)
	over := e.GameOver()
	require.NotNil(t, over)
	assert.Equal(t, board.Checkmate, over.Cause)
}

func TestEngineSearchAndHalt(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	require.NoError(t, e.NewGame(ctx))

	out, err := e.Search(ctx, search.Options{DepthLimit: 2})
	require.NoError(t, err)

	pv, ok := <-out
	require.True(t, ok)
	assert.NotEmpty(t, pv.Moves)

	final, err := e.Halt(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, final.Moves)

	// The live position was untouched by the (cloned) search.
	assert.Equal(t, board.StartFEN, e.FEN())
}

func TestEngineSearchRejectsConcurrentSearch(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	require.NoError(t, e.NewGame(ctx))

	_, err := e.Search(ctx, search.Options{DepthLimit: 3})
	require.NoError(t, err)
	defer e.Halt(ctx)

	_, err = e.Search(ctx, search.Options{DepthLimit: 3})
	assert.Error(t, err)

	time.Sleep(time.Millisecond) // let the first search make some progress; not required for correctness.
}
