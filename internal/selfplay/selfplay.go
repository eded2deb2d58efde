// Package selfplay drives the engine against itself and checks the
// position's invariants after every move. With no second engine in this
// module to cross-check against, asserting internal consistency at every
// step is the next best debugging net for make/unmake and hashing.
package selfplay

import (
	"context"
	"fmt"
	"time"

	"github.com/blackbishop/chesscore/pkg/board"
	"github.com/blackbishop/chesscore/pkg/eval"
	"github.com/blackbishop/chesscore/pkg/search"
)

// Move records one ply of a played game, for callers that want a
// post-mortem rather than just pass/fail.
type Move struct {
	Ply   int
	Move  board.Move
	Score eval.Score
}

// Run plays moves from p until the game ends, maxPlies is reached, or a
// move's search fails to produce one, checking p's invariants after every
// commit. It returns the moves played and the first invariant violation
// encountered, if any. maxPlies <= 0 means unbounded.
func Run(ctx context.Context, p *board.Position, depth, maxPlies int) ([]Move, error) {
	n := search.Negamax{TT: search.NewTranspositionTable(ctx, search.DefaultTranspositionCapacity)}

	var moves []Move
	for ply := 0; maxPlies <= 0 || ply < maxPlies; ply++ {
		if over := p.GameOver(); over != nil {
			break
		}

		_, score, pv, err := n.Search(ctx, p, depth, time.Time{})
		if err != nil {
			return moves, fmt.Errorf("selfplay: search failed at ply %d: %w", ply, err)
		}
		if len(pv) == 0 {
			return moves, fmt.Errorf("selfplay: search returned no move at ply %d (%v)", ply, p.FEN())
		}

		m := pv[0]
		p.Commit(m)

		if err := p.CheckInvariants(); err != nil {
			return moves, fmt.Errorf("selfplay: invariant violated after %v at ply %d: %w", m, ply, err)
		}

		moves = append(moves, Move{Ply: ply, Move: m, Score: score})
	}
	return moves, nil
}
