package search

import (
	"context"

	"github.com/blackbishop/chesscore/pkg/board"
	"github.com/blackbishop/chesscore/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// quiescenceSearch extends a search with only capturing moves until none
// remain, so a losing capture sitting just past the depth limit doesn't
// make the position look better than it is (the "horizon effect"). It
// always considers the static evaluation first ("stand pat"): if no
// capture improves on just stopping, stopping is correct.
func quiescenceSearch(ctx context.Context, p *board.Position, killers map[board.Move]struct{}, alpha, beta eval.Score) (uint64, eval.Score) {
	run := &runQuiescence{p: p, killers: killers}
	score := run.search(ctx, alpha, beta)
	return run.nodes, score
}

type runQuiescence struct {
	p       *board.Position
	killers map[board.Move]struct{}
	nodes   uint64
}

func (r *runQuiescence) search(ctx context.Context, alpha, beta eval.Score) eval.Score {
	if contextx.IsCancelled(ctx) {
		return 0
	}
	if over := r.p.GameOver(); over != nil {
		if over.Cause == board.Checkmate {
			return eval.MateIn(0)
		}
		return 0
	}

	r.nodes++

	standPat := eval.Evaluate(r.p)
	if standPat >= beta {
		return beta
	}
	alpha = eval.Max(alpha, standPat)

	order := NewOrderer(r.p, r.killers)
	list := NewMoveList(r.p.LegalMoves(true), order.Score)

	for {
		m, ok := list.Next()
		if !ok {
			break
		}

		r.p.Commit(m)
		score := -r.search(ctx, -beta, -alpha)
		r.p.Unmake(true)

		if score >= beta {
			r.killers[m] = struct{}{}
			return beta
		}
		alpha = eval.Max(alpha, score)
	}
	return alpha
}
