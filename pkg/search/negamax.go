package search

import (
	"context"
	"time"

	"github.com/blackbishop/chesscore/pkg/board"
	"github.com/blackbishop/chesscore/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// defaultExtensionLimit caps how many cumulative search extensions (checks,
// pawns one step from promoting) a single line may accumulate.
const defaultExtensionLimit = 8

// Negamax implements depth-limited negamax search with alpha-beta pruning,
// transposition-table cutoffs and move ordering, falling back to
// quiescence search at the horizon. Pseudo-code:
//
//	function negamax(node, depth, α, β) is
//	    if depth = 0 or node is terminal then
//	        return quiescence(node, α, β)
//	    value := −∞
//	    for each child of node do
//	        value := max(value, −negamax(child, depth−1, −β, −α))
//	        α := max(α, value)
//	        if α ≥ β then
//	            break (* cutoff *)
//	    return value
//
// See: https://en.wikipedia.org/wiki/Negamax.
type Negamax struct {
	TT             TranspositionTable
	ExtensionLimit int
}

func (n Negamax) limit() int {
	if n.ExtensionLimit > 0 {
		return n.ExtensionLimit
	}
	return defaultExtensionLimit
}

// Search runs a fixed-depth negamax search from p's current position,
// returning the node count, the score relative to the side to move when
// Search was called, and the principal variation. deadline is checked
// between moves; a zero deadline means unbounded.
func (n Negamax) Search(ctx context.Context, p *board.Position, depth int, deadline time.Time) (uint64, eval.Score, []board.Move, error) {
	run := &runNegamax{
		tt:       n.TT,
		extLimit: n.limit(),
		killers:  map[board.Move]struct{}{},
		p:        p,
		deadline: deadline,
	}
	score, pv := run.search(ctx, depth, eval.NegInf, eval.Inf, 0)
	if run.halted {
		return run.nodes, 0, nil, ErrHalted
	}
	return run.nodes, score, pv, nil
}

type runNegamax struct {
	tt       TranspositionTable
	extLimit int
	killers  map[board.Move]struct{}
	p        *board.Position
	deadline time.Time
	nodes    uint64
	halted   bool
}

func (r *runNegamax) timedOut() bool {
	return !r.deadline.IsZero() && time.Now().After(r.deadline)
}

// search returns the score relative to the side to move at this node.
func (r *runNegamax) search(ctx context.Context, depth int, alpha, beta eval.Score, extCount int) (eval.Score, []board.Move) {
	if contextx.IsCancelled(ctx) || r.timedOut() {
		r.halted = true
		return 0, nil
	}

	hash := r.p.Zobrist()
	if score, move, ok := r.tt.Read(hash, depth); ok {
		// Cutoff: already searched at least this deep.
		if move != (board.Move{}) {
			return score, []board.Move{move}
		}
		return score, nil
	}

	// Without this condition, the search can shuffle pieces in a winning
	// position until repetition or the fifty-move rule draws the game.
	if over := r.p.GameOver(); over != nil && over.Result == board.DrawResult {
		return 0, nil
	}

	if depth == 0 {
		nodes, score := quiescenceSearch(ctx, r.p, r.killers, alpha, beta)
		r.nodes += nodes
		return score, nil
	}

	r.nodes++

	moves := r.p.LegalMoves(false)
	if len(moves) == 0 {
		if r.p.InCheck() {
			// Offsetting the mate penalty by the remaining depth makes a
			// shorter mate outrank a longer one.
			return eval.MateIn(depth), nil
		}
		return 0, nil
	}

	_, hint, _ := r.tt.Read(hash, 0)
	order := First{Move: hint, Fall: NewOrderer(r.p, r.killers)}
	list := NewMoveList(moves, order.Score)

	var pv []board.Move
	for {
		m, ok := list.Next()
		if !ok {
			break
		}

		r.p.Commit(m)
		ext := r.extension(m, extCount)
		score, rem := r.search(ctx, depth-1+ext, -beta, -alpha, extCount+ext)
		score = -score
		r.p.Unmake(true)

		if r.halted {
			return 0, nil
		}

		// Move was too good: the opponent will avoid this position, so
		// fail hard and remember the refutation for sibling nodes. The
		// table is only written for fully searched nodes below.
		if score >= beta {
			r.killers[m] = struct{}{}
			return beta, nil
		}
		if score > alpha {
			alpha = score
			pv = append([]board.Move{m}, rem...)
		}
	}

	r.tt.Write(hash, depth, alpha, firstOrNone(pv))
	return alpha, pv
}

// extension returns how many extra plies to search the just-committed move
// at, capped by extLimit: a move delivering check, or a pawn landing one
// step from its promotion rank, earns one extra ply.
func (r *runNegamax) extension(m board.Move, extCount int) int {
	if extCount >= r.extLimit {
		return 0
	}
	if r.p.InCheck() {
		return 1
	}
	if r.p.At(m.To).Kind() == board.Pawn && (m.To.Rank() == 6 || m.To.Rank() == 1) {
		return 1
	}
	return 0
}

func firstOrNone(pv []board.Move) board.Move {
	if len(pv) == 0 {
		return board.Move{}
	}
	return pv[0]
}
