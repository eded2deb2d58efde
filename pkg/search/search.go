// Package search implements iterative-deepening alpha-beta search over a
// board.Position, ordered by a transposition table and move-ordering
// heuristics, falling back to an opening book while still in book range.
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/blackbishop/chesscore/pkg/board"
	"github.com/blackbishop/chesscore/pkg/eval"
)

// PV is the principal variation found for a completed search depth.
type PV struct {
	Moves []board.Move
	Score eval.Score
	Nodes uint64
	Time  time.Duration
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v pv=%v", len(p.Moves), p.Score, p.Nodes, p.Time, p.Moves)
}

// Options hold dynamic search options the caller may set per search.
type Options struct {
	DepthLimit int       // 0 == no limit
	Deadline   time.Time // zero == no deadline
	BookPly    int       // full-move number up to which an opening book probe is attempted
}

// Launcher starts a new iterative-deepening search.
type Launcher interface {
	// Launch starts a search from p, which the caller must not mutate until
	// the search is halted. It returns a PV channel fed one entry per
	// completed depth; the channel closes when the search is exhausted.
	Launch(ctx context.Context, p *board.Position, opt Options) (Handle, <-chan PV)
}

// Handle lets a caller stop an in-flight search and retrieve its best PV
// so far.
type Handle interface {
	// Halt stops the search, if running. Idempotent.
	Halt() PV
}
