package search

import (
	"container/heap"
	"fmt"

	"github.com/blackbishop/chesscore/pkg/board"
	"github.com/blackbishop/chesscore/pkg/eval"
)

// Priority represents a move's order priority: higher explores first.
type Priority int32

// killerBias rewards a move that previously caused a beta cutoff at some
// sibling node, even though the position has since shifted slightly.
const killerBias Priority = 500

// MoveList is a move priority queue for move ordering.
type MoveList struct {
	h moveHeap
}

// NewMoveList returns a new move list with the given priorities.
func NewMoveList(moves []board.Move, fn func(move board.Move) Priority) *MoveList {
	h := moveHeap(make([]elm, len(moves)))
	for i, m := range moves {
		h[i] = elm{m: m, val: fn(m)}
	}
	heap.Init(&h)
	return &MoveList{h: h}
}

// Next returns the highest-priority remaining move.
func (ml *MoveList) Next() (board.Move, bool) {
	if ml.Size() == 0 {
		return board.Move{}, false
	}
	ret := heap.Pop(&ml.h).(elm)
	return ret.m, true
}

func (ml *MoveList) Size() int {
	return ml.h.Len()
}

func (ml *MoveList) String() string {
	if ml.Size() == 0 {
		return "[size=0]"
	}
	return fmt.Sprintf("[top=%v, size=%v]", ml.h[0].m, ml.Size())
}

type elm struct {
	m   board.Move
	val Priority
}

type moveHeap []elm

func (h moveHeap) Len() int           { return len(h) }
func (h moveHeap) Less(i, j int) bool { return h[i].val > h[j].val }
func (h moveHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *moveHeap) Push(x interface{}) {
	panic("fixed size heap")
}

func (h *moveHeap) Pop() interface{} {
	n := len(*h)
	ret := (*h)[n-1]
	*h = (*h)[0 : n-1]
	return ret
}

// Orderer scores moves from a fixed position for move ordering. killers
// holds moves that caused a beta cutoff earlier in the current top-level
// search and are worth trying again with priority.
type Orderer struct {
	p       *board.Position
	killers map[board.Move]struct{}
}

// NewOrderer builds an Orderer bound to the current position and killer set.
func NewOrderer(p *board.Position, killers map[board.Move]struct{}) Orderer {
	return Orderer{p: p, killers: killers}
}

// Score ranks a capture by the value it gains (captured piece minus the
// capturing piece, so pawns taking queens rank far above queens taking
// pawns), rewards promotions by the promoted piece's value, penalizes
// moving a non-pawn onto a square the opponent's pawns attack, and adds a
// flat bonus for a previously seen killer move.
func (o Orderer) Score(m board.Move) Priority {
	moved := o.p.At(m.From).Kind()
	captured := o.p.At(m.To).Kind()

	var score Priority
	if captured != board.NoKind {
		score += Priority(eval.PieceValue(captured) - eval.PieceValue(moved))
	}
	if m.IsPromotion() {
		score += Priority(eval.PieceValue(m.Promotion))
	}
	if moved != board.Pawn && o.p.AttackMap(o.p.Opponent()).PawnAttacks.Has(m.To) {
		score -= Priority(eval.PieceValue(moved))
	}
	if _, ok := o.killers[m]; ok {
		score += killerBias
	}
	return score
}

// First puts a preferred move first, falling back to Fall's score for
// every other move. A zero Move means no preferred move.
type First struct {
	Move board.Move
	Fall Orderer
}

func (f First) Score(m board.Move) Priority {
	if f.Move != (board.Move{}) && m.Equals(f.Move) {
		return Priority(1) << 30
	}
	return f.Fall.Score(m)
}
