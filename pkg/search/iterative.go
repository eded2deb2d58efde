package search

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/blackbishop/chesscore/pkg/board"
	"github.com/blackbishop/chesscore/pkg/eval"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"
)

// ErrHalted indicates a search was halted before completing its depth.
var ErrHalted = errors.New("search halted")

// Searcher implements a fixed-depth search of the game tree. Thread-safe.
type Searcher interface {
	Search(ctx context.Context, p *board.Position, depth int, deadline time.Time) (uint64, eval.Score, []board.Move, error)
}

// Book looks up a move for a known position, such as from an opening
// database. Implementations must be safe for concurrent use.
type Book interface {
	Probe(hash board.ZobristHash) (board.Move, bool)
}

// defaultBookPly is the full-move number up to which a book probe is
// attempted before falling back to search. Past move 15 the game has
// usually left book anyway.
const defaultBookPly = 15

// Iterative is a search harness for iterative-deepening search: it starts
// at depth 1 and searches one ply deeper each iteration, taking the
// previous iteration's best move first to maximize alpha-beta pruning,
// until Halt is called, the deadline passes, or DepthLimit is reached.
// While the position is still within book range, it returns a book move
// instead of searching.
type Iterative struct {
	search Searcher
	book   Book
}

// NewIterative builds a Launcher around a Searcher, optionally consulting
// book for an opening-book probe before searching (nil disables the book).
func NewIterative(search Searcher, book Book) Launcher {
	return &Iterative{search: search, book: book}
}

func (i *Iterative) Launch(ctx context.Context, p *board.Position, opt Options) (Handle, <-chan PV) {
	ctx, cancel := context.WithCancel(ctx)
	out := make(chan PV, 1)
	h := &handle{
		init:   make(chan struct{}),
		cancel: cancel,
	}
	go h.process(ctx, i.search, i.book, p, opt, out)

	return h, out
}

type handle struct {
	init              chan struct{}
	cancel            context.CancelFunc
	initialized, done atomic.Bool

	pv PV
	mu sync.Mutex
}

func (h *handle) process(ctx context.Context, search Searcher, book Book, p *board.Position, opt Options, out chan PV) {
	defer h.markInitialized()
	defer close(out)

	bookPly := opt.BookPly
	if bookPly == 0 {
		bookPly = defaultBookPly
	}
	if book != nil && p.FullMoves() <= bookPly {
		if m, ok := book.Probe(p.Zobrist()); ok {
			pv := PV{Moves: []board.Move{m}}
			h.mu.Lock()
			h.pv = pv
			h.mu.Unlock()
			out <- pv
			return
		}
	}

	depth := 1
	for !h.done.Load() {
		start := time.Now()

		nodes, score, moves, err := search.Search(ctx, p, depth, opt.Deadline)
		if err != nil {
			if errors.Is(err, ErrHalted) {
				return // Halt was called, or the deadline passed.
			}
			logw.Errorf(ctx, "Search failed on %v at depth=%v: %v", p, depth, err)
			return
		}

		pv := PV{
			Nodes: nodes,
			Score: score,
			Moves: moves,
			Time:  time.Since(start),
		}

		logw.Debugf(ctx, "Searched %v: %v", p, pv)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.markInitialized()
		if depth == opt.DepthLimit {
			return
		}
		if !opt.Deadline.IsZero() && time.Now().After(opt.Deadline) {
			return
		}
		depth++
	}
}

func (h *handle) Halt() PV {
	<-h.init
	if h.done.CAS(false, true) {
		h.cancel()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pv
}

func (h *handle) markInitialized() {
	if h.initialized.CAS(false, true) {
		close(h.init)
	}
}
