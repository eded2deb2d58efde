package search

import (
	"context"
	"fmt"
	"sync"

	"github.com/blackbishop/chesscore/pkg/board"
	"github.com/blackbishop/chesscore/pkg/eval"
	"github.com/seekerror/logw"
)

// DefaultTranspositionCapacity bounds the table at roughly 500k entries,
// comfortably enough for a several-second search.
const DefaultTranspositionCapacity = 500_000

// TranspositionTable caches search results by position hash so a
// transposed position already searched to at least the requested depth is
// never re-expanded. Must be thread-safe.
type TranspositionTable interface {
	// Read returns the cached score and best move for hash, if present and
	// cached at a depth at least minDepth.
	Read(hash board.ZobristHash, minDepth int) (eval.Score, board.Move, bool)
	// Write stores a result into the table, unconditionally overwriting
	// whatever currently occupies that slot.
	Write(hash board.ZobristHash, depth int, score eval.Score, move board.Move)

	Size() int
	Used() float64
}

// entry is one cached search result.
type entry struct {
	hash  board.ZobristHash
	depth int
	score eval.Score
	move  board.Move
	used  bool
}

// circularTable is a fixed-size, hash-indexed table: a write always
// overwrites whatever currently occupies its slot, so the table never
// grows past its allocated entry count. Entries are not evicted in
// insertion order: a write replaces only the entry in its own slot,
// whatever its age. Reads and writes are serialized by
// a mutex; a single Position's search tree is walked by one goroutine at a
// time, so contention is not a concern.
type circularTable struct {
	mu      sync.Mutex
	entries []entry
	used    int
}

// NewTranspositionTable allocates a circular transposition table with the
// given entry capacity (DefaultTranspositionCapacity if capacity <= 0).
func NewTranspositionTable(ctx context.Context, capacity int) TranspositionTable {
	if capacity <= 0 {
		capacity = DefaultTranspositionCapacity
	}
	logw.Infof(ctx, "Allocating transposition table with %v entries", capacity)
	return &circularTable{entries: make([]entry, capacity)}
}

func (t *circularTable) slot(hash board.ZobristHash) int {
	return int(uint64(hash) % uint64(len(t.entries)))
}

func (t *circularTable) Read(hash board.ZobristHash, minDepth int) (eval.Score, board.Move, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.entries[t.slot(hash)]
	if !e.used || e.hash != hash || e.depth < minDepth {
		return 0, board.Move{}, false
	}
	return e.score, e.move, true
}

func (t *circularTable) Write(hash board.ZobristHash, depth int, score eval.Score, move board.Move) {
	t.mu.Lock()
	defer t.mu.Unlock()

	slot := t.slot(hash)
	if !t.entries[slot].used {
		t.used++
	}
	t.entries[slot] = entry{hash: hash, depth: depth, score: score, move: move, used: true}
}

func (t *circularTable) Size() int { return len(t.entries) }

func (t *circularTable) Used() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return float64(t.used) / float64(len(t.entries))
}

func (t *circularTable) String() string {
	return fmt.Sprintf("TT[%v entries @ %v%% used]", t.Size(), int(100*t.Used()))
}

// NoTranspositionTable is a no-op TranspositionTable, useful for testing
// search logic independent of caching.
type NoTranspositionTable struct{}

func (NoTranspositionTable) Read(board.ZobristHash, int) (eval.Score, board.Move, bool) {
	return 0, board.Move{}, false
}
func (NoTranspositionTable) Write(board.ZobristHash, int, eval.Score, board.Move) {}
func (NoTranspositionTable) Size() int                                           { return 0 }
func (NoTranspositionTable) Used() float64                                       { return 0 }
