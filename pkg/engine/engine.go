// Package engine wires a position, search and opening book together behind
// the operations a driver (CLI, tests, puzzle/self-play harnesses) needs:
// load a position, list and play moves, and kick off or halt a search.
package engine

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/blackbishop/chesscore/pkg/board"
	"github.com/blackbishop/chesscore/pkg/book"
	"github.com/blackbishop/chesscore/pkg/config"
	"github.com/blackbishop/chesscore/pkg/search"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

// Engine encapsulates game-playing logic: the current position, the
// transposition table and opening book bound to it, and the search
// launcher built on top of them.
type Engine struct {
	name, author string

	mask *board.ZobristMask
	book search.Book

	tt       search.TranspositionTable
	launcher search.Launcher
	cfg      config.SearchConfig

	p      *board.Position
	active search.Handle
	mu     sync.Mutex
}

// Option is an engine construction option.
type Option func(*Engine)

// WithZobristMask overrides the mask built from cfg, e.g. to share one mask
// across several engines in a self-play harness.
func WithZobristMask(mask *board.ZobristMask) Option {
	return func(e *Engine) {
		e.mask = mask
	}
}

// WithBook overrides the book loaded from cfg.
func WithBook(b search.Book) Option {
	return func(e *Engine) {
		e.book = b
	}
}

// New builds an Engine from cfg, loading the Zobrist mask and opening book
// the configuration points to. A missing or malformed book degrades to no
// book rather than failing construction; a missing or malformed mask does
// fail, since the engine cannot run without one.
func New(ctx context.Context, name, author string, cfg config.Config, opts ...Option) (*Engine, error) {
	e := &Engine{
		name:   name,
		author: author,
		cfg:    cfg.Search,
	}
	for _, fn := range opts {
		fn(e)
	}

	if e.mask == nil {
		mask, err := loadOrCreateMask(cfg.Search.ZobristMaskPath, cfg.Search.ZobristSeed)
		if err != nil {
			return nil, fmt.Errorf("engine: loading zobrist mask: %w", err)
		}
		e.mask = mask
	}
	if e.book == nil && cfg.Search.BookPath != "" {
		b, err := loadBook(cfg.Search.BookPath)
		if err != nil {
			logw.Errorf(ctx, "Opening book unavailable, continuing without one: %v", err)
		} else {
			e.book = b
		}
	}

	capacity := cfg.Search.TranspositionCapacity
	if capacity <= 0 {
		capacity = search.DefaultTranspositionCapacity
	}
	e.tt = search.NewTranspositionTable(ctx, capacity)
	e.launcher = search.NewIterative(search.Negamax{TT: e.tt}, e.book)

	e.p = board.New(e.mask)
	if err := e.p.Reset(); err != nil {
		return nil, err
	}

	logw.Infof(ctx, "Initialized engine: %v", e.Name())
	return e, nil
}

func loadOrCreateMask(path string, seed int64) (*board.ZobristMask, error) {
	if path == "" {
		return board.NewZobristMask(seed), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return board.LoadZobristMask(f)
}

func loadBook(path string) (search.Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return book.Load(f)
}

// Name returns the engine name and version, e.g. for a CLI "--version"
// banner.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the configured author.
func (e *Engine) Author() string {
	return e.author
}

// FEN returns the current position in FEN notation.
func (e *Engine) FEN() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.p.FEN()
}

// NewGame resets the engine to the standard starting position.
func (e *Engine) NewGame(ctx context.Context) error {
	return e.LoadFEN(ctx, board.StartFEN)
}

// LoadFEN replaces the current position with the one described by fen,
// halting any active search first.
func (e *Engine) LoadFEN(ctx context.Context, fen string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltSearchIfActiveLocked(ctx)

	p := board.New(e.mask)
	if err := p.LoadFEN(fen); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	e.p = p

	logw.Infof(ctx, "Loaded position: %v", e.p)
	return nil
}

// LegalMoves returns the current position's legal moves, optionally
// restricted to captures.
func (e *Engine) LegalMoves(onlyCaptures bool) []board.Move {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.p.LegalMoves(onlyCaptures)
}

// SplitLegalMoves returns the current position's legal moves split into
// non-promotions and promotions.
func (e *Engine) SplitLegalMoves() (nonPromotions, promotions []board.Move) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.p.SplitLegalMoves()
}

// CommitMove plays move, given in UCI long-algebraic notation, halting any
// active search first. It returns every square whose contents changed
// (both endpoints of a castle, the removed pawn of an en passant), so a
// front-end can refresh only those tiles.
func (e *Engine) CommitMove(ctx context.Context, move string) ([]board.Square, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	candidate, err := board.ParseMove(move)
	if err != nil {
		return nil, fmt.Errorf("engine: invalid move %q: %w", move, err)
	}

	e.haltSearchIfActiveLocked(ctx)

	for _, m := range e.p.LegalMoves(false) {
		if !m.Equals(candidate) {
			continue
		}
		affected := e.p.Commit(m)
		logw.Infof(ctx, "Committed %v: %v", m, e.p)
		return affected, nil
	}
	return nil, fmt.Errorf("engine: illegal move %q", move)
}

// Unmake undoes the last committed move.
func (e *Engine) Unmake(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltSearchIfActiveLocked(ctx)

	e.p.Unmake(true)
	logw.Infof(ctx, "Unmade move: %v", e.p)
	return nil
}

// GameOver reports why the game ended, or nil if it hasn't.
func (e *Engine) GameOver() *board.GameOver {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.p.GameOver()
}

func (e *Engine) SideToMove() board.Color {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.p.SideToMove()
}

func (e *Engine) FullMoves() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.p.FullMoves()
}

func (e *Engine) Zobrist() board.ZobristHash {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.p.Zobrist()
}

func (e *Engine) InCheck() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.p.InCheck()
}

// Search launches an asynchronous search of the current position,
// returning a channel of improving principal variations. The search runs
// against a clone of the position, so further engine calls (including a
// concurrent CommitMove) do not race with it; call Halt to stop it and
// fetch its best move so far.
func (e *Engine) Search(ctx context.Context, opt search.Options) (<-chan search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if opt.BookPly == 0 {
		opt.BookPly = e.cfg.BookPly
	}
	if opt.DepthLimit == 0 {
		opt.DepthLimit = e.cfg.DepthLimit
	}
	if opt.Deadline.IsZero() && e.cfg.ThinkingTimeMillis > 0 {
		opt.Deadline = time.Now().Add(time.Duration(e.cfg.ThinkingTimeMillis) * time.Millisecond)
	}

	if e.active != nil {
		return nil, fmt.Errorf("engine: search already active")
	}

	logw.Infof(ctx, "Searching %v, opt=%+v", e.p, opt)

	handle, out := e.launcher.Launch(ctx, e.p.Clone(), opt)
	e.active = handle
	return out, nil
}

// Halt stops the active search and returns its principal variation so far.
func (e *Engine) Halt(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pv, ok := e.haltSearchIfActiveLocked(ctx)
	if !ok {
		return search.PV{}, fmt.Errorf("engine: no active search")
	}
	return pv, nil
}

func (e *Engine) haltSearchIfActiveLocked(ctx context.Context) (search.PV, bool) {
	if e.active == nil {
		return search.PV{}, false
	}

	pv := e.active.Halt()
	logw.Infof(ctx, "Search halted: %v", pv)

	e.active = nil
	return pv, true
}
