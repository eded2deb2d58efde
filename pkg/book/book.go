// Package book implements an opening book: a table of known-good moves for
// early-game positions, keyed by Zobrist hash, so the engine can play a
// sensible opening without spending search time on it.
package book

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"strconv"

	"github.com/blackbishop/chesscore/pkg/board"
)

// Book holds, for each known position, the set of moves played from it in
// the ingested opening lines. Probe picks among them at random, so the engine
// doesn't play the exact same opening every game. Safe for concurrent use:
// once built, a Book is read-only.
type Book struct {
	moves map[board.ZobristHash][]board.Move
}

// Probe implements search.Book.
func (b *Book) Probe(hash board.ZobristHash) (board.Move, bool) {
	candidates := b.moves[hash]
	if len(candidates) == 0 {
		return board.Move{}, false
	}
	return candidates[rand.Intn(len(candidates))], true
}

// Len returns the number of distinct positions the book has moves for.
func (b *Book) Len() int {
	return len(b.moves)
}

// Line is a sequence of moves in UCI long-algebraic notation, e.g.
// []string{"e2e4", "e7e5", "g1f3"}.
type Line []string

// NewBook builds a Book by replaying each line from the standard starting
// position under mask, recording every move played at the position it was
// played from. mask must be the same Zobrist mask the engine searches with,
// or the resulting hashes won't match positions encountered during play.
func NewBook(mask *board.ZobristMask, lines []Line) (*Book, error) {
	moves := map[board.ZobristHash][]board.Move{}

	p := board.New(mask)
	for _, line := range lines {
		if err := p.Reset(); err != nil {
			return nil, fmt.Errorf("book: resetting board: %w", err)
		}

		for _, uci := range line {
			m, err := board.ParseMove(uci)
			if err != nil {
				return nil, fmt.Errorf("book: invalid line %v: %w", line, err)
			}

			hash := p.Zobrist()
			if !contains(moves[hash], m) {
				moves[hash] = append(moves[hash], m)
			}

			p.Commit(m)
		}
	}
	return &Book{moves: moves}, nil
}

func contains(moves []board.Move, m board.Move) bool {
	for _, c := range moves {
		if c.Equals(m) {
			return true
		}
	}
	return false
}

// record is the on-disk JSON shape: Zobrist hash (decimal string, since JSON
// object keys must be strings) to a list of move five-tuples
// (from_rank, from_file, to_rank, to_file, promotion kind).
type record map[string][][5]uint8

// Load reads a Book previously written by Save.
func Load(r io.Reader) (*Book, error) {
	var rec record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("book: decoding: %w", err)
	}

	moves := make(map[board.ZobristHash][]board.Move, len(rec))
	for key, tuples := range rec {
		h, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("book: invalid hash key %q: %w", key, err)
		}

		list := make([]board.Move, 0, len(tuples))
		for _, t := range tuples {
			m, err := decodeTuple(t)
			if err != nil {
				return nil, fmt.Errorf("book: invalid move %v under key %q: %w", t, key, err)
			}
			list = append(list, m)
		}
		moves[board.ZobristHash(h)] = list
	}
	return &Book{moves: moves}, nil
}

// Save serializes b for fast loading later, avoiding replaying every line
// again on startup.
func Save(w io.Writer, b *Book) error {
	rec := make(record, len(b.moves))
	for hash, moves := range b.moves {
		key := strconv.FormatUint(uint64(hash), 10)
		tuples := make([][5]uint8, len(moves))
		for i, m := range moves {
			tuples[i] = [5]uint8{
				uint8(m.From.Rank()), uint8(m.From.File()),
				uint8(m.To.Rank()), uint8(m.To.File()),
				uint8(m.Promotion),
			}
		}
		rec[key] = tuples
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

func decodeTuple(t [5]uint8) (board.Move, error) {
	for _, v := range t[:4] {
		if v > 7 {
			return board.Move{}, fmt.Errorf("coordinate %d out of range", v)
		}
	}
	promo := board.Kind(t[4])
	if promo != board.NoKind && !promo.IsPromotable() {
		return board.Move{}, fmt.Errorf("invalid promotion kind %d", t[4])
	}
	from := board.NewSquare(board.Rank(t[0]), board.File(t[1]))
	to := board.NewSquare(board.Rank(t[2]), board.File(t[3]))
	if promo != board.NoKind {
		return board.NewPromotionMove(from, to, promo), nil
	}
	return board.NewMove(from, to), nil
}
