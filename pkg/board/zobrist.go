package board

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
)

// ZobristHash is a 64-bit position fingerprint keyed by (square, piece) and
// a side-to-move bit. Deliberately excludes castling rights and the
// en-passant target: repetition detection in this engine relies on
// placement and side to move only.
type ZobristHash uint64

// pieceCodes enumerates the 12 real pieces a ZobristMask assigns a word to.
var pieceCodes = []Piece{
	WKing, WPawn, WKnight, WBishop, WRook, WQueen,
	BKing, BPawn, BKnight, BBishop, BRook, BQueen,
}

// ZobristMask is the fixed random table the hash is built from: one word
// per (square, piece) pair, plus a single "Black to move" word. Regenerating
// the mask invalidates any opening book keyed by the old one.
type ZobristMask struct {
	BlackToMove uint64
	board       [NumSquares]map[Piece]uint64
}

// NewZobristMask generates a fresh random mask from a seed. Used to produce
// the mask file consumed in production and as a convenient default in tests.
func NewZobristMask(seed int64) *ZobristMask {
	r := rand.New(rand.NewSource(seed))
	m := &ZobristMask{BlackToMove: r.Uint64()}
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		m.board[sq] = make(map[Piece]uint64, len(pieceCodes))
		for _, p := range pieceCodes {
			m.board[sq][p] = r.Uint64()
		}
	}
	return m
}

// Hash recomputes the Zobrist hash of a placement and side to move from
// scratch: the XOR of the words for every occupied (square, piece) pair,
// XOR the black word iff Black is to move.
func (m *ZobristMask) Hash(placement [NumSquares]Piece, sideToMove Color) ZobristHash {
	var h uint64
	for sq, p := range placement {
		if p.IsEmpty() {
			continue
		}
		h ^= m.board[sq][p]
	}
	if sideToMove == Black {
		h ^= m.BlackToMove
	}
	return ZobristHash(h)
}

// zobristMaskFile is the JSON wire format: a 64-bit black_mask and a
// length-64 array of piece-code-keyed maps of 64-bit random words.
type zobristMaskFile struct {
	BlackMask uint64              `json:"black_mask"`
	BoardMask [64]map[string]uint64 `json:"board_mask"`
}

// LoadZobristMask decodes a mask previously written by WriteZobristMask.
func LoadZobristMask(r io.Reader) (*ZobristMask, error) {
	var f zobristMaskFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode zobrist mask: %w", err)
	}
	m := &ZobristMask{BlackToMove: f.BlackMask}
	for sq := 0; sq < int(NumSquares); sq++ {
		m.board[sq] = make(map[Piece]uint64, len(f.BoardMask[sq]))
		for code, val := range f.BoardMask[sq] {
			var p uint8
			if _, err := fmt.Sscanf(code, "%d", &p); err != nil {
				return nil, fmt.Errorf("decode zobrist mask: invalid piece code %q: %w", code, err)
			}
			m.board[sq][Piece(p)] = val
		}
	}
	return m, nil
}

// WriteZobristMask encodes the mask to the persisted JSON format.
func WriteZobristMask(w io.Writer, m *ZobristMask) error {
	f := zobristMaskFile{BlackMask: m.BlackToMove}
	for sq := 0; sq < int(NumSquares); sq++ {
		f.BoardMask[sq] = make(map[string]uint64, len(m.board[sq]))
		for p, val := range m.board[sq] {
			f.BoardMask[sq][fmt.Sprintf("%d", uint8(p))] = val
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode zobrist mask: %w", err)
	}
	return nil
}
