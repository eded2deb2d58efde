package board

import (
	"fmt"
	"strings"
)

// CastlingRights is the subset of {KingSide, QueenSide} retained by one color.
type CastlingRights uint8

const (
	NoCastlingRights CastlingRights = 0
	KingSide         CastlingRights = 1 << 0
	QueenSide        CastlingRights = 1 << 1
	AllCastlingRights CastlingRights = KingSide | QueenSide
)

func (r CastlingRights) Has(side CastlingRights) bool {
	return r&side != 0
}

func (r CastlingRights) Without(side CastlingRights) CastlingRights {
	return r &^ side
}

// CastlingInfo describes one color/side castling move: the squares the king
// and rook start and end on, the squares between them that must be empty,
// and the squares the king traverses (from, through, to) that must be
// unattacked for the move to be legal.
type CastlingInfo struct {
	Side     CastlingRights
	KingFrom, KingTo Square
	RookFrom, RookTo Square
	Empty    []Square
	Traverse []Square
}

// CastlingMoves returns the king-side and queen-side castling descriptors for a color.
func CastlingMoves(c Color) [2]CastlingInfo {
	if c == White {
		return [2]CastlingInfo{
			{Side: KingSide, KingFrom: E1, KingTo: G1, RookFrom: H1, RookTo: F1,
				Empty: []Square{F1, G1}, Traverse: []Square{E1, F1, G1}},
			{Side: QueenSide, KingFrom: E1, KingTo: C1, RookFrom: A1, RookTo: D1,
				Empty: []Square{B1, C1, D1}, Traverse: []Square{E1, D1, C1}},
		}
	}
	return [2]CastlingInfo{
		{Side: KingSide, KingFrom: E8, KingTo: G8, RookFrom: H8, RookTo: F8,
			Empty: []Square{F8, G8}, Traverse: []Square{E8, F8, G8}},
		{Side: QueenSide, KingFrom: E8, KingTo: C8, RookFrom: A8, RookTo: D8,
			Empty: []Square{B8, C8, D8}, Traverse: []Square{E8, D8, C8}},
	}
}

// RookCastlingSquares are the four squares a rook starts on that, once
// vacated or captured on, void the corresponding castling right.
var RookCastlingSquares = map[Square]struct {
	Color Color
	Side  CastlingRights
}{
	H1: {White, KingSide},
	A1: {White, QueenSide},
	H8: {Black, KingSide},
	A8: {Black, QueenSide},
}

// FormatCastlingRights renders the FEN castling field, e.g. "KQkq" or "-".
func FormatCastlingRights(rights [NumColors]CastlingRights) string {
	var sb strings.Builder
	if rights[White].Has(KingSide) {
		sb.WriteByte('K')
	}
	if rights[White].Has(QueenSide) {
		sb.WriteByte('Q')
	}
	if rights[Black].Has(KingSide) {
		sb.WriteByte('k')
	}
	if rights[Black].Has(QueenSide) {
		sb.WriteByte('q')
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// ParseCastlingRights parses the FEN castling field.
func ParseCastlingRights(s string) ([NumColors]CastlingRights, error) {
	var rights [NumColors]CastlingRights
	if s == "-" {
		return rights, nil
	}
	for _, r := range s {
		switch r {
		case 'K':
			rights[White] |= KingSide
		case 'Q':
			rights[White] |= QueenSide
		case 'k':
			rights[Black] |= KingSide
		case 'q':
			rights[Black] |= QueenSide
		default:
			return rights, fmt.Errorf("invalid castling field: %q", s)
		}
	}
	return rights, nil
}
