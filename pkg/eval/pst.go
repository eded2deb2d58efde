package eval

import "github.com/blackbishop/chesscore/pkg/board"

// pstTable holds a bonus per square, indexed the same way board.Square is:
// rank*8+file with A1 at index 0. The first literal row below is therefore
// White's back rank, the last row is the promotion rank.
type pstTable [board.NumSquares]Score

var openingKnight = whiteTable(
	0, 5, 5, 5, 5, 5, 5, 0,
	0, 10, 15, 25, 25, 15, 10, 5,
	5, 15, 35, 40, 40, 35, 15, 5,
	5, 25, 40, 50, 50, 40, 25, 5,
	5, 25, 40, 50, 50, 40, 25, 5,
	5, 15, 35, 40, 40, 35, 15, 5,
	5, 10, 15, 25, 25, 15, 10, 0,
	0, 5, 5, 5, 5, 5, 5, 0,
)

var openingKing = whiteTable(
	40, 50, 15, 5, 5, 15, 50, 40,
	35, 35, 10, 5, 5, 10, 35, 35,
	30, 15, 5, 0, 0, 5, 15, 30,
	20, 10, 0, 0, 0, 0, 10, 20,
	10, 5, 5, 0, 0, 5, 5, 10,
	10, 5, 5, 0, 0, 5, 5, 10,
	5, 5, 5, 0, 0, 5, 5, 5,
	5, 5, 5, 0, 0, 5, 5, 5,
)

var openingQueen = whiteTable(
	0, 10, 10, 25, 25, 10, 10, 0,
	10, 40, 40, 40, 40, 40, 40, 10,
	10, 40, 50, 50, 50, 50, 40, 10,
	25, 40, 50, 50, 50, 50, 40, 25,
	25, 40, 50, 50, 50, 50, 40, 25,
	10, 40, 50, 50, 50, 50, 40, 10,
	10, 40, 40, 40, 40, 40, 40, 10,
	0, 10, 10, 25, 25, 10, 10, 0,
)

var openingBishop = whiteTable(
	15, 10, 10, 10, 10, 10, 10, 15,
	10, 35, 15, 15, 15, 15, 35, 10,
	10, 35, 35, 35, 35, 35, 35, 10,
	10, 15, 50, 35, 35, 50, 15, 10,
	10, 20, 20, 35, 35, 20, 20, 10,
	10, 15, 20, 35, 35, 20, 15, 10,
	10, 15, 15, 15, 15, 15, 15, 10,
	0, 10, 10, 10, 10, 10, 10, 0,
)

var openingRook = whiteTable(
	15, 15, 20, 35, 35, 20, 15, 15,
	0, 15, 15, 15, 15, 15, 15, 0,
	0, 15, 15, 15, 15, 15, 15, 0,
	0, 15, 15, 15, 15, 15, 15, 0,
	0, 15, 15, 15, 15, 15, 15, 0,
	0, 15, 15, 15, 15, 15, 15, 0,
	35, 50, 50, 50, 50, 50, 50, 35,
	25, 25, 25, 25, 25, 25, 25, 25,
)

var openingPawn = whiteTable(
	0, 0, 0, 0, 0, 0, 0, 0,
	35, 35, 35, 0, 0, 35, 35, 35,
	30, 10, 10, 25, 25, 10, 10, 30,
	15, 5, 5, 40, 40, 5, 5, 15,
	15, 5, 5, 35, 35, 5, 5, 15,
	5, 5, 5, 30, 30, 5, 5, 5,
	25, 25, 25, 25, 25, 25, 25, 25,
	0, 0, 0, 0, 0, 0, 0, 0,
)

var endgameKing = whiteTable(
	0, 0, 5, 5, 5, 5, 0, 0,
	0, 0, 5, 10, 10, 5, 0, 0,
	0, 5, 15, 30, 30, 15, 5, 0,
	0, 10, 35, 45, 45, 35, 10, 0,
	0, 10, 40, 50, 50, 40, 10, 0,
	0, 10, 30, 40, 40, 30, 10, 0,
	0, 0, 10, 15, 15, 10, 0, 0,
	0, 0, 5, 5, 5, 5, 0, 0,
)

var endgamePawn = whiteTable(
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5,
	15, 15, 15, 15, 15, 15, 15, 15,
	25, 25, 25, 25, 25, 25, 25, 25,
	35, 35, 35, 35, 35, 35, 35, 35,
	50, 50, 50, 50, 50, 50, 50, 50,
	0, 0, 0, 0, 0, 0, 0, 0,
)

// openingTables and endgameTables are indexed [color][kind]. Only White's
// table is ever written out by hand; Black's is derived by mirroring rank
// (same file), since the two sides are reflections of each other across
// the board's horizontal midline.
var openingTables [board.NumColors][board.NumKinds]pstTable
var endgameTables [board.NumColors][board.NumKinds]pstTable

func init() {
	white := [board.NumKinds]pstTable{
		board.Pawn:   openingPawn,
		board.Knight: openingKnight,
		board.Bishop: openingBishop,
		board.Rook:   openingRook,
		board.Queen:  openingQueen,
		board.King:   openingKing,
	}
	for k, t := range white {
		openingTables[board.White][k] = t
		openingTables[board.Black][k] = mirrorRank(t)
	}

	endWhite := [board.NumKinds]pstTable{
		board.Pawn: endgamePawn,
		board.King: endgameKing,
	}
	for k, t := range endWhite {
		endgameTables[board.White][k] = t
		endgameTables[board.Black][k] = mirrorRank(t)
	}
}

func whiteTable(values ...int) pstTable {
	if len(values) != int(board.NumSquares) {
		panic("eval: piece-square table must hold exactly 64 values")
	}
	var t pstTable
	for i, v := range values {
		t[i] = Score(v)
	}
	return t
}

// mirrorRank reflects a White-oriented table across the board's horizontal
// midline to produce Black's table: Black's bonus at (rank, file) equals
// White's bonus at (7-rank, file).
func mirrorRank(t pstTable) pstTable {
	var out pstTable
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		mirrored := board.NewSquare(board.Rank(7)-sq.Rank(), sq.File())
		out[sq] = t[mirrored]
	}
	return out
}

// positionalBonus sums a piece-square table for one color's pieces.
func positionalBonus(p *board.Position, c board.Color, tables *[board.NumColors][board.NumKinds]pstTable) Score {
	var sum Score
	for _, sq := range p.PieceLocations(c).Squares() {
		sum += tables[c][p.At(sq).Kind()][sq]
	}
	return sum
}
