package eval

import "github.com/blackbishop/chesscore/pkg/board"

// pieceValues holds the nominal centipawn value of each kind. The king
// carries no material value: both sides always have exactly one, so it
// never affects a material balance.
var pieceValues = [board.NumKinds]Score{
	board.NoKind: 0,
	board.Pawn:   100,
	board.Knight: 300,
	board.Bishop: 300,
	board.Rook:   500,
	board.Queen:  900,
	board.King:   0,
}

// PieceValue returns the nominal material value of a kind.
func PieceValue(k board.Kind) Score {
	return pieceValues[k]
}

// Material sums the nominal value of every piece a color has on the board.
func Material(p *board.Position, c board.Color) Score {
	var sum Score
	for _, sq := range p.PieceLocations(c).Squares() {
		sum += PieceValue(p.At(sq).Kind())
	}
	return sum
}

// endgameIndicator is the opponent material count at which the endgame
// weight reaches 0; the weight rises linearly to 1 as that material falls
// to zero.
const endgameIndicator = 1200

// EndgameWeight returns how far into the endgame a position is, from 0
// (opening/middlegame) to 1 (bare-king endgame), as a pure function of the
// opponent's remaining material. It deliberately takes no Position so it
// can be unit-tested and reused without recomputing Material as a
// side effect.
func EndgameWeight(opponentMaterial Score) float64 {
	w := 1 - float64(opponentMaterial)/float64(endgameIndicator)
	if w < 0 {
		return 0
	}
	return w
}
