// Package eval scores a position relative to the side to move: a positive
// Score favors whoever is to move, independent of color.
package eval

import "github.com/blackbishop/chesscore/pkg/board"

// forceKingWeight scales the king-to-corner endgame bonus.
const forceKingWeight = 10

// openingBonusWeight and endgameBonusWeight scale the two positional tables before
// they are blended by the position's endgame progress.
const (
	openingBonusWeight = 1.0
	endgameBonusWeight = 0.8
)

// Evaluate scores p relative to the side to move: material plus a blend of
// opening and endgame piece-square bonuses, plus a king-to-corner bonus
// that only matters once material has thinned out.
func Evaluate(p *board.Position) Score {
	side, opp := p.SideToMove(), p.Opponent()

	ownMaterial := Material(p, side)
	oppMaterial := Material(p, opp)
	weight := EndgameWeight(oppMaterial)

	score := ownMaterial - oppMaterial
	score += kingToCornerBonus(p, side, opp, weight)
	score += openingPositionalBonus(p, side, opp, weight)
	score += endgamePositionalBonus(p, side, opp, weight)
	return score
}

// kingToCornerBonus rewards driving the opponent's king toward the board's
// edge and bringing the mover's own king closer to it, weighted by how far
// the position has progressed into the endgame. It is a no-op outside the
// endgame since weight is then 0.
func kingToCornerBonus(p *board.Position, side, opp board.Color, weight float64) Score {
	oppoKing := p.King(opp)
	oppoRank, oppoFile := int(oppoKing.Rank()), int(oppoKing.File())

	distRank := max(3-oppoRank, oppoRank-4)
	distFile := max(3-oppoFile, oppoFile-4)
	distCenter := distRank + distFile

	ownKing := p.King(side)
	ownRank, ownFile := int(ownKing.Rank()), int(ownKing.File())
	distBetween := abs(ownRank-oppoRank) + abs(ownFile-oppoFile)

	bonus := distCenter*3 + (14 - distBetween)
	return Score(float64(bonus) * forceKingWeight * weight)
}

// openingPositionalBonus rewards good piece placement while material is
// still on the board; it fades to zero as the endgame weight rises to 1.
func openingPositionalBonus(p *board.Position, side, opp board.Color, weight float64) Score {
	bonus := positionalBonus(p, side, &openingTables) - positionalBonus(p, opp, &openingTables)
	return Score(float64(bonus) * openingBonusWeight * (1 - weight))
}

// endgamePositionalBonus rewards king activity and pawn advancement once
// the endgame weight has risen; it is a no-op in the opening.
func endgamePositionalBonus(p *board.Position, side, opp board.Color, weight float64) Score {
	bonus := positionalBonus(p, side, &endgameTables) - positionalBonus(p, opp, &endgameTables)
	return Score(float64(bonus) * endgameBonusWeight * weight)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
