package board

import "fmt"

// Cause identifies why a game ended.
type Cause uint8

const (
	NoCause Cause = iota
	Checkmate
	Stalemate
	FiftyMoveRule
	Threefold
	InsufficientMaterial
)

func (c Cause) String() string {
	switch c {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case FiftyMoveRule:
		return "fifty_move"
	case Threefold:
		return "threefold"
	case InsufficientMaterial:
		return "insufficient_material"
	default:
		return "none"
	}
}

// Result is the game score, reported from White's perspective.
type Result float32

const (
	BlackWinsResult Result = 0
	DrawResult      Result = 0.5
	WhiteWinsResult Result = 1
)

// GameOver describes a terminal position. A nil *GameOver means the game continues.
type GameOver struct {
	Result Result
	Cause  Cause
}

func (g *GameOver) String() string {
	if g == nil {
		return "in progress"
	}
	return fmt.Sprintf("%v (%v)", g.Result, g.Cause)
}
