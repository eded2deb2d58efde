package board

import "fmt"

// Position is the mutable game state: piece placement,
// side to move, castling rights, en-passant target, move clocks, per-side
// piece locations, king squares, attack maps, Zobrist hash, a repetition
// counter, and the undo log that make/unmake operate on.
type Position struct {
	board [NumSquares]Piece

	sideToMove, opponent Color

	kings    [NumColors]Square
	pieceLoc [NumColors]SquareSet

	castlingRights [NumColors]CastlingRights
	epTarget       Square

	halfMoves int
	fullMoves int

	inCheck bool
	attack  [NumColors]AttackMap

	mask     *ZobristMask
	zobrist  ZobristHash
	repetitions map[ZobristHash]int

	undo []undoEntry

	gameOver *GameOver
}

// New builds an empty Position bound to the given Zobrist mask. Call
// LoadFEN or Reset before using it for move generation.
func New(mask *ZobristMask) *Position {
	return &Position{
		mask:        mask,
		epTarget:    NoSquare,
		repetitions: map[ZobristHash]int{},
		fullMoves:   1,
	}
}

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Reset reinitializes the position to the standard starting array.
func (p *Position) Reset() error {
	return p.LoadFEN(StartFEN)
}

func (p *Position) SideToMove() Color { return p.sideToMove }
func (p *Position) Opponent() Color   { return p.opponent }
func (p *Position) FullMoves() int    { return p.fullMoves }
func (p *Position) HalfMoves() int    { return p.halfMoves }
func (p *Position) InCheck() bool     { return p.inCheck }
func (p *Position) Zobrist() ZobristHash { return p.zobrist }
func (p *Position) GameOver() *GameOver  { return p.gameOver }
func (p *Position) King(c Color) Square  { return p.kings[c] }
func (p *Position) PieceLocations(c Color) SquareSet { return p.pieceLoc[c] }
func (p *Position) CastlingRights(c Color) CastlingRights { return p.castlingRights[c] }
func (p *Position) EnPassantTarget() Square { return p.epTarget }
func (p *Position) AttackMap(c Color) AttackMap { return p.attack[c] }

// Clone returns an independent copy of p, safe to mutate (including via
// Commit/Unmake) without affecting the original. Used to hand a position to
// an asynchronous search while letting the caller keep playing against its
// own copy.
func (p *Position) Clone() *Position {
	c := *p
	c.repetitions = make(map[ZobristHash]int, len(p.repetitions))
	for k, v := range p.repetitions {
		c.repetitions[k] = v
	}
	c.undo = append([]undoEntry(nil), p.undo...)
	return &c
}

// At returns the piece on sq, or Empty.
func (p *Position) At(sq Square) Piece {
	return p.board[sq]
}

func (p *Position) String() string {
	var out [NumSquares]byte
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		rank := 7 - int(sq.Rank())
		file := int(sq.File())
		out[rank*8+file] = p.At(sq).String()[0]
	}
	return fmt.Sprintf("%s stm=%v rights=%v ep=%v half=%d full=%d",
		string(out[:]), p.sideToMove, FormatCastlingRights(p.castlingRights), p.epTarget, p.halfMoves, p.fullMoves)
}

// clear resets all placement and bookkeeping state to empty, keeping the
// Zobrist mask and undo capacity.
func (p *Position) clear() {
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		p.board[sq] = Empty
	}
	p.kings = [NumColors]Square{}
	p.pieceLoc = [NumColors]SquareSet{}
	p.castlingRights = [NumColors]CastlingRights{}
	p.epTarget = NoSquare
	p.halfMoves = 0
	p.fullMoves = 1
	p.inCheck = false
	p.attack = [NumColors]AttackMap{}
	p.zobrist = 0
	p.repetitions = map[ZobristHash]int{}
	p.undo = p.undo[:0]
	p.gameOver = nil
}

// place puts a piece on a square during construction, without touching the
// undo log.
func (p *Position) place(sq Square, piece Piece) {
	p.board[sq] = piece
	p.pieceLoc[piece.Color()] = p.pieceLoc[piece.Color()].Add(sq)
	if piece.Kind() == King {
		p.kings[piece.Color()] = sq
	}
}

// finishLoad recomputes the derived fields (attack maps, in_check,
// Zobrist) after placement and side-to-move have been set directly.
// LoadFEN calls it once the parsed fields are in place.
func (p *Position) finishLoad() {
	p.opponent = p.sideToMove.Opponent()
	p.attack[White] = p.computeAttackMap(White)
	p.attack[Black] = p.computeAttackMap(Black)
	p.zobrist = p.mask.Hash(p.board, p.sideToMove)
	p.inCheck = p.attack[p.opponent].Direct.Has(p.kings[p.sideToMove])
}
