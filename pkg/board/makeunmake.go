package board

// undoEntry is a fixed-shape journal record. The set of squares it touches
// varies with the move (2 for a normal move, 3 for en passant, 4 for
// castling) but the shape of the record itself never does: the rook leg of
// a castle is folded into the same entry as the king's move rather than
// being journalled as a nested make, per the single-atomic-entry design.
type undoEntry struct {
	move       Move
	moverColor Color

	squares      [4]Square
	oldPieces    [4]Piece
	squaresCount int

	oldPieceLoc       [NumColors]SquareSet
	oldKings          [NumColors]Square
	oldCastlingRights [NumColors]CastlingRights
	oldEnPassant      Square
	oldHalfMoves      int
	oldFullMoves      int
	oldInCheck        bool
	oldGameOver       *GameOver
	oldZobrist        ZobristHash
	oldAttack         AttackMap

	hasRepetitionIncrement bool
	repetitionKey          ZobristHash
	hasRepetitionReset     bool
	oldRepetitions         map[ZobristHash]int
}

// make applies m to the board, piece locations, kings, castling rights and
// en-passant target, and pushes a journal entry recording every prior
// value. It never touches side-to-move, the move clocks, attack maps,
// in_check, the Zobrist hash, game_over, or repetitions — those are
// commit's responsibility. Returns the squares whose contents changed.
func (p *Position) make(m Move) []Square {
	mover := p.sideToMove
	opp := p.opponent
	movedPiece := p.board[m.From]
	kind := movedPiece.Kind()

	isEnPassant := kind == Pawn && p.epTarget != NoSquare && m.To == p.epTarget && m.From.File() != m.To.File()

	var capturedSq Square = NoSquare
	if isEnPassant {
		back := PawnForward(opp)
		capturedSq, _ = back.Apply(m.To)
	} else if !p.board[m.To].IsEmpty() {
		capturedSq = m.To
	}

	isCastling := kind == King && m.IsCastling(King)
	var castle CastlingInfo
	if isCastling {
		for _, info := range CastlingMoves(mover) {
			if info.KingTo == m.To {
				castle = info
				break
			}
		}
	}

	entry := undoEntry{
		move:              m,
		moverColor:        mover,
		oldPieceLoc:       p.pieceLoc,
		oldKings:          p.kings,
		oldCastlingRights: p.castlingRights,
		oldEnPassant:      p.epTarget,
		oldHalfMoves:      p.halfMoves,
		oldFullMoves:      p.fullMoves,
		oldInCheck:        p.inCheck,
		oldGameOver:       p.gameOver,
		oldZobrist:        p.zobrist,
		oldAttack:         p.attack[mover],
	}

	record := func(sq Square) {
		entry.squares[entry.squaresCount] = sq
		entry.oldPieces[entry.squaresCount] = p.board[sq]
		entry.squaresCount++
	}

	record(m.From)
	if isEnPassant {
		record(capturedSq)
	}
	record(m.To)
	if isCastling {
		record(castle.RookFrom)
		record(castle.RookTo)
	}

	if capturedSq != NoSquare {
		p.board[capturedSq] = Empty
		p.pieceLoc[opp] = p.pieceLoc[opp].Remove(capturedSq)
	}

	destPiece := movedPiece
	if m.IsPromotion() {
		destPiece = NewPiece(mover, m.Promotion)
	}
	p.board[m.From] = Empty
	p.board[m.To] = destPiece
	p.pieceLoc[mover] = p.pieceLoc[mover].Remove(m.From).Add(m.To)
	if kind == King {
		p.kings[mover] = m.To
	}

	if isCastling {
		p.board[castle.RookFrom] = Empty
		p.board[castle.RookTo] = NewPiece(mover, Rook)
		p.pieceLoc[mover] = p.pieceLoc[mover].Remove(castle.RookFrom).Add(castle.RookTo)
	}

	newRights := p.castlingRights
	if kind == King {
		newRights[mover] = NoCastlingRights
	}
	if info, ok := RookCastlingSquares[m.From]; ok && info.Color == mover {
		newRights[mover] = newRights[mover].Without(info.Side)
	}
	if info, ok := RookCastlingSquares[m.To]; ok {
		newRights[info.Color] = newRights[info.Color].Without(info.Side)
	}
	p.castlingRights = newRights

	if kind == Pawn {
		fwd := PawnForward(mover)
		if one, ok := fwd.Apply(m.From); ok {
			if two, ok2 := fwd.Apply(one); ok2 && two == m.To {
				p.epTarget = one
			} else {
				p.epTarget = NoSquare
			}
		}
	} else {
		p.epTarget = NoSquare
	}

	p.undo = append(p.undo, entry)

	affected := make([]Square, entry.squaresCount)
	copy(affected, entry.squares[:entry.squaresCount])
	return affected
}

// unmake pops the journal entry and inverts every change it recorded.
// committed additionally swaps side-to-move/opponent back; the fields it
// guards (clocks, attack map, in_check, Zobrist, game_over, repetitions)
// were never mutated by a non-committed make, so restoring them
// unconditionally is always safe.
func (p *Position) unmake(committed bool) {
	entry := p.undo[len(p.undo)-1]
	p.undo = p.undo[:len(p.undo)-1]

	for i := entry.squaresCount - 1; i >= 0; i-- {
		p.board[entry.squares[i]] = entry.oldPieces[i]
	}
	p.pieceLoc = entry.oldPieceLoc
	p.kings = entry.oldKings
	p.castlingRights = entry.oldCastlingRights
	p.epTarget = entry.oldEnPassant
	p.halfMoves = entry.oldHalfMoves
	p.fullMoves = entry.oldFullMoves
	p.inCheck = entry.oldInCheck
	p.gameOver = entry.oldGameOver
	p.zobrist = entry.oldZobrist
	p.attack[entry.moverColor] = entry.oldAttack

	if entry.hasRepetitionReset {
		p.repetitions = entry.oldRepetitions
	} else if entry.hasRepetitionIncrement {
		p.repetitions[entry.repetitionKey]--
	}

	if committed {
		p.sideToMove, p.opponent = p.opponent, p.sideToMove
	}
}

// Unmake pops the journal entry for the most recent make or Commit and
// inverts it. Pass the same committed value used when the move was made
// (true for a move applied via Commit).
func (p *Position) Unmake(committed bool) {
	p.unmake(committed)
}

// Commit makes m and then runs commit_effects: refreshes the mover's
// attack map, advances the move clocks, flips the side to move, rehashes
// from scratch, refreshes in_check, and detects terminal conditions in the
// order checkmate/stalemate, fifty-move, threefold, insufficient material.
// Returns every square whose contents changed, for a front-end to redraw.
func (p *Position) Commit(m Move) []Square {
	mover := p.sideToMove
	kind := p.board[m.From].Kind()
	isCapture := !p.board[m.To].IsEmpty() ||
		(kind == Pawn && p.epTarget != NoSquare && m.To == p.epTarget && m.From.File() != m.To.File())
	isPawnMove := kind == Pawn

	affected := p.make(m)
	entry := &p.undo[len(p.undo)-1]

	p.attack[mover] = p.computeAttackMap(mover)

	if isCapture || isPawnMove {
		p.halfMoves = 0
	} else {
		p.halfMoves++
	}
	if mover == Black {
		p.fullMoves++
	}

	p.sideToMove, p.opponent = p.opponent, p.sideToMove
	p.zobrist = p.mask.Hash(p.board, p.sideToMove)
	p.inCheck = p.attack[p.opponent].Direct.Has(p.kings[p.sideToMove])

	p.gameOver = nil
	noLegalMoves := len(p.LegalMoves(false)) == 0
	switch {
	case noLegalMoves && p.inCheck:
		p.gameOver = &GameOver{Cause: Checkmate, Result: winResultFor(p.opponent)}
	case noLegalMoves:
		p.gameOver = &GameOver{Cause: Stalemate, Result: DrawResult}
	case p.halfMoves > 99:
		p.gameOver = &GameOver{Cause: FiftyMoveRule, Result: DrawResult}
	}

	if isCapture || isPawnMove {
		entry.hasRepetitionReset = true
		entry.oldRepetitions = p.repetitions
		p.repetitions = map[ZobristHash]int{}
	} else {
		p.repetitions[p.zobrist]++
		entry.hasRepetitionIncrement = true
		entry.repetitionKey = p.zobrist
		if p.gameOver == nil && p.repetitions[p.zobrist] > 2 {
			p.gameOver = &GameOver{Cause: Threefold, Result: DrawResult}
		}
	}

	if p.gameOver == nil && p.hasInsufficientMaterial() {
		p.gameOver = &GameOver{Cause: InsufficientMaterial, Result: DrawResult}
	}

	return affected
}

func winResultFor(winner Color) Result {
	if winner == White {
		return WhiteWinsResult
	}
	return BlackWinsResult
}

func (p *Position) hasInsufficientMaterial() bool {
	var minors [NumColors]int
	for c := White; c <= Black; c++ {
		for _, sq := range p.pieceLoc[c].Squares() {
			switch p.board[sq].Kind() {
			case Pawn, Rook, Queen:
				return false
			case Knight, Bishop:
				minors[c]++
			}
		}
	}
	return minors[White] <= 1 && minors[Black] <= 1
}
