package board

// pseudoLegalMoves generates color c's pseudo-legal moves, split into
// non-captures and captures. Sliders walk their rays until
// blocked or off-board; leapers (knight, king) take single steps; pawns
// get their own forward/capture/promotion handling; castling is appended
// to the king's moves once per retained, currently-unblocked right.
func (p *Position) pseudoLegalMoves(c Color) (nonCaptures, captures []Move) {
	for _, sq := range p.pieceLoc[c].Squares() {
		kind := p.board[sq].Kind()
		if kind == Pawn {
			nc, cp := p.pawnMoves(c, sq)
			nonCaptures = append(nonCaptures, nc...)
			captures = append(captures, cp...)
			continue
		}

		for _, dir := range Rays(kind) {
			cur := sq
			for {
				t, ok := dir.Apply(cur)
				if !ok {
					break
				}
				occupant := p.board[t]
				if occupant.IsEmpty() {
					nonCaptures = append(nonCaptures, NewMove(sq, t))
				} else {
					if occupant.Color() != c {
						captures = append(captures, NewMove(sq, t))
					}
					break
				}
				if !IsSlider(kind) {
					break
				}
				cur = t
			}
		}

		if kind == King {
			nonCaptures = append(nonCaptures, p.castlingMoves(c)...)
		}
	}
	return nonCaptures, captures
}

func (p *Position) pawnMoves(c Color, sq Square) (nonCaptures, captures []Move) {
	fwd := PawnForward(c)
	promoRank := PawnPromotionRank(c)

	expand := func(from, to Square) []Move {
		if to.Rank() == promoRank {
			moves := make([]Move, 0, len(PromotionKinds))
			for _, k := range PromotionKinds {
				moves = append(moves, NewPromotionMove(from, to, k))
			}
			return moves
		}
		return []Move{NewMove(from, to)}
	}

	if one, ok := fwd.Apply(sq); ok && p.board[one].IsEmpty() {
		nonCaptures = append(nonCaptures, expand(sq, one)...)
		if sq.Rank() == PawnStartRank(c) {
			if two, ok2 := fwd.Apply(one); ok2 && p.board[two].IsEmpty() {
				nonCaptures = append(nonCaptures, NewMove(sq, two))
			}
		}
	}

	for _, off := range PawnCaptureOffsets(c) {
		t, ok := off.Apply(sq)
		if !ok {
			continue
		}
		if p.epTarget != NoSquare && t == p.epTarget {
			captures = append(captures, NewMove(sq, t))
			continue
		}
		occupant := p.board[t]
		if !occupant.IsEmpty() && occupant.Color() != c {
			captures = append(captures, expand(sq, t)...)
		}
	}
	return nonCaptures, captures
}

func (p *Position) castlingMoves(c Color) []Move {
	var moves []Move
	for _, info := range CastlingMoves(c) {
		if !p.castlingRights[c].Has(info.Side) {
			continue
		}
		empty := true
		for _, sq := range info.Empty {
			if !p.board[sq].IsEmpty() {
				empty = false
				break
			}
		}
		if empty {
			moves = append(moves, NewMove(info.KingFrom, info.KingTo))
		}
	}
	return moves
}

// LegalMoves filters the side to move's pseudo-legal moves down to legal
// ones: castling checks the king's traversed squares against the
// opponent's cached attack map; in check, every move is tested by make and
// a king-capture probe; otherwise the pin-candidate shortcut accepts any
// non-king, non-en-passant move whose origin isn't pinned and only falls
// back to the probe for the rest.
func (p *Position) LegalMoves(onlyCaptures bool) []Move {
	nonCaptures, captures := p.pseudoLegalMoves(p.sideToMove)

	var candidates []Move
	if onlyCaptures {
		candidates = captures
	} else {
		candidates = make([]Move, 0, len(nonCaptures)+len(captures))
		candidates = append(candidates, nonCaptures...)
		candidates = append(candidates, captures...)
	}

	attacked := p.attack[p.opponent].Direct
	pinned := p.attack[p.opponent].PinCandidates

	legal := make([]Move, 0, len(candidates))
	for _, m := range candidates {
		moved := p.board[m.From].Kind()

		switch {
		case moved == King && m.IsCastling(moved):
			if p.isCastleLegal(p.sideToMove, m, attacked) {
				legal = append(legal, m)
			}
		case p.inCheck:
			if p.probeLegal(m) {
				legal = append(legal, m)
			}
		case moved == King:
			if !attacked.Has(m.To) {
				legal = append(legal, m)
			}
		case moved == Pawn && p.epTarget != NoSquare && m.To == p.epTarget && m.From.File() != m.To.File():
			if p.probeLegal(m) {
				legal = append(legal, m)
			}
		case !pinned.Has(m.From):
			legal = append(legal, m)
		default:
			if p.probeLegal(m) {
				legal = append(legal, m)
			}
		}
	}
	return legal
}

// SplitLegalMoves partitions the side to move's legal moves into
// non-promotions and promotions, letting a front-end decide whether to
// prompt for a promotion piece.
func (p *Position) SplitLegalMoves() (nonPromotions, promotions []Move) {
	for _, m := range p.LegalMoves(false) {
		if m.IsPromotion() {
			promotions = append(promotions, m)
		} else {
			nonPromotions = append(nonPromotions, m)
		}
	}
	return nonPromotions, promotions
}

func (p *Position) isCastleLegal(c Color, m Move, attacked SquareSet) bool {
	for _, info := range CastlingMoves(c) {
		if info.KingTo != m.To {
			continue
		}
		for _, sq := range info.Traverse {
			if attacked.Has(sq) {
				return false
			}
		}
		return true
	}
	return false
}

// probeLegal makes m without committing it, asks whether the opponent could
// now capture the mover's king, then unmakes — the make-and-probe path used
// whenever the cheaper shortcuts above don't apply.
func (p *Position) probeLegal(m Move) bool {
	mover := p.sideToMove
	p.make(m)
	attacked := p.isSquareAttackedBy(p.opponent, p.kings[mover])
	p.unmake(false)
	return !attacked
}
