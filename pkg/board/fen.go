package board

import (
	"fmt"
	"strconv"
	"strings"
)

// LoadFEN parses the standard six-field FEN record and replaces the
// position's state wholesale. On a malformed FEN the position is left
// untouched. The loader accepts any legal FEN; it does not re-check that
// the position is reachable.
func (p *Position) LoadFEN(s string) error {
	fields := strings.Fields(s)
	if len(fields) != 6 {
		return fmt.Errorf("invalid FEN %q: want 6 fields, got %d", s, len(fields))
	}

	var board [NumSquares]Piece
	rank, file := 7, 0
	for _, r := range fields[0] {
		switch {
		case r == '/':
			if file != 8 {
				return fmt.Errorf("invalid FEN %q: short rank", s)
			}
			rank--
			file = 0
		case r >= '1' && r <= '8':
			file += int(r - '0')
		default:
			kind, ok := ParseKind(r)
			if !ok {
				return fmt.Errorf("invalid FEN %q: bad piece %q", s, r)
			}
			color := Black
			if r >= 'A' && r <= 'Z' {
				color = White
			}
			if rank < 0 || file > 7 {
				return fmt.Errorf("invalid FEN %q: placement overflow", s)
			}
			board[NewSquare(Rank(rank), File(file))] = NewPiece(color, kind)
			file++
		}
	}
	if rank != 0 || file != 8 {
		return fmt.Errorf("invalid FEN %q: wrong number of squares", s)
	}

	stm, ok := parseColor([]rune(fields[1])[0])
	if len(fields[1]) != 1 || !ok {
		return fmt.Errorf("invalid FEN %q: bad active color", s)
	}

	rights, err := ParseCastlingRights(fields[2])
	if err != nil {
		return fmt.Errorf("invalid FEN %q: %w", s, err)
	}

	ep := NoSquare
	if fields[3] != "-" {
		ep, err = ParseSquare(fields[3])
		if err != nil {
			return fmt.Errorf("invalid FEN %q: bad en passant target: %w", s, err)
		}
	}

	half, err := strconv.Atoi(fields[4])
	if err != nil || half < 0 {
		return fmt.Errorf("invalid FEN %q: bad halfmove clock", s)
	}
	full, err := strconv.Atoi(fields[5])
	if err != nil || full < 1 {
		return fmt.Errorf("invalid FEN %q: bad fullmove number", s)
	}

	kings := [NumColors]Square{NoSquare, NoSquare}
	var loc [NumColors]SquareSet
	for sq, piece := range board {
		if piece.IsEmpty() {
			continue
		}
		loc[piece.Color()] = loc[piece.Color()].Add(Square(sq))
		if piece.Kind() == King {
			kings[piece.Color()] = Square(sq)
		}
	}
	if kings[White] == NoSquare || kings[Black] == NoSquare {
		return fmt.Errorf("invalid FEN %q: missing king", s)
	}

	p.clear()
	p.board = board
	p.pieceLoc = loc
	p.kings = kings
	p.sideToMove = stm
	p.castlingRights = rights
	p.epTarget = ep
	p.halfMoves = half
	p.fullMoves = full
	p.finishLoad()
	return nil
}

// FEN renders the position as the standard six-field record.
func (p *Position) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		blanks := 0
		for file := 0; file < 8; file++ {
			piece := p.board[NewSquare(Rank(rank), File(file))]
			if piece.IsEmpty() {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteString(piece.String())
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	ep := "-"
	if p.epTarget != NoSquare {
		ep = p.epTarget.String()
	}

	return fmt.Sprintf("%s %s %s %s %d %d",
		sb.String(), p.sideToMove, FormatCastlingRights(p.castlingRights), ep, p.halfMoves, p.fullMoves)
}
