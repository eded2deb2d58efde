package board

import "fmt"

// Move is the five-tuple (from_rank, from_file, to_rank, to_file, promotion).
// From and To each pack a rank and file into a Square; Promotion defaults to
// NoKind. Castling is encoded as the king's own two-file move; en passant is
// encoded as the capturing pawn's diagonal move onto the empty target square.
type Move struct {
	From, To  Square
	Promotion Kind
}

// NewMove builds a non-promoting move.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to, Promotion: NoKind}
}

// NewPromotionMove builds a move that promotes to the given kind.
func NewPromotionMove(from, to Square, promotion Kind) Move {
	return Move{From: from, To: to, Promotion: promotion}
}

func (m Move) IsPromotion() bool {
	return m.Promotion != NoKind
}

// IsCastling reports whether m is a king moving two files on the same rank,
// the convention used to encode castling.
func (m Move) IsCastling(moved Kind) bool {
	if moved != King || m.From.Rank() != m.To.Rank() {
		return false
	}
	df := int(m.To.File()) - int(m.From.File())
	return df == 2 || df == -2
}

// CastlingSide reports which side m castles toward, assuming IsCastling(King) holds.
func (m Move) CastlingSide() CastlingRights {
	if int(m.To.File())-int(m.From.File()) > 0 {
		return KingSide
	}
	return QueenSide
}

func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

func (m Move) String() string {
	if m.IsPromotion() {
		return fmt.Sprintf("%v%v%v", m.From, m.To, m.Promotion)
	}
	return fmt.Sprintf("%v%v", m.From, m.To)
}

// ParseMove parses UCI long-algebraic notation, such as "e2e4" or "e7e8q",
// the conversion to the internal representation being purely lexical.
func ParseMove(str string) (Move, error) {
	runes := []rune(str)
	if len(runes) < 4 || len(runes) > 5 {
		return Move{}, fmt.Errorf("invalid move: %q", str)
	}

	from, err := ParseSquare(string(runes[0:2]))
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %w", str, err)
	}
	to, err := ParseSquare(string(runes[2:4]))
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %w", str, err)
	}

	if len(runes) == 5 {
		promo, ok := ParseKind(runes[4])
		if !ok || !promo.IsPromotable() {
			return Move{}, fmt.Errorf("invalid promotion in move %q", str)
		}
		return NewPromotionMove(from, to, promo), nil
	}
	return NewMove(from, to), nil
}
