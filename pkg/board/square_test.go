package board_test

import (
	"testing"

	"github.com/blackbishop/chesscore/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquareRoundTrip(t *testing.T) {
	tests := []struct {
		str  string
		want board.Square
	}{
		{"a1", board.A1},
		{"h1", board.H1},
		{"a8", board.A8},
		{"h8", board.H8},
		{"e4", board.E4},
	}
	for _, tt := range tests {
		sq, err := board.ParseSquare(tt.str)
		require.NoError(t, err)
		assert.Equal(t, tt.want, sq)
		assert.Equal(t, tt.str, sq.String())
	}
}

func TestSquareRankMajorLayout(t *testing.T) {
	assert.Equal(t, board.Square(0), board.A1)
	assert.Equal(t, board.Square(7), board.H1)
	assert.Equal(t, board.Square(8), board.A2)
	assert.Equal(t, board.Square(63), board.H8)
	assert.Equal(t, board.Rank(0), board.A1.Rank())
	assert.Equal(t, board.Rank(7), board.A8.Rank())
}

func TestParseSquareInvalid(t *testing.T) {
	_, err := board.ParseSquare("i9")
	assert.Error(t, err)

	_, err = board.ParseSquare("a")
	assert.Error(t, err)
}
