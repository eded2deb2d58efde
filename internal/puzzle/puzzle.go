// Package puzzle regression-tests the search against known puzzle
// solutions: for each puzzle, play the setup move, search the resulting
// position, and check the search's move against the recorded solution.
package puzzle

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/blackbishop/chesscore/pkg/board"
	"github.com/blackbishop/chesscore/pkg/search"
)

// Puzzle is one row of a Lichess-style puzzle export: a position, the
// opponent's last move leading into it, and the reply that solves it.
type Puzzle struct {
	FEN        string
	Rating     int
	SetupMove  board.Move
	Solution   board.Move
}

// ReadCSV reads puzzles from a Lichess-style CSV with "FEN", "Rating" and
// "Moves" columns, Moves holding two space-separated UCI moves: the
// opponent's setup move and the solution reply.
func ReadCSV(r io.Reader) ([]Puzzle, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("puzzle: reading header: %w", err)
	}
	idx := map[string]int{}
	for i, name := range header {
		idx[name] = i
	}
	for _, want := range []string{"FEN", "Rating", "Moves"} {
		if _, ok := idx[want]; !ok {
			return nil, fmt.Errorf("puzzle: no %q column in header %v", want, header)
		}
	}

	var puzzles []Puzzle
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("puzzle: reading row: %w", err)
		}

		moves := strings.Fields(row[idx["Moves"]])
		if len(moves) < 2 {
			return nil, fmt.Errorf("puzzle: row %v has fewer than 2 moves", row)
		}
		setup, err := board.ParseMove(moves[0])
		if err != nil {
			return nil, fmt.Errorf("puzzle: invalid setup move %q: %w", moves[0], err)
		}
		solution, err := board.ParseMove(moves[1])
		if err != nil {
			return nil, fmt.Errorf("puzzle: invalid solution move %q: %w", moves[1], err)
		}
		rating, err := strconv.Atoi(row[idx["Rating"]])
		if err != nil {
			return nil, fmt.Errorf("puzzle: invalid rating %q: %w", row[idx["Rating"]], err)
		}

		puzzles = append(puzzles, Puzzle{
			FEN:       row[idx["FEN"]],
			Rating:    rating,
			SetupMove: setup,
			Solution:  solution,
		})
	}
	return puzzles, nil
}

// Results tallies outcomes across a puzzle suite, keeping the rating of
// each puzzle the search got right or wrong so strength can be gauged by
// rating band.
type Results struct {
	Correct, Incorrect int
	CorrectRatings     []int
	IncorrectRatings   []int
}

// AverageCorrectRating returns the mean rating of solved puzzles, or 0 if none.
func (r Results) AverageCorrectRating() float64 {
	return average(r.CorrectRatings)
}

// AverageIncorrectRating returns the mean rating of missed puzzles, or 0 if none.
func (r Results) AverageIncorrectRating() float64 {
	return average(r.IncorrectRatings)
}

func average(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}

// Run searches each puzzle to depth and reports how often the search's top
// move matched the recorded solution.
func Run(ctx context.Context, mask *board.ZobristMask, puzzles []Puzzle, depth int) (Results, error) {
	var results Results

	n := search.Negamax{TT: search.NewTranspositionTable(ctx, search.DefaultTranspositionCapacity)}

	for _, pz := range puzzles {
		p := board.New(mask)
		if err := p.LoadFEN(pz.FEN); err != nil {
			return Results{}, fmt.Errorf("puzzle: loading fen %q: %w", pz.FEN, err)
		}

		legal := p.LegalMoves(false)
		if !containsMove(legal, pz.SetupMove) {
			return Results{}, fmt.Errorf("puzzle: setup move %v illegal in %q", pz.SetupMove, pz.FEN)
		}
		p.Commit(pz.SetupMove)

		_, _, pv, err := n.Search(ctx, p, depth, time.Time{})
		if err != nil {
			return Results{}, fmt.Errorf("puzzle: searching %q: %w", pz.FEN, err)
		}

		if len(pv) > 0 && pv[0].Equals(pz.Solution) {
			results.Correct++
			results.CorrectRatings = append(results.CorrectRatings, pz.Rating)
		} else {
			results.Incorrect++
			results.IncorrectRatings = append(results.IncorrectRatings, pz.Rating)
		}
	}
	return results, nil
}

func containsMove(moves []board.Move, m board.Move) bool {
	for _, c := range moves {
		if c.Equals(m) {
			return true
		}
	}
	return false
}
