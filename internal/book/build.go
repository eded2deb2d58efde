// Package book offline-builds the JSON opening book pkg/book reads at
// startup: it walks TSV files of UCI opening lines, replays them against a
// position to resolve each one to a Zobrist hash, and writes the result.
// Running it is only needed after changing the Zobrist mask or adding
// opening lines; the engine itself only ever reads the built JSON.
package book

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/blackbishop/chesscore/pkg/board"
	"github.com/blackbishop/chesscore/pkg/book"
)

// ReadTSVLines reads opening lines from a tab-separated file with a "uci"
// header column, each row holding a whitespace-separated sequence of UCI
// moves for one opening, e.g. "e2e4 e7e5 g1f3 g8f6".
func ReadTSVLines(r io.Reader) ([]book.Line, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("book: reading header: %w", err)
	}
	col := -1
	for i, name := range header {
		if name == "uci" {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("book: no 'uci' column in header %v", header)
	}

	var lines []book.Line
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("book: reading row: %w", err)
		}

		if fields := strings.Fields(row[col]); len(fields) > 0 {
			lines = append(lines, book.Line(fields))
		}
	}
	return lines, nil
}

// Build reads UCI opening lines from every tsv file in files, resolves them
// against mask and writes the resulting book as JSON to out.
func Build(mask *board.ZobristMask, files []io.Reader, out io.Writer) error {
	var lines []book.Line
	for _, f := range files {
		ls, err := ReadTSVLines(f)
		if err != nil {
			return err
		}
		lines = append(lines, ls...)
	}

	b, err := book.NewBook(mask, lines)
	if err != nil {
		return fmt.Errorf("book: building: %w", err)
	}
	return book.Save(out, b)
}
