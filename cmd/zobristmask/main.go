// zobristmask generates a fresh Zobrist mask file. Regenerating the mask
// invalidates any opening book built against the old one, so the book must
// be rebuilt with openingbook afterwards.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/blackbishop/chesscore/pkg/board"
	"github.com/seekerror/logw"
)

var (
	seed = flag.Int64("seed", 0, "Random seed for the mask")
	out  = flag.String("out", "zobrist_mask.json", "Output mask JSON path")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	f, err := os.Create(*out)
	if err != nil {
		logw.Exitf(ctx, "Failed to create %v: %v", *out, err)
	}
	defer f.Close()

	if err := board.WriteZobristMask(f, board.NewZobristMask(*seed)); err != nil {
		logw.Exitf(ctx, "Failed to write mask: %v", err)
	}

	logw.Infof(ctx, "Wrote zobrist mask to %v; any existing opening book is now stale", *out)
}
