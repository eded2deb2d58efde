// openingbook builds the JSON opening book the engine loads at startup from
// TSV files of UCI opening lines. It only needs to be run after changing
// the Zobrist mask or updating the opening lines; the engine itself never
// runs this tool, only reads its output.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	internalbook "github.com/blackbishop/chesscore/internal/book"
	"github.com/blackbishop/chesscore/pkg/board"
	"github.com/seekerror/logw"
)

var (
	maskPath = flag.String("mask", "", "Zobrist mask file (required)")
	out      = flag.String("out", "openings.json", "Output book JSON path")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: openingbook -mask=<path> [options] <lines.tsv>...

openingbook builds a JSON opening book from TSV files of UCI opening lines.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	ctx := context.Background()
	flag.Parse()

	if *maskPath == "" || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	mf, err := os.Open(*maskPath)
	if err != nil {
		logw.Exitf(ctx, "Failed to open mask %v: %v", *maskPath, err)
	}
	defer mf.Close()

	mask, err := board.LoadZobristMask(mf)
	if err != nil {
		logw.Exitf(ctx, "Failed to load mask %v: %v", *maskPath, err)
	}

	var files []io.Reader
	for _, path := range flag.Args() {
		f, err := os.Open(path)
		if err != nil {
			logw.Exitf(ctx, "Failed to open %v: %v", path, err)
		}
		defer f.Close()

		files = append(files, f)
	}

	outFile, err := os.Create(*out)
	if err != nil {
		logw.Exitf(ctx, "Failed to create %v: %v", *out, err)
	}
	defer outFile.Close()

	if err := internalbook.Build(mask, files, outFile); err != nil {
		logw.Exitf(ctx, "Failed to build book: %v", err)
	}

	logw.Infof(ctx, "Wrote opening book to %v", *out)
}
