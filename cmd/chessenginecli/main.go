// chessenginecli is a thin harness for exercising the engine core: it loads
// a position (by default the standard start), then either plays the
// engine against itself move by move or, if given a FEN and a single
// search, reports the engine's best move for it. It is not a UCI-complete
// front end.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/blackbishop/chesscore/pkg/board"
	"github.com/blackbishop/chesscore/pkg/config"
	"github.com/blackbishop/chesscore/pkg/engine"
	"github.com/blackbishop/chesscore/pkg/search"
	"github.com/fatih/color"
	"github.com/seekerror/logw"
)

var (
	configPath = flag.String("config", "", "Path to a config.toml (defaults if omitted)")
	position   = flag.String("fen", "", "Start position (defaults to the standard starting position)")
	depth      = flag.Int("depth", 0, "Search depth limit (0 = config default)")
	movetime   = flag.Duration("movetime", 0, "Per-move thinking time (0 = config default)")
	selfplay   = flag.Bool("selfplay", false, "Play the engine against itself until the game ends")
	interactive = flag.Bool("interactive", false, "Read opponent moves from stdin between engine moves")
	version    = flag.Bool("version", false, "Print the engine name and version")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: chessenginecli [options]

chessenginecli is a harness for exercising the engine core: self-play, a
single best-move query, or an interactive session against the engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logw.Exitf(ctx, "Failed to load config: %v", err)
	}

	e, err := engine.New(ctx, "chessenginecli", "chesscore", cfg)
	if err != nil {
		logw.Exitf(ctx, "Failed to initialize engine: %v", err)
	}

	if *version {
		fmt.Println(e.Name())
		return
	}

	if *position == "" {
		*position = board.StartFEN
	}
	if err := e.LoadFEN(ctx, *position); err != nil {
		logw.Exitf(ctx, "Invalid fen %q: %v", *position, err)
	}

	opt := search.Options{DepthLimit: *depth}
	if *movetime > 0 {
		opt.Deadline = time.Now().Add(*movetime)
	}

	switch {
	case *selfplay:
		runSelfPlay(ctx, e, opt)
	case *interactive:
		runInteractive(ctx, e, opt)
	default:
		runSingleMove(ctx, e, opt)
	}
}

func runSingleMove(ctx context.Context, e *engine.Engine, opt search.Options) {
	pv := bestMove(ctx, e, opt)
	printBoard(e)
	fmt.Println(pv)
}

func runSelfPlay(ctx context.Context, e *engine.Engine, opt search.Options) {
	for {
		printBoard(e)

		if over := e.GameOver(); over != nil {
			fmt.Printf("Game over: %v\n", over)
			return
		}

		pv := bestMove(ctx, e, opt)
		if len(pv.Moves) == 0 {
			fmt.Println("No move found; stopping.")
			return
		}

		m := pv.Moves[0]
		if _, err := e.CommitMove(ctx, m.String()); err != nil {
			logw.Exitf(ctx, "Engine proposed illegal move %v: %v", m, err)
		}
		fmt.Printf("%v plays %v (%v)\n", e.SideToMove().Opponent(), m, pv.Score)
	}
}

func runInteractive(ctx context.Context, e *engine.Engine, opt search.Options) {
	in := engine.ReadStdinLines(ctx)

	for {
		printBoard(e)

		if over := e.GameOver(); over != nil {
			fmt.Printf("Game over: %v\n", over)
			return
		}

		fmt.Print("your move (uci): ")
		line, ok := <-in
		if !ok {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, err := e.CommitMove(ctx, line); err != nil {
			fmt.Printf("illegal move %q: %v\n", line, err)
			continue
		}

		if over := e.GameOver(); over != nil {
			printBoard(e)
			fmt.Printf("Game over: %v\n", over)
			return
		}

		pv := bestMove(ctx, e, opt)
		if len(pv.Moves) == 0 {
			fmt.Println("No move found; stopping.")
			return
		}
		if _, err := e.CommitMove(ctx, pv.Moves[0].String()); err != nil {
			logw.Exitf(ctx, "Engine proposed illegal move %v: %v", pv.Moves[0], err)
		}
		fmt.Printf("engine plays %v (%v)\n", pv.Moves[0], pv.Score)
	}
}

func bestMove(ctx context.Context, e *engine.Engine, opt search.Options) search.PV {
	if *movetime > 0 {
		opt.Deadline = time.Now().Add(*movetime)
	}
	out, err := e.Search(ctx, opt)
	if err != nil {
		logw.Exitf(ctx, "Failed to start search: %v", err)
	}

	var last search.PV
	for pv := range out {
		last = pv
	}

	final, err := e.Halt(ctx)
	if err == nil {
		last = final
	}
	return last
}

var (
	lightSquare = color.New(color.BgHiWhite, color.FgBlack)
	darkSquare  = color.New(color.BgBlack, color.FgHiWhite)
)

func printBoard(e *engine.Engine) {
	p := e.FEN()
	fmt.Println(p)

	// Piece symbols are read from the FEN (see pieceSymbol); each square is
	// colorized here since that's purely a terminal concern.
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			sq := board.NewSquare(board.Rank(rank), board.File(file))
			sym := pieceSymbol(e, sq)

			c := lightSquare
			if (rank+file)%2 == 0 {
				c = darkSquare
			}
			c.Print(" " + sym + " ")
		}
		fmt.Println()
	}
}

func pieceSymbol(e *engine.Engine, sq board.Square) string {
	// FEN-based lookup keeps this helper independent of Position
	// internals; it is only ever called for display.
	fen := strings.Fields(e.FEN())[0]
	rank := 7 - int(sq.Rank())
	file := int(sq.File())

	row := strings.Split(fen, "/")[rank]
	col := 0
	for _, r := range row {
		if r >= '1' && r <= '8' {
			n := int(r - '0')
			if file >= col && file < col+n {
				return "."
			}
			col += n
			continue
		}
		if col == file {
			return string(r)
		}
		col++
	}
	return "."
}
