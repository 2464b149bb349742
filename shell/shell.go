package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/medieval-chess/medieval/bench"
	"github.com/medieval-chess/medieval/board"
	"github.com/medieval-chess/medieval/position"
)

var DefaultOptions = Options{
	Color:         true,
	Echo:          true,
	ParallelPerft: true,
}

type Options struct {
	// Color enables ANSI colours. It is ignored when the output is not a terminal.
	Color bool

	// Echo prints every played move as "Move: e2e4".
	Echo bool

	ParallelPerft bool
}

// Shell is a line-oriented front-end. It starts in the main menu; a game is
// started with new or fen and left with menu.
type Shell struct {
	in      io.Reader
	out     io.Writer
	options Options
	palette palette

	session *Session
}

func New(in io.Reader, out io.Writer, options Options) *Shell {
	return &Shell{
		in:      in,
		out:     out,
		options: options,
		palette: newPalette(options.Color),
	}
}

// Run reads commands until quit or the end of input.
func (sh *Shell) Run(ctx context.Context) error {
	sh.commandMenu(ctx)

	reader := bufio.NewReader(sh.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		cmd, err := reader.ReadString('\n')
		cmd = strings.TrimSpace(cmd)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return err
			}
			// the last line may lack a trailing newline
			if cmd == "" {
				return nil
			}
		}
		if cmd == "" {
			continue
		}

		switch args := strings.Fields(cmd); args[0] {
		case "new":
			sh.commandNew(ctx, board.DefaultStartingPositionFEN)
		case "fen":
			sh.commandNew(ctx, strings.Join(args[1:], " "))
		case "menu":
			sh.commandMenu(ctx)
		case "click":
			sh.commandClick(ctx, args[1:])
		case "move":
			sh.commandMove(ctx, args[1:])
		case "moves":
			sh.commandMoves(ctx)
		case "d":
			sh.commandDraw(ctx)
		case "export":
			sh.commandExport(ctx)
		case "undo":
			sh.commandUndo(ctx)
		case "perft":
			sh.commandPerft(ctx, args[1:])
		case "help":
			sh.commandHelp(ctx)
		case "quit":
			return nil
		default:
			sh.fail(fmt.Errorf("unknown command %q, try help", args[0]))
		}
	}
}

func (sh *Shell) commandMenu(_ context.Context) {
	sh.session = nil
	sh.println(sh.palette.label.Sprint("Medieval Chess"))
	sh.println("  new        start a new game")
	sh.println("  fen <FEN>  load a game from a position")
	sh.println("  quit       exit")
}

func (sh *Shell) commandHelp(_ context.Context) {
	sh.println("  click <sq>    select a piece, or move the selected piece to a highlighted square")
	sh.println("  move <uci>    play a move such as e2e4 or e7e8n")
	sh.println("  moves         list the legal moves")
	sh.println("  d             draw the board")
	sh.println("  export        print the position as FEN")
	sh.println("  undo          take back the last move")
	sh.println("  perft <n>     count the legal move tree to depth n")
	sh.println("  menu          abandon the game and return to the main menu")
	sh.println("  quit          exit")
}

func (sh *Shell) commandNew(ctx context.Context, fen string) {
	s, err := NewSession(fen)
	if err != nil {
		sh.fail(err)
		return
	}
	sh.session = s
	sh.commandDraw(ctx)
	sh.reportOutcome()
}

func (sh *Shell) commandClick(ctx context.Context, args []string) {
	if !sh.inGame() {
		return
	}
	if len(args) != 1 {
		sh.fail(errors.New("usage: click <square>"))
		return
	}
	pos, err := position.NewPosFromNotation(args[0])
	if err != nil {
		sh.fail(fmt.Errorf("%w: %q", err, args[0]))
		return
	}
	result, mv, err := sh.session.Click(pos)
	if err != nil {
		sh.fail(err)
		return
	}
	if result == ClickMoved {
		sh.played(ctx, mv)
		return
	}
	sh.commandDraw(ctx)
}

func (sh *Shell) commandMove(ctx context.Context, args []string) {
	if !sh.inGame() {
		return
	}
	if len(args) != 1 {
		sh.fail(errors.New("usage: move <uci>"))
		return
	}
	mv, err := sh.session.Move(args[0])
	if err != nil {
		sh.fail(err)
		return
	}
	sh.played(ctx, mv)
}

func (sh *Shell) commandMoves(_ context.Context) {
	if !sh.inGame() {
		return
	}
	var moves []string
	for _, mv := range sh.session.Board().LegalMoves() {
		moves = append(moves, mv.UCI())
	}
	sh.println(fmt.Sprintf("%d legal moves: %s", len(moves), strings.Join(moves, " ")))
}

func (sh *Shell) commandDraw(_ context.Context) {
	if !sh.inGame() {
		return
	}
	sh.println(render(sh.session.Board(), sh.session.Selected(), sh.session.Targets(), sh.palette))
	sh.println(fmt.Sprintf("%s to move", sh.session.Board().Turn()))
}

func (sh *Shell) commandExport(_ context.Context) {
	if !sh.inGame() {
		return
	}
	sh.println(sh.session.Board().FEN())
}

func (sh *Shell) commandUndo(ctx context.Context) {
	if !sh.inGame() {
		return
	}
	mv, err := sh.session.Undo()
	if err != nil {
		sh.fail(err)
		return
	}
	sh.println(fmt.Sprintf("Undo: %s", mv.UCI()))
	sh.commandDraw(ctx)
}

func (sh *Shell) commandPerft(ctx context.Context, args []string) {
	if !sh.inGame() {
		return
	}
	if len(args) != 1 {
		sh.fail(errors.New("usage: perft <depth>"))
		return
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 0 {
		sh.fail(fmt.Errorf("invalid depth %q", args[0]))
		return
	}

	out := make(chan string, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range out {
			sh.println(s)
		}
	}()
	_, err = bench.Perft(ctx, depth, sh.session.Board().FEN(), sh.options.ParallelPerft, true, out)
	close(out)
	<-done
	if err != nil {
		sh.fail(err)
	}
}

func (sh *Shell) played(ctx context.Context, mv board.Move) {
	if sh.options.Echo {
		sh.println(fmt.Sprintf("Move: %s", mv.UCI()))
	}
	sh.commandDraw(ctx)
	sh.reportOutcome()
}

func (sh *Shell) reportOutcome() {
	if sh.session.IsOver() {
		sh.println(sh.palette.outcome.Sprint(sh.session.Outcome()))
	}
}

func (sh *Shell) inGame() bool {
	if sh.session == nil {
		sh.fail(errors.New("no game in progress, start one with new or fen"))
		return false
	}
	return true
}

func (sh *Shell) fail(err error) {
	sh.println(sh.palette.failure.Sprintf("error: %v", err))
}

func (sh *Shell) println(a ...any) {
	fmt.Fprintln(sh.out, a...)
}
