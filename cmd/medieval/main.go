package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"strings"

	"github.com/medieval-chess/medieval/board"
	"github.com/medieval-chess/medieval/shell"
)

const (
	exitOK  = 0
	exitErr = 1
)

var (
	profile = flag.Bool("profile", false, "serve pprof endpoint")

	movegenRun  = flag.Bool("movegen", false, "run movegen mode")
	movegenDraw = flag.Bool("movegen.draw", false, "draw applied moves in movegen mode")

	perftDepth  = flag.Int("perft", 0, "run perft mode to the given depth")
	perftSerial = flag.Bool("perft.serial", false, "walk root moves sequentially in perft mode")
	perftCache  = flag.Bool("perft.cache", false, "cache subtree counts by position in perft mode")

	stepCount = flag.Int("step", 0, "run step mode for at most the given number of plies")

	noColor = flag.Bool("nocolor", false, "disable colours in the shell")
	noEcho  = flag.Bool("noecho", false, "do not echo played moves in the shell")
)

func main() {
	flag.Parse()

	if *profile {
		runProfiler()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := realMain(ctx, flag.Args())
	stop()
	if err != nil {
		log.Println(err)
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func runProfiler() {
	go func() {
		addr := "localhost:6060"
		log.Printf("starting pprof endpoint: http://%s/debug/pprof\n", addr)
		_ = http.ListenAndServe(addr, nil)
	}()
}

func realMain(ctx context.Context, args []string) error {
	fen := board.DefaultStartingPositionFEN
	if len(args) > 0 {
		fen = strings.Join(args, " ")
	}
	if *movegenRun {
		return movegen(fen, *movegenDraw)
	}
	if *perftDepth > 0 {
		return perft(ctx, *perftDepth, fen, !*perftSerial, *perftCache)
	}
	if *stepCount > 0 {
		return step(fen, *stepCount)
	}

	options := shell.DefaultOptions
	options.Color = !*noColor
	options.Echo = !*noEcho
	return shell.New(os.Stdin, os.Stdout, options).Run(ctx)
}
