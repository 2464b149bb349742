package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/medieval-chess/medieval/board"
)

// step plays random legal moves from fen until the game ends or plies runs out,
// timing each engine call.
func step(fen string, plies int) error {
	log.Println("============ step")
	var (
		timesLegalMoves []time.Duration
		timesPush       []time.Duration
		timesState      []time.Duration
	)
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	rnd := rand.New(rand.NewSource(1))
stepLoop:
	for ply := 0; ply < plies; ply++ {
		t1 := time.Now()
		mvs := b.LegalMoves()
		timesLegalMoves = append(timesLegalMoves, time.Since(t1))
		if len(mvs) == 0 {
			return fmt.Errorf("unexpected move exhaustion: state=%s", b.State())
		}
		mv := mvs[rnd.Intn(len(mvs))]

		t1 = time.Now()
		if err := b.Push(mv); err != nil {
			return err
		}
		timesPush = append(timesPush, time.Since(t1))

		t1 = time.Now()
		st := b.State()
		timesState = append(timesState, time.Since(t1))

		fmt.Printf("\n===== [#%d] %s: %s\n", b.FullMoveClock(), mv.IsTurn, mv)
		fmt.Println(b.Dump())
		fmt.Println(b.FEN())
		fmt.Println(b.DebugString())
		switch {
		case !st.IsRunning():
			fmt.Println(b.Outcome())
			break stepLoop
		case st == board.StateCheck:
			<-time.After(100 * time.Millisecond)
		default:
			<-time.After(10 * time.Millisecond)
		}
	}

	avg := func(ds []time.Duration) time.Duration {
		if len(ds) == 0 {
			return 0
		}
		var s time.Duration
		for _, d := range ds {
			s += d
		}
		return s / time.Duration(len(ds))
	}

	fmt.Println()
	fmt.Println(b.State())
	fmt.Println("legal:", avg(timesLegalMoves))
	fmt.Println("push: ", avg(timesPush))
	fmt.Println("state:", avg(timesState))
	return nil
}
