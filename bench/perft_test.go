package bench

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/medieval-chess/medieval/board"
)

func TestPerft(t *testing.T) {
	t.Parallel()

	// Results obtained from https://www.chessprogramming.org/Perft_Results.
	tests := map[string][]struct {
		depth     int
		slow      bool
		onlyNodes bool
		want      Stats
	}{
		board.DefaultStartingPositionFEN: {
			{depth: 0, want: Stats{Nodes: 1}},
			{depth: 1, want: Stats{Nodes: 20}},
			{depth: 2, want: Stats{Nodes: 400}},
			{depth: 3, want: Stats{Nodes: 8_902, Captures: 34, Checks: 12}},
			{depth: 4, slow: true, want: Stats{Nodes: 197_281, Captures: 1_576, Checks: 469}},
		},
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1": {
			{depth: 1, want: Stats{Nodes: 48, Captures: 8, Castles: 2}},
			{depth: 2, want: Stats{Nodes: 2_039, Captures: 351, EnPassants: 1, Castles: 91, Checks: 3}},
			{depth: 3, slow: true, want: Stats{Nodes: 97_862, Captures: 17_102, EnPassants: 45, Castles: 3_162, Checks: 993}},
		},
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1": {
			{depth: 1, want: Stats{Nodes: 14, Captures: 1, Checks: 2}},
			{depth: 2, want: Stats{Nodes: 191, Captures: 14, Checks: 10}},
			{depth: 3, want: Stats{Nodes: 2_812, Captures: 209, EnPassants: 2, Checks: 267}},
		},
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8": {
			{depth: 1, onlyNodes: true, want: Stats{Nodes: 44}},
			{depth: 2, onlyNodes: true, want: Stats{Nodes: 1_486}},
			{depth: 3, slow: true, onlyNodes: true, want: Stats{Nodes: 62_379}},
		},
	}

	for fen, constraints := range tests {
		fen := fen
		for _, tt := range constraints {
			tt := tt
			t.Run(fmt.Sprintf("perft(%d): %s", tt.depth, fen), func(t *testing.T) {
				t.Parallel()
				if tt.slow && testing.Short() {
					t.Skip("skipping deep perft in short mode")
				}
				b, err := board.NewBoard(board.WithFEN(fen))
				if err != nil {
					t.Fatal("unexpected error:", err)
				}

				got, err := runPerft(context.Background(), b, tt.depth, false, nil, nil)
				if err != nil {
					t.Fatal("unexpected error:", err)
				}
				if tt.onlyNodes {
					if got.Nodes != tt.want.Nodes {
						t.Errorf("unexpected nodes: got=%d want=%d", got.Nodes, tt.want.Nodes)
					}
					return
				}
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Errorf("unexpected stats (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestPerftParallel(t *testing.T) {
	t.Parallel()
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	out := make(chan string, 64)

	serial, err := Perft(context.Background(), 2, fen, false, false, out)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	parallel, err := Perft(context.Background(), 2, fen, true, true, out)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if diff := cmp.Diff(serial, parallel); diff != "" {
		t.Errorf("parallel perft disagrees (-serial +parallel):\n%s", diff)
	}

	close(out)
	var roots, summaries int
	for line := range out {
		if strings.HasPrefix(line, "d=2 nodes=2,039 ") {
			summaries++
			continue
		}
		roots++
	}
	if summaries != 2 {
		t.Errorf("unexpected summary lines: got=%d want=%d", summaries, 2)
	}
	if roots != 48 {
		t.Errorf("unexpected root lines: got=%d want=%d", roots, 48)
	}
}

func TestPerftInvalidFEN(t *testing.T) {
	t.Parallel()
	_, err := Perft(context.Background(), 1, "not a fen", false, false, make(chan string, 1))
	if !errors.Is(err, board.ErrInvalidFEN) {
		t.Errorf("unexpected error: got=%v want=%v", err, board.ErrInvalidFEN)
	}
}

func TestPerftDeadlineInsideSubtree(t *testing.T) {
	t.Parallel()
	// a1a2 is the only legal root move, the black rooks make the tree below it huge
	fen := "1r5k/8/8/8/8/8/8/K6r w - - 0 1"
	for _, parallel := range []bool{false, true} {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		start := time.Now()
		_, err := Perft(ctx, 9, fen, parallel, false, make(chan string, 1))
		cancel()
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("unexpected error (parallel=%v): got=%v want=%v", parallel, err, context.DeadlineExceeded)
		}
		if elapsed := time.Since(start); elapsed > 5*time.Second {
			t.Errorf("perft ignored the deadline (parallel=%v): got=%s", parallel, elapsed)
		}
	}
}

func TestPerftCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, parallel := range []bool{false, true} {
		_, err := Perft(ctx, 3, board.DefaultStartingPositionFEN, parallel, false, make(chan string, 1))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error (parallel=%v): got=%v want=%v", parallel, err, context.Canceled)
		}
	}
}

func TestPerftCache(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		fen   string
		depth int
	}{
		{name: "rook ending", fen: "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1", depth: 4},
		{name: "kiwipete", fen: "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", depth: 2},
		{name: "position 3", fen: "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", depth: 4},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := make(chan string, 1)
			want, err := Perft(context.Background(), tt.depth, tt.fen, false, false, out)
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			<-out

			for _, parallel := range []bool{false, true} {
				cache := NewCache(1 << 12)
				got, err := Perft(context.Background(), tt.depth, tt.fen, parallel, false, out, WithCache(cache))
				if err != nil {
					t.Fatal("unexpected error:", err)
				}
				<-out
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("cached perft disagrees (parallel=%v) (-want +got):\n%s", parallel, diff)
				}
				if tt.depth >= 4 {
					if hits, _, _ := cache.Stats(); hits == 0 {
						t.Errorf("expected cache hits (parallel=%v)", parallel)
					}
				}
			}
		})
	}
}
