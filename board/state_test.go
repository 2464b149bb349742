package board

import (
	"testing"
)

func TestCheckmate(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, DefaultStartingPositionFEN)
	for _, uci := range []string{"f2f3", "e7e5", "g2g4"} {
		mustPush(t, b, uci)
		if b.IsCheckmate() {
			t.Fatalf("unexpected checkmate after %s", uci)
		}
	}
	mustPush(t, b, "d8h4")

	if !b.IsCheckmate() {
		t.Error("expected checkmate")
	}
	if b.IsStalemate() {
		t.Error("checkmate is not stalemate")
	}
	if n := len(b.LegalMoves()); n != 0 {
		t.Errorf("unexpected legal moves: got=%d want=0", n)
	}
	if got := b.State(); got != StateCheckmate {
		t.Errorf("unexpected state: got=%s want=%s", got, StateCheckmate)
	}
	if got, want := b.Outcome(), "Checkmate! Black wins!"; got != want {
		t.Errorf("unexpected outcome: got=%q want=%q", got, want)
	}
	if !b.History()[3].IsCheck {
		t.Error("mating move should be flagged as check")
	}
}

func TestState(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		fen         string
		want        State
		wantOutcome string
	}{
		{
			name: "initial",
			fen:  DefaultStartingPositionFEN,
			want: StateRunning,
		},
		{
			name: "check",
			fen:  "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1",
			want: StateCheck,
		},
		{
			name:        "back rank mate",
			fen:         "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1",
			want:        StateCheckmate,
			wantOutcome: "Checkmate! White wins!",
		},
		{
			name:        "stalemate",
			fen:         "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
			want:        StateStalemate,
			wantOutcome: "Stalemate! It's a draw!",
		},
		{
			name:        "bare kings",
			fen:         "8/8/8/4k3/8/8/8/4K3 w - - 0 1",
			want:        StateInsufficientMaterial,
			wantOutcome: "Draw due to insufficient material!",
		},
		{
			name:        "seventy five moves",
			fen:         "8/8/8/4k3/8/8/8/R3K3 b - - 150 120",
			want:        StateSeventyFiveMove,
			wantOutcome: "Draw due to the 75-move rule!",
		},
		{
			name:        "insufficient material wins over seventy five moves",
			fen:         "8/8/8/4k3/8/8/8/4K3 b - - 150 120",
			want:        StateInsufficientMaterial,
			wantOutcome: "Draw due to insufficient material!",
		},
		{
			name:        "checkmate wins over seventy five moves",
			fen:         "R5k1/5ppp/8/8/8/8/8/6K1 b - - 150 120",
			want:        StateCheckmate,
			wantOutcome: "Checkmate! White wins!",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := mustBoard(t, tt.fen)
			if got := b.State(); got != tt.want {
				t.Errorf("unexpected state: got=%s want=%s", got, tt.want)
			}
			if got := b.Outcome(); got != tt.wantOutcome {
				t.Errorf("unexpected outcome: got=%q want=%q", got, tt.wantOutcome)
			}
			if b.State().IsRunning() == (tt.wantOutcome != "") {
				t.Errorf("unexpected running flag for %s", tt.want)
			}
		})
	}
}

func TestIsInsufficientMaterial(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fen  string
		want bool
	}{
		{name: "K v K", fen: "8/8/8/4k3/8/8/8/4K3 w - - 0 1", want: true},
		{name: "KB v K", fen: "8/8/8/4k3/8/8/8/2B1K3 w - - 0 1", want: true},
		{name: "KN v K", fen: "8/8/8/4k3/8/8/8/1N2K3 w - - 0 1", want: true},
		{name: "K v KN", fen: "1n6/8/8/4k3/8/8/8/4K3 w - - 0 1", want: true},
		{name: "KB v KB same colour", fen: "5b2/8/8/4k3/8/8/8/2B1K3 w - - 0 1", want: true},
		{name: "KBB v K both colours", fen: "8/8/8/4k3/8/8/8/2B1KB2 w - - 0 1", want: false},
		{name: "KBB v K one colour", fen: "8/8/8/4k3/8/B7/8/2B1K3 w - - 0 1", want: true},
		{name: "KB v KB opposite colour", fen: "2b5/8/8/4k3/8/8/8/2B1K3 w - - 0 1", want: false},
		{name: "KN v KN", fen: "2n5/8/8/4k3/8/8/8/2N1K3 w - - 0 1", want: false},
		{name: "KNN v K", fen: "8/8/8/4k3/8/8/8/1NN1K3 w - - 0 1", want: false},
		{name: "KB v KN", fen: "2n5/8/8/4k3/8/8/8/2B1K3 w - - 0 1", want: false},
		{name: "KQ v KN", fen: "2n5/8/8/4k3/8/8/8/2Q1K3 w - - 0 1", want: false},
		{name: "KP v K", fen: "8/8/8/4k3/8/8/4P3/4K3 w - - 0 1", want: false},
		{name: "KR v K", fen: "8/8/8/4k3/8/8/8/R3K3 w - - 0 1", want: false},
		{name: "initial", fen: DefaultStartingPositionFEN, want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := mustBoard(t, tt.fen).IsInsufficientMaterial(); got != tt.want {
				t.Errorf("unexpected result: got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestSeventyFiveMoves(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, "8/8/8/4k3/8/8/8/R3K3 w - - 148 80")
	mustPush(t, b, "a1a2")
	if b.IsSeventyFiveMoves() {
		t.Fatal("unexpected 75-move draw at clock 149")
	}
	if !b.CanClaimFiftyMoves() {
		t.Error("fifty moves should be claimable")
	}
	mustPush(t, b, "e5e4")
	if !b.IsSeventyFiveMoves() {
		t.Errorf("expected 75-move draw at clock %d", b.HalfMoveClock())
	}

	// a capture resets the clock
	b = mustBoard(t, "8/8/8/4k3/8/8/4p3/R3K3 w - - 149 80")
	mustPush(t, b, "e1e2")
	if b.IsSeventyFiveMoves() || b.HalfMoveClock() != 0 {
		t.Errorf("capture should reset the clock: got=%d", b.HalfMoveClock())
	}
}

func TestFivefoldRepetition(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, DefaultStartingPositionFEN)
	cycle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}

	// the initial position counts as the first occurrence
	for round := 2; round <= 5; round++ {
		for _, uci := range cycle {
			if b.IsFivefoldRepetition() {
				t.Fatalf("unexpected fivefold repetition in round %d before %s", round, uci)
			}
			mustPush(t, b, uci)
		}
		if got, want := b.repetitions(), round; got != want {
			t.Errorf("unexpected repetitions: got=%d want=%d", got, want)
		}
		if got, want := b.CanClaimThreefoldRepetition(), round >= 3; got != want {
			t.Errorf("unexpected threefold claim in round %d: got=%v want=%v", round, got, want)
		}
		if got, want := b.IsFivefoldRepetition(), round == 5; got != want {
			t.Errorf("unexpected fivefold in round %d: got=%v want=%v", round, got, want)
		}
	}
	if got := b.State(); got != StateFivefoldRepetition {
		t.Errorf("unexpected state: got=%s want=%s", got, StateFivefoldRepetition)
	}
	if got, want := b.Outcome(), "Draw due to fivefold repetition!"; got != want {
		t.Errorf("unexpected outcome: got=%q want=%q", got, want)
	}

	// taking a move back leaves four occurrences
	if _, err := b.Pop(); err != nil {
		t.Fatal("unexpected error:", err)
	}
	mustPush(t, b, "f6g8")
	if !b.IsFivefoldRepetition() {
		t.Error("expected fivefold repetition after replaying the last move")
	}
}

func TestRepetitionKeyEnPassant(t *testing.T) {
	t.Parallel()

	// e3 cannot be captured on, so the square does not distinguish the positions
	b := mustBoard(t, DefaultStartingPositionFEN)
	mustPush(t, b, "e2e4")
	same := mustBoard(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	if b.Hash() != same.Hash() {
		t.Error("unplayable en passant square should not affect the key")
	}

	// d6 can be captured on by the e5 pawn
	b = mustBoard(t, "4k3/3p4/8/4P3/8/8/8/4K3 b - - 0 1")
	mustPush(t, b, "d7d5")
	without := mustBoard(t, "4k3/8/8/3pP3/8/8/8/4K3 w - - 0 2")
	with := mustBoard(t, "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2")
	if b.Hash() == without.Hash() {
		t.Error("playable en passant square should affect the key")
	}
	if b.Hash() != with.Hash() {
		t.Error("identical positions should share a key")
	}
}
