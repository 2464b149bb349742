package shell

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func runShell(t *testing.T, input string) string {
	t.Helper()
	var out bytes.Buffer
	sh := New(strings.NewReader(input), &out, Options{Echo: true})
	if err := sh.Run(context.Background()); err != nil {
		t.Fatal("unexpected error:", err)
	}
	return out.String()
}

func TestShellRun(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		input       string
		wantLines   []string
		unwantLines []string
	}{
		{
			name:  "menu",
			input: "quit\n",
			wantLines: []string{
				"Medieval Chess",
				"  new        start a new game",
			},
		},
		{
			name:  "play and export",
			input: "new\nmove e2e4\nclick g8\nclick f6\nexport\nquit\n",
			wantLines: []string{
				"White to move",
				"Move: e2e4",
				"Move: g8f6",
				" 6  .  .  .  .  .  n  .  . ",
				"rnbqkb1r/pppppppp/5n2/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 1 2",
			},
		},
		{
			name:  "input without trailing newline",
			input: "new\nexport",
			wantLines: []string{
				"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			},
		},
		{
			name:  "load fen",
			input: "fen 4k3/8/8/8/8/8/8/4K2R w K - 0 1\nmove e1g1\nexport\n",
			wantLines: []string{
				"Move: e1g1",
				"4k3/8/8/8/8/8/8/5RK1 b - - 1 1",
			},
		},
		{
			name:  "invalid fen keeps the menu",
			input: "fen 8/8/8 w - - 0 1\nmoves\n",
			wantLines: []string{
				"error: invalid fen: invalid board configuration",
				"error: no game in progress, start one with new or fen",
			},
		},
		{
			name:  "checkmate ends the game",
			input: "new\nmove f2f3\nmove e7e5\nmove g2g4\nmove d8h4\nmove a2a3\nundo\nmove a7a6\n",
			wantLines: []string{
				"Move: d8h4",
				"Checkmate! Black wins!",
				"error: game is over",
				"Undo: d8h4",
				"Move: a7a6",
			},
		},
		{
			name:  "loaded position may already be over",
			input: "fen 8/8/8/4k3/8/8/8/4K3 w - - 0 1\n",
			wantLines: []string{
				"Draw due to insufficient material!",
			},
		},
		{
			name:  "illegal move",
			input: "new\nmove e2e5\nmove e2\nclick z9\n",
			wantLines: []string{
				"error: illegal move: e2e5",
				`error: invalid uci move: "e2"`,
				`error: invalid notation: "z9"`,
			},
			unwantLines: []string{
				"Move: e2e5",
			},
		},
		{
			name:  "menu abandons the game",
			input: "new\nmenu\nexport\n",
			wantLines: []string{
				"error: no game in progress, start one with new or fen",
			},
		},
		{
			name:  "perft",
			input: "new\nperft 2\n",
			wantLines: []string{
				"e2e4: 20",
				"g1f3: 20",
			},
		},
		{
			name:  "unknown command",
			input: "castle\n",
			wantLines: []string{
				`error: unknown command "castle", try help`,
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := strings.Split(runShell(t, tt.input), "\n")
			for _, want := range tt.wantLines {
				if !containsLine(got, want) {
					t.Errorf("missing line %q in output:\n%s", want, strings.Join(got, "\n"))
				}
			}
			for _, unwant := range tt.unwantLines {
				if containsLine(got, unwant) {
					t.Errorf("unexpected line %q in output", unwant)
				}
			}
		})
	}
}

func TestShellPerftSummary(t *testing.T) {
	t.Parallel()
	got := runShell(t, "new\nperft 3\n")
	if !strings.Contains(got, "d=3 nodes=8,902 ") {
		t.Errorf("missing perft summary in output:\n%s", got)
	}
}

func containsLine(lines []string, want string) bool {
	for _, line := range lines {
		if line == want {
			return true
		}
	}
	return false
}
