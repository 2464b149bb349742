package shell

import (
	"errors"

	"github.com/medieval-chess/medieval/board"
	"github.com/medieval-chess/medieval/position"
)

var ErrGameOver = errors.New("game is over")

type ClickResult uint8

const (
	// ClickCleared is when the click dropped the current selection.
	ClickCleared ClickResult = iota

	// ClickSelected is when the click picked one of the mover's pieces.
	ClickSelected

	// ClickMoved is when the click moved the selected piece.
	ClickMoved
)

// Session is one game as seen by a player: the board plus the square the player
// has picked and the legal moves of the piece standing on it.
type Session struct {
	board    *board.Board
	selected position.Pos
	targets  []board.Move
	outcome  string
}

func NewSession(fen string) (*Session, error) {
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return nil, err
	}
	return &Session{
		board:    b,
		selected: position.Invalid,
		outcome:  b.Outcome(),
	}, nil
}

func (s *Session) Board() *board.Board {
	return s.board
}

// Selected returns the selected square, or position.Invalid.
func (s *Session) Selected() position.Pos {
	return s.selected
}

// Targets returns the legal moves of the selected piece.
func (s *Session) Targets() []board.Move {
	return s.targets
}

// Outcome is the game-end message, empty while the game runs.
func (s *Session) Outcome() string {
	return s.outcome
}

func (s *Session) IsOver() bool {
	return s.outcome != ""
}

// Click handles a click on pos. Clicking one of the mover's pieces selects it,
// clicking a destination of the selected piece plays the move (promoting to a
// queen), and any other click clears the selection.
func (s *Session) Click(pos position.Pos) (ClickResult, board.Move, error) {
	if s.IsOver() {
		return ClickCleared, board.Move{}, ErrGameOver
	}

	if side, _ := s.board.PieceAt(pos); side == s.board.Turn() {
		if pos != s.selected {
			s.selected = pos
			s.targets = s.board.LegalMovesFrom(pos)
		}
		return ClickSelected, board.Move{}, nil
	}

	if s.selected != position.Invalid && s.isTarget(pos) {
		mv, err := s.play(board.NewMove(s.selected, pos, board.PieceUnknown))
		if err != nil {
			return ClickCleared, board.Move{}, err
		}
		return ClickMoved, mv, nil
	}

	s.clearSelection()
	return ClickCleared, board.Move{}, nil
}

// Move plays a move given in UCI notation, regardless of the selection.
func (s *Session) Move(uci string) (board.Move, error) {
	if s.IsOver() {
		return board.Move{}, ErrGameOver
	}
	mv, err := board.ParseUCI(uci)
	if err != nil {
		return board.Move{}, err
	}
	return s.play(mv)
}

// Undo takes back the last move. A finished game resumes.
func (s *Session) Undo() (board.Move, error) {
	mv, err := s.board.Pop()
	if err != nil {
		return board.Move{}, err
	}
	s.clearSelection()
	s.outcome = s.board.Outcome()
	return mv, nil
}

func (s *Session) play(mv board.Move) (board.Move, error) {
	if err := s.board.Push(mv); err != nil {
		return board.Move{}, err
	}
	s.clearSelection()
	s.outcome = s.board.Outcome()
	history := s.board.History()
	return history[len(history)-1], nil
}

func (s *Session) isTarget(pos position.Pos) bool {
	for _, mv := range s.targets {
		if mv.To == pos {
			return true
		}
	}
	return false
}

func (s *Session) clearSelection() {
	s.selected = position.Invalid
	s.targets = nil
}
