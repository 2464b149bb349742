package board

type State uint8

const (
	// StateUnknown is when game state is unknown.
	StateUnknown State = iota

	// StateRunning is when game is on progress.
	StateRunning

	// StateCheck is when the side to move is in check but can still move.
	StateCheck

	// StateCheckmate is when the side to move is in check and has no legal move.
	StateCheckmate

	// StateStalemate is when the side to move has no legal move and is not in check.
	StateStalemate

	// StateInsufficientMaterial is when neither side can possibly deliver checkmate.
	StateInsufficientMaterial

	// StateSeventyFiveMove is when 75 moves by each side went by without any captures or pawn moves.
	StateSeventyFiveMove

	// StateFivefoldRepetition is when the current position occurred five times.
	StateFivefoldRepetition
)

const (
	seventyFiveMoveClock = 150
	fiftyMoveClock       = 100
)

func (s State) IsRunning() bool {
	switch s {
	case StateRunning, StateCheck:
		return true
	default:
		return false
	}
}

func (s State) IsDraw() bool {
	switch s {
	case StateStalemate, StateInsufficientMaterial, StateSeventyFiveMove, StateFivefoldRepetition:
		return true
	default:
		return false
	}
}

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "StateUnknown"
	case StateRunning:
		return "StateRunning"
	case StateCheck:
		return "StateCheck"
	case StateCheckmate:
		return "StateCheckmate"
	case StateStalemate:
		return "StateStalemate"
	case StateInsufficientMaterial:
		return "StateInsufficientMaterial"
	case StateSeventyFiveMove:
		return "StateSeventyFiveMove"
	case StateFivefoldRepetition:
		return "StateFivefoldRepetition"
	default:
		return ""
	}
}

// State classifies the position. When several conditions hold, checkmate and
// stalemate win over insufficient material, which wins over the 75-move rule,
// which wins over fivefold repetition.
func (b *Board) State() State {
	check := b.IsCheck()
	switch {
	case !b.hasLegalMoves():
		if check {
			return StateCheckmate
		}
		return StateStalemate
	case b.IsInsufficientMaterial():
		return StateInsufficientMaterial
	case b.IsSeventyFiveMoves():
		return StateSeventyFiveMove
	case b.IsFivefoldRepetition():
		return StateFivefoldRepetition
	case check:
		return StateCheck
	default:
		return StateRunning
	}
}

// Outcome describes a finished game, or returns an empty string while it runs.
func (b *Board) Outcome() string {
	switch b.State() {
	case StateCheckmate:
		return "Checkmate! " + b.turn.Opposite().String() + " wins!"
	case StateStalemate:
		return "Stalemate! It's a draw!"
	case StateInsufficientMaterial:
		return "Draw due to insufficient material!"
	case StateSeventyFiveMove:
		return "Draw due to the 75-move rule!"
	case StateFivefoldRepetition:
		return "Draw due to fivefold repetition!"
	default:
		return ""
	}
}

func (b *Board) IsCheckmate() bool {
	return b.IsCheck() && !b.hasLegalMoves()
}

func (b *Board) IsStalemate() bool {
	return !b.IsCheck() && !b.hasLegalMoves()
}

// IsInsufficientMaterial reports whether neither side can checkmate by any
// sequence of legal moves.
func (b *Board) IsInsufficientMaterial() bool {
	return b.hasInsufficientMaterial(SideWhite) && b.hasInsufficientMaterial(SideBlack)
}

func (b *Board) IsSeventyFiveMoves() bool {
	return b.halfMoveClock >= seventyFiveMoveClock
}

func (b *Board) IsFivefoldRepetition() bool {
	return b.repetitions() >= 5
}

// CanClaimFiftyMoves reports whether a draw could be claimed under the 50-move rule.
func (b *Board) CanClaimFiftyMoves() bool {
	return b.halfMoveClock >= fiftyMoveClock
}

// CanClaimThreefoldRepetition reports whether the current position occurred three times.
func (b *Board) CanClaimThreefoldRepetition() bool {
	return b.repetitions() >= 3
}

// repetitions counts the occurrences of the current position. Positions before the
// last capture or pawn move cannot match, so only the reversible tail is scanned.
func (b *Board) repetitions() int {
	current := len(b.keys) - 1
	oldest := current - int(b.halfMoveClock)
	if oldest < 0 {
		oldest = 0
	}
	var n int
	for i := current; i >= oldest; i-- {
		if b.keys[i] == b.keys[current] {
			n++
		}
	}
	return n
}

func (l *layout) hasInsufficientMaterial(s Side) bool {
	own := l.sides[s]
	if own&(l.pieces[PiecePawn]|l.pieces[PieceRook]|l.pieces[PieceQueen]) != 0 {
		return false
	}
	// a knight can only help mate an opponent who still owns blocking material
	if own&l.pieces[PieceKnight] != 0 {
		opponent := l.sides[s.Opposite()]
		return own.BitCount() <= 2 && opponent&^l.pieces[PieceKing]&^l.pieces[PieceQueen] == 0
	}
	// bishops confined to one square colour cannot mate without knights or pawns around
	if own&l.pieces[PieceBishop] != 0 {
		bishops := l.pieces[PieceBishop]
		sameColour := bishops&maskLight == 0 || bishops&^maskLight == 0
		return sameColour && l.pieces[PiecePawn] == 0 && l.pieces[PieceKnight] == 0
	}
	return true
}
