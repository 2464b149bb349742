package board

import (
	"fmt"

	"github.com/medieval-chess/medieval/position"
)

// Move is identified by From, To and IsPromote. The remaining fields are
// annotations filled in by the move generator. Castling is expressed as the king's
// two-square move.
type Move struct {
	From, To position.Pos
	Piece    Piece

	IsTurn      Side
	IsCapture   bool
	IsCheck     bool
	IsCastle    CastleDirection
	IsEnPassant bool
	IsPromote   Piece
}

// NewMove returns an unannotated move, suitable for Push.
func NewMove(from, to position.Pos, promote Piece) Move {
	return Move{From: from, To: to, IsPromote: promote}
}

// ParseUCI parses long algebraic notation such as "e2e4" or "e7e8q".
func ParseUCI(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidUCI, s)
	}
	from, err := position.NewPosFromNotation(s[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q: %v", ErrInvalidUCI, s, err)
	}
	to, err := position.NewPosFromNotation(s[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q: %v", ErrInvalidUCI, s, err)
	}
	promote := PieceUnknown
	if len(s) == 5 {
		_, promote = pieceFromSymbol(s[4])
		if promote == PiecePawn || promote == PieceKing || promote == PieceUnknown {
			return Move{}, fmt.Errorf("%w: %q: bad promotion", ErrInvalidUCI, s)
		}
	}
	return NewMove(from, to, promote), nil
}

func (m Move) String() string {
	return m.Algebra()
}

func (m Move) Algebra() string {
	if m.IsCastle != CastleDirectionUnknown {
		nt := "O-O-O"
		if m.IsCastle.IsRight() {
			nt = "O-O"
		}
		if m.IsCheck {
			nt += "+"
		}
		return nt
	}
	nt := m.Piece.SymbolAlgebra(SideWhite) // SideWhite because it returns capital symbols
	if m.IsCapture {
		if m.Piece == PiecePawn {
			nt += m.From.X().NotationComponentX()
		} else {
			nt += m.From.Notation()
		}
		nt += "x"
	}
	nt += m.To.Notation()
	if m.IsPromote != PieceUnknown {
		nt += "=" + m.IsPromote.SymbolAlgebra(SideWhite)
	}
	if m.IsCheck {
		nt += "+"
	}
	if m.IsEnPassant {
		nt += " e.p."
	}
	return nt
}

func (m Move) UCI() string {
	return m.From.Notation() + m.To.Notation() + m.IsPromote.SymbolAlgebra(SideBlack)
}
