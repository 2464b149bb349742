package board

import (
	"fmt"

	"github.com/medieval-chess/medieval/position"
)

// Push applies mv to the board. Only From, To and IsPromote of mv are inspected; the
// remaining fields are taken from the matching legal move. A pawn reaching the last
// rank without IsPromote is promoted to DefaultPromotion. The board is unchanged
// when an error is returned.
func (b *Board) Push(mv Move) error {
	legal, ok := b.matchLegal(mv)
	if !ok {
		return fmt.Errorf("%w: %s", ErrIllegalMove, mv.UCI())
	}
	b.undos = append(b.undos, undo{mv: legal, prev: b.layout})
	b.apply(legal)
	b.mustHaveKings()
	b.keys = append(b.keys, b.key())
	return nil
}

// Pop takes back the last pushed move and returns it.
func (b *Board) Pop() (Move, error) {
	if len(b.undos) == 0 {
		return Move{}, ErrEmptyHistory
	}
	u := b.undos[len(b.undos)-1]
	b.undos = b.undos[:len(b.undos)-1]
	b.keys = b.keys[:len(b.keys)-1]
	b.layout = u.prev
	return u.mv, nil
}

func (b *Board) matchLegal(mv Move) (Move, bool) {
	var fallback Move
	var hasFallback bool
	for _, lm := range b.LegalMoves() {
		if lm.From != mv.From || lm.To != mv.To {
			continue
		}
		if lm.IsPromote == mv.IsPromote {
			return lm, true
		}
		if mv.IsPromote == PieceUnknown && lm.IsPromote == DefaultPromotion {
			fallback, hasFallback = lm, true
		}
	}
	return fallback, hasFallback
}

// apply plays an annotated pseudo-legal move without any validation.
func (l *layout) apply(mv Move) {
	s := l.turn
	if mv.IsCastle != CastleDirectionUnknown {
		kingFrom, kingTo := mv.IsCastle.King()
		rookFrom, rookTo := mv.IsCastle.Rook()
		l.unset(s, PieceKing, kingFrom)
		l.unset(s, PieceRook, rookFrom)
		l.set(s, PieceKing, kingTo)
		l.set(s, PieceRook, rookTo)
	} else {
		if mv.IsEnPassant {
			l.unset(s.Opposite(), PiecePawn, mv.To-s.forward())
		} else if mv.IsCapture {
			_, captured := l.pieceAt(mv.To)
			l.unset(s.Opposite(), captured, mv.To)
		}
		l.unset(s, mv.Piece, mv.From)
		if mv.IsPromote == PieceUnknown {
			l.set(s, mv.Piece, mv.To)
		} else {
			l.set(s, mv.IsPromote, mv.To)
		}
	}

	// update enPassant
	l.enPassant = position.Invalid
	if mv.Piece == PiecePawn && abs(mv.To-mv.From) == 2*Width {
		l.enPassant = (mv.From + mv.To) / 2
	}

	// update castleRights, covers king moves, rook moves and rook captures
	if touched := castleRightsTouch[mv.From] | castleRightsTouch[mv.To]; l.castleRights&touched != 0 {
		l.setCastleRights(l.castleRights &^ touched)
	}

	// update half move clock
	if mv.Piece == PiecePawn || mv.IsCapture {
		l.halfMoveClock = 0
	} else {
		l.halfMoveClock++
	}

	// update full move clock
	if s == SideBlack {
		l.fullMoveClock++
	}

	l.turn = s.Opposite()
	l.hash ^= zobristConstantSideWhite
}

// key is the repetition key: hash plus the en passant file when an en passant
// capture is actually playable.
func (l *layout) key() uint64 {
	if l.enPassant == position.Invalid || !l.hasLegalEnPassant() {
		return l.hash
	}
	return l.hash ^ zobristConstantEnPassant[l.enPassant.X()]
}

func (l *layout) hasLegalEnPassant() bool {
	s := l.turn
	fromBM := maskPawnAttack[s.Opposite()][l.enPassant] & l.getBitmap(s, PiecePawn)
	for fromBM != 0 {
		mv := Move{
			From:        fromBM.PopLS1B(),
			To:          l.enPassant,
			Piece:       PiecePawn,
			IsTurn:      s,
			IsCapture:   true,
			IsEnPassant: true,
		}
		if l.isLegal(mv) {
			return true
		}
	}
	return false
}
