package board

import (
	"github.com/medieval-chess/medieval/position"
)

// GeneratePseudoLegalMoves returns the moves of the side to move that obey piece
// movement rules. Moves leaving the own king in check are included; filter them
// with IsLegal.
func (b *Board) GeneratePseudoLegalMoves() []Move {
	return b.pseudoLegalMoves(make([]Move, 0, 64))
}

// IsLegal reports whether the pseudo-legal move mv keeps the mover's king safe.
func (b *Board) IsLegal(mv Move) bool {
	return b.isLegal(mv)
}

// LegalMoves returns every move the side to move may make, annotated with IsCheck.
// The order is unspecified.
func (b *Board) LegalMoves() []Move {
	mvs := b.pseudoLegalMoves(make([]Move, 0, 64))
	legal := mvs[:0]
	for _, mv := range mvs {
		next := b.layout
		next.apply(mv)
		if next.isKingChecked(b.turn) {
			continue
		}
		mv.IsCheck = next.isKingChecked(next.turn)
		legal = append(legal, mv)
	}
	return legal
}

// LegalMovesFrom returns the legal moves of the piece standing on from.
func (b *Board) LegalMovesFrom(from position.Pos) []Move {
	var mvs []Move
	for _, mv := range b.LegalMoves() {
		if mv.From == from {
			mvs = append(mvs, mv)
		}
	}
	return mvs
}

// IsSquareAttacked reports whether any piece of side by attacks pos.
func (b *Board) IsSquareAttacked(pos position.Pos, by Side) bool {
	return b.isSquareAttacked(pos, by)
}

// IsCheck reports whether the side to move is in check.
func (b *Board) IsCheck() bool {
	return b.isKingChecked(b.turn)
}

func (l *layout) isLegal(mv Move) bool {
	next := *l
	next.apply(mv)
	return !next.isKingChecked(l.turn)
}

func (l *layout) hasLegalMoves() bool {
	for _, mv := range l.pseudoLegalMoves(make([]Move, 0, 64)) {
		if l.isLegal(mv) {
			return true
		}
	}
	return false
}

func (l *layout) isKingChecked(s Side) bool {
	king := l.getBitmap(s, PieceKing)
	if king == 0 {
		return false
	}
	return l.isSquareAttacked(king.LS1B(), s.Opposite())
}

// isSquareAttacked looks outwards from pos with each piece's pattern and tests for
// a matching attacker. Pawns are found with the opposite side's capture pattern.
func (l *layout) isSquareAttacked(pos position.Pos, by Side) bool {
	attackers := l.sides[by]
	switch {
	case maskPawnAttack[by.Opposite()][pos]&attackers&l.pieces[PiecePawn] != 0:
		return true
	case maskKnight[pos]&attackers&l.pieces[PieceKnight] != 0:
		return true
	case maskKing[pos]&attackers&l.pieces[PieceKing] != 0:
		return true
	case HitDiagonals(pos, l.occupied)&attackers&(l.pieces[PieceBishop]|l.pieces[PieceQueen]) != 0:
		return true
	case HitLaterals(pos, l.occupied)&attackers&(l.pieces[PieceRook]|l.pieces[PieceQueen]) != 0:
		return true
	default:
		return false
	}
}

func (l *layout) pseudoLegalMoves(mvs []Move) []Move {
	s := l.turn
	for _, p := range allPieces {
		fromBM := l.getBitmap(s, p)
		for fromBM != 0 {
			from := fromBM.PopLS1B()
			if p == PiecePawn {
				mvs = l.pawnMoves(mvs, from)
				continue
			}
			toBM := l.genValidDestination(from, s, p)
			for toBM != 0 {
				to := toBM.PopLS1B()
				mvs = append(mvs, Move{
					From:      from,
					To:        to,
					Piece:     p,
					IsTurn:    s,
					IsCapture: l.occupied&maskCell[to] != 0,
				})
			}
		}
	}
	return l.castlingMoves(mvs)
}

// genValidDestination generates the bitmap for the next valid positions of a
// non-pawn piece. This generate function is not strictly legal (e.g., king may be
// left in check).
func (l *layout) genValidDestination(from position.Pos, s Side, p Piece) bitmap {
	switch p {
	case PieceBishop:
		return HitDiagonals(from, l.occupied) &^ l.sides[s]
	case PieceKnight:
		return maskKnight[from] &^ l.sides[s]
	case PieceRook:
		return HitLaterals(from, l.occupied) &^ l.sides[s]
	case PieceQueen:
		return (HitDiagonals(from, l.occupied) | HitLaterals(from, l.occupied)) &^ l.sides[s]
	case PieceKing:
		return maskKing[from] &^ l.sides[s]
	default:
		return 0
	}
}

func (l *layout) pawnMoves(mvs []Move, from position.Pos) []Move {
	s := l.turn
	add := func(to position.Pos, isCapture, isEnPassant bool) {
		mv := Move{
			From:        from,
			To:          to,
			Piece:       PiecePawn,
			IsTurn:      s,
			IsCapture:   isCapture,
			IsEnPassant: isEnPassant,
		}
		if to.Y() != s.promoteRank() {
			mvs = append(mvs, mv)
			return
		}
		for _, prom := range PawnPromoteCandidates {
			mv.IsPromote = prom
			mvs = append(mvs, mv)
		}
	}

	if push := from + s.forward(); l.occupied&maskCell[push] == 0 {
		add(push, false, false)
		if double := push + s.forward(); from.Y() == s.pawnRank() && l.occupied&maskCell[double] == 0 {
			add(double, false, false)
		}
	}

	var maskEnPassant bitmap
	if l.enPassant != position.Invalid && l.occupied&maskCell[l.enPassant] == 0 &&
		l.getBitmap(s.Opposite(), PiecePawn)&maskCell[l.enPassant-s.forward()] != 0 {
		maskEnPassant = maskCell[l.enPassant]
	}
	toBM := maskPawnAttack[s][from] & (l.sides[s.Opposite()] | maskEnPassant)
	for toBM != 0 {
		to := toBM.PopLS1B()
		add(to, true, maskCell[to]&maskEnPassant != 0)
	}
	return mvs
}

func (l *layout) castlingMoves(mvs []Move) []Move {
	s := l.turn
	if !l.castleRights.IsSideAllowed(s) {
		return mvs
	}
	for _, d := range castleDirections[s] {
		if !l.castleRights.IsAllowed(d) || maskCastlingPath[d]&l.occupied != 0 {
			continue
		}
		kingFrom, kingTo := d.King()
		rookFrom, _ := d.Rook()
		if l.getBitmap(s, PieceKing)&maskCell[kingFrom] == 0 || l.getBitmap(s, PieceRook)&maskCell[rookFrom] == 0 {
			continue
		}
		if l.isAnyAttacked(maskCastlingSafe[d], s.Opposite()) {
			continue
		}
		mvs = append(mvs, Move{
			From:     kingFrom,
			To:       kingTo,
			Piece:    PieceKing,
			IsTurn:   s,
			IsCastle: d,
		})
	}
	return mvs
}

func (l *layout) isAnyAttacked(bm bitmap, by Side) bool {
	for bm != 0 {
		if l.isSquareAttacked(bm.PopLS1B(), by) {
			return true
		}
	}
	return false
}
