package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/medieval-chess/medieval/position"
)

// UnmarshalFEN replaces the position held by b, discarding its history. b is left
// in an unspecified state when an error is returned.
func UnmarshalFEN(fen string, b *Board) error {
	if b == nil {
		return fmt.Errorf("invalid board")
	}
	b.reset()

	segments := strings.Fields(fen)
	if len(segments) != 6 {
		return fmt.Errorf("%w: incorrect number of segments", ErrInvalidFEN)
	}

	rows := strings.Split(segments[0], "/")
	if len(rows) != int(Height) {
		return fmt.Errorf("%w: invalid board configuration", ErrInvalidFEN)
	}
	for i, row := range rows {
		y := Height - position.Pos(i) - 1
		x := position.Pos(0)
		for j := 0; j < len(row); j++ {
			cell := row[j]
			if cell >= '1' && cell <= '8' {
				x += position.Pos(cell - '0')
				if x > Width {
					return fmt.Errorf("%w: rank %d overflows", ErrInvalidFEN, y+1)
				}
				continue
			}
			s, p := pieceFromSymbol(cell)
			if p == PieceUnknown {
				return fmt.Errorf("%w: unknown symbol '%s'", ErrInvalidFEN, string(cell))
			}
			if x >= Width {
				return fmt.Errorf("%w: rank %d overflows", ErrInvalidFEN, y+1)
			}
			if p == PiecePawn && (y == position.Rank1 || y == position.Rank8) {
				return fmt.Errorf("%w: pawn on back rank", ErrInvalidFEN)
			}
			b.set(s, p, y*Width+x)
			x++
		}
		if x != Width {
			return fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, y+1, x)
		}
	}
	for _, s := range []Side{SideWhite, SideBlack} {
		if b.getBitmap(s, PieceKing).BitCount() != 1 {
			return fmt.Errorf("%w: %s must have exactly one king", ErrInvalidFEN, s)
		}
	}

	switch segments[1] {
	case "w":
		b.turn = SideWhite
		b.hash ^= zobristConstantSideWhite
	case "b":
		b.turn = SideBlack
	default:
		return fmt.Errorf("%w: invalid turn", ErrInvalidFEN)
	}
	if b.isKingChecked(b.turn.Opposite()) {
		return fmt.Errorf("%w: %s is in check but not to move", ErrInvalidFEN, b.turn.Opposite())
	}

	if len(segments[2]) > 4 {
		return fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
	}
	var castleRights CastleRights
	if segments[2] != "-" {
		for _, e := range segments[2] {
			var d CastleDirection
			switch e {
			case 'K':
				d = CastleDirectionWhiteRight
			case 'Q':
				d = CastleDirectionWhiteLeft
			case 'k':
				d = CastleDirectionBlackRight
			case 'q':
				d = CastleDirectionBlackLeft
			default:
				return fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
			}
			if castleRights.IsAllowed(d) {
				return fmt.Errorf("%w: duplicate castling right '%c'", ErrInvalidFEN, e)
			}
			castleRights.Set(d, true)
		}
	}
	// rights without the king and rook on their home squares can never be used
	b.setCastleRights(b.usableCastleRights(castleRights))

	if segments[3] != "-" {
		pos, err := position.NewPosFromNotation(segments[3])
		if err != nil {
			return fmt.Errorf("%w: invalid enpassant position: %v", ErrInvalidFEN, err)
		}
		if pos.Y() != b.turn.Opposite().enPassantRank() {
			return fmt.Errorf("%w: enpassant position %s on wrong rank", ErrInvalidFEN, pos)
		}
		if !b.isEnPassantTarget(pos) {
			return fmt.Errorf("%w: enpassant position %s without a double pushed pawn", ErrInvalidFEN, pos)
		}
		b.enPassant = pos
	}

	halfMoveClock, err := strconv.ParseUint(segments[4], 10, 32)
	if err != nil {
		return fmt.Errorf("%w: invalid half move clock", ErrInvalidFEN)
	}
	b.halfMoveClock = uint32(halfMoveClock)

	fullMoveClock, err := strconv.ParseUint(segments[5], 10, 32)
	if err != nil || fullMoveClock == 0 {
		return fmt.Errorf("%w: invalid full move clock", ErrInvalidFEN)
	}
	b.fullMoveClock = uint32(fullMoveClock)

	b.keys = append(b.keys, b.key())
	return nil
}

func MarshalFEN(b *Board) (string, error) {
	if b == nil {
		return "", fmt.Errorf("invalid board")
	}
	builder := strings.Builder{}
	for y := position.Pos(Height) - 1; y >= 0; y-- {
		var skip uint8
		for x := position.Pos(0); x < Width; x++ {
			s, p := b.pieceAt(y*Width + x)
			if p == PieceUnknown {
				skip++
				continue
			}
			if skip != 0 {
				_ = builder.WriteByte('0' + skip)
				skip = 0
			}
			_, _ = builder.WriteString(p.SymbolFEN(s))
		}
		if skip != 0 {
			_ = builder.WriteByte('0' + skip)
		}
		if y > 0 {
			_, _ = builder.WriteRune('/')
		}
	}

	if b.turn == SideWhite {
		_, _ = builder.WriteString(" w ")
	} else {
		_, _ = builder.WriteString(" b ")
	}

	_, _ = builder.WriteString(b.castleRights.String())
	_, _ = builder.WriteRune(' ')

	if b.enPassant == position.Invalid {
		_, _ = builder.WriteRune('-')
	} else {
		_, _ = builder.WriteString(b.enPassant.Notation())
	}

	_, _ = builder.WriteString(fmt.Sprintf(" %d %d", b.halfMoveClock, b.fullMoveClock))

	return builder.String(), nil
}

// FEN returns the position in Forsyth-Edwards Notation.
func (b *Board) FEN() string {
	fen, _ := MarshalFEN(b)
	return fen
}

func (l *layout) usableCastleRights(c CastleRights) CastleRights {
	for _, d := range []CastleDirection{
		CastleDirectionWhiteRight, CastleDirectionWhiteLeft,
		CastleDirectionBlackRight, CastleDirectionBlackLeft,
	} {
		s := SideBlack
		if d.IsWhite() {
			s = SideWhite
		}
		kingFrom, _ := d.King()
		rookFrom, _ := d.Rook()
		if l.getBitmap(s, PieceKing)&maskCell[kingFrom] == 0 || l.getBitmap(s, PieceRook)&maskCell[rookFrom] == 0 {
			c.Set(d, false)
		}
	}
	return c
}

// isEnPassantTarget reports whether pos could have been skipped by a pawn of the
// side not to move: pos and the pawn's start square are empty and the pawn stands
// right in front of pos.
func (l *layout) isEnPassantTarget(pos position.Pos) bool {
	mover := l.turn.Opposite()
	return l.occupied&maskCell[pos] == 0 &&
		l.occupied&maskCell[pos-mover.forward()] == 0 &&
		l.getBitmap(mover, PiecePawn)&maskCell[pos+mover.forward()] != 0
}
