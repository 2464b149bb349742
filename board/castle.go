package board

import "github.com/medieval-chess/medieval/position"

type CastleDirection uint8

const (
	CastleDirectionUnknown CastleDirection = iota
	CastleDirectionWhiteRight
	CastleDirectionWhiteLeft
	CastleDirectionBlackRight
	CastleDirectionBlackLeft
)

// castleDirections lists the two directions available to each side.
var castleDirections = [2 + 1][2]CastleDirection{
	SideWhite: {CastleDirectionWhiteRight, CastleDirectionWhiteLeft},
	SideBlack: {CastleDirectionBlackRight, CastleDirectionBlackLeft},
}

func (d CastleDirection) String() string {
	switch d {
	case CastleDirectionWhiteRight:
		return "White O-O"
	case CastleDirectionWhiteLeft:
		return "White O-O-O"
	case CastleDirectionBlackRight:
		return "Black O-O"
	case CastleDirectionBlackLeft:
		return "Black O-O-O"
	default:
		return ""
	}
}

func (d CastleDirection) IsWhite() bool {
	return d == CastleDirectionWhiteRight || d == CastleDirectionWhiteLeft
}

func (d CastleDirection) IsRight() bool {
	return d == CastleDirectionWhiteRight || d == CastleDirectionBlackRight
}

// King returns the king's source and destination squares.
func (d CastleDirection) King() (position.Pos, position.Pos) {
	hops := posCastling[d][PieceKing]
	return hops[0], hops[1]
}

// Rook returns the rook's source and destination squares.
func (d CastleDirection) Rook() (position.Pos, position.Pos) {
	hops := posCastling[d][PieceRook]
	return hops[0], hops[1]
}

type CastleRights uint8

func (c *CastleRights) Set(d CastleDirection, allow bool) {
	if allow {
		*c |= maskCastleRights[d]
	} else {
		*c &^= maskCastleRights[d]
	}
}

func (c CastleRights) IsAllowed(d CastleDirection) bool {
	return c&maskCastleRights[d] != 0
}

func (c CastleRights) IsSideAllowed(s Side) bool {
	if s == SideWhite {
		return c&(maskCastleRights[CastleDirectionWhiteLeft]|maskCastleRights[CastleDirectionWhiteRight]) != 0
	}
	return c&(maskCastleRights[CastleDirectionBlackLeft]|maskCastleRights[CastleDirectionBlackRight]) != 0
}

// String returns the FEN castling field.
func (c CastleRights) String() string {
	if c == 0 {
		return "-"
	}
	var sym []byte
	if c.IsAllowed(CastleDirectionWhiteRight) {
		sym = append(sym, 'K')
	}
	if c.IsAllowed(CastleDirectionWhiteLeft) {
		sym = append(sym, 'Q')
	}
	if c.IsAllowed(CastleDirectionBlackRight) {
		sym = append(sym, 'k')
	}
	if c.IsAllowed(CastleDirectionBlackLeft) {
		sym = append(sym, 'q')
	}
	return string(sym)
}
