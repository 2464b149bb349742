package board

import "github.com/medieval-chess/medieval/position"

type Side uint8

const (
	SideUnknown Side = iota
	SideWhite
	SideBlack
)

func (s Side) String() string {
	switch s {
	case SideWhite:
		return "White"
	case SideBlack:
		return "Black"
	default:
		return ""
	}
}

func (s Side) Opposite() Side {
	switch s {
	case SideWhite:
		return SideBlack
	case SideBlack:
		return SideWhite
	default:
		return SideUnknown
	}
}

// forward is the square offset of a single pawn push.
func (s Side) forward() position.Pos {
	if s == SideBlack {
		return -Width
	}
	return Width
}

// homeRank is the rank holding the side's king at the start.
func (s Side) homeRank() position.Pos {
	if s == SideBlack {
		return position.Rank8
	}
	return position.Rank1
}

// pawnRank is the rank a pawn may double push from.
func (s Side) pawnRank() position.Pos {
	if s == SideBlack {
		return position.Rank7
	}
	return position.Rank2
}

// enPassantRank is the rank a double pushed pawn of the side passes over.
func (s Side) enPassantRank() position.Pos {
	if s == SideBlack {
		return position.Rank6
	}
	return position.Rank3
}

// promoteRank is the rank a pawn promotes on.
func (s Side) promoteRank() position.Pos {
	return s.Opposite().homeRank()
}
