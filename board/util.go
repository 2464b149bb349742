package board

import (
	"fmt"
	"math/bits"
	"strings"

	"golang.org/x/exp/constraints"

	"github.com/medieval-chess/medieval/position"
)

// Little-endian rank-file (LERF) bitboard, bit 0 is a1.
type bitmap uint64

func reverse(bm bitmap) bitmap {
	return bitmap(bits.Reverse64(uint64(bm)))
}

func ShiftNW(bm bitmap) bitmap {
	return bm << 7
}

func ShiftN(bm bitmap) bitmap {
	return bm << 8
}

func ShiftNE(bm bitmap) bitmap {
	return bm << 9
}

func ShiftE(bm bitmap) bitmap {
	return bm << 1
}

func ShiftSE(bm bitmap) bitmap {
	return bm >> 7
}

func ShiftS(bm bitmap) bitmap {
	return bm >> 8
}

func ShiftSW(bm bitmap) bitmap {
	return bm >> 9
}

func ShiftW(bm bitmap) bitmap {
	return bm >> 1
}

func HitDiagonals(pos position.Pos, occupied bitmap) bitmap {
	return ScanHit(maskCell[pos], occupied, maskDia[pos]) | ScanHit(maskCell[pos], occupied, maskADia[pos])
}

func HitLaterals(pos position.Pos, occupied bitmap) bitmap {
	return ScanHit(maskCell[pos], occupied, maskCol[pos.X()]) | ScanHit(maskCell[pos], occupied, maskRow[pos.Y()])
}

// ScanHit uses o^(o-2*r) trick. The result includes the first blocker in each
// direction and excludes the slider itself.
func ScanHit(cell, occupied, mask bitmap) bitmap {
	blocker := occupied & mask
	return ((blocker - 2*cell) ^ reverse(reverse(blocker)-2*reverse(cell))) & mask
}

func (bm *bitmap) Set(pos position.Pos) {
	*bm |= maskCell[pos]
}

func (bm *bitmap) Unset(pos position.Pos) {
	*bm &^= maskCell[pos]
}

func (bm bitmap) LS1B() position.Pos {
	return position.Pos(bits.TrailingZeros64(uint64(bm)))
}

// PopLS1B clears and returns the least significant set bit.
func (bm *bitmap) PopLS1B() position.Pos {
	pos := bm.LS1B()
	*bm &= *bm - 1
	return pos
}

func (bm bitmap) BitCount() uint8 {
	return uint8(bits.OnesCount64(uint64(bm)))
}

func (bm bitmap) Dump(sym ...rune) string {
	builder := strings.Builder{}
	for y := position.Pos(Height) - 1; y >= 0; y-- {
		_, _ = builder.WriteString(fmt.Sprintf(" %s |", y.NotationComponentY()))
		for x := position.Pos(0); x < Width; x++ {
			if bm&maskCell[y*Width+x] != 0 {
				s := "#"
				if len(sym) == 1 {
					s = string(sym[0])
				}
				_, _ = builder.WriteString(fmt.Sprintf(" %s ", s))
			} else {
				_, _ = builder.WriteString(" . ")
			}
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("    ------------------------\n    ")
	for x := position.Pos(0); x < Width; x++ {
		_, _ = builder.WriteString(fmt.Sprintf(" %s ", x.NotationComponentX()))
	}
	return builder.String()
}

func minOf[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func abs[T constraints.Signed](a T) T {
	if a < 0 {
		return -a
	}
	return a
}
