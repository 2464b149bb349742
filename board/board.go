package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/medieval-chess/medieval/position"
)

var (
	ErrInvalidFEN   = errors.New("invalid fen")
	ErrIllegalMove  = errors.New("illegal move")
	ErrInvalidUCI   = errors.New("invalid uci move")
	ErrEmptyHistory = errors.New("no move to undo")
)

// layout is the value part of a position. It is copied freely to simulate moves.
type layout struct {
	// grid data
	sides    [2 + 1]bitmap
	pieces   [6 + 1]bitmap
	occupied bitmap

	// meta
	enPassant     position.Pos // position.Invalid when no double push just happened
	castleRights  CastleRights
	halfMoveClock uint32
	fullMoveClock uint32
	turn          Side

	// placement, turn and castle rights; en passant is folded in by key()
	hash uint64
}

type undo struct {
	mv   Move
	prev layout
}

// Board is a chess position together with the history of the game that reached it.
// A Board must not be used from multiple goroutines at once.
type Board struct {
	layout

	keys  []uint64 // repetition keys, initial position first
	undos []undo
}

type boardConfig struct {
	fen string
}

type BoardOption func(*boardConfig)

func WithFEN(fen string) BoardOption {
	return func(cfg *boardConfig) {
		cfg.fen = fen
	}
}

func NewBoard(opts ...BoardOption) (*Board, error) {
	cfg := &boardConfig{
		fen: DefaultStartingPositionFEN,
	}
	for _, f := range opts {
		f(cfg)
	}

	b := &Board{}
	if err := UnmarshalFEN(cfg.fen, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Board) reset() {
	b.layout = layout{enPassant: position.Invalid}
	b.keys = b.keys[:0]
	b.undos = b.undos[:0]
}

func (b *Board) Turn() Side {
	return b.turn
}

func (b *Board) HalfMoveClock() uint32 {
	return b.halfMoveClock
}

func (b *Board) FullMoveClock() uint32 {
	return b.fullMoveClock
}

func (b *Board) CastleRights() CastleRights {
	return b.castleRights
}

// EnPassant returns the en passant target square, or position.Invalid.
func (b *Board) EnPassant() position.Pos {
	return b.enPassant
}

// Hash is the repetition key of the current position.
func (b *Board) Hash() uint64 {
	return b.keys[len(b.keys)-1]
}

// Ply is the number of moves pushed since the board was created.
func (b *Board) Ply() int {
	return len(b.undos)
}

// History returns the moves pushed since the board was created, oldest first.
func (b *Board) History() []Move {
	mvs := make([]Move, len(b.undos))
	for i, u := range b.undos {
		mvs[i] = u.mv
	}
	return mvs
}

// PieceAt returns the piece on pos. An empty square yields SideUnknown and PieceUnknown.
func (b *Board) PieceAt(pos position.Pos) (Side, Piece) {
	if !pos.IsValid() {
		return SideUnknown, PieceUnknown
	}
	return b.pieceAt(pos)
}

func (b *Board) Clone() *Board {
	return &Board{
		layout: b.layout,
		keys:   append([]uint64(nil), b.keys...),
		undos:  append([]undo(nil), b.undos...),
	}
}

func (l *layout) pieceAt(pos position.Pos) (Side, Piece) {
	cell := maskCell[pos]
	if l.occupied&cell == 0 {
		return SideUnknown, PieceUnknown
	}
	s := SideWhite
	if l.sides[SideBlack]&cell != 0 {
		s = SideBlack
	}
	for _, p := range allPieces {
		if l.pieces[p]&cell != 0 {
			return s, p
		}
	}
	return SideUnknown, PieceUnknown
}

func (l *layout) set(s Side, p Piece, pos position.Pos) {
	l.sides[s].Set(pos)
	l.pieces[p].Set(pos)
	l.occupied.Set(pos)
	l.hash ^= zobristConstantPiece[s][p][pos]
}

func (l *layout) unset(s Side, p Piece, pos position.Pos) {
	l.sides[s].Unset(pos)
	l.pieces[p].Unset(pos)
	l.occupied.Unset(pos)
	l.hash ^= zobristConstantPiece[s][p][pos]
}

func (l *layout) setCastleRights(c CastleRights) {
	l.hash ^= zobristConstantCastleRights[l.castleRights] ^ zobristConstantCastleRights[c]
	l.castleRights = c
}

func (l *layout) getBitmap(s Side, p Piece) bitmap {
	return l.sides[s] & l.pieces[p]
}

// mustHaveKings panics if either side does not have exactly one king. Push relies on
// this to catch corrupted positions early.
func (l *layout) mustHaveKings() {
	for _, s := range []Side{SideWhite, SideBlack} {
		if n := l.getBitmap(s, PieceKing).BitCount(); n != 1 {
			panic(fmt.Sprintf("board: %s has %d kings", s, n))
		}
	}
}

func (b *Board) Dump() string {
	builder := strings.Builder{}
	for y := position.Pos(Height) - 1; y >= 0; y-- {
		_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n")
		_, _ = builder.WriteString(fmt.Sprintf(" %s |", y.NotationComponentY()))
		for x := position.Pos(0); x < Width; x++ {
			s, p := b.pieceAt(y*Width + x)
			sym := p.SymbolFEN(s)
			if s == SideUnknown {
				sym = " "
			}
			_, _ = builder.WriteString(fmt.Sprintf(" %s |", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n   ")
	for x := position.Pos(0); x < Width; x++ {
		_, _ = builder.WriteString(fmt.Sprintf("  %s ", x.NotationComponentX()))
	}
	return builder.String()
}

// DumpAttacks draws every square attacked by the given side.
func (b *Board) DumpAttacks(by Side) string {
	var bm bitmap
	for pos := position.Pos(0); pos < position.TotalCells; pos++ {
		if b.isSquareAttacked(pos, by) {
			bm.Set(pos)
		}
	}
	return bm.Dump('x')
}

func (b *Board) DebugString() string {
	return fmt.Sprintf("cast: %s\nenps: %s\nhalf: %4d\nfull: %4d\nhash: %016x\nstat: %s",
		b.castleRights, b.EnPassant(), b.halfMoveClock, b.fullMoveClock, b.Hash(), b.State())
}
