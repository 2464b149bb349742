package shell

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/medieval-chess/medieval/board"
	"github.com/medieval-chess/medieval/position"
)

// palette draws board cells. Without colours, selection and destinations are
// marked with brackets and dots so the board stays readable as plain text.
type palette struct {
	enabled bool

	light    *color.Color
	dark     *color.Color
	selected *color.Color
	quiet    *color.Color
	capture  *color.Color
	label    *color.Color
	outcome  *color.Color
	failure  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		enabled:  enabled && !color.NoColor,
		light:    color.New(color.FgBlack, color.BgHiWhite),
		dark:     color.New(color.FgBlack, color.BgGreen),
		selected: color.New(color.FgBlack, color.BgHiGreen),
		quiet:    color.New(color.FgBlack, color.BgCyan),
		capture:  color.New(color.FgBlack, color.BgRed),
		label:    color.New(color.Bold),
		outcome:  color.New(color.Bold, color.FgYellow),
		failure:  color.New(color.FgRed),
	}
	if !p.enabled {
		for _, c := range []*color.Color{p.light, p.dark, p.selected, p.quiet, p.capture, p.label, p.outcome, p.failure} {
			c.DisableColor()
		}
	}
	return p
}

func render(b *board.Board, selected position.Pos, targets []board.Move, p palette) string {
	quiet := make(map[position.Pos]bool)
	capture := make(map[position.Pos]bool)
	for _, mv := range targets {
		if mv.IsCapture {
			capture[mv.To] = true
		} else {
			quiet[mv.To] = true
		}
	}

	builder := strings.Builder{}
	for y := position.Rank8; y >= position.Rank1; y-- {
		_, _ = builder.WriteString(p.label.Sprintf(" %d ", y+1))
		for x := position.FileA; x <= position.FileH; x++ {
			pos := position.NewPos(x, y)
			s, piece := b.PieceAt(pos)
			var cell string
			switch {
			case pos == selected:
				cell = p.cell(p.selected, s, piece, '[', ']')
			case capture[pos]:
				cell = p.cell(p.capture, s, piece, '(', ')')
			case quiet[pos]:
				cell = p.cell(p.quiet, s, piece, ' ', ' ')
			case pos.IsLight():
				cell = p.cell(p.light, s, piece, ' ', ' ')
			default:
				cell = p.cell(p.dark, s, piece, ' ', ' ')
			}
			_, _ = builder.WriteString(cell)
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   ")
	for x := position.FileA; x <= position.FileH; x++ {
		_, _ = builder.WriteString(p.label.Sprintf(" %s ", x.NotationComponentX()))
	}
	return builder.String()
}

func (p palette) cell(bg *color.Color, s board.Side, piece board.Piece, left, right rune) string {
	if p.enabled {
		sym := piece.SymbolUnicode(s)
		if piece == board.PieceUnknown {
			sym = " "
		}
		return bg.Sprintf(" %s ", sym)
	}

	sym := piece.SymbolFEN(s)
	if piece == board.PieceUnknown {
		sym = "."
		if bg == p.quiet {
			sym = "*"
		}
	}
	return fmt.Sprintf("%c%s%c", left, sym, right)
}
