package game

import (
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

const (
	redSuit  = "1"
	darkSuit = "7"
	dimEmpty = "8"
)

// Render draws the grid with red hearts and diamonds, followed by the hand
// type of each row and column when points is not nil.
func Render(w io.Writer, g *Grid, points *PointSystem, opts ...termenv.OutputOption) {
	out := termenv.NewOutput(w, opts...)

	var sb strings.Builder
	for r := 0; r < g.Size(); r++ {
		for c := 0; c < g.Size(); c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			card := g.At(Cell{Row: r, Col: c})
			sb.WriteString(styleCard(out, card))
		}
		if points != nil {
			row := g.Row(r)
			sb.WriteString("  ")
			sb.WriteString(out.String(Classify(row).String()).Faint().String())
		}
		sb.WriteByte('\n')
	}
	if points != nil {
		for c := 0; c < g.Size(); c++ {
			col := g.Col(c)
			sb.WriteString(out.String("col " + Classify(col).String()).Faint().String())
			sb.WriteByte('\n')
		}
		sb.WriteString(out.String("score ").Bold().String())
		sb.WriteString(out.String(formatScore(points.Score(g))).Bold().String())
		sb.WriteByte('\n')
	}
	io.WriteString(out, sb.String())
}

func styleCard(out *termenv.Output, card Card) string {
	style := out.String(card.String())
	switch {
	case card == NoCard:
		style = style.Foreground(out.Color(dimEmpty))
	case card.Suit() == Hearts || card.Suit() == Diamonds:
		style = style.Foreground(out.Color(redSuit))
	default:
		style = style.Foreground(out.Color(darkSuit))
	}
	return style.String()
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'g', -1, 64)
}
