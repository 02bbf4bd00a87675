package display

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Fixed geometry of a rendered progress line.
const (
	BarWidth   = 50 // cells between the brackets
	NameWidth  = 18 // widest name shown before truncation
	LabelWidth = 20 // name, separator space and dot filler
)

// Label truncates name to NameWidth terminal cells and pads it with a space
// and dots to exactly LabelWidth cells.
func Label(name string) string {
	short := runewidth.Truncate(name, NameWidth, "")
	fill := LabelWidth - 1 - runewidth.StringWidth(short)
	return short + " " + strings.Repeat(".", fill)
}

// Fraction returns sum/total clamped to [0, 1]. A zero total is always complete.
func Fraction(sum, total uint64) float64 {
	if total == 0 || sum >= total {
		return 1
	}
	return float64(sum) / float64(total)
}

// Position returns floor(BarWidth * fraction), the index of the bar's head.
func Position(sum, total uint64) int {
	return int(scale(sum, total, BarWidth))
}

// Percent returns floor(100 * fraction).
func Percent(sum, total uint64) int {
	return int(scale(sum, total, 100))
}

// scale computes floor(width * min(sum/total, 1)) exactly for any uint64 input.
func scale(sum, total, width uint64) uint64 {
	if total == 0 || sum >= total {
		return width
	}
	// sum < total keeps the high word below total, so Div64 cannot overflow.
	hi, lo := bits.Mul64(sum, width)
	q, _ := bits.Div64(hi, lo, total)
	return q
}

// RenderBar formats one progress line for the given state, without the
// trailing carriage return:
//
//	Loading ............ [=========================>                        ]  50%
//
// The result depends only on its arguments.
func RenderBar(sum, total uint64, name string) string {
	pos := Position(sum, total)

	var b strings.Builder
	b.Grow(LabelWidth + BarWidth + 10)
	b.WriteString(Label(name))
	b.WriteString(" [")
	for i := 0; i < BarWidth; i++ {
		switch {
		case i < pos:
			b.WriteByte('=')
		case i == pos:
			b.WriteByte('>')
		default:
			b.WriteByte(' ')
		}
	}
	fmt.Fprintf(&b, "] %3d%%", Percent(sum, total))
	return b.String()
}
