package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

var (
	styleTrack    = tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	styleEdge     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleMedian   = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	styleObstacle = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	styleCar      = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	stylePoliceA  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	stylePoliceB  = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	styleEffect   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleFading   = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleNote     = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// Glyphs
const (
	glyphTrack    = '·'
	glyphEdge     = '.'
	glyphMedian   = '#'
	glyphObstacle = 'A'
	glyphEffect   = '*'
	glyphFading   = '+'
)

// headingGlyph returns an arrow for an orientation in radians, counter-clockwise
// from +x with world y up
func headingGlyph(angle float64) rune {
	arrows := [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}
	i := int(math.Round(angle/(math.Pi/4))) % 8
	if i < 0 {
		i += 8
	}
	return arrows[i]
}
