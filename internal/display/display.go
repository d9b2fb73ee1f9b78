// Package display defines the drawing surface the simulation renders into and
// a terminal implementation backed by tcell.
package display

import (
	"fmt"
	"strings"

	"github.com/l1jgo/gridsim/internal/core/vec"
)

// Color is one of the eight glyph colours the engine knows.
type Color int

const (
	ColorBlack Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

var colorNames = [...]string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

func (c Color) String() string {
	if c < 0 || int(c) >= len(colorNames) {
		return fmt.Sprintf("Color(%d)", int(c))
	}
	return colorNames[c]
}

// ParseColor maps a colour name (case-insensitive) to a Color.
func ParseColor(name string) (Color, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, cn := range colorNames {
		if cn == n {
			return Color(i), nil
		}
	}
	return ColorWhite, fmt.Errorf("unknown color %q", name)
}

// Justification anchors a string relative to its draw position.
type Justification int

const (
	LeftJustified Justification = iota
	CenterJustified
	RightJustified
)

// Display is the surface entities draw on. Positions are in grid spaces.
type Display interface {
	Horizontal() int
	Vertical() int
	HorizontalPixels() int
	VerticalPixels() int
	CharWidth() float64
	CharHeight() float64
	SpacesToPixels(spaces vec.Vector) vec.Vector
	PixelsToSpaces(pixels vec.Vector) vec.Vector
	DrawCh(pos vec.Vector, ch rune, c Color) error
	DrawString(pos vec.Vector, s string, j Justification, c Color) error
	SwapBuffers() error
	Close() error
}

// Geometry converts between grid spaces and pixels for a fixed window size.
type Geometry struct {
	Cols        int
	Rows        int
	PixelWidth  int
	PixelHeight int
}

func (g Geometry) Horizontal() int       { return g.Cols }
func (g Geometry) Vertical() int         { return g.Rows }
func (g Geometry) HorizontalPixels() int { return g.PixelWidth }
func (g Geometry) VerticalPixels() int   { return g.PixelHeight }

// CharWidth is the width of one grid space in pixels.
func (g Geometry) CharWidth() float64 {
	if g.Cols == 0 {
		return 0
	}
	return float64(g.PixelWidth) / float64(g.Cols)
}

// CharHeight is the height of one grid space in pixels.
func (g Geometry) CharHeight() float64 {
	if g.Rows == 0 {
		return 0
	}
	return float64(g.PixelHeight) / float64(g.Rows)
}

func (g Geometry) SpacesToPixels(spaces vec.Vector) vec.Vector {
	return vec.New(spaces.X*g.CharWidth(), spaces.Y*g.CharHeight())
}

func (g Geometry) PixelsToSpaces(pixels vec.Vector) vec.Vector {
	w, h := g.CharWidth(), g.CharHeight()
	if w == 0 || h == 0 {
		return vec.Vector{}
	}
	return vec.New(pixels.X/w, pixels.Y/h)
}

// justify returns the x where a string of the given cell width starts.
func justify(x float64, cells int, j Justification) float64 {
	switch j {
	case CenterJustified:
		return x - float64(cells)/2
	case RightJustified:
		return x - float64(cells)
	}
	return x
}
