package display

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/l1jgo/gridsim/internal/config"
	"github.com/l1jgo/gridsim/internal/core/vec"
	"go.uber.org/zap"
	"golang.org/x/text/width"
)

var tcellColors = [...]tcell.Color{
	ColorBlack:   tcell.ColorBlack,
	ColorRed:     tcell.ColorRed,
	ColorGreen:   tcell.ColorGreen,
	ColorYellow:  tcell.ColorYellow,
	ColorBlue:    tcell.ColorBlue,
	ColorMagenta: tcell.ColorPurple,
	ColorCyan:    tcell.ColorTeal,
	ColorWhite:   tcell.ColorWhite,
}

// Screen draws into a terminal through tcell. One grid space is one cell.
// Single-goroutine access only (frame loop).
type Screen struct {
	Geometry
	screen tcell.Screen
	bg     tcell.Color
	log    *zap.Logger
}

// Open initialises the controlling terminal.
func Open(cfg config.DisplayConfig, log *zap.Logger) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create terminal screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init terminal screen: %w", err)
	}
	return NewScreen(s, cfg, log), nil
}

// NewScreen wraps an already initialised tcell screen.
func NewScreen(s tcell.Screen, cfg config.DisplayConfig, log *zap.Logger) *Screen {
	bg := tcell.ColorBlack
	if cfg.Background != "" {
		if c := tcell.GetColor(cfg.Background); c != tcell.ColorDefault {
			bg = c
		}
	}
	s.HideCursor()
	s.SetStyle(tcell.StyleDefault.Background(bg))
	s.Clear()

	d := &Screen{
		Geometry: Geometry{
			Cols:        cfg.HorizontalChars,
			Rows:        cfg.VerticalChars,
			PixelWidth:  cfg.HorizontalPixels,
			PixelHeight: cfg.VerticalPixels,
		},
		screen: s,
		bg:     bg,
		log:    log,
	}
	log.Info("display started",
		zap.Int("horizontal", d.Horizontal()),
		zap.Int("vertical", d.Vertical()),
	)
	return d
}

// Terminal exposes the underlying tcell screen so the input source can share it.
func (d *Screen) Terminal() tcell.Screen { return d.screen }

func (d *Screen) style(c Color) tcell.Style {
	fg := tcell.ColorWhite
	if c >= 0 && int(c) < len(tcellColors) {
		fg = tcellColors[c]
	}
	return tcell.StyleDefault.Foreground(fg).Background(d.bg).Bold(true)
}

// DrawCh puts ch at the cell containing pos. Cells outside the window are
// clipped silently.
func (d *Screen) DrawCh(pos vec.Vector, ch rune, c Color) error {
	x, y := int(math.Floor(pos.X)), int(math.Floor(pos.Y))
	if x < 0 || y < 0 || x >= d.Horizontal() || y >= d.Vertical() {
		return nil
	}
	d.screen.SetContent(x, y, ch, nil, d.style(c))
	return nil
}

// DrawString draws s anchored at pos. Wide runes occupy two cells.
func (d *Screen) DrawString(pos vec.Vector, s string, j Justification, c Color) error {
	x := justify(pos.X, cellWidth(s), j)
	for _, r := range s {
		if err := d.DrawCh(vec.New(x, pos.Y), r, c); err != nil {
			return err
		}
		x += float64(runeCells(r))
	}
	return nil
}

// SwapBuffers presents the frame and starts a blank one.
func (d *Screen) SwapBuffers() error {
	d.screen.Show()
	d.screen.Clear()
	return nil
}

func (d *Screen) Close() error {
	d.screen.Fini()
	d.log.Info("display shut down")
	return nil
}

func cellWidth(s string) int {
	n := 0
	for _, r := range s {
		n += runeCells(r)
	}
	return n
}

func runeCells(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}
