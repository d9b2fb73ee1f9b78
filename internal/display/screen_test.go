package display

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/l1jgo/gridsim/internal/config"
	"github.com/l1jgo/gridsim/internal/core/vec"
	"go.uber.org/zap"
)

type cellKey struct{ x, y int }

// MockScreen is a minimal mock for tcell.Screen used in tests
type MockScreen struct {
	tcell.Screen
	cells  map[cellKey]rune
	styles map[cellKey]tcell.Style
	shows  int
	clears int
	fini   bool
}

func newMockScreen() *MockScreen {
	return &MockScreen{
		cells:  make(map[cellKey]rune),
		styles: make(map[cellKey]tcell.Style),
	}
}

func (m *MockScreen) Size() (int, int)          { return 80, 24 }
func (m *MockScreen) HideCursor()               {}
func (m *MockScreen) SetStyle(style tcell.Style) {}
func (m *MockScreen) Show()                     { m.shows++ }
func (m *MockScreen) Clear() {
	m.clears++
	m.cells = make(map[cellKey]rune)
}
func (m *MockScreen) Fini() { m.fini = true }
func (m *MockScreen) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	m.cells[cellKey{x, y}] = mainc
	m.styles[cellKey{x, y}] = style
}

func newTestScreen(t *testing.T) (*Screen, *MockScreen) {
	t.Helper()
	mock := newMockScreen()
	cfg := config.Defaults().Display
	return NewScreen(mock, cfg, zap.NewNop()), mock
}

func TestDrawChPlacesGlyph(t *testing.T) {
	d, mock := newTestScreen(t)
	if err := d.DrawCh(vec.New(3.7, 4.2), '@', ColorRed); err != nil {
		t.Fatalf("DrawCh: %v", err)
	}
	if got := mock.cells[cellKey{3, 4}]; got != '@' {
		t.Errorf("cell (3,4) = %q, want '@'", got)
	}
	if mock.styles[cellKey{3, 4}] != d.style(ColorRed) {
		t.Error("glyph should be drawn in the requested colour")
	}
}

func TestDrawChClipsOutsideWindow(t *testing.T) {
	d, mock := newTestScreen(t)
	for _, p := range []vec.Vector{vec.New(-0.5, 0), vec.New(80, 0), vec.New(0, 24)} {
		if err := d.DrawCh(p, 'x', ColorWhite); err != nil {
			t.Fatalf("DrawCh(%+v): %v", p, err)
		}
	}
	if len(mock.cells) != 0 {
		t.Errorf("expected no cells drawn, got %v", mock.cells)
	}
}

func TestDrawStringJustification(t *testing.T) {
	tests := []struct {
		name  string
		j     Justification
		start int
	}{
		{"left", LeftJustified, 10},
		{"center", CenterJustified, 8},
		{"right", RightJustified, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, mock := newTestScreen(t)
			if err := d.DrawString(vec.New(10, 2), "abcd", tt.j, ColorGreen); err != nil {
				t.Fatalf("DrawString: %v", err)
			}
			for i, want := range "abcd" {
				if got := mock.cells[cellKey{tt.start + i, 2}]; got != want {
					t.Errorf("cell %d = %q, want %q", tt.start+i, got, want)
				}
			}
		})
	}
}

func TestDrawStringWideRunes(t *testing.T) {
	d, mock := newTestScreen(t)
	if err := d.DrawString(vec.New(0, 0), "世a", LeftJustified, ColorWhite); err != nil {
		t.Fatalf("DrawString: %v", err)
	}
	if mock.cells[cellKey{0, 0}] != '世' {
		t.Errorf("cell 0 = %q", mock.cells[cellKey{0, 0}])
	}
	if mock.cells[cellKey{2, 0}] != 'a' {
		t.Errorf("wide rune should advance two cells, cell 2 = %q", mock.cells[cellKey{2, 0}])
	}
}

func TestSwapBuffersAndClose(t *testing.T) {
	d, mock := newTestScreen(t)
	clears := mock.clears
	if err := d.SwapBuffers(); err != nil {
		t.Fatal(err)
	}
	if mock.shows != 1 || mock.clears != clears+1 {
		t.Errorf("shows=%d clears=%d", mock.shows, mock.clears)
	}
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
	if !mock.fini {
		t.Error("Close should finalise the terminal")
	}
}

func TestGeometryConversion(t *testing.T) {
	g := Geometry{Cols: 80, Rows: 24, PixelWidth: 800, PixelHeight: 480}
	if g.CharWidth() != 10 || g.CharHeight() != 20 {
		t.Fatalf("char size = %v x %v", g.CharWidth(), g.CharHeight())
	}
	p := g.SpacesToPixels(vec.New(10, 2))
	if p.X != 100 || p.Y != 40 {
		t.Errorf("SpacesToPixels = %+v", p)
	}
	s := g.PixelsToSpaces(p)
	if s.X != 10 || s.Y != 2 {
		t.Errorf("PixelsToSpaces = %+v", s)
	}
	if z := (Geometry{}).PixelsToSpaces(p); !z.IsZero() {
		t.Errorf("empty geometry should map to zero, got %+v", z)
	}
}

func TestCharSizeThroughDisplay(t *testing.T) {
	var d Display = NewHeadless(Geometry{Cols: 40, Rows: 10, PixelWidth: 320, PixelHeight: 160})
	if d.CharWidth() != 8 || d.CharHeight() != 16 {
		t.Errorf("char size = %v x %v, want 8 x 16", d.CharWidth(), d.CharHeight())
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor(" Yellow ")
	if err != nil || c != ColorYellow {
		t.Errorf("ParseColor(Yellow) = %v, %v", c, err)
	}
	if _, err := ParseColor("chartreuse"); err == nil {
		t.Error("expected error for unknown colour")
	}
	if ColorCyan.String() != "cyan" {
		t.Errorf("String() = %q", ColorCyan.String())
	}
}
