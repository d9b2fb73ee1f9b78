package vec

import "math"

// Vector is a 2-D grid-space coordinate or displacement.
type Vector struct {
	X float64
	Y float64
}

func New(x, y float64) Vector { return Vector{X: x, Y: y} }

func (v Vector) IsZero() bool { return v.X == 0 && v.Y == 0 }

func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vector) Normalize() Vector {
	mag := v.Magnitude()
	if mag > 0 {
		return Vector{X: v.X / mag, Y: v.Y / mag}
	}
	return v
}

func (v Vector) Scale(s float64) Vector { return Vector{X: v.X * s, Y: v.Y * s} }

func (v Vector) Add(o Vector) Vector { return Vector{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vector) Sub(o Vector) Vector { return Vector{X: v.X - o.X, Y: v.Y - o.Y} }

// Cell returns the grid cell containing v. Each axis is truncated toward zero,
// so (-0.5, 0.5) and (0.5, 0.5) both fall in cell (0, 0).
func (v Vector) Cell() (int, int) {
	return int(v.X), int(v.Y)
}

// SameCell reports whether v and o fall in the same grid cell.
func (v Vector) SameCell(o Vector) bool {
	ax, ay := v.Cell()
	bx, by := o.Cell()
	return ax == bx && ay == by
}
