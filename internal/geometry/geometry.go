// Package geometry turns raw pointer deltas into validated rectangles.
// Everything here is a pure function over canvas units; no package in the
// tree below this one knows about pointers or terminals.
package geometry

// MinSize is the commit threshold: a rectangle narrower or shorter than
// this never becomes a region, and no resize output drops below it.
const MinSize = 50.0

// Bounds is an axis-aligned rectangle in canvas coordinates.
type Bounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (b Bounds) Right() float64 { return b.X + b.Width }

// Bottom returns the y coordinate of the bottom edge.
func (b Bounds) Bottom() float64 { return b.Y + b.Height }

// Contains reports whether the point lies inside the rectangle.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.X && x < b.Right() && y >= b.Y && y < b.Bottom()
}

// Committable reports whether the bounds meet the commit threshold on
// both axes.
func (b Bounds) Committable() bool {
	return b.Width >= MinSize && b.Height >= MinSize
}

// Handle identifies one of the eight resize grips on a region edge or
// corner.
type Handle int

const (
	HandleN Handle = iota
	HandleS
	HandleE
	HandleW
	HandleNE
	HandleNW
	HandleSE
	HandleSW
)

func (h Handle) String() string {
	switch h {
	case HandleN:
		return "n"
	case HandleS:
		return "s"
	case HandleE:
		return "e"
	case HandleW:
		return "w"
	case HandleNE:
		return "ne"
	case HandleNW:
		return "nw"
	case HandleSE:
		return "se"
	case HandleSW:
		return "sw"
	default:
		return "unknown"
	}
}

// Selection normalizes a drag from an origin point to the current point
// into a rectangle. The origin may be any corner of the result.
func Selection(originX, originY, currentX, currentY float64) Bounds {
	return Bounds{
		X:      min(originX, currentX),
		Y:      min(originY, currentY),
		Width:  abs(currentX - originX),
		Height: abs(currentY - originY),
	}
}

// Translate moves bounds by a pointer delta. Size is invariant under move.
func Translate(start Bounds, dx, dy float64) Bounds {
	return Bounds{X: start.X + dx, Y: start.Y + dy, Width: start.Width, Height: start.Height}
}

// Resize applies a pointer delta to one handle of the start bounds.
//
// Handles on the east/south edges grow away from the fixed top-left
// anchor, so they only adjust width/height. Handles on the west/north
// edges keep the far edge stationary: the size is clamped first and the
// origin recomputed from the clamped size, so shrinking past the minimum
// pins the near edge instead of letting it overshoot the far one.
// Corner handles compose the two rules independently per axis. Every
// output satisfies Width, Height >= MinSize.
func Resize(start Bounds, h Handle, dx, dy float64) Bounds {
	out := start

	switch h {
	case HandleE, HandleNE, HandleSE:
		out.Width = max(MinSize, start.Width+dx)
	case HandleW, HandleNW, HandleSW:
		out.Width = max(MinSize, start.Width-dx)
		out.X = start.X + (start.Width - out.Width)
	}

	switch h {
	case HandleS, HandleSE, HandleSW:
		out.Height = max(MinSize, start.Height+dy)
	case HandleN, HandleNE, HandleNW:
		out.Height = max(MinSize, start.Height-dy)
		out.Y = start.Y + (start.Height - out.Height)
	}

	return out
}

// HandleAt hit-tests a point against the eight grips of bounds. The grip
// zone extends `slop` units inward from each edge. The second return is
// false when the point is not on any grip (interior or outside).
func HandleAt(b Bounds, x, y float64, slop float64) (Handle, bool) {
	if !b.Contains(x, y) {
		return 0, false
	}
	west := x < b.X+slop
	east := x >= b.Right()-slop
	north := y < b.Y+slop
	south := y >= b.Bottom()-slop

	switch {
	case north && west:
		return HandleNW, true
	case north && east:
		return HandleNE, true
	case south && west:
		return HandleSW, true
	case south && east:
		return HandleSE, true
	case north:
		return HandleN, true
	case south:
		return HandleS, true
	case west:
		return HandleW, true
	case east:
		return HandleE, true
	}
	return 0, false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
