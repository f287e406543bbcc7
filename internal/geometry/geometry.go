// Package geometry provides the screen coordinate value types shared by
// the chain engine and the external collaborators. All coordinates are
// absolute screen pixels in the compositor's coordinate space.
package geometry

import "fmt"

// Position is a point on the screen.
type Position struct {
	X uint32 `json:"x"`
	Y uint32 `json:"y"`
}

// String formats the position as "x,y", matching the collaborator
// geometry syntax.
func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Rect is an axis-aligned rectangle on the screen.
type Rect struct {
	X      uint32 `json:"x"`
	Y      uint32 `json:"y"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

// Origin returns the top-left corner of the rectangle.
func (r Rect) Origin() Position {
	return Position{X: r.X, Y: r.Y}
}

// Center returns the center of the rectangle, rounded down to whole
// pixels.
func (r Rect) Center() Position {
	return Position{
		X: r.X + r.Width/2,
		Y: r.Y + r.Height/2,
	}
}

// String formats the rectangle as "x,y WxH", matching the geometry
// syntax used by slurp and grim.
func (r Rect) String() string {
	return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.Width, r.Height)
}
