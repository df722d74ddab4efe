package model

import "math"

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BBox represents a bounding box in top-origin page coordinates.
type BBox struct {
	X      float64 // Left
	Y      float64 // Top (distance from the top edge of the page)
	Width  float64
	Height float64
}

// NewBBox creates a bounding box from coordinates
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// Left returns the left edge X coordinate
func (b BBox) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Top returns the top edge Y coordinate
func (b BBox) Top() float64 {
	return b.Y
}

// Bottom returns the bottom edge Y coordinate
func (b BBox) Bottom() float64 {
	return b.Y + b.Height
}

// Center returns the center point
func (b BBox) Center() Point {
	return Point{
		X: b.X + b.Width/2,
		Y: b.Y + b.Height/2,
	}
}

// Union returns the union of two bounding boxes
func (b BBox) Union(other BBox) BBox {
	x := math.Min(b.Left(), other.Left())
	y := math.Min(b.Top(), other.Top())
	right := math.Max(b.Right(), other.Right())
	bottom := math.Max(b.Bottom(), other.Bottom())

	return BBox{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// VerticalGap returns the empty space between b and other along Y.
// Overlapping boxes have a gap of 0.
func (b BBox) VerticalGap(other BBox) float64 {
	if other.Top() >= b.Bottom() {
		return other.Top() - b.Bottom()
	}
	if b.Top() >= other.Bottom() {
		return b.Top() - other.Bottom()
	}
	return 0
}

// HorizontalGap returns the empty space between b and other along X.
// Overlapping boxes have a gap of 0.
func (b BBox) HorizontalGap(other BBox) float64 {
	if other.Left() >= b.Right() {
		return other.Left() - b.Right()
	}
	if b.Left() >= other.Right() {
		return b.Left() - other.Right()
	}
	return 0
}

// IsEmpty returns true if the bounding box has zero area
func (b BBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}
