package model

import "math"

// BBox represents a bounding box (rectangle). The coordinate origin is the
// upper-left corner of the page with Y increasing downward, matching the
// convention used by OCR engines for raster images.
type BBox struct {
	X      float64 // Left
	Y      float64 // Top
	Width  float64
	Height float64
}

// NewBBox creates a bounding box from coordinates.
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// Left returns the left edge X coordinate.
func (b BBox) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate.
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Top returns the top edge Y coordinate.
func (b BBox) Top() float64 {
	return b.Y
}

// Bottom returns the bottom edge Y coordinate.
func (b BBox) Bottom() float64 {
	return b.Y + b.Height
}

// CenterX returns the horizontal center.
func (b BBox) CenterX() float64 {
	return b.X + b.Width/2
}

// CenterY returns the vertical center.
func (b BBox) CenterY() float64 {
	return b.Y + b.Height/2
}

// Intersects checks if two bounding boxes intersect.
func (b BBox) Intersects(other BBox) bool {
	return !(b.Right() < other.Left() ||
		b.Left() > other.Right() ||
		b.Bottom() < other.Top() ||
		b.Top() > other.Bottom())
}

// Union returns the smallest bounding box containing both boxes.
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

// Area returns the area of the bounding box.
func (b BBox) Area() float64 {
	return b.Width * b.Height
}

// VerticalOverlap returns the length of the overlap between the vertical
// extents of two boxes, ignoring horizontal position. Zero or negative means
// the boxes occupy disjoint vertical ranges.
func (b BBox) VerticalOverlap(other BBox) float64 {
	top := math.Max(b.Top(), other.Top())
	bottom := math.Min(b.Bottom(), other.Bottom())
	return bottom - top
}

// VerticalOverlapRatio returns the vertical overlap as a fraction of the
// smaller box height. Returns a value in [0, 1]; two boxes on the same text
// line typically score close to 1.
func (b BBox) VerticalOverlapRatio(other BBox) float64 {
	overlap := b.VerticalOverlap(other)
	if overlap <= 0 {
		return 0
	}

	minHeight := math.Min(b.Height, other.Height)
	if minHeight <= 0 {
		return 0
	}

	ratio := overlap / minHeight
	if ratio > 1 {
		return 1
	}
	return ratio
}

// IsEmpty returns true if the bounding box has zero area.
func (b BBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// IsValid returns true if the bounding box has positive dimensions.
func (b BBox) IsValid() bool {
	return b.Width > 0 && b.Height > 0
}
