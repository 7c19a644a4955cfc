// Package raster is a CPU rasterizer over an externally owned buffer of
// packed pixel words. Coordinates are signed so geometry computed from
// trigonometric offsets may go negative; writes outside the canvas are
// silently discarded, which lets every primitive skip per-call clipping.
package raster

import "fmt"

// Point is a signed pixel coordinate.
type Point struct {
	X, Y int
}

// Dimensions declares the width and height of a canvas.
type Dimensions struct {
	Width, Height int
}

// Canvas is a bounds-checked view over a caller-owned pixel buffer. It is
// constructed fresh over the buffer handed out for each frame and must not
// be retained once the frame is presented.
type Canvas struct {
	buf  []uint32
	size Dimensions
}

// New wraps buf in a Canvas. The buffer length must equal width*height;
// a mismatch is refused rather than clamped.
func New(buf []uint32, size Dimensions) (*Canvas, error) {
	if len(buf) != size.Width*size.Height {
		return nil, fmt.Errorf("raster: buffer length %d does not match %dx%d canvas", len(buf), size.Width, size.Height)
	}
	return &Canvas{buf: buf, size: size}, nil
}

func (c *Canvas) Width() int  { return c.size.Width }
func (c *Canvas) Height() int { return c.size.Height }
func (c *Canvas) MaxX() int   { return c.size.Width - 1 }
func (c *Canvas) MaxY() int   { return c.size.Height - 1 }

// Center is the canvas midpoint with floor division.
func (c *Canvas) Center() Point {
	return Point{X: c.Width() / 2, Y: c.Height() / 2}
}

// MinDim is the smaller of width and height. Strokes and paddings are
// expressed as fractions of it so scenes stay resolution independent.
func (c *Canvas) MinDim() int {
	if c.Width() < c.Height() {
		return c.Width()
	}
	return c.Height()
}

// Clear overwrites every pixel with color.
func (c *Canvas) Clear(color uint32) {
	for i := range c.buf {
		c.buf[i] = color
	}
}

// PutPixel plots one pixel, ignoring coordinates outside the canvas.
func (c *Canvas) PutPixel(x, y int, color uint32) {
	if x < 0 || y < 0 {
		return
	}
	if x >= c.size.Width || y >= c.size.Height {
		return
	}
	c.buf[y*c.size.Width+x] = color
}

// FillCircle plots every lattice offset (dx,dy) with dx²+dy² <= radius².
// Radius 0 plots the center pixel alone; a negative radius has no defined
// disk and draws nothing.
func (c *Canvas) FillCircle(center Point, radius int, color uint32) {
	if radius < 0 {
		return
	}
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				c.PutPixel(center.X+dx, center.Y+dy, color)
			}
		}
	}
}

// DrawLine strokes a thick segment from a to b by stamping a filled circle
// at every lattice point of a Bresenham walk. Both endpoints are stamped and
// the stamp radius is the same for every octant, so swapping a and b yields
// the same pixel set. Thickness below 1 behaves as 1.
func (c *Canvas) DrawLine(a, b Point, thickness int, color uint32) {
	if thickness < 1 {
		thickness = 1
	}
	// round(thickness/2), never below one pixel
	radius := (thickness + 1) / 2

	// Walk from the lexicographically smaller endpoint. Tie steps in the
	// error accumulator would otherwise pick different diagonals for the
	// two directions, and swapping a and b must yield the same pixel set.
	if b.Y < a.Y || (b.Y == a.Y && b.X < a.X) {
		a, b = b, a
	}

	x0, y0 := a.X, a.Y
	x1, y1 := b.X, b.Y

	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy

	for {
		c.FillCircle(Point{X: x0, Y: y0}, radius, color)

		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawFrame strokes a rectangle inset by padding from each edge as four
// DrawLine calls between the inset corners. A padding large enough to
// collapse the rectangle degenerates to whatever DrawLine produces for
// near-coincident points.
func (c *Canvas) DrawFrame(padding, thickness int, color uint32) {
	w := c.MaxX()
	h := c.MaxY()
	p := padding

	topLeft := Point{X: p, Y: p}
	topRight := Point{X: w - p, Y: p}
	bottomLeft := Point{X: p, Y: h - p}
	bottomRight := Point{X: w - p, Y: h - p}

	c.DrawLine(topLeft, topRight, thickness, color)
	c.DrawLine(topLeft, bottomLeft, thickness, color)
	c.DrawLine(bottomLeft, bottomRight, thickness, color)
	c.DrawLine(bottomRight, topRight, thickness, color)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
