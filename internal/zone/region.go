package zone

import (
	"image"

	"animalcount/internal/model"
)

// Point is a normalized coordinate; (0,0) is the top-left and (1,1) the
// bottom-right corner of the frame.
type Point struct {
	X, Y float64
}

// FullFrame covers the whole frame.
var FullFrame = []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// Region is a polygon in pixel coordinates. It is not modified after NewRegion.
type Region struct {
	points []image.Point
}

// NewRegion scales normalized points by the resolution, truncating toward zero.
func NewRegion(normalized []Point, res model.Resolution) Region {
	points := make([]image.Point, len(normalized))
	for i, p := range normalized {
		points[i] = image.Pt(int(p.X*float64(res.Width)), int(p.Y*float64(res.Height)))
	}
	return Region{points: points}
}

// Points returns a copy of the pixel polygon.
func (r Region) Points() []image.Point {
	out := make([]image.Point, len(r.points))
	copy(out, r.points)
	return out
}

// Center returns the mean of the polygon vertices.
func (r Region) Center() image.Point {
	if len(r.points) == 0 {
		return image.Point{}
	}
	var sx, sy int
	for _, p := range r.points {
		sx += p.X
		sy += p.Y
	}
	return image.Pt(sx/len(r.points), sy/len(r.points))
}

// Contains reports whether pt lies inside the polygon or on its boundary.
func (r Region) Contains(pt image.Point) bool {
	n := len(r.points)
	if n < 3 {
		return false
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := r.points[i], r.points[j]
		if onSegment(pt, a, b) {
			return true
		}
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			// x of the edge at pt.Y, compared without division
			lhs := (pt.X - a.X) * (b.Y - a.Y)
			rhs := (b.X - a.X) * (pt.Y - a.Y)
			if b.Y-a.Y > 0 {
				if lhs < rhs {
					inside = !inside
				}
			} else if lhs > rhs {
				inside = !inside
			}
		}
	}
	return inside
}

func onSegment(p, a, b image.Point) bool {
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if cross != 0 {
		return false
	}
	return min(a.X, b.X) <= p.X && p.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= p.Y && p.Y <= max(a.Y, b.Y)
}
