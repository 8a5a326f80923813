package model

import (
	"image"
)

// ClassIndex identifies the detection category kept for a run.
type ClassIndex int

// Detection is one object found by the model in a single frame.
type Detection struct {
	Box        image.Rectangle `json:"box"`
	Confidence float64         `json:"confidence"`
	ClassID    int             `json:"class_id"`
}

// Center returns the centroid of the bounding box.
func (d Detection) Center() image.Point {
	return image.Pt((d.Box.Min.X+d.Box.Max.X)/2, (d.Box.Min.Y+d.Box.Max.Y)/2)
}

// BottomCenter returns the middle of the bottom edge of the bounding box.
func (d Detection) BottomCenter() image.Point {
	return image.Pt((d.Box.Min.X+d.Box.Max.X)/2, d.Box.Max.Y)
}
