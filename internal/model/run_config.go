package model

import "fmt"

// Resolution is a capture size in pixels.
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DefaultResolution is used when --video_resolution is not given.
var DefaultResolution = Resolution{Width: 1280, Height: 720}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// RunConfig holds the parameters of a single run. An empty VideoPath selects camera 0.
type RunConfig struct {
	Resolution Resolution `json:"resolution"`
	VideoPath  string     `json:"video_path"`
}

// UseCamera reports whether the run reads from the live camera.
func (c RunConfig) UseCamera() bool {
	return c.VideoPath == ""
}
