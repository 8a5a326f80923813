package render

import "gocv.io/x/gocv"

// WindowTitle names the display window.
const WindowTitle = "Animal Detection"

// KeyEscape is the key code WaitKey returns for Escape.
const KeyEscape = 27

// Window is an OpenCV highgui window.
type Window struct {
	window *gocv.Window
	closed bool
}

func NewWindow(title string) *Window {
	return &Window{window: gocv.NewWindow(title)}
}

// Show displays frame and waits up to delayMs for a key press.
// It returns the key code, or -1 when no key was pressed.
func (w *Window) Show(frame gocv.Mat, delayMs int) int {
	w.window.IMShow(frame)
	return w.window.WaitKey(delayMs)
}

// Close destroys the window. Calling it again is a no-op.
func (w *Window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.window.Close()
}
