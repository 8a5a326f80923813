package render

import (
	"image"
	"testing"

	"animalcount/internal/model"
	"animalcount/internal/zone"

	"gocv.io/x/gocv"
)

func blankFrame(t *testing.T) gocv.Mat {
	t.Helper()
	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 120, 160, gocv.MatTypeCV8UC3)
	t.Cleanup(func() { frame.Close() })
	return frame
}

func nonZero(t *testing.T, frame gocv.Mat) int {
	t.Helper()
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)
	return gocv.CountNonZero(gray)
}

func TestBoxAnnotator_DrawsDetections(t *testing.T) {
	frame := blankFrame(t)
	dets := []model.Detection{{Box: image.Rect(10, 40, 50, 80), Confidence: 0.91, ClassID: 2}}

	if err := NewBoxAnnotator().Annotate(&frame, dets, []string{"goat 0.91"}); err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	if nonZero(t, frame) == 0 {
		t.Error("Expected pixels to be drawn")
	}
}

func TestBoxAnnotator_LabelMismatch(t *testing.T) {
	frame := blankFrame(t)
	dets := []model.Detection{{Box: image.Rect(10, 10, 50, 50), Confidence: 0.5}}

	if err := NewBoxAnnotator().Annotate(&frame, dets, nil); err == nil {
		t.Error("Expected error for missing labels")
	}
	if nonZero(t, frame) != 0 {
		t.Error("Frame should be untouched on label mismatch")
	}
}

func TestZoneAnnotator_LeavesCount(t *testing.T) {
	frame := blankFrame(t)
	z := zone.New(zone.NewRegion(zone.FullFrame, model.Resolution{Width: 160, Height: 120}), zone.AnchorCenter)
	z.Trigger([]model.Detection{{Box: image.Rect(10, 10, 30, 30)}})

	if err := NewZoneAnnotator(z).Annotate(&frame); err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	if z.Count() != 1 {
		t.Errorf("Annotate changed count to %d", z.Count())
	}
	if nonZero(t, frame) == 0 {
		t.Error("Expected zone outline and count to be drawn")
	}
}

func TestClassColor_Wraps(t *testing.T) {
	if classColor(len(palette)) != classColor(0) {
		t.Error("Expected palette to wrap around")
	}
	if classColor(-1) != classColor(1) {
		t.Error("Expected negative ids to map into the palette")
	}
}
