package detection

import (
	"image"
	"testing"

	"animalcount/internal/model"

	"github.com/google/go-cmp/cmp"
)

// yoloOutput lays out candidates channel-major as [1, 4+nc, n].
func yoloOutput(nc int, candidates [][]float32) ([]float32, []int) {
	channels, n := 4+nc, len(candidates)
	data := make([]float32, channels*n)
	for i, cand := range candidates {
		for c, v := range cand {
			data[c*n+i] = v
		}
	}
	return data, []int{1, channels, n}
}

func TestDecodeYOLOv8_ScalesToFrame(t *testing.T) {
	candidates := make([][]float32, 8)
	for i := range candidates {
		candidates[i] = make([]float32, 6)
	}
	// cx, cy, w, h, score class0, score class1
	candidates[0] = []float32{320, 320, 64, 64, 0.1, 0.9}
	candidates[3] = []float32{100, 200, 40, 20, 0.6, 0.2}

	data, dims := yoloOutput(2, candidates)
	got, err := DecodeYOLOv8(data, dims, 640, image.Pt(1280, 720), 0.25)
	if err != nil {
		t.Fatalf("DecodeYOLOv8 failed: %v", err)
	}

	expected := []model.Detection{
		{Box: image.Rect(576, 324, 704, 396), Confidence: float64(float32(0.9)), ClassID: 1},
		{Box: image.Rect(160, 213, 240, 236), Confidence: float64(float32(0.6)), ClassID: 0},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("DecodeYOLOv8 mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeYOLOv8_Transposed(t *testing.T) {
	// [1, n, 4+nc] with n=8, nc=2
	data := make([]float32, 8*6)
	copy(data[0:6], []float32{64, 64, 32, 32, 0, 0.8})
	copy(data[6:12], []float32{10, 10, 4, 4, 0.1, 0})

	got, err := DecodeYOLOv8(data, []int{1, 8, 6}, 128, image.Pt(128, 128), 0.5)
	if err != nil {
		t.Fatalf("DecodeYOLOv8 failed: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("Expected 1 detection, got %d", len(got))
	}
	if got[0].ClassID != 1 || got[0].Box != image.Rect(48, 48, 80, 80) {
		t.Errorf("Unexpected detection: %+v", got[0])
	}
}

func TestDecodeYOLOv8_ClipsToFrame(t *testing.T) {
	candidates := make([][]float32, 6)
	for i := range candidates {
		candidates[i] = make([]float32, 5)
	}
	candidates[0] = []float32{0, 0, 100, 100, 0.7}

	data, dims := yoloOutput(1, candidates)
	got, err := DecodeYOLOv8(data, dims, 640, image.Pt(640, 640), 0.25)
	if err != nil {
		t.Fatalf("DecodeYOLOv8 failed: %v", err)
	}

	if len(got) != 1 || got[0].Box != image.Rect(0, 0, 50, 50) {
		t.Errorf("Expected box clipped to (0,0)-(50,50), got %+v", got)
	}
}

func TestDecodeYOLOv8_BadShape(t *testing.T) {
	tests := []struct {
		name string
		data []float32
		dims []int
	}{
		{"two dims", make([]float32, 10), []int{2, 5}},
		{"batch of two", make([]float32, 60), []int{2, 5, 6}},
		{"no classes", make([]float32, 40), []int{1, 4, 10}},
		{"short data", make([]float32, 10), []int{1, 6, 8}},
	}

	for _, tt := range tests {
		if _, err := DecodeYOLOv8(tt.data, tt.dims, 640, image.Pt(640, 480), 0.25); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}
