package ai

import (
	"bytes"
	"image"
	"path/filepath"
	"testing"

	"animalcount/internal/config"
	"animalcount/internal/logger"
	"animalcount/internal/model"

	"github.com/pkg/errors"
)

func TestNewDetectorService_MissingModel(t *testing.T) {
	cfg := &config.Config{
		ModelPath:      filepath.Join(t.TempDir(), "missing.onnx"),
		ModelInputSize: 640,
	}
	var buf bytes.Buffer

	_, err := NewDetectorService(cfg, logger.NewWriterLogger(&buf, logger.LevelDebug))
	if !errors.Is(err, ErrModelUnavailable) {
		t.Errorf("Expected ErrModelUnavailable, got %v", err)
	}
}

func TestNewDetectorService_InvalidInputSize(t *testing.T) {
	cfg := &config.Config{ModelPath: "best.onnx", ModelInputSize: 0}
	var buf bytes.Buffer

	if _, err := NewDetectorService(cfg, logger.NewWriterLogger(&buf, logger.LevelDebug)); err == nil {
		t.Error("Expected error for zero input size")
	}
}

func TestSuppress_ClassAgnostic(t *testing.T) {
	candidates := []model.Detection{
		{Box: image.Rect(10, 10, 110, 110), Confidence: 0.9, ClassID: 1},
		// same animal, scored as another class
		{Box: image.Rect(12, 12, 112, 112), Confidence: 0.6, ClassID: 2},
		{Box: image.Rect(300, 300, 360, 360), Confidence: 0.8, ClassID: 1},
	}

	got := suppress(candidates, 0.25, 0.7)
	if len(got) != 2 {
		t.Fatalf("Expected 2 detections after NMS, got %d: %+v", len(got), got)
	}
	for _, d := range got {
		if d.ClassID == 2 {
			t.Errorf("Overlapping lower-score detection of another class should be suppressed: %+v", d)
		}
	}
}

func TestSuppress_Empty(t *testing.T) {
	if got := suppress(nil, 0.25, 0.7); got != nil {
		t.Errorf("Expected nil for no candidates, got %v", got)
	}
}
