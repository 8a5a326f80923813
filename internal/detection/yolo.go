package detection

import (
	"image"

	"animalcount/internal/model"

	"github.com/pkg/errors"
)

// DecodeYOLOv8 turns a raw YOLOv8 output tensor into pixel-space detections.
//
// dims is the tensor shape, either [1, 4+nc, N] (the usual export) or the
// transposed [1, N, 4+nc]; the longer axis is taken as the candidate axis.
// Each candidate holds cx, cy, w, h in network input pixels followed by one
// score per class; the best class wins. Boxes are scaled from the
// inputSize x inputSize network input back to frame and clipped to it.
// Candidates scoring below minConfidence are dropped. No suppression happens
// here.
func DecodeYOLOv8(data []float32, dims []int, inputSize int, frame image.Point, minConfidence float64) ([]model.Detection, error) {
	if len(dims) != 3 || dims[0] != 1 {
		return nil, errors.Errorf("unexpected output shape %v", dims)
	}
	if inputSize <= 0 {
		return nil, errors.Errorf("invalid input size %d", inputSize)
	}

	channels, candidates := dims[1], dims[2]
	transposed := false
	if channels > candidates {
		channels, candidates = candidates, channels
		transposed = true
	}
	if channels < 5 {
		return nil, errors.Errorf("output shape %v has no class scores", dims)
	}
	if len(data) < channels*candidates {
		return nil, errors.Errorf("output holds %d values, shape %v needs %d", len(data), dims, channels*candidates)
	}

	at := func(c, i int) float64 {
		if transposed {
			return float64(data[i*channels+c])
		}
		return float64(data[c*candidates+i])
	}

	xFactor := float64(frame.X) / float64(inputSize)
	yFactor := float64(frame.Y) / float64(inputSize)
	bounds := image.Rect(0, 0, frame.X, frame.Y)

	var out []model.Detection
	for i := 0; i < candidates; i++ {
		classID, best := -1, 0.0
		for c := 4; c < channels; c++ {
			if s := at(c, i); classID < 0 || s > best {
				classID, best = c-4, s
			}
		}
		if best < minConfidence {
			continue
		}

		cx, cy, w, h := at(0, i), at(1, i), at(2, i), at(3, i)
		box := image.Rect(
			int((cx-w/2)*xFactor),
			int((cy-h/2)*yFactor),
			int((cx+w/2)*xFactor),
			int((cy+h/2)*yFactor),
		).Intersect(bounds)
		if box.Empty() {
			continue
		}

		out = append(out, model.Detection{Box: box, Confidence: best, ClassID: classID})
	}
	return out, nil
}
