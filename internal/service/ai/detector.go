package ai

import (
	"image"
	"os"
	"time"

	"animalcount/internal/config"
	"animalcount/internal/detection"
	"animalcount/internal/logger"
	"animalcount/internal/model"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// ErrModelUnavailable is returned when the ONNX model cannot be loaded.
var ErrModelUnavailable = errors.New("detection model unavailable")

// DetectorService runs a YOLOv8 ONNX model through the OpenCV DNN module.
type DetectorService struct {
	net                 gocv.Net
	modelPath           string
	inputSize           int
	confidenceThreshold float64
	nmsThreshold        float64
	logger              *logger.Logger
	lastInference       time.Duration
	closed              bool
}

// NewDetectorService loads the model configured in MODEL_PATH.
func NewDetectorService(config *config.Config, logger *logger.Logger) (*DetectorService, error) {
	service := &DetectorService{
		modelPath:           config.ModelPath,
		inputSize:           config.ModelInputSize,
		confidenceThreshold: config.ConfidenceThreshold,
		nmsThreshold:        config.NMSThreshold,
		logger:              logger,
	}

	if service.inputSize <= 0 {
		return nil, errors.Errorf("invalid model input size %d", service.inputSize)
	}

	if err := service.initializeNet(); err != nil {
		return nil, err
	}
	return service, nil
}

// initializeNet loads the DNN network and sets backend/target preferences.
func (s *DetectorService) initializeNet() error {
	if _, err := os.Stat(s.modelPath); err != nil {
		return errors.Wrapf(ErrModelUnavailable, "model file %s: %v", s.modelPath, err)
	}

	net := gocv.ReadNetFromONNX(s.modelPath)
	if net.Empty() {
		return errors.Wrapf(ErrModelUnavailable, "failed to load network from %s", s.modelPath)
	}

	errBackend := net.SetPreferableBackend(gocv.NetBackendDefault)
	errTarget := net.SetPreferableTarget(gocv.NetTargetCPU)
	if errBackend != nil || errTarget != nil {
		net.Close()
		return errors.Wrap(ErrModelUnavailable, "failed to set preferable backend or target")
	}

	s.net = net
	s.logger.Info("Detection network loaded from %s (input %dx%d)", s.modelPath, s.inputSize, s.inputSize)
	return nil
}

// DetectObjects runs one inference pass and returns the detections left after
// class-agnostic non-max suppression, best score first.
func (s *DetectorService) DetectObjects(frame gocv.Mat) ([]model.Detection, error) {
	if s.closed {
		return nil, errors.New("detection network closed")
	}
	if frame.Empty() {
		return nil, errors.New("frame is empty")
	}

	start := time.Now()

	blob := gocv.BlobFromImage(frame, 1.0/255.0, image.Pt(s.inputSize, s.inputSize), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	s.net.SetInput(blob, "")
	output := s.net.Forward("")
	defer output.Close()

	data, err := output.DataPtrFloat32()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read network output")
	}

	candidates, err := detection.DecodeYOLOv8(data, output.Size(), s.inputSize, image.Pt(frame.Cols(), frame.Rows()), s.confidenceThreshold)
	if err != nil {
		return nil, err
	}

	results := suppress(candidates, s.confidenceThreshold, s.nmsThreshold)
	s.lastInference = time.Since(start)
	s.logger.Debug("Inference took %v: %d candidates, %d after NMS", s.lastInference, len(candidates), len(results))
	return results, nil
}

// LastInference reports the duration of the most recent DetectObjects call.
func (s *DetectorService) LastInference() time.Duration {
	return s.lastInference
}

// suppress runs NMS over all candidates at once, so overlapping boxes of
// different classes also suppress each other.
func suppress(candidates []model.Detection, scoreThreshold, nmsThreshold float64) []model.Detection {
	if len(candidates) == 0 {
		return nil
	}

	boxes := make([]image.Rectangle, len(candidates))
	scores := make([]float32, len(candidates))
	for i, c := range candidates {
		boxes[i] = c.Box
		scores[i] = float32(c.Confidence)
	}

	indices := gocv.NMSBoxes(boxes, scores, float32(scoreThreshold), float32(nmsThreshold))

	results := make([]model.Detection, 0, len(indices))
	for _, idx := range indices {
		results = append(results, candidates[idx])
	}
	return results
}

// Close releases the network.
func (s *DetectorService) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.net.Close()
}
