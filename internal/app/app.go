package app

import (
	"context"
	"time"

	"animalcount/internal/config"
	"animalcount/internal/detection"
	"animalcount/internal/logger"
	"animalcount/internal/metrics"
	"animalcount/internal/model"
	"animalcount/internal/service/ai"
	"animalcount/internal/service/capture"
	"animalcount/internal/service/render"
	"animalcount/internal/species"
	"animalcount/internal/zone"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gocv.io/x/gocv"
)

// DisplayWait is how long each frame stays on screen while polling for a key.
const DisplayWait = 30 * time.Millisecond

// State is a stage of the detection run.
type State int

const (
	StateInit State = iota
	StateRunning
	StateExitRequested
	StateStreamEnded
	StateCancelled
	StateReleased
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateRunning:
		return "RUNNING"
	case StateExitRequested:
		return "EXIT_REQUESTED"
	case StateStreamEnded:
		return "STREAM_ENDED"
	case StateCancelled:
		return "CANCELLED"
	case StateReleased:
		return "RELEASED"
	default:
		return "UNKNOWN"
	}
}

// FrameSource yields frames until the stream ends.
type FrameSource interface {
	Read(ctx context.Context, frame *gocv.Mat) error
	Close() error
}

// Detector finds objects in a frame.
type Detector interface {
	DetectObjects(frame gocv.Mat) ([]model.Detection, error)
	LastInference() time.Duration
	Close() error
}

// Display shows a frame and reports the key pressed while it was shown.
type Display interface {
	Show(frame gocv.Mat, delayMs int) int
	Close() error
}

// App owns the capture, detector and window for one run.
type App struct {
	logger  *logger.Logger
	metrics *metrics.Metrics
	animal  species.Animal
	names   detection.ClassNames

	source   FrameSource
	detector Detector
	display  Display

	zone          *zone.Zone
	boxes         *render.BoxAnnotator
	zoneAnnotator *render.ZoneAnnotator

	state    State
	released bool
}

// NewApp acquires every resource the run needs. If any step fails, the
// resources acquired so far are released before the error is returned.
func NewApp(cfg *config.Config, logger *logger.Logger, run model.RunConfig, animal species.Animal) (*App, error) {
	names := detection.DefaultClassNames
	if cfg.LabelsPath != "" {
		loaded, err := detection.LoadClassNames(cfg.LabelsPath)
		if err != nil {
			return nil, errors.Wrap(err, "load class names")
		}
		names = loaded
	}

	anchor, err := zone.ParseAnchor(cfg.ZoneAnchor)
	if err != nil {
		return nil, err
	}

	m := metrics.New()

	source, err := capture.Open(run, cfg.CaptureReadRetries, logger)
	if err != nil {
		return nil, err
	}
	source.OnFailure = m.ReadFailures.Inc

	detector, err := ai.NewDetectorService(cfg, logger)
	if err != nil {
		return nil, multierr.Append(err, source.Close())
	}

	display := render.NewWindow(render.WindowTitle)

	a := newApp(logger, m, animal, names, source, detector, display,
		zone.New(zone.NewRegion(zone.FullFrame, run.Resolution), anchor))
	logger.Info("Detecting %s (class %d) at %s", animal.Name, animal.Class, run.Resolution)
	return a, nil
}

func newApp(logger *logger.Logger, m *metrics.Metrics, animal species.Animal, names detection.ClassNames,
	source FrameSource, detector Detector, display Display, z *zone.Zone) *App {
	return &App{
		logger:        logger,
		metrics:       m,
		animal:        animal,
		names:         names,
		source:        source,
		detector:      detector,
		display:       display,
		zone:          z,
		boxes:         render.NewBoxAnnotator(),
		zoneAnnotator: render.NewZoneAnnotator(z),
		state:         StateInit,
	}
}

// State reports the current stage.
func (a *App) State() State {
	return a.state
}

// Metrics exposes the run statistics.
func (a *App) Metrics() *metrics.Metrics {
	return a.metrics
}

// Run processes frames until Escape is pressed, the stream ends or ctx is
// cancelled, then releases all resources. It returns the state that stopped
// the loop; on a per-frame failure that is StateRunning with the error.
func (a *App) Run(ctx context.Context) (stopped State, err error) {
	a.state = StateRunning
	defer func() {
		stopped = a.state
		err = multierr.Append(err, a.release())
	}()

	frame := gocv.NewMat()
	defer frame.Close()

	wait := int(DisplayWait / time.Millisecond)
	for {
		if ctx.Err() != nil {
			a.state = StateCancelled
			a.logger.Info("Interrupted, stopping")
			return
		}

		if readErr := a.source.Read(ctx, &frame); readErr != nil {
			switch {
			case errors.Is(readErr, capture.ErrStreamEnded):
				a.state = StateStreamEnded
				a.logger.Info("Stream ended: %v", readErr)
				return
			case errors.Is(readErr, context.Canceled), errors.Is(readErr, context.DeadlineExceeded):
				a.state = StateCancelled
				a.logger.Info("Interrupted, stopping")
				return
			default:
				err = errors.Wrap(readErr, "read frame")
				return
			}
		}
		a.metrics.FramesRead.Inc()

		if err = a.processFrame(&frame); err != nil {
			return
		}

		if key := a.display.Show(frame, wait); key&0xFF == render.KeyEscape {
			a.state = StateExitRequested
			a.logger.Info("Escape pressed, stopping")
			return
		}
	}
}

// processFrame runs detection and draws boxes and the zone onto frame.
func (a *App) processFrame(frame *gocv.Mat) error {
	dets, err := a.detector.DetectObjects(*frame)
	if err != nil {
		return errors.Wrap(err, "detect")
	}
	a.metrics.ObserveInference(a.detector.LastInference())
	a.metrics.DetectionsTotal.Add(float64(len(dets)))

	kept := detection.FilterByClass(dets, a.animal.Class)
	a.metrics.DetectionsKept.Add(float64(len(kept)))

	if err := a.boxes.Annotate(frame, kept, detection.Labels(kept, a.names)); err != nil {
		return errors.Wrap(err, "annotate detections")
	}

	count := a.zone.Trigger(kept)
	a.metrics.ZoneCount.Set(float64(count))

	if err := a.zoneAnnotator.Annotate(frame); err != nil {
		return errors.Wrap(err, "annotate zone")
	}

	a.metrics.FramesProcessed.Inc()
	a.logger.Debug("%d detections, %d %s, %d in zone", len(dets), len(kept), a.animal.Name, count)
	return nil
}

// release closes the capture, window and network exactly once.
func (a *App) release() error {
	if a.released {
		return nil
	}
	a.released = true

	err := multierr.Combine(
		a.source.Close(),
		a.display.Close(),
		a.detector.Close(),
	)
	a.state = StateReleased

	if summary, sumErr := a.metrics.Summary(); sumErr != nil {
		a.logger.Warning("Failed to gather run statistics: %v", sumErr)
	} else {
		a.logger.Info("Run statistics: %s", summary)
	}
	return err
}

// Close releases resources of an App that was never run.
func (a *App) Close() error {
	return a.release()
}
