package capture

import (
	"context"
	"time"

	"animalcount/internal/logger"
	"animalcount/internal/model"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

var (
	// ErrUnavailable is returned when the camera or video file cannot be opened.
	ErrUnavailable = errors.New("capture source unavailable")
	// ErrStreamEnded is returned by Read once no more frames can be obtained.
	ErrStreamEnded = errors.New("capture stream ended")
)

// DefaultRetryDelay is the pause between failed camera reads.
const DefaultRetryDelay = 50 * time.Millisecond

// reader is the part of gocv.VideoCapture the Source needs.
type reader interface {
	Read(m *gocv.Mat) bool
	Close() error
}

// Source reads frames from a video file or the default camera.
type Source struct {
	reader     reader
	camera     bool
	retries    int
	retryDelay time.Duration
	logger     *logger.Logger
	closed     bool

	// OnFailure, when set, is called for every failed or empty read.
	OnFailure func()
}

// Open opens the file named by cfg.VideoPath, or camera 0 when it is empty.
// retries is the number of consecutive failed camera reads tolerated before
// the stream is considered ended; file sources end on the first failure.
func Open(cfg model.RunConfig, retries int, logger *logger.Logger) (*Source, error) {
	var (
		capture *gocv.VideoCapture
		err     error
	)

	if cfg.UseCamera() {
		capture, err = gocv.VideoCaptureDevice(0)
	} else {
		capture, err = gocv.VideoCaptureFile(cfg.VideoPath)
	}
	if err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "%s: %v", describe(cfg), err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, errors.Wrapf(ErrUnavailable, "%s: not opened", describe(cfg))
	}

	if cfg.UseCamera() {
		// advisory, the driver may pick another mode
		capture.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Resolution.Width))
		capture.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Resolution.Height))
		logger.Info("Camera 0 opened, requested %s, got %dx%d", cfg.Resolution,
			int(capture.Get(gocv.VideoCaptureFrameWidth)), int(capture.Get(gocv.VideoCaptureFrameHeight)))
	} else {
		logger.Info("Video file %s opened", cfg.VideoPath)
	}

	return newSource(capture, cfg.UseCamera(), retries, logger), nil
}

func newSource(r reader, camera bool, retries int, logger *logger.Logger) *Source {
	if retries < 0 {
		retries = 0
	}
	return &Source{
		reader:     r,
		camera:     camera,
		retries:    retries,
		retryDelay: DefaultRetryDelay,
		logger:     logger,
	}
}

func describe(cfg model.RunConfig) string {
	if cfg.UseCamera() {
		return "camera 0"
	}
	return "video file " + cfg.VideoPath
}

// Read fills frame with the next frame. It returns ErrStreamEnded when the
// file is exhausted or the camera keeps failing, and ctx.Err() if ctx is done
// while waiting to retry.
func (s *Source) Read(ctx context.Context, frame *gocv.Mat) error {
	if s.closed {
		return errors.Wrap(ErrStreamEnded, "source closed")
	}

	failures := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.reader.Read(frame) && !frame.Empty() {
			return nil
		}

		failures++
		if s.OnFailure != nil {
			s.OnFailure()
		}
		if !s.camera {
			return errors.Wrap(ErrStreamEnded, "end of video file")
		}
		if failures > s.retries {
			return errors.Wrapf(ErrStreamEnded, "camera failed %d consecutive reads", failures)
		}

		s.logger.Warning("Camera read failed (%d/%d), retrying", failures, s.retries)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.retryDelay):
		}
	}
}

// Close releases the capture handle. Calling it again is a no-op.
func (s *Source) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.reader.Close()
}
