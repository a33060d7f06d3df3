package detection

import (
	"context"
	"fmt"
	"time"

	"zari/pkg/logger"

	"github.com/gabriel-vasile/mimetype"
)

var acceptedImages = []string{"image/jpeg", "image/png", "image/webp", "image/bmp", "image/gif"}

type Service interface {
	// Analyze runs the image detector on an uploaded frame
	Analyze(ctx context.Context, source string, image []byte) (*Result, error)
	// Sample runs the image detector against a camera feed. There is no
	// stream to read, so the detector sees an empty frame.
	Sample(ctx context.Context, source string) (*Result, error)
	// MapBoxes projects external detector boxes onto the seat regions
	MapBoxes(ctx context.Context, source string, boxes []Box) (*Result, error)
}

type service struct {
	detector SeatDetector
	boxes    SeatDetector
	maxSize  int64
	log      *logger.Logger
	now      func() time.Time
}

func NewService(detector, boxes SeatDetector, maxSize int64, log *logger.Logger) Service {
	return &service{
		detector: detector,
		boxes:    boxes,
		maxSize:  maxSize,
		log:      log.WithComponent("detection"),
		now:      time.Now,
	}
}

// checkImage sniffs the content rather than trusting the upload header
func (s *service) checkImage(image []byte) error {
	if len(image) == 0 {
		return ErrNoImage
	}
	if s.maxSize > 0 && int64(len(image)) > s.maxSize {
		return ErrImageTooLarge
	}
	mime := mimetype.Detect(image)
	for _, accepted := range acceptedImages {
		if mime.Is(accepted) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedImage, mime.String())
}

func (s *service) Analyze(ctx context.Context, source string, image []byte) (*Result, error) {
	if err := s.checkImage(image); err != nil {
		return nil, err
	}
	return s.run(ctx, s.detector, Frame{Source: source, Image: image})
}

func (s *service) Sample(ctx context.Context, source string) (*Result, error) {
	return s.run(ctx, s.detector, Frame{Source: source})
}

func (s *service) MapBoxes(ctx context.Context, source string, boxes []Box) (*Result, error) {
	return s.run(ctx, s.boxes, Frame{Source: source, Boxes: boxes})
}

func (s *service) run(ctx context.Context, detector SeatDetector, frame Frame) (*Result, error) {
	start := time.Now()
	states, err := detector.Detect(ctx, frame)
	if err != nil {
		return nil, fmt.Errorf("detect seats: %w", err)
	}
	result := &Result{Timestamp: s.now().UTC(), Seats: states}
	available, _ := result.Counts()
	s.log.LogDetection(ctx, frame.Source, len(states), available, time.Since(start))
	return result, nil
}
