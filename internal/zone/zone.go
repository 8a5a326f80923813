package zone

import (
	"image"
	"strings"

	"animalcount/internal/model"

	"github.com/pkg/errors"
)

// Anchor selects which point of a bounding box is tested against the region.
type Anchor int

const (
	AnchorCenter Anchor = iota
	AnchorBottomCenter
)

// ParseAnchor accepts "center" and "bottom_center".
func ParseAnchor(s string) (Anchor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "center":
		return AnchorCenter, nil
	case "bottom_center":
		return AnchorBottomCenter, nil
	default:
		return AnchorCenter, errors.Errorf("unknown zone anchor %q", s)
	}
}

func (a Anchor) point(d model.Detection) image.Point {
	if a == AnchorBottomCenter {
		return d.BottomCenter()
	}
	return d.Center()
}

// Zone counts how many of a frame's detections fall inside its region.
// The count is a snapshot of the last Trigger call, never a running total.
type Zone struct {
	region Region
	anchor Anchor
	count  int
}

func New(region Region, anchor Anchor) *Zone {
	return &Zone{region: region, anchor: anchor}
}

func (z *Zone) Region() Region {
	return z.region
}

// Count returns the result of the last Trigger.
func (z *Zone) Count() int {
	return z.count
}

// TriggerMask replaces the count with the number of detections whose anchor
// lies in the region and reports membership per detection.
func (z *Zone) TriggerMask(dets []model.Detection) []bool {
	mask := make([]bool, len(dets))
	count := 0
	for i, d := range dets {
		if z.region.Contains(z.anchor.point(d)) {
			mask[i] = true
			count++
		}
	}
	z.count = count
	return mask
}

// Trigger is TriggerMask returning only the new count.
func (z *Zone) Trigger(dets []model.Detection) int {
	z.TriggerMask(dets)
	return z.count
}
