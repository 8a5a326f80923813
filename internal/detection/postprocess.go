package detection

import (
	"fmt"

	"animalcount/internal/model"

	"github.com/samber/lo"
)

// FilterByClass keeps the detections of one class, preserving their order.
func FilterByClass(in []model.Detection, class model.ClassIndex) []model.Detection {
	return lo.Filter(in, func(d model.Detection, _ int) bool {
		return d.ClassID == int(class)
	})
}

// Labels formats "{class name} {confidence}" for each detection.
func Labels(in []model.Detection, names ClassNames) []string {
	return lo.Map(in, func(d model.Detection, _ int) string {
		return fmt.Sprintf("%s %.2f", names.Name(d.ClassID), d.Confidence)
	})
}
