package render

import (
	"image"
	"image/color"
	"strconv"

	"animalcount/internal/model"
	"animalcount/internal/zone"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// palette colors boxes by class id.
var palette = []color.RGBA{
	{R: 163, G: 81, B: 251, A: 0},
	{R: 255, G: 64, B: 64, A: 0},
	{R: 255, G: 161, B: 160, A: 0},
	{R: 255, G: 118, B: 51, A: 0},
	{R: 255, G: 182, B: 51, A: 0},
	{R: 209, G: 212, B: 53, A: 0},
	{R: 76, G: 251, B: 18, A: 0},
	{R: 148, G: 207, B: 26, A: 0},
}

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 0}
	black = color.RGBA{A: 0}
)

func classColor(classID int) color.RGBA {
	if classID < 0 {
		classID = -classID
	}
	return palette[classID%len(palette)]
}

// BoxAnnotator draws a rectangle and a filled label per detection.
type BoxAnnotator struct {
	Thickness int
	TextScale float64
	Padding   int
}

func NewBoxAnnotator() *BoxAnnotator {
	return &BoxAnnotator{Thickness: 2, TextScale: 0.5, Padding: 5}
}

// Annotate draws dets onto frame in order. labels must match dets one to one.
func (a *BoxAnnotator) Annotate(frame *gocv.Mat, dets []model.Detection, labels []string) error {
	if len(labels) != len(dets) {
		return errors.Errorf("got %d labels for %d detections", len(labels), len(dets))
	}

	for i, d := range dets {
		c := classColor(d.ClassID)
		if err := gocv.Rectangle(frame, d.Box, c, a.Thickness); err != nil {
			return errors.Wrap(err, "draw box")
		}
		if err := a.drawLabel(frame, d.Box.Min, labels[i], c); err != nil {
			return err
		}
	}
	return nil
}

// drawLabel puts text on a filled background just above the box corner,
// or inside the box when there is no room above.
func (a *BoxAnnotator) drawLabel(frame *gocv.Mat, corner image.Point, text string, background color.RGBA) error {
	size := gocv.GetTextSize(text, gocv.FontHersheySimplex, a.TextScale, 1)

	bg := image.Rect(corner.X, corner.Y-size.Y-2*a.Padding, corner.X+size.X+2*a.Padding, corner.Y)
	if bg.Min.Y < 0 {
		bg = bg.Add(image.Pt(0, -bg.Min.Y))
	}

	if err := gocv.Rectangle(frame, bg, background, -1); err != nil {
		return errors.Wrap(err, "draw label background")
	}
	origin := image.Pt(bg.Min.X+a.Padding, bg.Max.Y-a.Padding)
	if err := gocv.PutText(frame, text, origin, gocv.FontHersheySimplex, a.TextScale, black, 1); err != nil {
		return errors.Wrap(err, "draw label")
	}
	return nil
}

// ZoneAnnotator outlines a zone and prints its current count at the region
// centre. It only reads the zone.
type ZoneAnnotator struct {
	Zone      *zone.Zone
	Color     color.RGBA
	Thickness int
	TextScale float64
	TextWidth int
}

func NewZoneAnnotator(z *zone.Zone) *ZoneAnnotator {
	return &ZoneAnnotator{
		Zone:      z,
		Color:     white,
		Thickness: 1,
		TextScale: 2,
		TextWidth: 2,
	}
}

func (a *ZoneAnnotator) Annotate(frame *gocv.Mat) error {
	region := a.Zone.Region()

	pts := gocv.NewPointsVectorFromPoints([][]image.Point{region.Points()})
	defer pts.Close()
	gocv.Polylines(frame, pts, true, a.Color, a.Thickness)

	text := strconv.Itoa(a.Zone.Count())
	size := gocv.GetTextSize(text, gocv.FontHersheySimplex, a.TextScale, a.TextWidth)
	center := region.Center()
	origin := image.Pt(center.X-size.X/2, center.Y+size.Y/2)
	if err := gocv.PutText(frame, text, origin, gocv.FontHersheySimplex, a.TextScale, a.Color, a.TextWidth); err != nil {
		return errors.Wrap(err, "draw zone count")
	}
	return nil
}
