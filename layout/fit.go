package layout

import (
	"math"

	"github.com/lixenwraith/botview/parameter"
)

// ImageFit is the computed geometry of a robot image inside its panel, in cells
type ImageFit struct {
	MainHeight    int // Height of the image area below the top bar
	Height        int // Scaled robot image height
	Width         int // Scaled robot image width
	PaddingTop    int
	PaddingBottom int
	FrameWidth    int // Width of the image area
	MarginLeft    int // Negative when a wide image is clipped and centred
	Clipped       bool
}

// FitImage scales a robot image so the tallest robot fills its panel and
// smaller robots keep their relative size.
//
// slot is the robot slot within its faction; container is the faction size;
// frameWidth is the current width of the image area; natural is the image
// size in source pixels.
func FitImage(slot Slot, containerW, containerH, frameWidth, naturalW, naturalH int) ImageFit {
	var fit ImageFit

	mainH := slot.Height*float64(containerH) - parameter.TopBarHeight
	if mainH < 0 {
		mainH = 0
	}
	fit.MainHeight = int(math.Round(mainH))

	if naturalH <= 0 {
		fit.FrameWidth = frameWidth
		fit.PaddingTop = fit.MainHeight
		return fit
	}

	scaledH := mainH * float64(naturalH) / parameter.ReferenceImageHeight
	padding := (mainH - scaledH) / 2
	fit.Height = int(math.Round(scaledH))
	fit.PaddingTop = int(math.Floor(padding))
	fit.PaddingBottom = fit.MainHeight - fit.Height - fit.PaddingTop
	if fit.PaddingBottom < 0 {
		fit.PaddingBottom = 0
	}

	scaledW := scaledH * float64(naturalW) / float64(naturalH) * parameter.CellAspect
	fit.Width = int(math.Round(scaledW))
	idealW := slot.Width * float64(containerW)

	switch {
	case scaledW > float64(frameWidth) && scaledW < idealW:
		// Room to grow the frame around the image
		fit.FrameWidth = fit.Width
	case scaledW > idealW:
		// Too wide; keep the height for scale and clip around the centre
		fit.FrameWidth = int(math.Round(idealW))
		fit.MarginLeft = -int(math.Round((scaledW - idealW) / 2))
		fit.Clipped = true
	default:
		fit.FrameWidth = frameWidth
	}
	return fit
}
