package composition

import (
	"github.com/kaelstudio/motif"
	"github.com/kaelstudio/motif/timeline"
)

// letterboxRect computes the destination rectangle (in canvas pixels) that
// places a srcW x srcH frame into a canvasW x canvasH target under mode
// (spec.md 4.4 step 5 "compute vertex quad from cropMode").
func letterboxRect(mode timeline.CropMode, srcW, srcH, canvasW, canvasH float64) motif.Rect {
	if srcW <= 0 || srcH <= 0 || canvasW <= 0 || canvasH <= 0 {
		return motif.Rect{X: 0, Y: 0, Width: canvasW, Height: canvasH}
	}
	srcAspect := srcW / srcH
	dstAspect := canvasW / canvasH

	var w, h float64
	switch mode {
	case timeline.CropFill:
		return motif.Rect{X: 0, Y: 0, Width: canvasW, Height: canvasH}
	case timeline.CropCover:
		if srcAspect > dstAspect {
			h = canvasH
			w = h * srcAspect
		} else {
			w = canvasW
			h = w / srcAspect
		}
	default: // CropContain
		if srcAspect > dstAspect {
			w = canvasW
			h = w / srcAspect
		} else {
			h = canvasH
			w = h * srcAspect
		}
	}
	return motif.Rect{X: (canvasW - w) / 2, Y: (canvasH - h) / 2, Width: w, Height: h}
}

// commonContainRect is the transition variant of letterboxRect: it contains
// both frames inside one shared rectangle sized off the smaller of the two
// source aspect ratios, so neither frame is cropped to fit the other
// (spec.md 4.4 step 3 "using the min of the two source aspect ratios").
func commonContainRect(aAspect, bAspect, canvasW, canvasH float64) motif.Rect {
	aspect := aAspect
	if bAspect < aspect {
		aspect = bAspect
	}
	dstAspect := canvasW / canvasH
	var w, h float64
	if aspect > dstAspect {
		w = canvasW
		h = w / aspect
	} else {
		h = canvasH
		w = h * aspect
	}
	return motif.Rect{X: (canvasW - w) / 2, Y: (canvasH - h) / 2, Width: w, Height: h}
}
