package timeline

// CropMode selects how a clip's source rectangle maps onto the canvas when
// no animation track drives its transform (spec.md 4.4 step 5).
type CropMode uint8

const (
	// CropContain preserves aspect ratio, letterboxing as needed. Default.
	CropContain CropMode = iota
	CropCover
	CropFill
)

// StaticTransform is a clip's transform when it carries no animation
// tracks: a fixed position/scale/rotation/opacity, applied every frame.
type StaticTransform struct {
	X, Y             float64
	ScaleX, ScaleY   float64
	RotationDegrees  float64
	Opacity          float64
	AnchorX, AnchorY float64
	Crop             CropMode
}

// DefaultStaticTransform is the rest pose: identity scale, full opacity,
// contain cropping.
func DefaultStaticTransform() StaticTransform {
	return StaticTransform{ScaleX: 1, ScaleY: 1, Opacity: 1, Crop: CropContain}
}

// ClipFilter holds the brightness/contrast/saturation/hue/blur adjustment
// applied by the BASIC and ANIMATED programs (spec.md 4.4 "Filter
// uniforms"); the TRANSITION program draws both clips without it. Blur is
// passed to the programs as a uniform but does not change their output.
type ClipFilter struct {
	Brightness float64 // [-1, 1], 0 neutral
	Contrast   float64 // [0, 2], 1 neutral
	Saturation float64 // factor, 1 neutral
	Hue        float64 // [0, 1) fractional turn, 0 neutral
	Blur       float64 // amount, 0 neutral
}

// DefaultClipFilter is the neutral filter: no adjustment applied.
func DefaultClipFilter() ClipFilter {
	return ClipFilter{Contrast: 1, Saturation: 1}
}
