package model

// Scale holds the two conversion factors between on-screen pixels and
// real-world feet. Factor is real-world inches per pixel at the image's
// native resolution. Resize is the ratio of native image pixels to on-screen
// drawing pixels, recomputed whenever the displayed image size changes.
// All pixel-to-feet conversions go through Factor*Resize.
type Scale struct {
	Factor float64 `json:"factor"`
	Resize float64 `json:"resize"`
}

// DefaultScale returns an identity scale, used before any calibration or
// detection has run.
func DefaultScale() Scale {
	return Scale{Factor: 1, Resize: 1}
}

// Valid reports whether both factors are positive.
func (s Scale) Valid() bool {
	return s.Factor > 0 && s.Resize > 0
}

// PxToFt converts an on-screen pixel extent to feet.
func (s Scale) PxToFt(px float64) float64 {
	return px * s.Factor * s.Resize / 12
}

// FtToPx converts a real-world length in feet back to on-screen pixels.
// It is the exact inverse of PxToFt.
func (s Scale) FtToPx(ft float64) float64 {
	return ft * 12 / (s.Factor * s.Resize)
}

// ScaleFromLine computes the inches-per-pixel factor from a user-drawn
// reference line and its known real-world length. The pixel distance is
// measured in native image pixels.
func ScaleFromLine(p1, p2 Point2D, feet float64, inch float64) float64 {
	dist := p1.Dist(p2)
	if dist == 0 {
		return 0
	}
	return (feet*12 + inch) / dist
}
