package editor

import (
	"errors"

	"github.com/obravim/floortrace/internal/model"
)

// Calibration errors.
var (
	ErrBadInch    = errors.New("inches must be at least 0 and below 12")
	ErrZeroLine   = errors.New("draw a line over a known-length object to calibrate")
	ErrZeroLength = errors.New("the reference length must be positive")
)

// Calibrate derives a new scale factor from a user-drawn reference line in
// drawing space and its known real-world length. The pixel distance is
// converted to native resolution before dividing, so the factor stays in
// inches per native pixel. Every derived dimension in the state is
// recomputed immediately.
func (ed *Editor) Calibrate(p1, p2 model.Point2D, feet, inch float64) error {
	if inch < 0 || inch >= 12 {
		return ErrBadInch
	}
	if feet == 0 && inch == 0 {
		return ErrZeroLength
	}
	st := ed.State
	nativeDist := p1.Dist(p2) * st.Scale.Resize
	if nativeDist == 0 {
		return ErrZeroLine
	}
	factor := (feet*12 + inch) / nativeDist
	st.SetScale(model.Scale{Factor: factor, Resize: st.Scale.Resize})
	return nil
}
