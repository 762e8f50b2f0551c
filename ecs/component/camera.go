package component

import "github.com/milk9111/easekit/tween"

type Camera struct {
	Zoom float64
}

var CameraComponent = NewComponent[Camera]()

// CameraShakeRequest asks the camera system to shake. Strength is in world
// units; a nil Curve means smooth.
type CameraShakeRequest struct {
	Duration float64
	Strength float64
	Curve    tween.Curve
}

var CameraShakeRequestComponent = NewComponent[CameraShakeRequest]()
