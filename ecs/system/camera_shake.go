package system

import (
	"github.com/milk9111/easekit/camera"
	"github.com/milk9111/easekit/ecs"
	"github.com/milk9111/easekit/ecs/component"
	"github.com/milk9111/easekit/tween"
)

// CameraShakeSystem drains shake requests each frame. When several arrive in
// the same frame the strongest wins.
type CameraShakeSystem struct {
	rig *camera.Rig
}

func NewCameraShakeSystem(rig *camera.Rig) *CameraShakeSystem {
	return &CameraShakeSystem{rig: rig}
}

func (s *CameraShakeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var best *component.CameraShakeRequest
	ecs.ForEach(w, component.CameraShakeRequestComponent.Kind(), func(e ecs.Entity, req *component.CameraShakeRequest) {
		if req != nil && (best == nil || req.Strength > best.Strength) {
			best = req
		}
		_ = ecs.Remove(w, e, component.CameraShakeRequestComponent.Kind())
	})

	if best == nil || s.rig == nil {
		return
	}
	s.rig.Shake(best.Duration, best.Curve, best.Strength, nil)
}

// RequestShake queues a shake on e, replacing any pending request. A nil
// curve shakes with smooth.
func RequestShake(w *ecs.World, e ecs.Entity, duration, strength float64, c tween.Curve) error {
	return ecs.Add(w, e, component.CameraShakeRequestComponent.Kind(), &component.CameraShakeRequest{
		Duration: duration,
		Strength: strength,
		Curve:    c,
	})
}
