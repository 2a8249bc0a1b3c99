package rig

import "github.com/Carmen-Shannon/oxy-rts/common"

// applyRotateEvents adds delta*MaxRotationSpeed degrees per event while the rotate
// button is held. Without the button the events are discarded.
func applyRotateEvents(cfg *Config, yaw float32, events []float32, held bool) float32 {
	if !held {
		return yaw
	}
	for _, delta := range events {
		yaw = common.WrapDegrees(yaw + delta*cfg.MaxRotationSpeed)
	}
	return yaw
}
