package system

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Raycaster reports the first static obstruction on the segment from -> to.
type Raycaster interface {
	Raycast(from, to cp.Vector) (hit cp.Vector, blocked bool)
}

// lineOfSight casts the centre ray at the target and then a fan of rays
// across coneDeg around it, each as long as the distance to the target.
// Sight holds when any ray reaches its full length unobstructed.
func lineOfSight(ray Raycaster, eye, target cp.Vector, rays int, coneDeg float64) bool {
	toTarget := target.Sub(eye)
	dist := toTarget.Length()
	if dist == 0 {
		return true
	}
	base := toTarget.Mult(1 / dist)

	if _, blocked := ray.Raycast(eye, target); !blocked {
		return true
	}
	if rays < 2 {
		return false
	}

	step := coneDeg / float64(rays-1)
	start := -coneDeg / 2
	for i := 0; i < rays; i++ {
		rad := (start + step*float64(i)) * math.Pi / 180
		dir := base.Rotate(cp.ForAngle(rad))
		if _, blocked := ray.Raycast(eye, eye.Add(dir.Mult(dist))); !blocked {
			return true
		}
	}
	return false
}
