package component

// SpeedScale temporarily scales MoveSpeed and AirMaxSpeed. The action that
// adds it owns removing it.
type SpeedScale struct {
	Scale float64
}

var SpeedScaleComponent = NewComponent[SpeedScale]()

// AirCapBypass replaces the air speed clamp with Cap until Remaining runs out.
type AirCapBypass struct {
	Cap       float64
	Remaining float64
}

var AirCapBypassComponent = NewComponent[AirCapBypass]()
