package physics

// TuneParam is a tuning value as carried on the wire: a float scaled by
// 100 and truncated to an int32.
type TuneParam int32

// TuneParamFromFloat quantises f to its wire representation.
func TuneParamFromFloat(f float32) TuneParam {
	return TuneParam(f * 100.0)
}

// ToFloat returns the tuning value as a float.
func (t TuneParam) ToFloat() float32 {
	return float32(t) / 100.0
}

// TuningParams holds the subset of the tuning table that the character
// simulation consults. Field names follow the wire message's snake_case
// tuning keys.
type TuningParams struct {
	Gravity TuneParam

	GroundControlSpeed TuneParam
	GroundControlAccel TuneParam
	GroundFriction      TuneParam
	GroundJumpImpulse   TuneParam

	AirControlSpeed TuneParam
	AirControlAccel TuneParam
	AirFriction     TuneParam
	AirJumpImpulse  TuneParam

	HookLength    TuneParam
	HookFireSpeed TuneParam
	HookDragAccel TuneParam
	HookDragSpeed TuneParam

	VelrampStart     TuneParam
	VelrampRange     TuneParam
	VelrampCurvature TuneParam

	PlayerCollision TuneParam
	PlayerHooking   TuneParam
}

// DefaultTuning returns the stock tuning table used by an unmodified
// server.
func DefaultTuning() TuningParams {
	return TuningParams{
		Gravity: TuneParamFromFloat(0.5),

		GroundControlSpeed: TuneParamFromFloat(10.0),
		GroundControlAccel: TuneParamFromFloat(2.0),
		GroundFriction:      TuneParamFromFloat(0.5),
		GroundJumpImpulse:   TuneParamFromFloat(13.2),

		AirControlSpeed: TuneParamFromFloat(5.0),
		AirControlAccel: TuneParamFromFloat(1.5),
		AirFriction:     TuneParamFromFloat(0.95),
		AirJumpImpulse:  TuneParamFromFloat(12.0),

		HookLength:    TuneParamFromFloat(380.0),
		HookFireSpeed: TuneParamFromFloat(80.0),
		HookDragAccel: TuneParamFromFloat(3.0),
		HookDragSpeed: TuneParamFromFloat(15.0),

		VelrampStart:     TuneParamFromFloat(550.0),
		VelrampRange:     TuneParamFromFloat(2000.0),
		VelrampCurvature: TuneParamFromFloat(1.4),

		PlayerCollision: TuneParamFromFloat(1.0),
		PlayerHooking:   TuneParamFromFloat(1.0),
	}
}

// VelocityRamp implements the reference's speed-dependent x-velocity
// damping curve. value is expected in units-per-tick scaled to
// units-per-second (i.e. velocity.Length()*ticksPerSecond).
func VelocityRamp(value float32, tuning TuningParams) float32 {
	start := tuning.VelrampStart.ToFloat()
	if value < start {
		return 1.0
	}

	curvature := tuning.VelrampCurvature.ToFloat()
	rng := tuning.VelrampRange.ToFloat()

	return 1.0 / pow32(curvature, (value-start)/rng)
}
