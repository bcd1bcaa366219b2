// Package physics implements the deterministic tick/move character
// simulation, grounded on original_source/world/src/lib.rs: the same
// float-based Character+Hook state machine, quantised to fixed-point on
// the wire via ToNet/FromNet so that replaying recorded input reproduces
// the reference client bit-for-bit.
package physics
