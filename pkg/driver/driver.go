// Package driver defines the motion driver port and its backends.
//
// The coordinator issues "move joint J to absolute position P" intents
// through the Driver interface and never learns how pulses are produced.
// Two backends exist: a software-timed simulation and the feetech serial
// servo bus.
package driver

import "errors"

// ErrJointUnavailable is returned for moves on a joint whose hardware
// failed to initialize. The rest of the arm keeps running.
var ErrJointUnavailable = errors.New("joint unavailable")

// Driver executes motion for individual joints. Implementations must be
// safe for concurrent use: position updates may run on their own
// execution context while commands arrive from the control path.
type Driver interface {
	// MoveTo starts motion of one joint toward an absolute position and
	// returns without waiting for completion.
	MoveTo(joint int, pos int64) error

	// Halt stops one joint immediately. Halting an idle joint is a no-op;
	// Halt never fails, so emergency stop cannot be refused.
	Halt(joint int)

	// Position returns the joint's current position in steps.
	Position(joint int) int64

	// Target returns the last commanded target position.
	Target(joint int) int64

	// Moving reports whether the joint is still in motion.
	Moving(joint int) bool

	// Zero redefines the joint's current position as origin, without
	// moving it.
	Zero(joint int)

	// SetHardwareEnabled drives the physical enable line for all joints
	// as one unit.
	SetHardwareEnabled(enabled bool) error

	Close() error
}
