package motion

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gwillem/roboarm/pkg/arm"
	"github.com/gwillem/roboarm/pkg/driver"
)

// Coordinator errors, matched by callers with errors.Is/errors.As.
var (
	ErrDisabled = errors.New("motors disabled")
	ErrNoJoints = errors.New("no joints specified")
)

// LimitError reports a target outside a joint's configured travel.
type LimitError struct {
	Joint int // 0-indexed
	Pos   int64
	Min   int64
	Max   int64
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("J%d target %d outside limits [%d, %d]", e.Joint+1, e.Pos, e.Min, e.Max)
}

// JointStatus is a read-only snapshot of one joint's live state.
type JointStatus struct {
	Name     arm.JointName `json:"name"`
	Position int64         `json:"position"`
	Target   int64         `json:"target"`
	Moving   bool          `json:"moving"`
}

// Status is a read-only snapshot of the whole arm.
type Status struct {
	Enabled bool          `json:"enabled"`
	Moving  bool          `json:"moving"`
	Joints  []JointStatus `json:"joints"`
}

// Coordinator gates all motion behind the enabled flag and per-joint
// limits, and guarantees batch moves are all-or-nothing. All public
// methods are synchronous and non-blocking: they reject, or hand targets
// to the driver and return. The mutex serializes commands so no two
// validate/dispatch phases interleave.
type Coordinator struct {
	mu      sync.Mutex
	joints  arm.Joints
	drv     driver.Driver
	enabled bool
}

// NewCoordinator creates a coordinator in the disabled state.
func NewCoordinator(joints arm.Joints, drv driver.Driver) *Coordinator {
	return &Coordinator{joints: joints, drv: drv}
}

// Enable allows motion and asserts the hardware enable line.
func (c *Coordinator) Enable() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.drv.SetHardwareEnabled(true); err != nil {
		return fmt.Errorf("enable hardware: %w", err)
	}
	c.enabled = true
	return nil
}

// Disable halts all joints, then blocks further motion. Disabling an
// already-disabled arm is not an error.
func (c *Coordinator) Disable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.haltAllLocked()
	c.enabled = false
	c.drv.SetHardwareEnabled(false)
}

// EmergencyStop halts every joint and disables the arm. It is valid in
// either state, idempotent, and never fails.
func (c *Coordinator) EmergencyStop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.haltAllLocked()
	c.enabled = false
	c.drv.SetHardwareEnabled(false)
}

func (c *Coordinator) haltAllLocked() {
	for i := range c.joints {
		c.drv.Halt(i)
	}
}

// MoveAbsolute validates the whole batch and, only if every targeted
// joint passes, dispatches each target to the driver. On any failure no
// joint is moved.
func (c *Coordinator) MoveAbsolute(req Request) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatchLocked(req)
}

// MoveRelative resolves each requested delta against the joint's current
// position, then applies the same all-or-nothing contract as
// MoveAbsolute.
func (c *Coordinator) MoveRelative(req Request) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	abs := NewRequest(len(req))
	for i, delta := range req {
		if delta == Skip {
			continue
		}
		abs[i] = c.drv.Position(i) + delta
	}
	return c.dispatchLocked(abs)
}

func (c *Coordinator) dispatchLocked(req Request) error {
	if req.Count() == 0 {
		return ErrNoJoints
	}
	if !c.enabled {
		return ErrDisabled
	}
	if len(req) > len(c.joints) {
		return fmt.Errorf("request names %d joints, arm has %d", len(req), len(c.joints))
	}

	// Validate the full batch before touching the driver.
	for i, pos := range req {
		if pos == Skip {
			continue
		}
		cfg := c.joints[i]
		if !cfg.InLimits(pos) {
			return &LimitError{Joint: i, Pos: pos, Min: cfg.MinPos, Max: cfg.MaxPos}
		}
	}

	for i, pos := range req {
		if pos == Skip {
			continue
		}
		if err := c.drv.MoveTo(i, pos); err != nil {
			// Degraded hardware surfaces here; joints already dispatched
			// keep their motion, per the driver-error policy.
			return err
		}
	}
	return nil
}

// ZeroAll redefines every joint's current position as origin. It is a
// redefinition, not a move, and is permitted regardless of enable state.
func (c *Coordinator) ZeroAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.joints {
		c.drv.Zero(i)
	}
}

// Enabled reports whether motion commands are currently accepted.
func (c *Coordinator) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Joints returns the static joint configuration.
func (c *Coordinator) Joints() arm.Joints {
	return c.joints
}

// Status samples the driver for a consistent snapshot of the arm.
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Status{
		Enabled: c.enabled,
		Joints:  make([]JointStatus, len(c.joints)),
	}
	for i, cfg := range c.joints {
		js := JointStatus{
			Name:     cfg.Name,
			Position: c.drv.Position(i),
			Target:   c.drv.Target(i),
			Moving:   c.drv.Moving(i),
		}
		if js.Moving {
			s.Moving = true
		}
		s.Joints[i] = js
	}
	return s
}
