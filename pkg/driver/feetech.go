package driver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hipsterbrown/feetech-servo/feetech"

	"github.com/gwillem/roboarm/pkg/arm"
)

const (
	feetechBaudRate = 1_000_000
	busTimeout      = 250 * time.Millisecond

	// A servo within this many steps of its target counts as idle.
	movingDeadband = 4
)

// Feetech drives the arm over a feetech serial servo bus. Joints whose
// servo does not answer the startup scan are marked degraded: they
// report position 0 and reject moves while the rest of the arm runs on.
type Feetech struct {
	bus    *feetech.Bus
	joints arm.Joints

	mu      sync.Mutex
	servos  []*feetech.Servo // nil entry = degraded joint
	offset  []int64          // software origin, raw = steps + offset
	target  []int64
	lastPos []int64
}

var _ Driver = (*Feetech)(nil)

// NewFeetech opens the servo bus on port and binds each configured joint
// to its servo ID. A missing servo is not fatal.
func NewFeetech(port string, joints arm.Joints) (*Feetech, error) {
	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     port,
		BaudRate: feetechBaudRate,
		Protocol: feetech.ProtocolSTS,
	})
	if err != nil {
		return nil, fmt.Errorf("open bus: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	found, err := bus.Scan(ctx, 1, len(joints))
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("scan bus: %w", err)
	}

	byID := make(map[int]feetech.FoundServo, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	d := &Feetech{
		bus:     bus,
		joints:  joints,
		servos:  make([]*feetech.Servo, len(joints)),
		offset:  make([]int64, len(joints)),
		target:  make([]int64, len(joints)),
		lastPos: make([]int64, len(joints)),
	}
	for i, cfg := range joints {
		s, ok := byID[cfg.ServoID]
		if !ok {
			continue // degraded joint
		}
		d.servos[i] = feetech.NewServo(bus, s.ID, s.Model)
		if raw, err := d.servos[i].Position(ctx); err == nil {
			// Power-on pose becomes the step origin.
			d.offset[i] = int64(raw)
		}
	}
	return d, nil
}

func (d *Feetech) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), busTimeout)
}

func (d *Feetech) MoveTo(joint int, pos int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if joint < 0 || joint >= len(d.servos) || d.servos[joint] == nil {
		return fmt.Errorf("joint %d: %w", joint+1, ErrJointUnavailable)
	}

	// Scale move duration so the servo respects the configured speed.
	dist := pos - d.lastPos[joint]
	if dist < 0 {
		dist = -dist
	}
	moveMs := int(float64(dist) / d.joints[joint].MaxSpeed * 1000)

	ctx, cancel := d.ctx()
	defer cancel()
	raw := int(pos + d.offset[joint])
	if err := d.servos[joint].SetPositionWithTime(ctx, raw, moveMs); err != nil {
		return fmt.Errorf("joint %d: set position: %w", joint+1, err)
	}
	d.target[joint] = pos
	return nil
}

func (d *Feetech) Halt(joint int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if joint < 0 || joint >= len(d.servos) || d.servos[joint] == nil {
		return
	}
	// Re-target the servo to wherever it is right now. Errors are
	// swallowed: halt must never be refused.
	ctx, cancel := d.ctx()
	defer cancel()
	raw, err := d.servos[joint].Position(ctx)
	if err != nil {
		return
	}
	d.servos[joint].SetPositionWithTime(ctx, raw, 0)
	d.lastPos[joint] = int64(raw) - d.offset[joint]
	d.target[joint] = d.lastPos[joint]
}

func (d *Feetech) Position(joint int) int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if joint < 0 || joint >= len(d.servos) || d.servos[joint] == nil {
		return 0
	}
	ctx, cancel := d.ctx()
	defer cancel()
	raw, err := d.servos[joint].Position(ctx)
	if err != nil {
		// Stale position beats a bus hiccup turning into a phantom move.
		return d.lastPos[joint]
	}
	d.lastPos[joint] = int64(raw) - d.offset[joint]
	return d.lastPos[joint]
}

func (d *Feetech) Target(joint int) int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if joint < 0 || joint >= len(d.target) {
		return 0
	}
	return d.target[joint]
}

func (d *Feetech) Moving(joint int) bool {
	pos := d.Position(joint)
	d.mu.Lock()
	defer d.mu.Unlock()
	if joint < 0 || joint >= len(d.servos) || d.servos[joint] == nil {
		return false
	}
	delta := d.target[joint] - pos
	if delta < 0 {
		delta = -delta
	}
	return delta > movingDeadband
}

func (d *Feetech) Zero(joint int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if joint < 0 || joint >= len(d.servos) || d.servos[joint] == nil {
		return
	}
	ctx, cancel := d.ctx()
	defer cancel()
	raw, err := d.servos[joint].Position(ctx)
	if err != nil {
		return
	}
	d.offset[joint] = int64(raw)
	d.lastPos[joint] = 0
	d.target[joint] = 0
}

func (d *Feetech) SetHardwareEnabled(enabled bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	ctx, cancel := d.ctx()
	defer cancel()
	var firstErr error
	for i, s := range d.servos {
		if s == nil {
			continue
		}
		var err error
		if enabled {
			err = s.Enable(ctx)
		} else {
			err = s.Disable(ctx)
		}
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("joint %d: %w", i+1, err)
		}
	}
	return firstErr
}

func (d *Feetech) Close() error {
	return d.bus.Close()
}
