package driver

import (
	"fmt"
	"sync"
	"time"

	"github.com/gwillem/roboarm/pkg/arm"
)

// simJoint tracks one simulated axis. Position is interpolated from the
// move start against the wall clock, so reads never need a background
// goroutine.
type simJoint struct {
	origin    int64 // position when the current move started
	target    int64
	speed     float64 // steps/s
	startedAt time.Time
}

// Sim is a software-timed driver that models each joint as moving at its
// configured speed. It is the default backend when no hardware is
// attached.
type Sim struct {
	mu     sync.Mutex
	joints []simJoint
	now    func() time.Time
}

var _ Driver = (*Sim)(nil)

// NewSim creates a simulated driver for the given joint profile.
func NewSim(joints arm.Joints) *Sim {
	s := &Sim{
		joints: make([]simJoint, len(joints)),
		now:    time.Now,
	}
	for i, cfg := range joints {
		s.joints[i].speed = cfg.MaxSpeed
		if s.joints[i].speed <= 0 {
			s.joints[i].speed = 1
		}
	}
	return s
}

// positionLocked computes the interpolated position. Callers hold s.mu.
func (s *Sim) positionLocked(i int) int64 {
	j := &s.joints[i]
	if j.origin == j.target {
		return j.target
	}
	elapsed := s.now().Sub(j.startedAt).Seconds()
	travelled := int64(elapsed * j.speed)
	if j.target > j.origin {
		if pos := j.origin + travelled; pos < j.target {
			return pos
		}
	} else {
		if pos := j.origin - travelled; pos > j.target {
			return pos
		}
	}
	return j.target
}

func (s *Sim) MoveTo(joint int, pos int64) error {
	if joint < 0 || joint >= len(s.joints) {
		return fmt.Errorf("joint %d: %w", joint, ErrJointUnavailable)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	j := &s.joints[joint]
	j.origin = s.positionLocked(joint)
	j.target = pos
	j.startedAt = s.now()
	return nil
}

func (s *Sim) Halt(joint int) {
	if joint < 0 || joint >= len(s.joints) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	pos := s.positionLocked(joint)
	j := &s.joints[joint]
	j.origin = pos
	j.target = pos
}

func (s *Sim) Position(joint int) int64 {
	if joint < 0 || joint >= len(s.joints) {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.positionLocked(joint)
}

func (s *Sim) Target(joint int) int64 {
	if joint < 0 || joint >= len(s.joints) {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.joints[joint].target
}

func (s *Sim) Moving(joint int) bool {
	if joint < 0 || joint >= len(s.joints) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.positionLocked(joint) != s.joints[joint].target
}

func (s *Sim) Zero(joint int) {
	if joint < 0 || joint >= len(s.joints) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	j := &s.joints[joint]
	j.origin = 0
	j.target = 0
}

func (s *Sim) SetHardwareEnabled(enabled bool) error {
	// Nothing physical to switch in simulation.
	return nil
}

func (s *Sim) Close() error {
	return nil
}
