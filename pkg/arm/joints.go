// Package arm describes the six-joint arm: static per-joint configuration
// and the named joint layout shared by every other package.
package arm

import "fmt"

// JointName identifies a joint of the arm.
type JointName string

// Joint names, in servo order (IDs 1-6).
const (
	Base       JointName = "base"
	Shoulder   JointName = "shoulder"
	Elbow      JointName = "elbow"
	WristPitch JointName = "wrist_pitch"
	WristRoll  JointName = "wrist_roll"
	Gripper    JointName = "gripper"
)

// AllJoints returns all joint names in index order.
func AllJoints() []JointName {
	return []JointName{
		Base,
		Shoulder,
		Elbow,
		WristPitch,
		WristRoll,
		Gripper,
	}
}

// JointConfig holds the static configuration of one joint. Positions are
// in steps (driver pulse counts), not angles.
type JointConfig struct {
	Name     JointName `json:"name"`
	ServoID  int       `json:"servo_id"`
	MinPos   int64     `json:"min_pos"`
	MaxPos   int64     `json:"max_pos"`
	MaxSpeed float64   `json:"max_speed"` // steps/s
	Accel    float64   `json:"accel"`     // steps/s^2
}

// InLimits reports whether pos lies within the joint's travel limits.
func (c JointConfig) InLimits(pos int64) bool {
	return pos >= c.MinPos && pos <= c.MaxPos
}

// Joints is the ordered joint registry. The slice index is the internal
// 0-indexed joint number; external command syntax is 1-indexed.
type Joints []JointConfig

// DefaultJoints returns the stock six-joint profile.
func DefaultJoints() Joints {
	joints := make(Joints, 0, len(AllJoints()))
	for i, name := range AllJoints() {
		joints = append(joints, JointConfig{
			Name:     name,
			ServoID:  i + 1,
			MinPos:   -100000,
			MaxPos:   100000,
			MaxSpeed: 1000,
			Accel:    500,
		})
	}
	return joints
}

// Validate checks that every joint has sane limits.
func (j Joints) Validate() error {
	if len(j) == 0 {
		return fmt.Errorf("no joints configured")
	}
	for i, cfg := range j {
		if cfg.MinPos > cfg.MaxPos {
			return fmt.Errorf("joint %d (%s): min %d > max %d", i+1, cfg.Name, cfg.MinPos, cfg.MaxPos)
		}
		if cfg.MaxSpeed <= 0 {
			return fmt.Errorf("joint %d (%s): max_speed must be positive", i+1, cfg.Name)
		}
	}
	return nil
}

// ServoIDs returns the bus servo IDs for all joints in index order.
func (j Joints) ServoIDs() []int {
	ids := make([]int, 0, len(j))
	for _, cfg := range j {
		ids = append(ids, cfg.ServoID)
	}
	return ids
}
