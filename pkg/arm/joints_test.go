package arm

import (
	"path/filepath"
	"testing"
)

func TestDefaultJoints(t *testing.T) {
	joints := DefaultJoints()

	if len(joints) != 6 {
		t.Fatalf("default profile has %d joints, want 6", len(joints))
	}
	if err := joints.Validate(); err != nil {
		t.Fatalf("default profile invalid: %v", err)
	}
	if joints[0].Name != Base || joints[5].Name != Gripper {
		t.Errorf("joint order wrong: %v ... %v", joints[0].Name, joints[5].Name)
	}

	ids := joints.ServoIDs()
	for i, id := range ids {
		if id != i+1 {
			t.Errorf("ServoIDs()[%d] = %d, want %d", i, id, i+1)
		}
	}
}

func TestJointConfig_InLimits(t *testing.T) {
	cfg := JointConfig{MinPos: -100, MaxPos: 200}

	tests := []struct {
		pos  int64
		want bool
	}{
		{-101, false},
		{-100, true},
		{0, true},
		{200, true},
		{201, false},
	}
	for _, tt := range tests {
		if got := cfg.InLimits(tt.pos); got != tt.want {
			t.Errorf("InLimits(%d) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestJoints_Validate(t *testing.T) {
	tests := []struct {
		name   string
		joints Joints
		hasErr bool
	}{
		{name: "empty", joints: Joints{}, hasErr: true},
		{name: "ok", joints: Joints{{Name: Base, MinPos: -10, MaxPos: 10, MaxSpeed: 100}}},
		{name: "inverted limits", joints: Joints{{Name: Base, MinPos: 10, MaxPos: -10, MaxSpeed: 100}}, hasErr: true},
		{name: "zero speed", joints: Joints{{Name: Base, MinPos: -10, MaxPos: 10}}, hasErr: true},
	}

	for _, tt := range tests {
		err := tt.joints.Validate()
		if tt.hasErr && err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
		if !tt.hasErr && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
	}
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roboarm.json")

	cfg := DefaultConfig()
	cfg.Listen = ":9999"
	cfg.Driver = "feetech"
	cfg.ServoPort = "/dev/ttyUSB0"
	cfg.Joints[2].MaxPos = 42

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Listen != ":9999" || loaded.Driver != "feetech" || loaded.ServoPort != "/dev/ttyUSB0" {
		t.Errorf("loaded = %+v", loaded)
	}
	if loaded.Joints[2].MaxPos != 42 {
		t.Errorf("joint tweak lost: %+v", loaded.Joints[2])
	}
}

func TestLoadConfigRejectsBadJoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roboarm.json")

	cfg := DefaultConfig()
	cfg.Joints[0].MinPos = 50
	cfg.Joints[0].MaxPos = -50
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := LoadConfigFrom(path); err == nil {
		t.Error("config with inverted limits loaded without error")
	}
}
