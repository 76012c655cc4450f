package server

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/gwillem/roboarm/pkg/arm"
	"github.com/gwillem/roboarm/pkg/command"
	"github.com/gwillem/roboarm/pkg/driver"
	"github.com/gwillem/roboarm/pkg/motion"
)

type pipeRW struct {
	io.Reader
	io.Writer
}

func runLines(t *testing.T, input string) []string {
	t.Helper()

	joints := arm.DefaultJoints()
	coord := motion.NewCoordinator(joints, driver.NewSim(joints))
	exec := command.NewExecutor(coord)

	var out bytes.Buffer
	srv := NewLineServer(&pipeRW{strings.NewReader(input), &out}, exec)
	if err := srv.Serve(context.Background()); err != nil {
		t.Fatalf("serve: %v", err)
	}

	text := strings.TrimRight(out.String(), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func TestLineServer(t *testing.T) {
	got := runLines(t, "M17\nG0 J1:100\nG0 J1:999999\nM18\n")

	want := []string{
		"Motors enabled",
		"ok",
		"error: J1 target 999999 outside limits [-100000, 100000]",
		"Motors disabled",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d responses %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("response %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLineServer_SkipsBlankLines(t *testing.T) {
	got := runLines(t, "\n\n?\n\n")
	if len(got) != 1 {
		t.Fatalf("got %v, want single quick status", got)
	}
	if !strings.HasPrefix(got[0], "DI P:") {
		t.Errorf("quick status = %q", got[0])
	}
}

// A line that overflows the read buffer entirely must be discarded with
// an error reply, not kill the channel.
func TestLineServer_SurvivesOversizedLine(t *testing.T) {
	got := runLines(t, strings.Repeat("J1:100 ", 800)+"\n?\n")

	if len(got) != 2 {
		t.Fatalf("got %v", got)
	}
	if got[0] != "error: command too long" {
		t.Errorf("response = %q", got[0])
	}
	if !strings.HasPrefix(got[1], "DI P:") {
		t.Errorf("server did not keep serving after oversized line: %q", got[1])
	}
}

func TestLineServer_RejectsOverlongLine(t *testing.T) {
	long := "G0 " + strings.Repeat("J1:100 ", 60)
	got := runLines(t, long+"\n?\n")

	if len(got) != 2 {
		t.Fatalf("got %v", got)
	}
	if got[0] != "error: command too long" {
		t.Errorf("response = %q", got[0])
	}
	if !strings.HasPrefix(got[1], "DI P:") {
		t.Errorf("server did not keep serving after overlong line: %q", got[1])
	}
}
