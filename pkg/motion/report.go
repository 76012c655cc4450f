package motion

import (
	"fmt"
	"strings"

	"github.com/gwillem/roboarm/pkg/arm"
)

// Report rendering: pure functions of a Status snapshot and the static
// joint configuration. Formats are stable, they are parsed by host-side
// tooling.

// QuickStatus renders the compact one-line poll format, e.g.
// "EM P:100,-50,0,0,0,0" (Enabled/Disabled, Moving/Idle, positions).
func QuickStatus(s Status) string {
	var b strings.Builder
	if s.Enabled {
		b.WriteByte('E')
	} else {
		b.WriteByte('D')
	}
	if s.Moving {
		b.WriteByte('M')
	} else {
		b.WriteByte('I')
	}
	b.WriteString(" P:")
	for i, j := range s.Joints {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", j.Position)
	}
	return b.String()
}

// PositionReport renders the verbose multi-line position report.
func PositionReport(s Status) string {
	var b strings.Builder

	b.WriteString("Position:")
	for i, j := range s.Joints {
		fmt.Fprintf(&b, " J%d:%d", i+1, j.Position)
	}

	b.WriteString("\nTarget:")
	for i, j := range s.Joints {
		fmt.Fprintf(&b, " J%d:%d", i+1, j.Target)
	}

	b.WriteString("\nMoving: ")
	b.WriteString(yesNo(s.Moving))
	b.WriteString("\nEnabled: ")
	b.WriteString(yesNo(s.Enabled))

	return b.String()
}

// SettingsReport renders the static per-joint configuration dump. Values
// come entirely from the joint config, never from live state.
func SettingsReport(joints arm.Joints) string {
	var b strings.Builder
	b.WriteString("Settings:\n")
	for i, cfg := range joints {
		fmt.Fprintf(&b, "J%d:%s ID:%d Min:%d Max:%d Speed:%g Accel:%g\n",
			i+1, cfg.Name, cfg.ServoID, cfg.MinPos, cfg.MaxPos, cfg.MaxSpeed, cfg.Accel)
	}
	return strings.TrimRight(b.String(), "\n")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
