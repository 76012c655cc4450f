package command

import (
	"fmt"

	"github.com/gwillem/roboarm/pkg/motion"
)

// errPrefix marks failure messages so callers can discriminate success
// from failure without parsing status codes.
const errPrefix = "error: "

// Result is the uniform outcome of one command, across all transports.
type Result struct {
	OK      bool   `json:"success"`
	Message string `json:"message"`
}

func ok(msg string) Result {
	return Result{OK: true, Message: msg}
}

func fail(format string, args ...any) Result {
	return Result{Message: errPrefix + fmt.Sprintf(format, args...)}
}

// Executor dispatches parsed commands to the coordinator. One instance
// serves every transport; the coordinator serializes execution.
type Executor struct {
	coord *motion.Coordinator
}

// NewExecutor creates an executor bound to a coordinator.
func NewExecutor(coord *motion.Coordinator) *Executor {
	return &Executor{coord: coord}
}

// Execute runs one command line to completion and returns its result.
func (e *Executor) Execute(line string) Result {
	cmd, err := Parse(line)
	if err != nil {
		return fail("%v", err)
	}

	switch {
	case cmd.Empty:
		return ok("")
	case cmd.Quick:
		return ok(motion.QuickStatus(e.coord.Status()))
	}

	switch cmd.Family {
	case 'G':
		switch cmd.Code {
		case 0:
			return e.move(cmd.Args, e.coord.MoveAbsolute)
		case 1:
			return e.move(cmd.Args, e.coord.MoveRelative)
		case 28:
			e.coord.ZeroAll()
			return ok("All joints homed (zeroed)")
		default:
			return fail("unknown G-code%s", codeSuffix('G', cmd.Code))
		}

	case 'M':
		switch cmd.Code {
		case 17:
			if err := e.coord.Enable(); err != nil {
				return fail("%v", err)
			}
			return ok("Motors enabled")
		case 18:
			e.coord.Disable()
			return ok("Motors disabled")
		case 112:
			e.coord.EmergencyStop()
			return ok("EMERGENCY STOP - Motors disabled")
		case 114:
			return ok(motion.PositionReport(e.coord.Status()))
		case 503:
			return ok(motion.SettingsReport(e.coord.Joints()))
		default:
			return fail("unknown M-code%s", codeSuffix('M', cmd.Code))
		}
	}

	// Parse only yields G or M families; anything else errored already.
	return fail("unknown command")
}

func (e *Executor) move(args string, dispatch func(motion.Request) error) Result {
	req, err := ParseJointArgs(args, len(e.coord.Joints()))
	if err != nil {
		return fail("%v. Use: G0 J1:1000 J2:500", err)
	}
	if err := dispatch(req); err != nil {
		return fail("%v", err)
	}
	return ok("ok")
}

func codeSuffix(family byte, code int) string {
	if code == CodeAbsent {
		return ""
	}
	return fmt.Sprintf(": %c%d", family, code)
}
