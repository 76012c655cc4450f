// Package roboarm provides a command interpreter and multi-axis motion
// coordinator for a six-joint robot arm.
//
// A line of text like "G0 J1:1000 J2:-500" becomes a validated,
// all-or-nothing set of per-joint targets. Moves are gated by per-joint
// travel limits and a single enable/disable flag; emergency stop always
// works, in any state.
//
// # Usage
//
// Create a config (or let serve fall back to the simulated driver):
//
//	roboarm setup
//	roboarm serve
//
// Then talk to it:
//
//	roboarm send M17
//	roboarm send "G0 J1:500 J2:-500"
//	roboarm status
//	roboarm watch
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/roboarm: CLI with serve, send, status, watch and setup commands
//   - pkg/arm: joint registry, static configuration
//   - pkg/command: command grammar parser and executor
//   - pkg/motion: enable/e-stop state machine, batch move validation, reports
//   - pkg/driver: motion driver port, simulated and feetech backends
//   - pkg/server: HTTP JSON API and serial line channel
//   - pkg/client: host-side HTTP client and status poller
package roboarm
