// Package motion owns the enable/disable/emergency-stop state machine
// and validates multi-joint move batches before anything reaches the
// driver.
package motion

import "math"

// Skip is the canonical "leave this joint alone" sentinel in a Request.
// Both driver backends share it; there is exactly one.
const Skip int64 = math.MinInt64

// Request maps joint index to a target position, with Skip marking
// joints a command does not touch. A Request is applied all-or-nothing.
type Request []int64

// NewRequest returns a request of n joints, all skipped.
func NewRequest(n int) Request {
	r := make(Request, n)
	for i := range r {
		r[i] = Skip
	}
	return r
}

// Count returns the number of joints the request actually targets.
func (r Request) Count() int {
	n := 0
	for _, v := range r {
		if v != Skip {
			n++
		}
	}
	return n
}
