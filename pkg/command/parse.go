// Package command parses the line-oriented command grammar and executes
// parsed commands against the motion coordinator. Every entry point
// returns a Result, the one contract shared by all transports.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gwillem/roboarm/pkg/motion"
)

// ErrMalformed marks joint-argument text that failed to tokenize. It is
// distinct from a request that simply names no joints.
var ErrMalformed = errors.New("invalid joint format")

// CodeAbsent is the Code value when a family letter has no digits.
const CodeAbsent = -1

// Parsed is the tokenized form of one command line. It carries no
// semantic validation; joint numbers and values are checked later.
type Parsed struct {
	Empty  bool   // blank line, nothing to do
	Quick  bool   // "?" status fast path
	Family byte   // 'G' or 'M'
	Code   int    // numeric code, CodeAbsent if no digits followed
	Args   string // trimmed remainder after the digit run
}

// Parse tokenizes a raw command line. Family is selected by the first
// character, case-insensitive; anything other than G or M is an
// unknown-command error.
func Parse(line string) (Parsed, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Parsed{Empty: true}, nil
	}
	if line == "?" {
		return Parsed{Quick: true}, nil
	}

	family := upper(line[0])
	if family != 'G' && family != 'M' {
		return Parsed{}, fmt.Errorf("unknown command: %s", line)
	}

	// Digit run immediately after the family letter forms the code.
	i := 1
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	code := CodeAbsent
	if i > 1 {
		code, _ = strconv.Atoi(line[1:i])
	}

	return Parsed{
		Family: family,
		Code:   code,
		Args:   strings.TrimSpace(line[i:]),
	}, nil
}

// ParseJointArgs scans the argument remainder for J<n>:<v> pairs and
// builds a motion request over n joints. Zero pairs is a valid outcome
// (the request stays empty); any malformed pair fails the whole parse
// with no partial result, even if earlier pairs were clean.
func ParseJointArgs(args string, n int) (motion.Request, error) {
	req := motion.NewRequest(n)
	s := strings.ToUpper(args)

	i := 0
	for {
		// Find the next joint specifier.
		j := strings.IndexByte(s[i:], 'J')
		if j < 0 {
			return req, nil
		}
		i += j + 1

		colon := strings.IndexByte(s[i:], ':')
		if colon < 0 {
			return nil, fmt.Errorf("%w: missing ':' after J", ErrMalformed)
		}

		joint, err := strconv.Atoi(s[i : i+colon])
		if err != nil || joint < 1 || joint > n {
			return nil, fmt.Errorf("%w: bad joint number %q", ErrMalformed, s[i:i+colon])
		}
		i += colon + 1

		// Value runs to the next whitespace or end of string.
		end := i
		for end < len(s) && s[end] != ' ' && s[end] != '\t' {
			end++
		}
		value, err := parseSigned(s[i:end])
		if err != nil {
			return nil, fmt.Errorf("%w: bad value %q for J%d", ErrMalformed, s[i:end], joint)
		}
		// math.MinInt64 is the Skip sentinel; a literal at exactly that
		// value has no representation as a target.
		if value == motion.Skip {
			return nil, fmt.Errorf("%w: value %d for J%d out of range", ErrMalformed, value, joint)
		}
		i = end

		// Duplicate joint numbers overwrite silently, last wins.
		req[joint-1] = value
	}
}

// parseSigned accepts an optional leading sign followed by one or more
// digits, nothing else.
func parseSigned(s string) (int64, error) {
	body := s
	if len(body) > 0 && (body[0] == '+' || body[0] == '-') {
		body = body[1:]
	}
	if len(body) == 0 {
		return 0, fmt.Errorf("empty integer")
	}
	for k := 0; k < len(body); k++ {
		if body[k] < '0' || body[k] > '9' {
			return 0, fmt.Errorf("not an integer")
		}
	}
	return strconv.ParseInt(s, 10, 64)
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
