package command

import (
	"errors"
	"strings"
	"testing"

	"github.com/gwillem/roboarm/pkg/motion"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input  string
		want   Parsed
		hasErr bool
	}{
		{input: "", want: Parsed{Empty: true}},
		{input: "   \t ", want: Parsed{Empty: true}},
		{input: "?", want: Parsed{Quick: true}},
		{input: "G0", want: Parsed{Family: 'G', Code: 0}},
		{input: "g1 J1:100", want: Parsed{Family: 'G', Code: 1, Args: "J1:100"}},
		{input: "G28", want: Parsed{Family: 'G', Code: 28}},
		{input: "M114", want: Parsed{Family: 'M', Code: 114}},
		{input: "m503", want: Parsed{Family: 'M', Code: 503}},
		{input: "  M17  ", want: Parsed{Family: 'M', Code: 17}},
		{input: "G J1:5", want: Parsed{Family: 'G', Code: CodeAbsent, Args: "J1:5"}},
		{input: "M", want: Parsed{Family: 'M', Code: CodeAbsent}},
		{input: "X5", hasErr: true},
		{input: "hello", hasErr: true},
		{input: "7G", hasErr: true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.input)
		if tt.hasErr {
			if err == nil {
				t.Errorf("Parse(%q) expected error, got %+v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestParseJointArgs(t *testing.T) {
	const n = 6

	tests := []struct {
		input string
		want  map[int]int64 // 0-indexed joint -> value
	}{
		{input: "", want: map[int]int64{}},
		{input: "   ", want: map[int]int64{}},
		{input: "feedrate 500", want: map[int]int64{}}, // no J tokens at all
		{input: "J1:1000", want: map[int]int64{0: 1000}},
		{input: "j1:1000", want: map[int]int64{0: 1000}}, // case folded
		{input: "J1:1000 J2:-500", want: map[int]int64{0: 1000, 1: -500}},
		{input: "J6:+42", want: map[int]int64{5: 42}},
		{input: "  J3:0   J4:7  ", want: map[int]int64{2: 0, 3: 7}},
		{input: "J1:10 J1:20", want: map[int]int64{0: 20}}, // duplicate, last wins
	}

	for _, tt := range tests {
		req, err := ParseJointArgs(tt.input, n)
		if err != nil {
			t.Errorf("ParseJointArgs(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if req.Count() != len(tt.want) {
			t.Errorf("ParseJointArgs(%q) parsed %d pairs, want %d", tt.input, req.Count(), len(tt.want))
		}
		for i := 0; i < n; i++ {
			want, ok := tt.want[i]
			if !ok {
				if req[i] != motion.Skip {
					t.Errorf("ParseJointArgs(%q): J%d = %d, want skip", tt.input, i+1, req[i])
				}
				continue
			}
			if req[i] != want {
				t.Errorf("ParseJointArgs(%q): J%d = %d, want %d", tt.input, i+1, req[i], want)
			}
		}
	}
}

func TestParseJointArgs_Malformed(t *testing.T) {
	const n = 6

	tests := []string{
		"J1",           // no colon anywhere after J
		"J1:",          // empty value
		"J:100",        // missing joint number
		"J0:100",       // joint below range
		"J7:100",       // joint above range
		"J99:1",        // way out of range
		"Jx:100",       // non-numeric joint
		"J1:12x4",      // junk inside value
		"J1:--5",       // double sign
		"J1:+",         // sign only
		"J1:100 J2",    // later pair malformed kills the whole parse
		"J1:100 J9:5",  // later joint out of range
		"J1:1.5",       // not an integer literal
		"J2:0x10",      // no hex
		"J1:-9223372036854775808", // collides with the skip sentinel
		"J1:9223372036854775808",  // overflows int64
	}

	for _, input := range tests {
		req, err := ParseJointArgs(input, n)
		if err == nil {
			t.Errorf("ParseJointArgs(%q) expected malformed error, got %v", input, req)
			continue
		}
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("ParseJointArgs(%q) error %v is not ErrMalformed", input, err)
		}
		if req != nil {
			t.Errorf("ParseJointArgs(%q) returned partial result %v on error", input, req)
		}
	}
}

// Pair count must match a direct count of well-formed J...:<int> tokens.
func TestParseJointArgs_PairCount(t *testing.T) {
	inputs := []string{
		"J1:1 J2:2 J3:3 J4:4 J5:5 J6:6",
		"J1:-100 J4:+100",
		"J2:0",
		"",
	}

	for _, input := range inputs {
		req, err := ParseJointArgs(input, 6)
		if err != nil {
			t.Fatalf("ParseJointArgs(%q): %v", input, err)
		}
		want := 0
		for _, tok := range strings.Fields(input) {
			if strings.HasPrefix(tok, "J") && strings.Contains(tok, ":") {
				want++
			}
		}
		if req.Count() != want {
			t.Errorf("ParseJointArgs(%q) = %d pairs, direct count = %d", input, req.Count(), want)
		}
	}
}
