package rules

import (
	"strconv"
	"strings"
)

// MaxCount is the largest neighbor count a Counts set can hold.
const MaxCount = 63

// Counts is a set of neighbor counts in [0, MaxCount].
type Counts uint64

// CountsOf builds a set from the given values. Values outside the
// representable range are ignored.
func CountsOf(values ...int) Counts {
	var c Counts
	for _, v := range values {
		c = c.With(v)
	}
	return c
}

// CountRange returns the set {lo, ..., hi}.
func CountRange(lo, hi int) Counts {
	var c Counts
	for v := lo; v <= hi; v++ {
		c = c.With(v)
	}
	return c
}

// With returns c plus v.
func (c Counts) With(v int) Counts {
	if v < 0 || v > MaxCount {
		return c
	}
	return c | 1<<uint(v)
}

// Has reports whether n is in the set.
func (c Counts) Has(n int) bool {
	if n < 0 || n > MaxCount {
		return false
	}
	return c&(1<<uint(n)) != 0
}

// Empty reports whether the set has no members.
func (c Counts) Empty() bool { return c == 0 }

// Max returns the largest member, or -1 for the empty set.
func (c Counts) Max() int {
	for v := MaxCount; v >= 0; v-- {
		if c.Has(v) {
			return v
		}
	}
	return -1
}

// Values lists the members in ascending order.
func (c Counts) Values() []int {
	var out []int
	for v := 0; v <= MaxCount; v++ {
		if c.Has(v) {
			out = append(out, v)
		}
	}
	return out
}

// String renders the set in rulestring style; counts above 9 are
// comma-separated.
func (c Counts) String() string {
	vals := c.Values()
	wide := len(vals) > 0 && vals[len(vals)-1] > 9
	var b strings.Builder
	for i, v := range vals {
		if wide && i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}
