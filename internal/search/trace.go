package search

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Relation is the comparison that decided a step.
type Relation string

const (
	Less         Relation = "<"
	Greater      Relation = ">"
	Equal        Relation = "=="
	LessEqual    Relation = "<="
	GreaterEqual Relation = ">="
	Final        Relation = "final"
)

// Step is one comparison of a traced search. Left and Right delimit the live
// segment (inclusive), Mid is the index compared. The last step of every
// trace has Done set and carries the answer in Payload.
type Step struct {
	Left        int      `json:"left"`
	Right       int      `json:"right"`
	Mid         int      `json:"mid"`
	Relation    Relation `json:"relation"`
	Explanation string   `json:"explanation"`
	Done        bool     `json:"done"`
	Payload     int      `json:"payload"`
}

// Answer returns the payload of the final step, or -1 for an empty trace.
func Answer(steps []Step) int {
	if len(steps) == 0 || !steps[len(steps)-1].Done {
		return -1
	}
	return steps[len(steps)-1].Payload
}

func TraceFind[T constraints.Ordered](s []T, x T) []Step {
	var steps []Step
	lo, hi := 0, len(s)-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		switch {
		case s[mid] == x:
			return append(steps, Step{
				Left: lo, Right: hi, Mid: mid, Relation: Equal,
				Explanation: fmt.Sprintf("s[mid] == x (%v == %v), found at index %d.", s[mid], x, mid),
				Done:        true, Payload: mid,
			})
		case s[mid] < x:
			steps = append(steps, Step{
				Left: lo, Right: hi, Mid: mid, Relation: Less,
				Explanation: fmt.Sprintf("%v < %v, go RIGHT (left = mid+1 = %d).", s[mid], x, mid+1),
			})
			lo = mid + 1
		default:
			steps = append(steps, Step{
				Left: lo, Right: hi, Mid: mid, Relation: Greater,
				Explanation: fmt.Sprintf("%v > %v, go LEFT (right = mid-1 = %d).", s[mid], x, mid-1),
			})
			hi = mid - 1
		}
	}
	mid := 0
	if lo+hi >= 0 {
		mid = (lo + hi) / 2
	}
	return append(steps, Step{
		Left: lo, Right: hi, Mid: mid, Relation: Final,
		Explanation: "Not found.", Done: true, Payload: -1,
	})
}

func TraceFirst[T constraints.Ordered](s []T, x T) []Step {
	var steps []Step
	lo, hi := 0, len(s)-1
	res := -1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		switch {
		case s[mid] == x:
			res = mid
			steps = append(steps, Step{
				Left: lo, Right: hi, Mid: mid, Relation: Equal,
				Explanation: fmt.Sprintf("Found %v at %d, keep looking further LEFT.", x, mid),
			})
			hi = mid - 1
		case s[mid] > x:
			steps = append(steps, Step{
				Left: lo, Right: hi, Mid: mid, Relation: GreaterEqual,
				Explanation: fmt.Sprintf("%v >= %v without equality, go LEFT.", s[mid], x),
			})
			hi = mid - 1
		default:
			steps = append(steps, Step{
				Left: lo, Right: hi, Mid: mid, Relation: Less,
				Explanation: fmt.Sprintf("%v < %v, go RIGHT.", s[mid], x),
			})
			lo = mid + 1
		}
	}
	return append(steps, Step{
		Left: lo, Right: hi, Mid: lo, Relation: Final,
		Explanation: fmt.Sprintf("First occurrence = %d.", res), Done: true, Payload: res,
	})
}

func TraceLast[T constraints.Ordered](s []T, x T) []Step {
	var steps []Step
	lo, hi := 0, len(s)-1
	res := -1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		switch {
		case s[mid] == x:
			res = mid
			steps = append(steps, Step{
				Left: lo, Right: hi, Mid: mid, Relation: Equal,
				Explanation: fmt.Sprintf("Found %v at %d, keep looking further RIGHT.", x, mid),
			})
			lo = mid + 1
		case s[mid] < x:
			steps = append(steps, Step{
				Left: lo, Right: hi, Mid: mid, Relation: LessEqual,
				Explanation: fmt.Sprintf("%v <= %v without equality, go RIGHT.", s[mid], x),
			})
			lo = mid + 1
		default:
			steps = append(steps, Step{
				Left: lo, Right: hi, Mid: mid, Relation: Greater,
				Explanation: fmt.Sprintf("%v > %v, go LEFT.", s[mid], x),
			})
			hi = mid - 1
		}
	}
	return append(steps, Step{
		Left: lo, Right: hi, Mid: hi, Relation: Final,
		Explanation: fmt.Sprintf("Last occurrence = %d.", res), Done: true, Payload: res,
	})
}

// TraceBisectLeft reports Right as the last index of the half-open
// segment, so markers line up with the inclusive traces.
func TraceBisectLeft[T constraints.Ordered](s []T, x T) []Step {
	var steps []Step
	lo, hi := 0, len(s)
	for lo < hi {
		mid := lo + (hi-lo)/2
		if s[mid] < x {
			steps = append(steps, Step{
				Left: lo, Right: hi - 1, Mid: mid, Relation: Less,
				Explanation: fmt.Sprintf("%v < %v, left = mid+1 = %d.", s[mid], x, mid+1),
			})
			lo = mid + 1
		} else {
			steps = append(steps, Step{
				Left: lo, Right: hi - 1, Mid: mid, Relation: GreaterEqual,
				Explanation: fmt.Sprintf("%v >= %v, right = mid = %d.", s[mid], x, mid),
			})
			hi = mid
		}
	}
	return append(steps, Step{
		Left: lo, Right: hi - 1, Mid: lo, Relation: Final,
		Explanation: fmt.Sprintf("Insertion point (left) = %d.", lo), Done: true, Payload: lo,
	})
}

func TraceBisectRight[T constraints.Ordered](s []T, x T) []Step {
	var steps []Step
	lo, hi := 0, len(s)
	for lo < hi {
		mid := lo + (hi-lo)/2
		if s[mid] <= x {
			steps = append(steps, Step{
				Left: lo, Right: hi - 1, Mid: mid, Relation: LessEqual,
				Explanation: fmt.Sprintf("%v <= %v, left = mid+1 = %d.", s[mid], x, mid+1),
			})
			lo = mid + 1
		} else {
			steps = append(steps, Step{
				Left: lo, Right: hi - 1, Mid: mid, Relation: Greater,
				Explanation: fmt.Sprintf("%v > %v, right = mid = %d.", s[mid], x, mid),
			})
			hi = mid
		}
	}
	return append(steps, Step{
		Left: lo, Right: hi - 1, Mid: lo, Relation: Final,
		Explanation: fmt.Sprintf("Insertion point (right) = %d.", lo), Done: true, Payload: lo,
	})
}

// Marker labels index i with the L, M and R pointers it carries.
func Marker(i int, st Step) string {
	var m []byte
	if i == st.Left {
		m = append(m, 'L')
	}
	if i == st.Mid {
		m = append(m, 'M')
	}
	if i == st.Right {
		m = append(m, 'R')
	}
	return string(m)
}
