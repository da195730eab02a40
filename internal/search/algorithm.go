package search

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// Algorithm selects a query. The numbering is stable and is what the CLI
// accepts.
type Algorithm int

const (
	AlgoFind Algorithm = iota + 1
	AlgoFirst
	AlgoLast
	AlgoBisectLeft
	AlgoBisectRight
	AlgoCount
	AlgoRange
)

var algorithmNames = map[Algorithm]string{
	AlgoFind:        "find",
	AlgoFirst:       "first",
	AlgoLast:        "last",
	AlgoBisectLeft:  "bisect-left",
	AlgoBisectRight: "bisect-right",
	AlgoCount:       "count",
	AlgoRange:       "range",
}

var algorithmDescriptions = map[Algorithm]string{
	AlgoFind:        "presence (an index or -1)",
	AlgoFirst:       "first occurrence (lower bound == x)",
	AlgoLast:        "last occurrence (upper bound - 1 == x)",
	AlgoBisectLeft:  "left insertion point",
	AlgoBisectRight: "right insertion point",
	AlgoCount:       "count occurrences",
	AlgoRange:       "range [first, last]",
}

func Algorithms() []Algorithm {
	return []Algorithm{AlgoFind, AlgoFirst, AlgoLast, AlgoBisectLeft, AlgoBisectRight, AlgoCount, AlgoRange}
}

func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return fmt.Sprintf("algorithm(%d)", int(a))
}

func (a Algorithm) Description() string {
	return algorithmDescriptions[a]
}

// Insertion reports whether the algorithm answers with an insertion point
// rather than an index.
func (a Algorithm) Insertion() bool {
	return a == AlgoBisectLeft || a == AlgoBisectRight
}

// ParseAlgorithm accepts either the menu number or the name.
func ParseAlgorithm(s string) (Algorithm, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		a := Algorithm(n)
		if _, ok := algorithmNames[a]; ok {
			return a, nil
		}
		return 0, fmt.Errorf("unknown algorithm: %d (want 1-%d)", n, len(algorithmNames))
	}
	for a, name := range algorithmNames {
		if name == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown algorithm: %s", s)
}

// Phase is one traced search within a report. Count and Range run two.
type Phase struct {
	Title string `json:"title"`
	Steps []Step `json:"steps"`
}

type Report struct {
	Algorithm Algorithm `json:"algorithm"`
	Phases    []Phase   `json:"phases"`
	// Result is the index or insertion point; Count holds the number of
	// occurrences for AlgoCount.
	Result int `json:"result"`
	First  int `json:"first"`
	Last   int `json:"last"`
	Count  int `json:"count"`
}

// Summary is a one-line human readable answer.
func (r Report) Summary() string {
	switch r.Algorithm {
	case AlgoCount:
		if r.First < 0 {
			return "absent: 0 occurrences, range [-1, -1]"
		}
		return fmt.Sprintf("range [%d, %d]: %d occurrences", r.First, r.Last, r.Count)
	case AlgoRange:
		return fmt.Sprintf("range [%d, %d]", r.First, r.Last)
	case AlgoBisectLeft, AlgoBisectRight:
		return fmt.Sprintf("insertion point %d", r.Result)
	default:
		return fmt.Sprintf("index %d", r.Result)
	}
}

// Run executes a traced query.
func Run[T constraints.Ordered](a Algorithm, s []T, x T) (Report, error) {
	r := Report{Algorithm: a, First: -1, Last: -1}
	switch a {
	case AlgoFind:
		r.addPhase(fmt.Sprintf("presence of %v", x), TraceFind(s, x))
	case AlgoFirst:
		r.addPhase(fmt.Sprintf("first occurrence of %v", x), TraceFirst(s, x))
	case AlgoLast:
		r.addPhase(fmt.Sprintf("last occurrence of %v", x), TraceLast(s, x))
	case AlgoBisectLeft:
		r.addPhase(fmt.Sprintf("bisect-left for %v", x), TraceBisectLeft(s, x))
	case AlgoBisectRight:
		r.addPhase(fmt.Sprintf("bisect-right for %v", x), TraceBisectRight(s, x))
	case AlgoCount, AlgoRange:
		first := TraceFirst(s, x)
		last := TraceLast(s, x)
		r.addPhase(fmt.Sprintf("%s of %v (first)", a, x), first)
		r.addPhase(fmt.Sprintf("%s of %v (last)", a, x), last)
		r.First, r.Last = Answer(first), Answer(last)
		if r.First >= 0 {
			r.Count = r.Last - r.First + 1
		} else {
			r.Last = -1
		}
		r.Result = r.First
		if a == AlgoCount {
			r.Result = r.Count
		}
		return r, nil
	default:
		return r, fmt.Errorf("unknown algorithm: %d", int(a))
	}
	r.Result = Answer(r.Phases[0].Steps)
	return r, nil
}

func (r *Report) addPhase(title string, steps []Step) {
	r.Phases = append(r.Phases, Phase{Title: title, Steps: steps})
}
