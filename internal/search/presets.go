package search

import "sort"

// Presets is the bank of sorted lists offered by the CLI.
var Presets = map[string][]int{
	"notes":       {3, 5, 9, 9, 10, 12, 12, 14, 17, 18},
	"evens":       rangeStep(0, 52, 2),
	"squares":     squares(20),
	"progression": rangeStep(10, 110, 5),
	"doubles":     {1, 1, 2, 2, 2, 3, 3, 5, 8, 8, 13, 21},
}

func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func rangeStep(from, to, step int) []int {
	var out []int
	for v := from; v < to; v += step {
		out = append(out, v)
	}
	return out
}

func squares(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = (i + 1) * (i + 1)
	}
	return out
}
