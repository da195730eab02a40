package config

import "sort"

var Presets = map[string]map[string]*Config{
	"sqrt2": {
		"coarse":     {Function: "sqrt2", Low: Float(0), High: Float(2), Tolerance: 1e-3, MaxIterations: 20},
		"fine":       {Function: "sqrt2", Low: Float(0), High: Float(2), Tolerance: 1e-12, MaxIterations: 100},
		"exhaustive": {Function: "sqrt2", Low: Float(1), High: Float(2), Tolerance: 1e-300, MaxIterations: 1100},
	},
	"cos": {
		"textbook": {Function: "cos", Low: Float(0), High: Float(3), Tolerance: 1e-4, MaxIterations: 100},
		"fine":     {Function: "cos", Low: Float(1), High: Float(2), Tolerance: 1e-12, MaxIterations: 100},
	},
	"cubic": {
		"coarse": {Function: "cubic", Low: Float(1), High: Float(2), Tolerance: 1e-3, MaxIterations: 20},
		"fine":   {Function: "cubic", Low: Float(1), High: Float(2), Tolerance: 1e-12, MaxIterations: 100},
		"wide":   {Function: "cubic", Low: Float(-10), High: Float(10), Tolerance: 1e-9, MaxIterations: 100},
	},
	"dottie": {
		"fine": {Function: "dottie", Low: Float(0), High: Float(1), Tolerance: 1e-12, MaxIterations: 100},
	},
	"omega": {
		"fine": {Function: "omega", Low: Float(0), High: Float(1), Tolerance: 1e-12, MaxIterations: 100},
	},
	"kepler": {
		"coarse": {Function: "kepler", Low: Float(0), High: Float(2), Tolerance: 1e-3, MaxIterations: 20},
		"fine":   {Function: "kepler", Low: Float(0), High: Float(2), Tolerance: 1e-12, MaxIterations: 100},
	},
	"noroot": {
		"same-sign": {Function: "noroot", Low: Float(1), High: Float(2), Tolerance: 1e-6, MaxIterations: 100},
	},
}

func GetPreset(function, preset string) *Config {
	fnPresets, ok := Presets[function]
	if !ok {
		return nil
	}
	cfg, ok := fnPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(function string) []string {
	fnPresets, ok := Presets[function]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(fnPresets))
	for name := range fnPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
