package config

import (
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/bisect/internal/apperrors"
	"github.com/san-kum/bisect/internal/bisect"
)

const (
	DefaultFunction  = "sqrt2"
	DefaultPrecision = 256
	DefaultDataDir   = "./runs"
	DefaultLogLevel  = "warn"
	DefaultTheme     = "default"
)

// Config describes one solve. Expr, when set, takes precedence over
// Function; a nil Low or High is taken from the function's own bracket.
// Precision is the mantissa size used by arbitrary precision runs.
type Config struct {
	Function      string   `yaml:"function"`
	Expr          string   `yaml:"expr,omitempty"`
	Low           *float64 `yaml:"low,omitempty"`
	High          *float64 `yaml:"high,omitempty"`
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
	Precision     uint    `yaml:"precision"`
	DataDir       string  `yaml:"data_dir"`
	LogLevel      string  `yaml:"log_level"`
	Theme         string  `yaml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		Function:      DefaultFunction,
		Tolerance:     bisect.DefaultTolerance,
		MaxIterations: bisect.DefaultMaxIterations,
		Precision:     DefaultPrecision,
		DataDir:       DefaultDataDir,
		LogLevel:      DefaultLogLevel,
		Theme:         DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.WrapConfigError(err, "read config %s", path)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.WrapConfigError(err, "parse config %s", path)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Float returns a pointer to v, for setting Low and High in literals.
func Float(v float64) *float64 { return &v }

// HasBracket reports whether both bounds were configured.
func (c *Config) HasBracket() bool {
	return c.Low != nil && c.High != nil
}

// Bracket returns the configured bounds, filling each missing one from
// the defaults.
func (c *Config) Bracket(defLow, defHigh float64) (float64, float64) {
	lo, hi := defLow, defHigh
	if c.Low != nil {
		lo = *c.Low
	}
	if c.High != nil {
		hi = *c.High
	}
	return lo, hi
}

func (c *Config) Validate() error {
	if c.Function == "" && c.Expr == "" {
		return apperrors.NewValidationError("function", "either a function name or an expression is required", nil)
	}
	if !(c.Tolerance > 0) || math.IsInf(c.Tolerance, 0) {
		return apperrors.NewValidationError("tolerance", "must be a positive finite number", c.Tolerance)
	}
	if c.MaxIterations <= 0 {
		return apperrors.NewValidationError("max_iterations", "must be positive", c.MaxIterations)
	}
	if c.HasBracket() && !(*c.Low < *c.High) {
		return apperrors.NewValidationError("low", "must be less than high", *c.Low)
	}
	if c.Precision < 53 {
		return apperrors.NewValidationError("precision", "must be at least 53 bits", c.Precision)
	}
	return nil
}

func (c *Config) Solver() bisect.Config {
	return bisect.Config{Tolerance: c.Tolerance, MaxIterations: c.MaxIterations}
}

// Merge copies the non-zero fields of p into c.
func (c *Config) Merge(p *Config) {
	if p == nil {
		return
	}
	if p.Function != "" {
		c.Function = p.Function
	}
	if p.Expr != "" {
		c.Expr = p.Expr
	}
	if p.Low != nil {
		c.Low = Float(*p.Low)
	}
	if p.High != nil {
		c.High = Float(*p.High)
	}
	if p.Tolerance != 0 {
		c.Tolerance = p.Tolerance
	}
	if p.MaxIterations != 0 {
		c.MaxIterations = p.MaxIterations
	}
	if p.Precision != 0 {
		c.Precision = p.Precision
	}
}
