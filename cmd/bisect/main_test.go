package main

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/bisect/internal/apperrors"
	"github.com/san-kum/bisect/internal/bisect"
	"github.com/san-kum/bisect/internal/config"
	"github.com/san-kum/bisect/internal/search"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TOLERANCE", "MAX_ITERATIONS", "PRECISION", "LOG_LEVEL", "DATA_DIR", "THEME"} {
		t.Setenv(config.EnvPrefix+key, "")
	}
}

// parseCmd builds a command carrying the solve, config and precision flags
// and parses argv, resetting the package-level flag variables.
func parseCmd(t *testing.T, argv ...string) (*cobra.Command, []string) {
	t.Helper()
	clearEnv(t)

	cmd := &cobra.Command{Use: "solve"}
	addSolveFlags(cmd)
	addConfigFlags(cmd)
	addPreciseFlags(cmd)
	cmd.Flags().StringVar(&themeName, "theme", config.DefaultTheme, "")
	require.NoError(t, cmd.ParseFlags(argv))
	return cmd, cmd.Flags().Args()
}

func TestResolveBracket(t *testing.T) {
	tests := []struct {
		name     string
		argv     []string
		wantLow  float64
		wantHigh float64
	}{
		{"built-in bracket", []string{"cos"}, 0, 3},
		{"low only", []string{"cos", "--low=-1"}, -1, 3},
		{"low only inside", []string{"cubic", "--low=1.2"}, 1.2, 2},
		{"high only", []string{"cubic", "--high=1.8"}, 1, 1.8},
		{"explicit zero", []string{"cos", "--low=0"}, 0, 3},
		{"both", []string{"cubic", "--low=-10", "--high=10"}, -10, 10},
		{"preset", []string{"cubic", "--preset=wide"}, -10, 10},
		{"flag over preset", []string{"cubic", "--preset=wide", "--high=5"}, -10, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := parseCmd(t, tt.argv...)
			cfg, err := buildConfig(cmd, args)
			require.NoError(t, err)

			_, f, lo, hi, err := resolve(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLow, lo)
			assert.Equal(t, tt.wantHigh, hi)
			assert.NotNil(t, f)
		})
	}
}

func TestResolveOneBoundStillSolves(t *testing.T) {
	cmd, args := parseCmd(t, "cos", "--low=-1")
	cfg, err := buildConfig(cmd, args)
	require.NoError(t, err)
	_, f, lo, hi, err := resolve(cfg)
	require.NoError(t, err)

	res, err := bisect.Solve(f, lo, hi, cfg.Solver())
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, res.Root, 1e-5)
}

func TestResolveExpression(t *testing.T) {
	cmd, args := parseCmd(t, "--expr=x^2 - 2", "--low=1", "--high=2")
	cfg, err := buildConfig(cmd, args)
	require.NoError(t, err)

	name, f, lo, hi, err := resolve(cfg)
	require.NoError(t, err)
	assert.Empty(t, name)
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 2.0, hi)
	assert.InDelta(t, 2.0, f(2), 1e-12)
}

func TestResolveRejects(t *testing.T) {
	tests := []struct {
		name  string
		argv  []string
		field string
	}{
		{"low past built-in high", []string{"cubic", "--low=3"}, "low"},
		{"expression with one bound", []string{"--expr=x - 1", "--low=0"}, "low"},
		{"reversed bounds", []string{"cos", "--low=2", "--high=1"}, "low"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := parseCmd(t, tt.argv...)
			cfg, err := buildConfig(cmd, args)
			if err == nil {
				_, _, _, _, err = resolve(cfg)
			}
			var verr apperrors.ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, apperrors.ExitErrorConfig, apperrors.ExitCode(err))
		})
	}

	cmd, args := parseCmd(t, "nosuch")
	cfg, err := buildConfig(cmd, args)
	require.NoError(t, err)
	_, _, _, _, err = resolve(cfg)
	var cerr apperrors.ConfigError
	assert.True(t, errors.As(err, &cerr), "expected ConfigError, got %v", err)
}

func TestPreciseHonoursConfigPrecision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "precise.yaml")
	require.NoError(t, os.WriteFile(path, []byte("function: ln2\nprecision: 128\n"), 0644))

	cmd, args := parseCmd(t, "--config="+path)
	cfg, err := buildConfig(cmd, args)
	require.NoError(t, err)
	def, lo, hi, pcfg, err := preciseSetup(cfg)
	require.NoError(t, err)
	assert.Equal(t, "ln2", def.Name)
	assert.Equal(t, uint(128), pcfg.Prec)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)

	cmd, args = parseCmd(t, "--config="+path, "--prec=512")
	cfg, err = buildConfig(cmd, args)
	require.NoError(t, err)
	_, _, _, pcfg, err = preciseSetup(cfg)
	require.NoError(t, err)
	assert.Equal(t, uint(512), pcfg.Prec)

	cmd, args = parseCmd(t, "e")
	t.Setenv("BISECT_PRECISION", "384")
	cfg, err = buildConfig(cmd, args)
	require.NoError(t, err)
	_, _, _, pcfg, err = preciseSetup(cfg)
	require.NoError(t, err)
	assert.Equal(t, uint(384), pcfg.Prec)
}

func TestPreciseRejectsLowPrecision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "low.yaml")
	require.NoError(t, os.WriteFile(path, []byte("function: sqrt2\nprecision: 24\n"), 0644))

	cmd, args := parseCmd(t, "--config="+path)
	_, err := buildConfig(cmd, args)
	assert.Equal(t, apperrors.ExitErrorConfig, apperrors.ExitCode(err))
}

func TestSearchValuesAreSorted(t *testing.T) {
	values, err := searchValues("notes", "9, 3,5,3")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 3, 5, 9}, values)

	values, err = searchValues("notes", "")
	require.NoError(t, err)
	assert.Equal(t, search.Presets["notes"], values)
	values[0] = -1
	assert.NotEqual(t, -1, search.Presets["notes"][0], "preset must not be aliased")

	_, err = searchValues("nosuch", "")
	assert.Error(t, err)

	_, err = searchValues("notes", "1,two")
	var verr apperrors.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestApplyFlagsTheme(t *testing.T) {
	cmd, _ := parseCmd(t)
	t.Setenv("BISECT_THEME", "matrix")
	cfg := config.DefaultConfig()
	applyFlags(cmd, cfg)
	assert.Equal(t, "matrix", cfg.Theme)

	cmd, _ = parseCmd(t, "--theme=chalk")
	t.Setenv("BISECT_THEME", "matrix")
	cfg = config.DefaultConfig()
	applyFlags(cmd, cfg)
	assert.Equal(t, "chalk", cfg.Theme)
}
