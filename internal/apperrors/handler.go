package apperrors

import (
	"errors"
	"fmt"
	"io"

	"github.com/san-kum/bisect/internal/bisect"
	"github.com/san-kum/bisect/internal/precise"
)

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	var cfgErr ConfigError
	var valErr ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, bisect.ErrNoSignChange):
		return ExitNoSignChange
	case errors.Is(err, bisect.ErrMaxIterations):
		return ExitMaxIterations
	case errors.As(err, &cfgErr), errors.As(err, &valErr):
		return ExitErrorConfig
	case errors.Is(err, bisect.ErrInvalidInterval),
		errors.Is(err, bisect.ErrInvalidTolerance),
		errors.Is(err, bisect.ErrInvalidMaxIterations),
		errors.Is(err, bisect.ErrNilFunc),
		errors.Is(err, precise.ErrInvalidPrecision):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}

// Handle prints a status line naming the failure kind and returns the
// matching exit code.
func Handle(err error, out io.Writer) int {
	code := ExitCode(err)
	switch code {
	case ExitSuccess:
		return code
	case ExitNoSignChange:
		fmt.Fprintf(out, "Status: Failure (no sign change). f(low) and f(high) have the same sign: %v\n", err)
	case ExitMaxIterations:
		fmt.Fprintf(out, "Status: Failure (max iterations). The solver did not converge: %v\n", err)
		var se *bisect.SolveError
		if errors.As(err, &se) {
			fmt.Fprintf(out, "Best estimate (unconverged): %.15g\n", se.Best.Mid)
		}
	case ExitErrorConfig:
		fmt.Fprintf(out, "Status: Invalid input. %v\n", err)
	default:
		fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	}
	return code
}
