// Package viz renders bisection runs in the terminal.
//
// Static output:
//
//   - [PlotFunction]: f over an interval on a Braille [Canvas], with the
//     bracket and midpoint marked
//   - [ConvergencePlot]: log10 half-width and residual per iteration
//
// Interactive bubbletea models:
//
//   - [Stepper]: one bisection iteration per key press
//   - [SearchModel]: replay of a traced discrete search
//
// # Key Bindings
//
//	Enter - next step
//	A     - run to the end (Stepper)
//	Z     - zoom on the current bracket (Stepper)
//	B     - previous step (SearchModel)
//	Q     - quit
package viz
