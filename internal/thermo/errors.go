package thermo

import (
	"errors"
	"fmt"
)

// ErrNoConvergence — the flash could not find a physically valid state.
var ErrNoConvergence = errors.New("flash did not converge")

// ConvergenceError reports the conditions a flash was attempted at, so the
// caller can show the user what to adjust.
type ConvergenceError struct {
	Op    string // "TP flash", "PH flash", "saturation pressure", ...
	Fluid string
	T     float64 // K, 0 when not part of the specification
	P     float64 // Pa
	H     float64 // J/mol, 0 when not part of the specification
}

func (e *ConvergenceError) Error() string {
	switch e.Op {
	case "PH flash":
		return fmt.Sprintf("%s failed for %s at P=%.4g Pa, H=%.2f J/mol", e.Op, e.Fluid, e.P, e.H)
	default:
		return fmt.Sprintf("%s failed for %s at T=%.2f K, P=%.4g Pa", e.Op, e.Fluid, e.T, e.P)
	}
}

func (e *ConvergenceError) Unwrap() error { return ErrNoConvergence }
