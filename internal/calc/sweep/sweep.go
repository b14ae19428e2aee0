package sweep

import (
	"JTSim/internal/calc/jt"
	"JTSim/internal/fluids"
	"JTSim/internal/thermo"
)

// Input fixes the inlet and varies the outlet pressure, producing the
// throttling curve of the valve. Either Points or the Start/End/Steps range
// form is given; Points wins when both are set.
type Input struct {
	Fluid            string  `json:"fluid"`
	InletTempK       float64 `json:"inlet_temp_k"`
	InletPressureBar float64 `json:"inlet_pressure_bar"`

	OutletPressuresBar []float64 `json:"outlet_pressures_bar,omitempty"`

	StartBar float64 `json:"start_bar,omitempty"`
	EndBar   float64 `json:"end_bar,omitempty"`
	Steps    int     `json:"steps,omitempty"`
}

// Point is the outlet state at one sweep pressure. A per-point convergence
// failure fills Error and leaves the rest zero; it does not abort the sweep.
type Point struct {
	OutletPressureBar float64 `json:"outlet_pressure_bar"`
	OutletTempK       float64 `json:"outlet_temp_k"`
	OutletPhase       string  `json:"outlet_phase"`
	OutletDensityKgM3 float64 `json:"outlet_density_kg_m3"`
	OutletCpJMolK     float64 `json:"outlet_cp_j_mol_k"`
	VaporMoleFraction float64 `json:"vapor_mole_fraction,omitempty"`
	VaporFractionSet  bool    `json:"vapor_fraction_set"`
	Error             string  `json:"error,omitempty"`
}

type Result struct {
	Fluid             string  `json:"fluid"`
	InletTempK        float64 `json:"inlet_temp_k"`
	InletPressureBar  float64 `json:"inlet_pressure_bar"`
	InletEnthalpyJMol float64 `json:"inlet_enthalpy_j_mol"`
	Points            []Point `json:"points"`
}

// Pressures expands the range form and validates every point against the
// inlet, reusing the single-calculation validator per point.
func (in Input) Pressures() ([]float64, error) {
	pts := in.OutletPressuresBar
	if len(pts) == 0 {
		if in.Steps < 2 {
			return nil, jt.NewInputError("steps", "a range sweep needs at least 2 steps")
		}
		step := (in.EndBar - in.StartBar) / float64(in.Steps-1)
		for i := 0; i < in.Steps; i++ {
			pts = append(pts, in.StartBar+float64(i)*step)
		}
	}
	for _, p := range pts {
		if err := jt.Validate(jt.Input{
			Fluid:             in.Fluid,
			InletTempK:        in.InletTempK,
			InletPressureBar:  in.InletPressureBar,
			OutletPressureBar: p,
		}); err != nil {
			return nil, err
		}
	}
	return pts, nil
}

// Calculate flashes the inlet once, then isenthalpically flashes every sweep
// pressure against the inlet enthalpy.
func Calculate(in Input) (Result, error) {
	pts, err := in.Pressures()
	if err != nil {
		return Result{}, err
	}

	fluid, err := fluids.Resolve(in.Fluid)
	if err != nil {
		return Result{}, err
	}

	flasher := thermo.NewFlasher(fluid)
	inlet, err := flasher.FlashTP(in.InletTempK, jt.BarToPa(in.InletPressureBar))
	if err != nil {
		return Result{}, err
	}

	out := Result{
		Fluid:             fluid.Name,
		InletTempK:        in.InletTempK,
		InletPressureBar:  in.InletPressureBar,
		InletEnthalpyJMol: inlet.HJmol,
		Points:            make([]Point, 0, len(pts)),
	}
	for _, p := range pts {
		out.Points = append(out.Points, FlashPoint(flasher, p, inlet.HJmol))
	}
	return out, nil
}

// FlashPoint computes one sweep point; errors are recorded, not returned.
func FlashPoint(flasher *thermo.Flasher, pBar, hJmol float64) Point {
	st, err := flasher.FlashPH(jt.BarToPa(pBar), hJmol)
	if err != nil {
		return Point{OutletPressureBar: pBar, Error: err.Error()}
	}
	return Point{
		OutletPressureBar: pBar,
		OutletTempK:       st.T,
		OutletPhase:       jt.PhaseLabel(st.Phase),
		OutletDensityKgM3: st.RhoMass,
		OutletCpJMolK:     st.CpJmolK,
		VaporMoleFraction: st.VaporFraction,
		VaporFractionSet:  st.VaporFractionSet,
	}
}
