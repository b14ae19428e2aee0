package jt

import (
	"math"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"JTSim/internal/fluids"
	"JTSim/internal/thermo"
)

type Input struct {
	Fluid             string  `json:"fluid"`
	InletTempK        float64 `json:"inlet_temp_k"`
	InletPressureBar  float64 `json:"inlet_pressure_bar"`
	OutletPressureBar float64 `json:"outlet_pressure_bar"`
}

type Result struct {
	Fluid             string  `json:"fluid"`
	InletTempK        float64 `json:"inlet_temp_k"`
	InletPressureBar  float64 `json:"inlet_pressure_bar"`
	OutletPressureBar float64 `json:"outlet_pressure_bar"`

	InletEnthalpyJMol float64 `json:"inlet_enthalpy_j_mol"`

	OutletTempK       float64 `json:"outlet_temp_k"`
	OutletPhase       string  `json:"outlet_phase"`
	OutletDensityKgM3 float64 `json:"outlet_density_kg_m3"`
	OutletCpJMolK     float64 `json:"outlet_cp_j_mol_k"`

	VaporMoleFraction float64 `json:"vapor_mole_fraction,omitempty"`
	VaporFractionSet  bool    `json:"vapor_fraction_set"`

	Report            string `json:"report"`
	OutletTempDisplay string `json:"outlet_temp_display"`
}

// BarToPa converts a display-unit pressure to solver units.
func BarToPa(bar float64) float64 { return bar * 1e5 }

// PaToBar converts a solver-unit pressure back to display units.
func PaToBar(pa float64) float64 { return pa / 1e5 }

var phaseLabels = map[thermo.Phase]string{
	thermo.PhaseVapor:       "Gas",
	thermo.PhaseLiquid:      "Liquid",
	thermo.PhaseVaporLiquid: "Liquid-Vapor",
}

// PhaseLabel maps a solver phase designation to its display label.
func PhaseLabel(p thermo.Phase) string {
	if label, ok := phaseLabels[p]; ok {
		return label
	}
	return string(p)
}

// Validate range-checks an already-parsed input. Failures carry the field
// name; nothing touches the solver after a failure.
func Validate(in Input) error {
	if strings.TrimSpace(in.Fluid) == "" {
		return invalidf("fluid", "fluid selection required")
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"inlet_temp_k", in.InletTempK},
		{"inlet_pressure_bar", in.InletPressureBar},
		{"outlet_pressure_bar", in.OutletPressureBar},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return invalidf(f.name, "value must be a finite number")
		}
		if f.value <= 0 {
			return invalidf(f.name, "temperature and pressures must be positive")
		}
	}
	if in.OutletPressureBar >= in.InletPressureBar {
		return invalidf("outlet_pressure_bar",
			"inlet pressure must be greater than outlet pressure for expansion")
	}
	return nil
}

// ParseInput builds an Input from raw text fields (the CLI path). Non-numeric
// text fails with InputError before any range check.
func ParseInput(fluid, tempRaw, pInRaw, pOutRaw string) (Input, error) {
	in := Input{Fluid: strings.TrimSpace(fluid)}
	for _, f := range []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"inlet_temp_k", tempRaw, &in.InletTempK},
		{"inlet_pressure_bar", pInRaw, &in.InletPressureBar},
		{"outlet_pressure_bar", pOutRaw, &in.OutletPressureBar},
	} {
		v, err := strconv.ParseFloat(strings.TrimSpace(f.raw), 64)
		if err != nil {
			return Input{}, invalidf(f.name, "please enter a valid numerical value, got %q", f.raw)
		}
		*f.dst = v
	}
	return in, Validate(in)
}

// Calculate runs the throttling workflow: validate, normalize units, resolve
// the fluid, flash the inlet for its enthalpy, then flash the outlet at that
// enthalpy. Only InputError, UnknownFluidError and ConvergenceError escape.
func Calculate(in Input) (Result, error) {
	if err := Validate(in); err != nil {
		return Result{}, err
	}

	fluid, err := fluids.Resolve(in.Fluid)
	if err != nil {
		return Result{}, err
	}

	pIn := BarToPa(in.InletPressureBar)
	pOut := BarToPa(in.OutletPressureBar)

	flasher := thermo.NewFlasher(fluid)

	inlet, err := flasher.FlashTP(in.InletTempK, pIn)
	if err != nil {
		return Result{}, err
	}

	outlet, err := flasher.FlashPH(pOut, inlet.HJmol)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Fluid:             fluid.Name,
		InletTempK:        in.InletTempK,
		InletPressureBar:  in.InletPressureBar,
		OutletPressureBar: in.OutletPressureBar,
		InletEnthalpyJMol: inlet.HJmol,
		OutletTempK:       outlet.T,
		OutletPhase:       PhaseLabel(outlet.Phase),
		OutletDensityKgM3: outlet.RhoMass,
		OutletCpJMolK:     outlet.CpJmolK,
		VaporMoleFraction: outlet.VaporFraction,
		VaporFractionSet:  outlet.VaporFractionSet,
	}
	res.Report = formatReport(res)
	res.OutletTempDisplay = formatOutletTemp(res.OutletTempK)

	log.WithFields(log.Fields{
		"fluid": fluid.Name,
		"t_in":  in.InletTempK,
		"p_in":  in.InletPressureBar,
		"p_out": in.OutletPressureBar,
		"t_out": outlet.T,
		"phase": res.OutletPhase,
	}).Debug("jt calculation done")

	return res, nil
}
