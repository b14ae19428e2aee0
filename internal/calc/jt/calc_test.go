package jt

import (
	"errors"
	"math"
	"strings"
	"testing"

	"JTSim/internal/fluids"
	"JTSim/internal/thermo"
)

func TestValidate(t *testing.T) {
	valid := Input{Fluid: "methane", InletTempK: 150, InletPressureBar: 50, OutletPressureBar: 1}
	if err := Validate(valid); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		in   Input
	}{
		{"negative temperature", Input{Fluid: "methane", InletTempK: -10, InletPressureBar: 50, OutletPressureBar: 1}},
		{"zero inlet pressure", Input{Fluid: "methane", InletTempK: 150, InletPressureBar: 0, OutletPressureBar: 1}},
		{"zero outlet pressure", Input{Fluid: "methane", InletTempK: 150, InletPressureBar: 50, OutletPressureBar: 0}},
		{"equal pressures", Input{Fluid: "methane", InletTempK: 150, InletPressureBar: 50, OutletPressureBar: 50}},
		{"outlet above inlet", Input{Fluid: "methane", InletTempK: 150, InletPressureBar: 50, OutletPressureBar: 60}},
		{"nan temperature", Input{Fluid: "methane", InletTempK: math.NaN(), InletPressureBar: 50, OutletPressureBar: 1}},
		{"empty fluid", Input{InletTempK: 150, InletPressureBar: 50, OutletPressureBar: 1}},
	}
	for _, tc := range cases {
		if err := Validate(tc.in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}

	// Slightly below inlet must pass the validator (the solver may still
	// reject it later).
	almost := Input{Fluid: "methane", InletTempK: 150, InletPressureBar: 50, OutletPressureBar: 49.999}
	if err := Validate(almost); err != nil {
		t.Errorf("P_out slightly below P_in must be accepted: %v", err)
	}
}

func TestParseInputNonNumeric(t *testing.T) {
	_, err := ParseInput("methane", "abc", "50", "1")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	var ie *InputError
	if !errors.As(err, &ie) || ie.Field != "inlet_temp_k" {
		t.Errorf("error should name the field, got %v", err)
	}
}

func TestBarPaRoundTrip(t *testing.T) {
	for _, bar := range []float64{0.001, 1, 50, 221.2} {
		back := PaToBar(BarToPa(bar))
		if math.Abs(back-bar) > 1e-12*bar {
			t.Errorf("round trip %v -> %v", bar, back)
		}
	}
}

// The original demo conditions: liquid methane at 150 K / 50 bar throttled
// to 1 bar flashes into a two-phase mixture at the 1 bar boiling point.
func TestCalculateMethaneFlashing(t *testing.T) {
	res, err := Calculate(Input{Fluid: "methane", InletTempK: 150, InletPressureBar: 50, OutletPressureBar: 1})
	if err != nil {
		t.Fatal(err)
	}
	if res.OutletTempK >= 150 {
		t.Errorf("no Joule-Thomson cooling: T_out = %.2f K", res.OutletTempK)
	}
	if res.OutletTempK < 100 || res.OutletTempK > 120 {
		t.Errorf("T_out = %.2f K, want near the 1 bar boiling point (111.7 K)", res.OutletTempK)
	}
	if res.OutletPhase != "Liquid-Vapor" {
		t.Errorf("phase = %s, want Liquid-Vapor", res.OutletPhase)
	}
	if !res.VaporFractionSet || res.VaporMoleFraction <= 0 || res.VaporMoleFraction >= 1 {
		t.Errorf("vapor fraction = %v (set=%v), want inside (0,1)",
			res.VaporMoleFraction, res.VaporFractionSet)
	}
	if !strings.Contains(res.Report, "Vapor mole fraction") {
		t.Error("two-phase report must show the vapor mole fraction")
	}
	if !strings.HasSuffix(res.OutletTempDisplay, " K") {
		t.Errorf("compact display = %q", res.OutletTempDisplay)
	}
}

// Gas-phase throttling: warm methane stays vapor and cools.
func TestCalculateMethaneGasCooling(t *testing.T) {
	res, err := Calculate(Input{Fluid: "methane", InletTempK: 250, InletPressureBar: 50, OutletPressureBar: 1})
	if err != nil {
		t.Fatal(err)
	}
	if res.OutletPhase != "Gas" {
		t.Errorf("phase = %s, want Gas", res.OutletPhase)
	}
	if res.OutletTempK >= 250 || res.OutletTempK < 200 {
		t.Errorf("T_out = %.2f K, want moderate cooling below 250", res.OutletTempK)
	}
	if res.VaporFractionSet {
		t.Error("single-phase result must not set a vapor fraction")
	}
	if res.OutletDensityKgM3 <= 0 || res.OutletCpJMolK <= 0 {
		t.Errorf("unphysical outlet properties: rho=%v cp=%v",
			res.OutletDensityKgM3, res.OutletCpJMolK)
	}
}

// Carbon dioxide is a strong Joule-Thomson cooler near ambient conditions.
func TestCalculateCO2Cooling(t *testing.T) {
	res, err := Calculate(Input{Fluid: "carbon dioxide", InletTempK: 300, InletPressureBar: 20, OutletPressureBar: 1})
	if err != nil {
		t.Fatal(err)
	}
	if res.OutletPhase != "Gas" {
		t.Errorf("phase = %s, want Gas", res.OutletPhase)
	}
	if res.OutletTempK >= 299 || res.OutletTempK < 250 {
		t.Errorf("T_out = %.2f K, want moderate cooling below 300", res.OutletTempK)
	}
}

func TestCalculateUnknownFluid(t *testing.T) {
	_, err := Calculate(Input{Fluid: "unobtainium", InletTempK: 150, InletPressureBar: 50, OutletPressureBar: 1})
	if !errors.Is(err, fluids.ErrUnknownFluid) {
		t.Fatalf("expected ErrUnknownFluid, got %v", err)
	}
}

func TestCalculateRejectsBeforeSolver(t *testing.T) {
	// Invalid range with an unknown fluid: validation must win, proving no
	// property loading happens for rejected input.
	_, err := Calculate(Input{Fluid: "unobtainium", InletTempK: -10, InletPressureBar: 50, OutletPressureBar: 1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCalculateDeterministic(t *testing.T) {
	in := Input{Fluid: "nitrogen", InletTempK: 300, InletPressureBar: 200, OutletPressureBar: 1}
	a, err := Calculate(in)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Calculate(in)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("identical inputs gave different results:\n%+v\n%+v", a, b)
	}
}

func TestErrorTaxonomyClosed(t *testing.T) {
	// Every failure escaping Calculate is one of the three defined kinds.
	inputs := []Input{
		{Fluid: "methane", InletTempK: 150, InletPressureBar: 50, OutletPressureBar: 50},
		{Fluid: "unobtainium", InletTempK: 150, InletPressureBar: 50, OutletPressureBar: 1},
		{Fluid: "water", InletTempK: 0.001, InletPressureBar: 50, OutletPressureBar: 1},
	}
	for _, in := range inputs {
		_, err := Calculate(in)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrInvalidInput) &&
			!errors.Is(err, fluids.ErrUnknownFluid) &&
			!errors.Is(err, thermo.ErrNoConvergence) {
			t.Errorf("unclassified error for %+v: %v", in, err)
		}
	}
}
