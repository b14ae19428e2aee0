package jt

import (
	"fmt"
	"strings"
)

// formatReport renders the detailed text block: echoed inputs, then outlet
// properties at two decimals, vapor mole fraction at four when present.
func formatReport(r Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Fluid: %s\n", r.Fluid)
	fmt.Fprintf(&b, "Inlet Temperature: %.2f K\n", r.InletTempK)
	fmt.Fprintf(&b, "Inlet Pressure: %.2f bar\n", r.InletPressureBar)
	fmt.Fprintf(&b, "Outlet Pressure: %.2f bar\n", r.OutletPressureBar)
	b.WriteString("\n--- Outlet Properties ---\n")
	fmt.Fprintf(&b, "Outlet Temperature: %.2f K\n", r.OutletTempK)
	fmt.Fprintf(&b, "Outlet Phase: %s\n", r.OutletPhase)
	fmt.Fprintf(&b, "Outlet Density: %.2f kg/m³\n", r.OutletDensityKgM3)
	fmt.Fprintf(&b, "Outlet Molar Heat Capacity (Cp): %.2f J/(mol·K)\n", r.OutletCpJMolK)
	if r.VaporFractionSet {
		fmt.Fprintf(&b, "  Vapor mole fraction: %.4f\n", r.VaporMoleFraction)
	}
	return b.String()
}

// formatOutletTemp is the compact single-field display, e.g. "128.34 K".
func formatOutletTemp(tempK float64) string {
	return fmt.Sprintf("%.2f K", tempK)
}
