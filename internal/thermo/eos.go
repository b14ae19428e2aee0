package thermo

import (
	"math"

	"JTSim/internal/fluids"
)

// Universal gas constant, J/(mol*K).
const R = 8.31446261815324

// Reference temperature for the ideal-gas enthalpy, K.
const TRef = 298.15

const (
	sqrt2  = 1.4142135623730951
	delta1 = 1 + sqrt2
	delta2 = 1 - sqrt2
)

// eos carries the temperature-independent Peng-Robinson parameters of one
// pure component.
type eos struct {
	fluid fluids.Fluid
	a     float64 // 0.45724 R^2 Tc^2 / Pc
	b     float64 // 0.07780 R Tc / Pc
	kappa float64
}

func newEOS(f fluids.Fluid) eos {
	return eos{
		fluid: f,
		a:     0.45724 * R * R * f.Tc * f.Tc / f.Pc,
		b:     0.07780 * R * f.Tc / f.Pc,
		kappa: 0.37464 + 1.54226*f.Omega - 0.26992*f.Omega*f.Omega,
	}
}

// alphaA returns a*alpha(T) and its first and second temperature derivatives.
func (e eos) alphaA(T float64) (aa, daa, d2aa float64) {
	sqTr := math.Sqrt(T / e.fluid.Tc)
	g := 1 + e.kappa*(1-sqTr)
	aa = e.a * g * g

	sqTTc := math.Sqrt(T * e.fluid.Tc)
	daa = -e.a * e.kappa * g / sqTTc
	d2aa = e.a * e.kappa * (e.kappa/(T*e.fluid.Tc) + g/(T*sqTTc)) / 2
	return aa, daa, d2aa
}

// zRoots returns the real roots of the compressibility cubic
//
//	Z^3 - (1-B)Z^2 + (A - 3B^2 - 2B)Z - (AB - B^2 - B^3) = 0
//
// that are physically meaningful (Z > B), sorted ascending.
func zRoots(A, B float64) []float64 {
	c2 := -(1 - B)
	c1 := A - 3*B*B - 2*B
	c0 := -(A*B - B*B - B*B*B)

	// Depressed cubic t^3 + pt + q, Z = t - c2/3.
	p := c1 - c2*c2/3
	q := 2*c2*c2*c2/27 - c2*c1/3 + c0

	var roots []float64
	disc := q*q/4 + p*p*p/27
	shift := -c2 / 3
	switch {
	case disc > 0:
		u := math.Cbrt(-q/2 + math.Sqrt(disc))
		v := math.Cbrt(-q/2 - math.Sqrt(disc))
		roots = []float64{u + v + shift}
	case disc == 0:
		if p == 0 {
			roots = []float64{shift}
		} else {
			roots = []float64{3*q/p + shift, -3*q/(2*p) + shift}
		}
	default:
		m := 2 * math.Sqrt(-p/3)
		arg := 3 * q / (p * m)
		// Rounding near a repeated root can push the argument out of [-1,1].
		arg = math.Max(-1, math.Min(1, arg))
		theta := math.Acos(arg) / 3
		for k := 0; k < 3; k++ {
			roots = append(roots, m*math.Cos(theta-2*math.Pi*float64(k)/3)+shift)
		}
	}

	valid := roots[:0]
	for _, z := range roots {
		if z > B {
			valid = append(valid, z)
		}
	}
	sort2(valid)
	return valid
}

func sort2(xs []float64) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}

// z solves the cubic at (T, P) and returns the root for the requested phase:
// smallest for liquid, largest for vapor.
func (e eos) z(T, P float64, liquid bool) (float64, bool) {
	aa, _, _ := e.alphaA(T)
	A := aa * P / (R * R * T * T)
	B := e.b * P / (R * T)
	roots := zRoots(A, B)
	if len(roots) == 0 {
		return 0, false
	}
	if liquid {
		return roots[0], true
	}
	return roots[len(roots)-1], true
}

// lnPhi returns the log fugacity coefficient at (T, P) for the given root.
func (e eos) lnPhi(T, P, Z float64) float64 {
	aa, _, _ := e.alphaA(T)
	A := aa * P / (R * R * T * T)
	B := e.b * P / (R * T)
	return Z - 1 - math.Log(Z-B) -
		A/(2*sqrt2*B)*math.Log((Z+delta1*B)/(Z+delta2*B))
}

// enthalpy returns the molar enthalpy at (T, P, Z), J/mol, ideal-gas part
// referenced to TRef plus the Peng-Robinson departure.
func (e eos) enthalpy(T, P, Z float64) float64 {
	aa, daa, _ := e.alphaA(T)
	B := e.b * P / (R * T)
	dep := R*T*(Z-1) +
		(T*daa-aa)/(2*sqrt2*e.b)*math.Log((Z+delta1*B)/(Z+delta2*B))
	return e.fluid.HIdeal(T, TRef) + dep
}

// cp returns the real-gas molar isobaric heat capacity at (T, P, Z),
// J/(mol*K): ideal-gas part plus the departure from residual derivatives.
func (e eos) cp(T, P, Z float64) float64 {
	aa, daa, d2aa := e.alphaA(T)
	V := Z * R * T / P

	// Cv departure.
	cvDep := T * d2aa / (2 * sqrt2 * e.b) *
		math.Log((V + delta1*e.b) / (V + delta2*e.b))

	den := V*V + 2*e.b*V - e.b*e.b
	dPdT := R/(V-e.b) - daa/den
	dPdV := -R*T/((V-e.b)*(V-e.b)) + 2*aa*(V+e.b)/(den*den)

	return e.fluid.CpIdeal(T) + cvDep - T*dPdT*dPdT/dPdV - R
}

// rhoMass returns the mass density at (T, P, Z), kg/m^3.
func (e eos) rhoMass(T, P, Z float64) float64 {
	return e.fluid.MolarMass * P / (Z * R * T)
}
