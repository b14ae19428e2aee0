package thermo

import (
	"math"

	"JTSim/internal/fluids"
)

// Phase designation of a flash result. Closed set: a pure component is either
// one phase or sitting on its saturation line.
type Phase string

const (
	PhaseVapor       Phase = "V"
	PhaseLiquid      Phase = "L"
	PhaseVaporLiquid Phase = "V-L"
)

// State is one converged thermodynamic state. Fields are fixed at creation
// and only read afterwards.
type State struct {
	T float64 // K
	P float64 // Pa

	Phase Phase

	// HJmol is the molar enthalpy, J/mol, ideal gas referenced to TRef.
	HJmol float64

	// RhoMass is the mass density, kg/m^3. For a two-phase state it is the
	// bulk density from the mole-weighted molar volume.
	RhoMass float64

	// CpJmolK is the molar isobaric heat capacity, J/(mol*K). A saturated
	// two-phase state has no strict Cp; like FlashPureVLS this reports the
	// phase-mole-weighted value of the coexisting phases.
	CpJmolK float64

	// VaporFraction is the vapor mole fraction. Meaningful only when
	// VaporFractionSet is true (two-phase states); never defaulted to zero.
	VaporFraction    float64
	VaporFractionSet bool
}

// Flasher performs TP and PH flashes for one pure component with the
// Peng-Robinson equation of state.
type Flasher struct {
	e eos
}

func NewFlasher(f fluids.Fluid) *Flasher {
	return &Flasher{e: newEOS(f)}
}

const (
	maxIter = 100
	relTol  = 1e-10
)

// Psat returns the saturation pressure at T (T < Tc) by successive
// substitution on the fugacity equality, started from the Wilson correlation.
func (fl *Flasher) Psat(T float64) (float64, error) {
	f := fl.e.fluid
	if T >= f.Tc {
		return 0, &ConvergenceError{Op: "saturation pressure", Fluid: f.Name, T: T}
	}

	// Wilson: ln(Psat/Pc) = 5.373(1+omega)(1 - Tc/T)
	P := f.Pc * math.Exp(5.373*(1+f.Omega)*(1-f.Tc/T))
	for i := 0; i < maxIter; i++ {
		zl, okL := fl.e.z(T, P, true)
		zv, okV := fl.e.z(T, P, false)
		if !okL || !okV || zv-zl < 1e-12 {
			// Single root: the pressure left the two-root region, pull it
			// back toward the critical point.
			P = 0.5 * (P + f.Pc)
			continue
		}
		ratio := math.Exp(fl.e.lnPhi(T, P, zl) - fl.e.lnPhi(T, P, zv))
		Pnew := P * ratio
		if Pnew <= 0 {
			return 0, &ConvergenceError{Op: "saturation pressure", Fluid: f.Name, T: T, P: P}
		}
		if math.Abs(Pnew-P) <= relTol*P {
			return Pnew, nil
		}
		P = Pnew
	}
	return 0, &ConvergenceError{Op: "saturation pressure", Fluid: f.Name, T: T, P: P}
}

// tSat returns the saturation temperature at P (P < Pc) by a secant solve of
// Psat(T) = P on the Wilson correlation's inverse as the starting point.
func (fl *Flasher) tSat(P float64) (float64, error) {
	f := fl.e.fluid
	if P >= f.Pc {
		return 0, &ConvergenceError{Op: "saturation temperature", Fluid: f.Name, P: P}
	}

	// Invert Wilson for the initial guess.
	T := f.Tc / (1 - math.Log(P/f.Pc)/(5.373*(1+f.Omega)))
	if T <= 0 || T >= f.Tc {
		T = 0.7 * f.Tc
	}
	lnP := math.Log(P)

	// Secant iteration on ln Psat(T) - ln P.
	T1 := T * 1.01
	if T1 >= f.Tc {
		T1 = 0.5 * (T + f.Tc)
	}
	g0, err := fl.psatLogResidual(T, lnP)
	if err != nil {
		return 0, err
	}
	g1, err := fl.psatLogResidual(T1, lnP)
	if err != nil {
		return 0, err
	}
	for i := 0; i < maxIter; i++ {
		if math.Abs(g1) < 1e-10 {
			return T1, nil
		}
		if g1 == g0 {
			break
		}
		T2 := T1 - g1*(T1-T)/(g1-g0)
		if T2 <= 0 {
			T2 = T1 / 2
		}
		if T2 >= f.Tc {
			T2 = 0.5 * (T1 + f.Tc)
		}
		T, g0 = T1, g1
		T1 = T2
		g1, err = fl.psatLogResidual(T1, lnP)
		if err != nil {
			return 0, err
		}
	}
	return 0, &ConvergenceError{Op: "saturation temperature", Fluid: f.Name, P: P}
}

func (fl *Flasher) psatLogResidual(T, lnP float64) (float64, error) {
	ps, err := fl.Psat(T)
	if err != nil {
		return 0, err
	}
	return math.Log(ps) - lnP, nil
}

// singlePhaseState evaluates all properties for one root.
func (fl *Flasher) singlePhaseState(T, P float64, phase Phase) (State, bool) {
	Z, ok := fl.e.z(T, P, phase == PhaseLiquid)
	if !ok {
		return State{}, false
	}
	return State{
		T:       T,
		P:       P,
		Phase:   phase,
		HJmol:   fl.e.enthalpy(T, P, Z),
		RhoMass: fl.e.rhoMass(T, P, Z),
		CpJmolK: fl.e.cp(T, P, Z),
	}, true
}

// FlashTP resolves the state at a temperature/pressure specification.
func (fl *Flasher) FlashTP(T, P float64) (State, error) {
	f := fl.e.fluid
	fail := func() (State, error) {
		return State{}, &ConvergenceError{Op: "TP flash", Fluid: f.Name, T: T, P: P}
	}
	if T <= 0 || P <= 0 {
		return fail()
	}

	// Supercritical temperatures have a single fluid root; keep the vapor
	// designation the way FlashPureVLS labels dense supercritical states.
	if T >= f.Tc {
		st, ok := fl.singlePhaseState(T, P, PhaseVapor)
		if !ok {
			return fail()
		}
		return st, nil
	}

	ps, err := fl.Psat(T)
	if err != nil {
		return State{}, err
	}
	phase := PhaseVapor
	if P > ps {
		phase = PhaseLiquid
	}
	st, ok := fl.singlePhaseState(T, P, phase)
	if !ok {
		return fail()
	}
	return st, nil
}

// FlashPH resolves the state at a pressure/enthalpy specification — the
// isenthalpic flash of a throttling process.
func (fl *Flasher) FlashPH(P, H float64) (State, error) {
	f := fl.e.fluid
	fail := func() (State, error) {
		return State{}, &ConvergenceError{Op: "PH flash", Fluid: f.Name, P: P, H: H}
	}
	if P <= 0 {
		return fail()
	}

	if P >= f.Pc {
		// Single-root region: Newton across the whole temperature range.
		st, ok := fl.solveSinglePhase(P, H, PhaseVapor, f.Tc)
		if !ok {
			return fail()
		}
		return st, nil
	}

	tsat, err := fl.tSat(P)
	if err != nil {
		return State{}, err
	}
	liq, okL := fl.singlePhaseState(tsat, P, PhaseLiquid)
	vap, okV := fl.singlePhaseState(tsat, P, PhaseVapor)
	if !okL || !okV {
		return fail()
	}

	switch {
	case H > vap.HJmol:
		st, ok := fl.solveSinglePhase(P, H, PhaseVapor, tsat*1.1)
		if !ok {
			return fail()
		}
		return st, nil
	case H < liq.HJmol:
		st, ok := fl.solveSinglePhase(P, H, PhaseLiquid, tsat*0.9)
		if !ok {
			return fail()
		}
		return st, nil
	default:
		// On the saturation line: quality from the enthalpy lever rule.
		q := 0.0
		if vap.HJmol > liq.HJmol {
			q = (H - liq.HJmol) / (vap.HJmol - liq.HJmol)
		}
		vl := f.MolarMass / liq.RhoMass
		vv := f.MolarMass / vap.RhoMass
		vm := (1-q)*vl + q*vv
		return State{
			T:                tsat,
			P:                P,
			Phase:            PhaseVaporLiquid,
			HJmol:            H,
			RhoMass:          f.MolarMass / vm,
			CpJmolK:          (1-q)*liq.CpJmolK + q*vap.CpJmolK,
			VaporFraction:    q,
			VaporFractionSet: true,
		}, nil
	}
}

// solveSinglePhase finds T with H(T, P) = H by Newton iteration using Cp as
// the derivative, falling back to bisection-style damping on overshoot.
func (fl *Flasher) solveSinglePhase(P, H float64, phase Phase, T0 float64) (State, bool) {
	T := T0
	for i := 0; i < maxIter; i++ {
		st, ok := fl.singlePhaseState(T, P, phase)
		if !ok {
			return State{}, false
		}
		diff := st.HJmol - H
		if math.Abs(diff) < 1e-7*math.Max(1, math.Abs(H)) {
			return st, true
		}
		cp := st.CpJmolK
		if cp <= 0 || math.IsNaN(cp) {
			return State{}, false
		}
		step := diff / cp
		// Keep the step inside a sane fraction of T.
		if math.Abs(step) > 0.5*T {
			step = math.Copysign(0.5*T, step)
		}
		T -= step
		if T <= 0 || math.IsNaN(T) {
			return State{}, false
		}
	}
	return State{}, false
}
