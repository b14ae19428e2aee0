package fluids

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/ini.v1"
)

// ErrUnknownFluid — the requested substance is not in the property database.
var ErrUnknownFluid = errors.New("unknown fluid")

type UnknownFluidError struct {
	Name string
}

func (e *UnknownFluidError) Error() string {
	return fmt.Sprintf("fluid %q is not in the property database", e.Name)
}

func (e *UnknownFluidError) Unwrap() error { return ErrUnknownFluid }

// Fluid holds the constants the flash engine needs for one pure component:
// critical point, acentric factor, molar mass and the ideal-gas heat capacity
// correlation Cp = A + B*T + C*T^2 + D*T^3 (J/(mol*K), T in K).
type Fluid struct {
	Name string

	MolarMass float64 // kg/mol
	Tc        float64 // K
	Pc        float64 // Pa
	Omega     float64 // acentric factor

	CpA float64
	CpB float64
	CpC float64
	CpD float64
}

// CpIdeal returns the ideal-gas molar heat capacity at T, J/(mol*K).
func (f Fluid) CpIdeal(T float64) float64 {
	return f.CpA + T*(f.CpB+T*(f.CpC+T*f.CpD))
}

// HIdeal returns the ideal-gas molar enthalpy at T relative to Tref, J/mol.
func (f Fluid) HIdeal(T, Tref float64) float64 {
	h := func(t float64) float64 {
		return t * (f.CpA + t*(f.CpB/2+t*(f.CpC/3+t*f.CpD/4)))
	}
	return h(T) - h(Tref)
}

// Critical constants: Poling et al., Cp polynomials: Reid/Smith-Van Ness
// appendix tables. Pressures in Pa, molar mass in kg/mol.
var database = map[string]Fluid{
	"water":          {Name: "water", MolarMass: 0.018015, Tc: 647.10, Pc: 2.2064e7, Omega: 0.3449, CpA: 32.24, CpB: 1.924e-3, CpC: 1.055e-5, CpD: -3.596e-9},
	"nitrogen":       {Name: "nitrogen", MolarMass: 0.028014, Tc: 126.20, Pc: 3.398e6, Omega: 0.0372, CpA: 31.15, CpB: -1.357e-2, CpC: 2.680e-5, CpD: -1.168e-8},
	"oxygen":         {Name: "oxygen", MolarMass: 0.031999, Tc: 154.58, Pc: 5.043e6, Omega: 0.0222, CpA: 28.11, CpB: -3.680e-6, CpC: 1.746e-5, CpD: -1.065e-8},
	"argon":          {Name: "argon", MolarMass: 0.039948, Tc: 150.86, Pc: 4.898e6, Omega: -0.002, CpA: 20.80},
	"methane":        {Name: "methane", MolarMass: 0.016043, Tc: 190.56, Pc: 4.599e6, Omega: 0.0115, CpA: 19.25, CpB: 5.213e-2, CpC: 1.197e-5, CpD: -1.132e-8},
	"ethane":         {Name: "ethane", MolarMass: 0.030070, Tc: 305.32, Pc: 4.872e6, Omega: 0.0995, CpA: 5.409, CpB: 1.781e-1, CpC: -6.938e-5, CpD: 8.713e-9},
	"propane":        {Name: "propane", MolarMass: 0.044097, Tc: 369.83, Pc: 4.248e6, Omega: 0.1523, CpA: -4.224, CpB: 3.063e-1, CpC: -1.586e-4, CpD: 3.215e-8},
	"n-butane":       {Name: "n-butane", MolarMass: 0.058122, Tc: 425.12, Pc: 3.796e6, Omega: 0.2002, CpA: 9.487, CpB: 3.313e-1, CpC: -1.108e-4, CpD: -2.822e-9},
	"i-butane":       {Name: "i-butane", MolarMass: 0.058122, Tc: 407.85, Pc: 3.640e6, Omega: 0.1835, CpA: -1.390, CpB: 3.847e-1, CpC: -1.846e-4, CpD: 2.895e-8},
	"carbon dioxide": {Name: "carbon dioxide", MolarMass: 0.044010, Tc: 304.13, Pc: 7.377e6, Omega: 0.2239, CpA: 19.80, CpB: 7.344e-2, CpC: -5.602e-5, CpD: 1.715e-8},
	"ammonia":        {Name: "ammonia", MolarMass: 0.017031, Tc: 405.40, Pc: 1.1353e7, Omega: 0.2526, CpA: 27.31, CpB: 2.383e-2, CpC: 1.707e-5, CpD: -1.185e-8},
	"r134a":          {Name: "R134a", MolarMass: 0.102032, Tc: 374.21, Pc: 4.059e6, Omega: 0.3268, CpA: 19.40, CpB: 2.580e-1, CpC: -1.290e-4},
	"r22":            {Name: "R22", MolarMass: 0.086468, Tc: 369.30, Pc: 4.990e6, Omega: 0.2208, CpA: 17.30, CpB: 1.616e-1, CpC: -1.170e-4, CpD: 3.060e-8},
	"hydrogen":       {Name: "hydrogen", MolarMass: 0.002016, Tc: 33.19, Pc: 1.313e6, Omega: -0.216, CpA: 27.14, CpB: 9.274e-3, CpC: -1.381e-5, CpD: 7.645e-9},
	"decane":         {Name: "decane", MolarMass: 0.142285, Tc: 617.70, Pc: 2.110e6, Omega: 0.4923, CpA: -7.913, CpB: 9.609e-1, CpC: -5.288e-4, CpD: 1.131e-7},
}

var aliases = map[string]string{
	"co2":            "carbon dioxide",
	"carbondioxide":  "carbon dioxide",
	"butane":         "n-butane",
	"isobutane":      "i-butane",
	"freon-22":       "r22",
	"n-decane":       "decane",
	"h2o":            "water",
	"n2":             "nitrogen",
	"o2":             "oxygen",
	"h2":             "hydrogen",
	"nh3":            "ammonia",
	"ch4":            "methane",
}

func canonical(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[key]; ok {
		return target
	}
	return key
}

// Resolve maps a user-facing fluid name to its constants. Unknown names fail
// with UnknownFluidError before any flash is attempted.
func Resolve(name string) (Fluid, error) {
	f, ok := database[canonical(name)]
	if !ok {
		return Fluid{}, &UnknownFluidError{Name: name}
	}
	return f, nil
}

// Names returns the sorted list of fluids in the database.
func Names() []string {
	names := make([]string, 0, len(database))
	for _, f := range database {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

// LoadINI overlays fluids from an ini file, one section per fluid:
//
//	[R32]
//	molar_mass = 0.052024
//	tc = 351.26
//	pc = 5782000
//	omega = 0.2769
//	cp_a = 17.6
//	cp_b = 0.121
//
// Existing entries with the same name are replaced. Pressures in Pa,
// molar mass in kg/mol.
func LoadINI(path string) error {
	file, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("load fluid database %s: %w", path, err)
	}
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		f := Fluid{
			Name:      section.Name(),
			MolarMass: section.Key("molar_mass").MustFloat64(0),
			Tc:        section.Key("tc").MustFloat64(0),
			Pc:        section.Key("pc").MustFloat64(0),
			Omega:     section.Key("omega").MustFloat64(0),
			CpA:       section.Key("cp_a").MustFloat64(0),
			CpB:       section.Key("cp_b").MustFloat64(0),
			CpC:       section.Key("cp_c").MustFloat64(0),
			CpD:       section.Key("cp_d").MustFloat64(0),
		}
		if f.MolarMass <= 0 || f.Tc <= 0 || f.Pc <= 0 {
			return fmt.Errorf("fluid section [%s]: molar_mass, tc and pc must be positive", section.Name())
		}
		database[canonical(f.Name)] = f
	}
	return nil
}
