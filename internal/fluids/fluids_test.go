package fluids

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestResolve(t *testing.T) {
	f, err := Resolve("methane")
	if err != nil {
		t.Fatal(err)
	}
	if f.Tc != 190.56 {
		t.Errorf("methane Tc = %v, want 190.56", f.Tc)
	}
}

func TestResolveAliasAndCase(t *testing.T) {
	for _, name := range []string{"CO2", "Carbon Dioxide", "  carbon dioxide "} {
		f, err := Resolve(name)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", name, err)
		}
		if f.Name != "carbon dioxide" {
			t.Errorf("Resolve(%q) = %s", name, f.Name)
		}
	}
}

func TestResolveUnknown(t *testing.T) {
	_, err := Resolve("unobtainium")
	if !errors.Is(err, ErrUnknownFluid) {
		t.Fatalf("expected ErrUnknownFluid, got %v", err)
	}
	var ufe *UnknownFluidError
	if !errors.As(err, &ufe) || ufe.Name != "unobtainium" {
		t.Errorf("error should carry the offending name, got %v", err)
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) < 15 {
		t.Fatalf("only %d fluids in the database", len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Error("Names() not sorted")
	}
}

func TestCpIdealMethane(t *testing.T) {
	f, _ := Resolve("methane")
	cp := f.CpIdeal(298.15)
	// About 35.7 J/(mol*K) at room temperature.
	if cp < 34 || cp > 37 {
		t.Errorf("Cp(298.15) = %.2f, want about 35.7", cp)
	}
}

func TestHIdealSign(t *testing.T) {
	f, _ := Resolve("nitrogen")
	if h := f.HIdeal(400, 298.15); h <= 0 {
		t.Errorf("HIdeal above Tref = %v, want positive", h)
	}
	if h := f.HIdeal(200, 298.15); h >= 0 {
		t.Errorf("HIdeal below Tref = %v, want negative", h)
	}
}

func TestLoadINI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fluids.ini")
	content := `[R32]
molar_mass = 0.052024
tc = 351.26
pc = 5782000
omega = 0.2769
cp_a = 17.6
cp_b = 0.121
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if err := LoadINI(path); err != nil {
		t.Fatal(err)
	}
	f, err := Resolve("r32")
	if err != nil {
		t.Fatal(err)
	}
	if f.Pc != 5782000 || f.Omega != 0.2769 {
		t.Errorf("loaded fluid = %+v", f)
	}
}

func TestLoadINIRejectsBadSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fluids.ini")
	if err := os.WriteFile(path, []byte("[bad]\nomega = 0.1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := LoadINI(path); err == nil {
		t.Error("expected error for a section without critical constants")
	}
}
