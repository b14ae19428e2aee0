package sweep

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"

	"JTSim/internal/calc/jt"
)

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		jt.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// Xlsx runs the sweep and streams it as a spreadsheet, one row per outlet
// pressure.
func (h *Handler) Xlsx(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		jt.WriteError(w, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := []interface{}{
		"Outlet pressure (bar)", "Outlet temperature (K)", "Phase",
		"Density (kg/m3)", "Cp (J/(mol*K))", "Vapor mole fraction",
	}
	_ = f.SetSheetRow(sheet, "A1", &header)
	_ = f.SetCellValue(sheet, "H1", fmt.Sprintf("%s, inlet %.2f K / %.2f bar",
		res.Fluid, res.InletTempK, res.InletPressureBar))

	for i, pt := range res.Points {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{pt.OutletPressureBar}
		if pt.Error != "" {
			row = append(row, pt.Error)
		} else {
			row = append(row, pt.OutletTempK, pt.OutletPhase,
				pt.OutletDensityKgM3, pt.OutletCpJMolK)
			if pt.VaporFractionSet {
				row = append(row, pt.VaporMoleFraction)
			}
		}
		_ = f.SetSheetRow(sheet, cell, &row)
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"jt_sweep.xlsx\"")
	if err := f.Write(w); err != nil {
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
}
