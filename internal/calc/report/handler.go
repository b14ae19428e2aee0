package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/phpdave11/gofpdf"

	"JTSim/internal/calc/jt"
)

type Input struct {
	Project string   `json:"project"`
	Author  string   `json:"author"`
	Title   string   `json:"title"`
	Calc    jt.Input `json:"calc"`
}

type Handler struct{}

// Generate runs the calculation and renders it as a one-page PDF.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Title == "" {
		input.Title = "Joule-Thomson Throttling Report"
	}

	res, err := jt.Calculate(input.Calc)
	if err != nil {
		jt.WriteError(w, err)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, input.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Process conditions")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	inRows := [][2]string{
		{"Fluid", res.Fluid},
		{"Inlet temperature", fmt.Sprintf("%.2f K", res.InletTempK)},
		{"Inlet pressure", fmt.Sprintf("%.2f bar", res.InletPressureBar)},
		{"Outlet pressure", fmt.Sprintf("%.2f bar", res.OutletPressureBar)},
	}
	for _, row := range inRows {
		pdf.Cell(70, 6, row[0])
		pdf.Cell(0, 6, row[1])
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Outlet properties (isenthalpic flash)")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	outRows := [][2]string{
		{"Outlet temperature", fmt.Sprintf("%.2f K", res.OutletTempK)},
		{"Outlet phase", res.OutletPhase},
		{"Outlet density", fmt.Sprintf("%.2f kg/m3", res.OutletDensityKgM3)},
		{"Outlet molar heat capacity", fmt.Sprintf("%.2f J/(mol*K)", res.OutletCpJMolK)},
	}
	if res.VaporFractionSet {
		outRows = append(outRows,
			[2]string{"Vapor mole fraction", fmt.Sprintf("%.4f", res.VaporMoleFraction)})
	}
	for _, row := range outRows {
		pdf.Cell(70, 6, row[0])
		pdf.Cell(0, 6, row[1])
		pdf.Ln(6)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"jt_report.pdf\"")
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}
