package jt

import (
	"encoding/json"
	"errors"
	"net/http"

	"JTSim/internal/fluids"
	"JTSim/internal/metrics"
	"JTSim/internal/thermo"
)

type Handler struct {
	// Record, when set, is called with every successful calculation
	// (used to append authenticated requests to the history log).
	Record func(r *http.Request, res Result)
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	metrics.CalcTotal.Inc()
	res, err := Calculate(input)
	if err != nil {
		WriteError(w, err)
		return
	}
	if h.Record != nil {
		h.Record(r, res)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// Fluids lists the property database, so a front end can populate its
// selection box.
func (h *Handler) Fluids(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]string{"fluids": fluids.Names()})
}

// WriteError maps the three workflow error kinds to HTTP responses. Anything
// unclassified is a bug and reported as such.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		metrics.CalcErrors.WithLabelValues("invalid_input").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, fluids.ErrUnknownFluid):
		metrics.CalcErrors.WithLabelValues("unknown_fluid").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, thermo.ErrNoConvergence):
		metrics.CalcErrors.WithLabelValues("convergence").Inc()
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		metrics.CalcErrors.WithLabelValues("internal").Inc()
		http.Error(w, "Calculation error", http.StatusInternalServerError)
	}
}
