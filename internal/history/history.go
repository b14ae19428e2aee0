package history

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"JTSim/internal/auth"
	"JTSim/internal/calc/jt"
	"JTSim/internal/repo"
)

// Handler records finished calculations and lists them back per user. The
// log is presentation-side only: calculation results never depend on it.
type Handler struct {
	Repo repo.Repository
}

// Record is wired as the jt.Handler callback; anonymous requests are skipped.
func (h *Handler) Record(r *http.Request, res jt.Result) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		return
	}
	c := repo.Calculation{
		ID:                uuid.New(),
		UserID:            userID,
		Fluid:             res.Fluid,
		InletTempK:        res.InletTempK,
		InletPressureBar:  res.InletPressureBar,
		OutletPressureBar: res.OutletPressureBar,
		OutletTempK:       res.OutletTempK,
		OutletPhase:       res.OutletPhase,
		CreatedAt:         time.Now().UTC(),
	}
	if err := h.Repo.SaveCalculation(r.Context(), c); err != nil {
		// History is best-effort; the calculation already succeeded.
		log.Error("save calculation: ", err)
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := h.Repo.ListCalculations(r.Context(), userID, limit)
	if err != nil {
		log.Error("list calculations: ", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"calculations": items})
}
