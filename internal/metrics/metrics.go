package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CalcTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jtsim_calculations_total",
		Help: "Total Joule-Thomson calculations attempted",
	})

	CalcErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jtsim_calculation_errors_total",
		Help: "Failed calculations by error kind",
	}, []string{"kind"})
)
