// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"venue-allotment/backend/foundation/web"
)

var (
	AllocationGenerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "venue_allocation_generations_total",
		Help: "Allocation batch generations by result.",
	}, []string{"result"})

	AllocationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "venue_allocations_created_total",
		Help: "Allocation rows written by generations.",
	})

	AttendanceMarks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_marks_total",
		Help: "Attendance mark attempts by method and result.",
	}, []string{"method", "result"})

	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_logins_total",
		Help: "Login attempts by result.",
	}, []string{"result"})
)

// Result labels an operation outcome by the status its error maps to.
func Result(err error) string {
	if err == nil {
		return "ok"
	}
	return strconv.Itoa(web.StatusOf(err))
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
