// Package metrics expone la instrumentacion Prometheus del servicio de matching.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RecommendDuration mide cuanto tarda una corrida completa del pipeline.
	RecommendDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "swapwise_recommend_duration_seconds",
		Help:    "Time spent computing one recommendation list",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	})

	// CandidatesScored cuenta candidatos que pasaron el filtro y fueron puntuados.
	CandidatesScored = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "swapwise_candidates_scored_total",
		Help: "Total number of candidates scored",
	})

	// GeocodeRequests cuenta resoluciones de coordenadas por resultado.
	GeocodeRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "swapwise_geocode_requests_total",
		Help: "Coordinate resolutions by result",
	}, []string{"result"}) // result = "hit", "store_hit", "miss", "error"

	// MatchesCreated cuenta matches nuevos.
	MatchesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "swapwise_matches_created_total",
		Help: "Total number of mutual matches created",
	})

	MeetingsScheduled = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "swapwise_meetings_scheduled_total",
		Help: "Total number of meetings scheduled",
	})
)

func init() {
	prometheus.MustRegister(
		RecommendDuration,
		CandidatesScored,
		GeocodeRequests,
		MatchesCreated,
		MeetingsScheduled,
	)
}

// Handler devuelve el handler HTTP de Prometheus.
func Handler() http.Handler {
	return promhttp.Handler()
}
