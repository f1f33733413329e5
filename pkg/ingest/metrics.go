package ingest

import "github.com/prometheus/client_golang/prometheus"

var (
	attemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "pricetrack", Name: "ingest_attempts_total", Help: "Ingestion attempts by outcome"},
		[]string{"outcome"},
	)
	cyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "pricetrack", Name: "ingest_cycles_total", Help: "Retried ingestion cycles by outcome"},
		[]string{"outcome"},
	)
	rowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "pricetrack", Name: "ingest_rows_total", Help: "Rows seen by ingestion, by kind"},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(attemptsTotal, cyclesTotal, rowsTotal)
}

func observeAttempt(err error) {
	if err != nil {
		attemptsTotal.WithLabelValues("failed").Inc()
		return
	}
	attemptsTotal.WithLabelValues("ok").Inc()
}

func observeCycle(err error) {
	if err != nil {
		cyclesTotal.WithLabelValues("fatal").Inc()
		return
	}
	cyclesTotal.WithLabelValues("ok").Inc()
}

func observeRows(res Result) {
	rowsTotal.WithLabelValues("stored").Add(float64(res.Stored))
	rowsTotal.WithLabelValues("skipped").Add(float64(res.Skipped))
	rowsTotal.WithLabelValues("null_price").Add(float64(res.NullPrices))
}
