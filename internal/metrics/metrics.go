package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// StageOutcomes 每个流水线阶段的结果计数：success / degraded / failed
	StageOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "news2lesson",
			Name:      "stage_outcomes_total",
			Help:      "Pipeline stage outcomes by stage and kind",
		},
		[]string{"stage", "outcome"},
	)

	StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "news2lesson",
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"stage"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "news2lesson",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(StageOutcomes)
	prometheus.MustRegister(StageDuration)
	prometheus.MustRegister(httpRequestDuration)
}

// ObserveStage 记录一次阶段执行
func ObserveStage(stage, outcome string, elapsed time.Duration) {
	StageOutcomes.WithLabelValues(stage, outcome).Inc()
	StageDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
}

// Filter 记录 HTTP 请求耗时，可作为 kratos http.Filter 使用
func Filter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		httpRequestDuration.
			WithLabelValues(r.Method, normalizePath(r.URL.Path), strconv.Itoa(ww.status)).
			Observe(time.Since(start).Seconds())
	})
}

// normalizePath 防止任意路径撑爆标签基数
func normalizePath(p string) string {
	switch p {
	case "/", "/healthz", "/metrics",
		"/api/search-news", "/api/direct-input", "/api/generate-content", "/api/styles":
		return p
	}
	if strings.HasPrefix(p, "/api/") {
		return "/api/other"
	}
	return "other"
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
