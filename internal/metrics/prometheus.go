package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docsorter_cache_lookups_total",
			Help: "Analysis cache lookups by result",
		},
		[]string{"result"},
	)

	CacheEvictions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "docsorter_cache_evictions_total",
			Help: "Cached analyses evicted because the document changed or disappeared",
		},
	)

	CachedDocuments = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "docsorter_cached_documents",
			Help: "Documents currently held in the analysis cache",
		},
	)

	AnalysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "docsorter_analysis_duration_seconds",
			Help:    "Time spent extracting text, keywords and dates from one document",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
	)

	AnalysisFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "docsorter_analysis_failures_total",
			Help: "Documents whose analysis failed",
		},
	)

	SuggestionFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docsorter_suggestion_fetches_total",
			Help: "Filename suggestion fetches by status",
		},
		[]string{"status"},
	)

	QueueDepth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "docsorter_queue_depth",
			Help: "Tasks waiting in a worker queue",
		},
		[]string{"worker"},
	)

	PersistenceErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docsorter_persistence_errors_total",
			Help: "Failed writes to the persistent analysis cache",
		},
		[]string{"operation"},
	)

	FolderSuggestions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docsorter_folder_suggestions_total",
			Help: "Folder candidates produced by each classifier signal",
		},
		[]string{"signal"},
	)

	TrainingEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "docsorter_training_entries",
			Help: "Sorting decisions the classifier is trained on",
		},
	)

	LLMTokens = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "docsorter_llm_tokens_total",
			Help: "Tokens reported by the language model server",
		},
	)

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docsorter_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "docsorter_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)

var initOnce sync.Once

// Init registers all collectors with the default registry. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(CacheLookups)
		prometheus.MustRegister(CacheEvictions)
		prometheus.MustRegister(CachedDocuments)
		prometheus.MustRegister(AnalysisDuration)
		prometheus.MustRegister(AnalysisFailures)
		prometheus.MustRegister(SuggestionFetches)
		prometheus.MustRegister(QueueDepth)
		prometheus.MustRegister(PersistenceErrors)
		prometheus.MustRegister(FolderSuggestions)
		prometheus.MustRegister(TrainingEntries)
		prometheus.MustRegister(LLMTokens)
		prometheus.MustRegister(HTTPRequests)
		prometheus.MustRegister(HTTPDuration)
	})
}

// Handler serves the registered metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
