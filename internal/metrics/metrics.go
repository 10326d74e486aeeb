package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "packlist_sessions_started_total",
		Help: "Total number of download sessions started",
	})

	SessionsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "packlist_sessions_completed_total",
		Help: "Total number of sessions that reached the ready state",
	})

	SessionsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "packlist_sessions_failed_total",
		Help: "Total number of sessions that terminated with an error",
	})

	TracksResolved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "packlist_tracks_resolved_total",
		Help: "Total number of tracks accepted after deduplication",
	})

	FetchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "packlist_fetches_total",
		Help: "Total number of track fetch attempts",
	})

	FetchesSuccess = promauto.NewCounter(prometheus.CounterOpts{
		Name: "packlist_fetches_success_total",
		Help: "Total number of successful track fetches",
	})

	FetchesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "packlist_fetches_failed_total",
		Help: "Total number of failed track fetches",
	})

	FetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "packlist_fetch_duration_seconds",
		Help:    "Single track fetch duration in seconds",
		Buckets: prometheus.DefBuckets,
	})

	ArchiveBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "packlist_archive_bytes_total",
		Help: "Total bytes written into produced archives",
	})

	ArchivesServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "packlist_archives_served_total",
		Help: "Total number of archives consumed through the one-shot endpoint",
	})
)
