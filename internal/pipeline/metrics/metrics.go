package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	MessagesReceived  prometheus.Counter
	MessagesRejected  prometheus.Counter
	MessagesDuplicate prometheus.Counter
	CasesProcessed    prometheus.Counter
	CasesFailed       prometheus.Counter
	OffendersMatched  prometheus.Counter
	MatchFailures     prometheus.Counter
	PurgeFailures     prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		MessagesReceived: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caseflow_messages_received_total",
			Help: "Total number of feed messages handed to the pipeline",
		}),
		MessagesRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caseflow_messages_rejected_total",
			Help: "Total number of feed messages rejected by parse or validation",
		}),
		MessagesDuplicate: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caseflow_messages_duplicate_total",
			Help: "Total number of feed messages skipped as already processed",
		}),
		CasesProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caseflow_cases_processed_total",
			Help: "Total number of cases persisted to the case store",
		}),
		CasesFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caseflow_cases_failed_total",
			Help: "Total number of cases whose persistence failed terminally",
		}),
		OffendersMatched: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caseflow_offenders_matched_total",
			Help: "Total number of defendants resolved to a single offender",
		}),
		MatchFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caseflow_match_failures_total",
			Help: "Total number of offender search calls that failed",
		}),
		PurgeFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caseflow_purge_failures_total",
			Help: "Total number of purge-absent calls that failed",
		}),
	}
}
