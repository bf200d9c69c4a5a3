package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecordsValidated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_records_validated_total",
			Help: "Total number of records validated, by result",
		},
		[]string{"result"},
	)

	ValidationIssues = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_validation_issues_total",
			Help: "Total number of validation issues observed, by severity and code",
		},
		[]string{"severity", "code"},
	)

	RowsAppended = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_rows_appended_total",
			Help: "Total number of applicant rows appended to the store",
		},
	)

	AppendFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_append_failures_total",
			Help: "Total number of failed append attempts, by error code",
		},
		[]string{"code"},
	)

	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "ledger_batch_duration_seconds",
			Help: "Duration of batch processing in seconds",
		},
	)
)
