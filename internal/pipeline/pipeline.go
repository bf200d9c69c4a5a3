// Package pipeline wires the validator and the ledger writer together
// and applies the acceptance policy per record.
package pipeline

import (
	"errors"
	"time"

	"github.com/google/uuid"

	apperrors "resume-ledger/internal/common/errors"
	"resume-ledger/internal/common/logger"
	"resume-ledger/internal/common/metrics"
	"resume-ledger/internal/ledger"
	"resume-ledger/internal/validator"
)

// Outcome is the per-record processing result reported to the caller.
type Outcome struct {
	ApplicantName   string            `json:"applicantName"`
	Accepted        bool              `json:"accepted"`
	ApplicantNumber int               `json:"applicantNumber,omitempty"`
	Errors          []apperrors.Issue `json:"errors,omitempty"`
	Warnings        []apperrors.Issue `json:"warnings,omitempty"`
}

// Processor runs clean → validate → append for each record. Rejected
// records are reported, never fatal; only a store failure aborts.
type Processor struct {
	validator *validator.Validator
	writer    *ledger.Writer
	log       logger.Logger
}

func New(v *validator.Validator, w *ledger.Writer, log logger.Logger) *Processor {
	return &Processor{
		validator: v,
		writer:    w,
		log:       log.WithFields(map[string]interface{}{"component": "pipeline"}),
	}
}

// Process validates one parsed JSON record and appends it to the ledger
// when accepted. The returned error is non-nil only for store failures.
func (p *Processor) Process(doc map[string]interface{}) (*Outcome, error) {
	res := p.validator.Validate(doc)
	outcome := &Outcome{
		ApplicantName: res.Record.ApplicantName,
		Accepted:      res.Accepted,
		Errors:        res.Errors,
		Warnings:      res.Warnings,
	}
	observeValidation(res)

	if !res.Accepted {
		p.log.Warn("record rejected", map[string]interface{}{
			"applicantName": outcome.ApplicantName,
			"errors":        apperrors.Messages(res.Errors),
			"warnings":      apperrors.Messages(res.Warnings),
		})
		return outcome, nil
	}

	for _, w := range res.Warnings {
		p.log.Warn("record warning", map[string]interface{}{
			"applicantName": outcome.ApplicantName,
			"warning":       w.String(),
		})
	}

	number, err := p.writer.Append(res.Record)
	if err != nil {
		var storeErr *apperrors.StoreError
		if errors.As(err, &storeErr) {
			metrics.AppendFailures.WithLabelValues(string(storeErr.Code)).Inc()
		}
		return nil, err
	}

	metrics.RowsAppended.Inc()
	outcome.ApplicantNumber = number
	return outcome, nil
}

// ProcessAll runs records sequentially so that each append sees the rows
// written before it. A rejected record never stops the batch; a store
// failure does, returning the outcomes gathered so far.
func (p *Processor) ProcessAll(docs []map[string]interface{}) ([]*Outcome, error) {
	batchLog := p.log.WithFields(map[string]interface{}{"batchId": uuid.NewString()})
	batchLog.Info("batch started", map[string]interface{}{"records": len(docs)})

	start := time.Now()
	defer func() {
		metrics.BatchDuration.Observe(time.Since(start).Seconds())
	}()

	outcomes := make([]*Outcome, 0, len(docs))
	accepted := 0
	for _, doc := range docs {
		outcome, err := p.Process(doc)
		if err != nil {
			batchLog.WithError(err).Error("batch aborted on store failure", map[string]interface{}{
				"processed": len(outcomes),
			})
			return outcomes, err
		}
		if outcome.Accepted {
			accepted++
		}
		outcomes = append(outcomes, outcome)
	}

	batchLog.Info("batch finished", map[string]interface{}{
		"records":  len(docs),
		"accepted": accepted,
		"rejected": len(docs) - accepted,
	})
	return outcomes, nil
}

func observeValidation(res *validator.Result) {
	result := "accepted"
	if !res.Accepted {
		result = "rejected"
	}
	metrics.RecordsValidated.WithLabelValues(result).Inc()

	for _, iss := range res.Errors {
		metrics.ValidationIssues.WithLabelValues(string(apperrors.SeverityError), string(iss.Code)).Inc()
	}
	for _, iss := range res.Warnings {
		metrics.ValidationIssues.WithLabelValues(string(apperrors.SeverityWarning), string(iss.Code)).Inc()
	}
}
