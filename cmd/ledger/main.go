// cmd/ledger/main.go
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"resume-ledger/internal/common/config"
	"resume-ledger/internal/common/logger"
	"resume-ledger/internal/ledger"
	"resume-ledger/internal/pipeline"
	"resume-ledger/internal/validator"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <record.json> [record.json ...]\n", os.Args[0])
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	if cfg.Metrics.Enabled {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
				zapLog.Warn("metrics endpoint stopped", zap.Error(err))
			}
		}()
	}

	docs, err := loadRecords(os.Args[1:])
	if err != nil {
		zapLog.Error("failed to read input", zap.Error(err))
		os.Exit(1)
	}

	writer := ledger.NewWriter(cfg.Ledger.Path, log)
	if err := writer.EnsureStore(); err != nil {
		zapLog.Error("store unavailable", zap.Error(err))
		os.Exit(1)
	}

	proc := pipeline.New(validator.New(cfg.Validation.StrictMode, log), writer, log)
	outcomes, err := proc.ProcessAll(docs)
	if err != nil {
		zapLog.Error("batch failed", zap.Error(err))
		os.Exit(1)
	}

	rejected := 0
	for _, o := range outcomes {
		if !o.Accepted {
			rejected++
		}
	}
	if rejected > 0 {
		zapLog.Warn("some records were rejected",
			zap.Int("rejected", rejected),
			zap.Int("total", len(outcomes)),
		)
	}
}

// loadRecords reads each file as either a single JSON object or an array
// of objects.
func loadRecords(paths []string) ([]map[string]interface{}, error) {
	var docs []map[string]interface{}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		var many []map[string]interface{}
		if err := json.Unmarshal(data, &many); err == nil {
			docs = append(docs, many...)
			continue
		}

		var one map[string]interface{}
		if err := json.Unmarshal(data, &one); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		docs = append(docs, one)
	}
	return docs, nil
}
