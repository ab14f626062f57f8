package preflight

import (
	"context"

	"tcloud/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every applicable check. The API check is skipped when
// credentials are missing or api is nil.
func RunAll(ctx context.Context, cfg *config.Config, api FactoryLister) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	creds := CheckCredentials(cfg)
	results = append(results, creds)

	if cfg.Upload.HistoryEnabled && cfg.Upload.HistoryPath != "" {
		results = append(results, CheckDirectoryAccess("History directory", historyDir(cfg)))
	}
	if cfg.Logging.Dir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Logging.Dir))
	}

	if creds.Passed && api != nil {
		results = append(results, CheckAPI(ctx, api))
	}
	return results
}
