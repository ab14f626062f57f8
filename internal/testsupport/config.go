package testsupport

import (
	"net/url"
	"path/filepath"
	"strconv"
	"testing"

	"tcloud/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config with test credentials and history and log paths
// inside a per-test temp directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.API.AccessKey = "test-access"
	cfgVal.API.SecretKey = "test-secret"
	cfgVal.API.FactoryID = "test-factory"
	cfgVal.Upload.HistoryPath = filepath.Join(base, "history", "uploads.db")
	cfgVal.Logging.Dir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAPIServer points the API scheme, host, and port at a test server URL
// such as the one returned by httptest.NewServer. The prefix is kept.
func WithAPIServer(rawURL string) ConfigOption {
	return func(b *configBuilder) {
		u, err := url.Parse(rawURL)
		if err != nil {
			b.t.Fatalf("parse server url: %v", err)
		}
		port, err := strconv.Atoi(u.Port())
		if err != nil {
			b.t.Fatalf("parse server port: %v", err)
		}
		b.cfg.API.Scheme = u.Scheme
		b.cfg.API.Host = u.Hostname()
		b.cfg.API.Port = port
	}
}

// WithFactory overrides the default factory ID.
func WithFactory(id string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.API.FactoryID = id
	}
}

// WithHistoryDisabled turns off the local upload history.
func WithHistoryDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Upload.HistoryEnabled = false
	}
}

// WithHistoryPath overrides the upload history database path.
func WithHistoryPath(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Upload.HistoryPath = path
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Logging.Dir)
}
