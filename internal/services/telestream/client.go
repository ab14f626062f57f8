package telestream

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tcloud/internal/config"
	"tcloud/internal/logging"
	"tcloud/internal/services"
)

const (
	defaultBaseURL     = "https://api.cloud.telestream.net:443/flip/3.1"
	defaultUserAgent   = "tcloud/dev"
	defaultHTTPTimeout = 60 * time.Second
)

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Config describes the Telestream Cloud client configuration.
type Config struct {
	AccessKey  string
	SecretKey  string
	BaseURL    string
	UserAgent  string
	HTTPClient HTTPDoer
	Logger     *slog.Logger

	// UploadHTTPClient sends upload chunks. Defaults to HTTPClient.
	UploadHTTPClient HTTPDoer
	// Now overrides the clock used for request timestamps.
	Now func() time.Time
}

// Client wraps the Telestream Cloud Flip REST API. It holds no mutable state
// after New returns and is safe for concurrent use.
type Client struct {
	baseURL   string
	host      string
	userAgent string
	signer    signer
	http      HTTPDoer
	uploads   HTTPDoer
	logger    *slog.Logger
}

// New creates a Client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	accessKey := strings.TrimSpace(cfg.AccessKey)
	secretKey := strings.TrimSpace(cfg.SecretKey)
	if accessKey == "" || secretKey == "" {
		return nil, errors.New("telestream: access key and secret key are required")
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("telestream: parse base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("telestream: base url %q must be absolute", base)
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	uploads := cfg.UploadHTTPClient
	if uploads == nil {
		uploads = client
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Client{
		baseURL:   base,
		host:      parsed.Hostname(),
		userAgent: userAgent,
		signer:    signer{accessKey: accessKey, secretKey: secretKey, now: now},
		http:      client,
		uploads:   uploads,
		logger:    logging.NewComponentLogger(cfg.Logger, "telestream"),
	}, nil
}

// NewFromConfig builds a Client from application configuration. API calls are
// bounded by api.timeout_seconds; upload chunks are bounded only by the
// caller's context, since a 5 MiB block may take minutes on a slow link.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("telestream: config is nil")
	}
	if err := cfg.ValidateCredentials(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "telestream", "credentials", "", err)
	}
	timeout := time.Duration(cfg.API.TimeoutSeconds) * time.Second
	return New(Config{
		AccessKey:        cfg.API.AccessKey,
		SecretKey:        cfg.API.SecretKey,
		BaseURL:          cfg.BaseURL(),
		UserAgent:        cfg.API.UserAgent,
		HTTPClient:       &http.Client{Timeout: timeout},
		UploadHTTPClient: &http.Client{},
		Logger:           logger,
	})
}
