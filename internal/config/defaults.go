package config

const (
	defaultConfigPath     = "~/.config/tcloud/config.toml"
	defaultAPIHost        = "api.cloud.telestream.net"
	defaultAPIPort        = 443
	defaultAPIPrefix      = "flip/3.1"
	defaultTimeoutSeconds = 60
	defaultUserAgent      = "tcloud/dev"
	defaultUploadProfile  = "h264"
	defaultHistoryPath    = "~/.local/share/tcloud/uploads.db"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		API: API{
			Host:           defaultAPIHost,
			Port:           defaultAPIPort,
			Prefix:         defaultAPIPrefix,
			TimeoutSeconds: defaultTimeoutSeconds,
			UserAgent:      defaultUserAgent,
		},
		Upload: Upload{
			Profiles:       []string{defaultUploadProfile},
			HistoryEnabled: true,
			HistoryPath:    defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
