package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeAPI()
	if err := c.normalizeUpload(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeAPI() {
	c.API.AccessKey = strings.TrimSpace(c.API.AccessKey)
	if c.API.AccessKey == "" {
		c.API.AccessKey = strings.TrimSpace(os.Getenv("TCLOUD_ACCESS_KEY"))
	}
	c.API.SecretKey = strings.TrimSpace(c.API.SecretKey)
	if c.API.SecretKey == "" {
		c.API.SecretKey = strings.TrimSpace(os.Getenv("TCLOUD_SECRET_KEY"))
	}
	c.API.FactoryID = strings.TrimSpace(c.API.FactoryID)
	if c.API.FactoryID == "" {
		c.API.FactoryID = strings.TrimSpace(os.Getenv("TCLOUD_FACTORY_ID"))
	}

	c.API.Scheme = strings.ToLower(strings.TrimSpace(c.API.Scheme))
	c.API.Host = strings.TrimSpace(c.API.Host)
	c.API.Host = strings.TrimPrefix(c.API.Host, "https://")
	c.API.Host = strings.TrimPrefix(c.API.Host, "http://")
	c.API.Host = strings.TrimRight(c.API.Host, "/")
	if c.API.Host == "" {
		c.API.Host = defaultAPIHost
	}
	if c.API.Port == 0 {
		c.API.Port = defaultAPIPort
	}
	c.API.Prefix = strings.Trim(strings.TrimSpace(c.API.Prefix), "/")
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = defaultTimeoutSeconds
	}
	c.API.UserAgent = strings.TrimSpace(c.API.UserAgent)
	if c.API.UserAgent == "" {
		c.API.UserAgent = defaultUserAgent
	}
}

func (c *Config) normalizeUpload() error {
	profiles := make([]string, 0, len(c.Upload.Profiles))
	seen := make(map[string]struct{}, len(c.Upload.Profiles))
	for _, profile := range c.Upload.Profiles {
		profile = strings.TrimSpace(profile)
		if profile == "" {
			continue
		}
		if _, ok := seen[profile]; ok {
			continue
		}
		seen[profile] = struct{}{}
		profiles = append(profiles, profile)
	}
	if len(profiles) == 0 {
		profiles = []string{defaultUploadProfile}
	}
	c.Upload.Profiles = profiles

	if strings.TrimSpace(c.Upload.HistoryPath) == "" {
		c.Upload.HistoryPath = defaultHistoryPath
	}
	var err error
	if c.Upload.HistoryPath, err = expandPath(strings.TrimSpace(c.Upload.HistoryPath)); err != nil {
		return fmt.Errorf("upload.history_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
