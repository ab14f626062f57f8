package telestream

import (
	"sync"

	"tcloud/internal/services"
)

var (
	defaultMu     sync.RWMutex
	defaultClient *Client
)

// SetDefault installs c as the process-wide client returned by Default.
// Nothing in this package reads it; it only exists for callers that prefer a
// global over passing a *Client around.
func SetDefault(c *Client) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultClient = c
}

// Default returns the client installed with SetDefault.
func Default() (*Client, error) {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	if defaultClient == nil {
		return nil, services.Wrap(services.ErrConfiguration, "telestream", "default client", "not configured; call SetDefault first", nil)
	}
	return defaultClient, nil
}
