package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"tcloud/internal/config"
	"tcloud/internal/logging"
	"tcloud/internal/services"
	"tcloud/internal/services/telestream"
)

type commandContext struct {
	configFlag  *string
	factoryFlag *string
	jsonFlag    *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	clientOnce sync.Once
	client     *telestream.Client
	clientErr  error
}

func newCommandContext(configFlag, factoryFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		factoryFlag: factoryFlag,
		jsonFlag:    jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// loggerValue returns the configured logger, falling back to a no-op logger
// when configuration or log setup failed.
func (c *commandContext) loggerValue() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// apiClient builds the Telestream client once per invocation.
func (c *commandContext) apiClient() (*telestream.Client, error) {
	c.clientOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.clientErr = err
			return
		}
		c.client, c.clientErr = telestream.NewFromConfig(cfg, c.loggerValue())
	})
	return c.client, c.clientErr
}

// factoryID resolves the factory for factory-scoped commands: the --factory
// flag wins over api.factory_id.
func (c *commandContext) factoryID() (string, error) {
	if c.factoryFlag != nil {
		if id := strings.TrimSpace(*c.factoryFlag); id != "" {
			return id, nil
		}
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	if id := strings.TrimSpace(cfg.API.FactoryID); id != "" {
		return id, nil
	}
	return "", services.Wrap(services.ErrConfiguration, "factory", "resolve", "pass --factory or set api.factory_id (TCLOUD_FACTORY_ID)", nil)
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// withFactory runs fn with a client and the resolved factory ID. The command
// context carries the factory and operation for log correlation.
func (c *commandContext) withFactory(cmd *cobra.Command, operation string, fn func(context.Context, *telestream.Client, string) error) error {
	factoryID, err := c.factoryID()
	if err != nil {
		return err
	}
	client, err := c.apiClient()
	if err != nil {
		return err
	}
	ctx := services.WithFactoryID(commandCtx(cmd), factoryID)
	ctx = services.WithOperation(ctx, operation)
	return fn(ctx, client, factoryID)
}

// withAccount runs fn with a client for account-level operations.
func (c *commandContext) withAccount(cmd *cobra.Command, operation string, fn func(context.Context, *telestream.Client) error) error {
	client, err := c.apiClient()
	if err != nil {
		return err
	}
	return fn(services.WithOperation(commandCtx(cmd), operation), client)
}

func commandCtx(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
