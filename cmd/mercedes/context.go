package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"mercedes/internal/config"
	"mercedes/internal/daemonstate"
	"mercedes/internal/layout"
	"mercedes/internal/logging"
	"mercedes/internal/updatecheck"
)

// commandContext lazily shares config, logger, and the one-time daemon
// status load across subcommands. sync.Once keeps the "loaded exactly once
// per process" guarantee for the status record.
type commandContext struct {
	configFlag *string
	plainFlag  *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	statusOnce sync.Once
	status     daemonstate.Status
	statusErr  error
}

func newCommandContext(configFlag *string, plainFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		plainFlag:  plainFlag,
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
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.New(logging.Options{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			SessionID: uuid.NewString(),
		})
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) layoutValue() (layout.Layout, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return layout.Layout{}, err
	}
	return layout.Layout{Root: cfg.Paths.Root}, nil
}

// daemonStatus loads the status record at most once for the process.
func (c *commandContext) daemonStatus() (daemonstate.Status, error) {
	c.statusOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.statusErr = err
			return
		}
		logger, err := c.ensureLogger()
		if err != nil {
			c.statusErr = err
			return
		}
		lay := layout.Layout{Root: cfg.Paths.Root}
		c.status = daemonstate.Load(lay.StatusPath(), time.Now(), cfg.RecencyWindow(),
			logging.NewComponentLogger(logger, "daemonstate"))
	})
	return c.status, c.statusErr
}

func (c *commandContext) checker() (*updatecheck.Checker, error) {
	status, err := c.daemonStatus()
	if err != nil {
		return nil, err
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	lay, err := c.layoutValue()
	if err != nil {
		return nil, err
	}
	return updatecheck.New(status, lay, cfg.Buffer(), logger), nil
}

func (c *commandContext) plain() bool {
	return c.plainFlag != nil && *c.plainFlag
}
