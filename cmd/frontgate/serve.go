package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qsystem/frontgate/internal/config"
	"github.com/qsystem/frontgate/internal/proxy"
	"github.com/qsystem/frontgate/internal/routes"
	"github.com/qsystem/frontgate/internal/runtimecfg"
	"github.com/qsystem/frontgate/internal/static"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the gateway",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		// The frontend cannot boot without its configuration document, so
		// neither do we. Catching this here turns a blank page for every
		// user into one failed deploy step.
		if _, err := runtimecfg.Load(cfg.ConfigFile); err != nil {
			return fmt.Errorf("configuration document %s: %w", cfg.ConfigFile, err)
		}

		table := proxy.DefaultTable(cfg.BackendOrigin)
		if cfg.RulesFile != "" {
			var err error
			table, err = proxy.LoadTable(cfg.RulesFile)
			if err != nil {
				return err
			}
		}

		p, err := proxy.New(table, logger)
		if err != nil {
			return err
		}

		host := &static.Host{
			Dir:        cfg.StaticDir,
			ConfigPath: cfg.ConfigPath,
			ConfigFile: cfg.ConfigFile,
		}

		if cfg.DevMode {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go func() {
				if err := runtimecfg.Watch(ctx, cfg.ConfigFile, logger); err != nil && ctx.Err() == nil {
					logger.Warn("configuration watcher stopped", zap.Error(err))
				}
			}()
		} else {
			gin.SetMode(gin.ReleaseMode)
		}

		r := gin.New()
		routes.Register(r, p, host, logger)

		logger.Info("gateway listening",
			zap.String("port", cfg.Port),
			zap.String("backend", cfg.BackendOrigin),
			zap.String("static_dir", cfg.StaticDir))

		return r.Run(":" + cfg.Port)
	},
}
