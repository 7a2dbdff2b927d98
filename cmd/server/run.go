package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"

	"github.com/phrazzld/scry-testkit/internal/app"
	"github.com/phrazzld/scry-testkit/internal/config"
	"github.com/phrazzld/scry-testkit/internal/platform/logger"
	"github.com/phrazzld/scry-testkit/internal/platform/sqldb"
)

type options struct {
	configFile string
	addr       string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&opts.configFile, "config", "", "path to a YAML config file")
	fs.StringVar(&opts.addr, "addr", "", "listen address (defaults to :<server.port>)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

// run wires the application and serves it until ctx is cancelled.
func run(ctx context.Context, args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := loadAppConfig(opts.configFile)
	if err != nil {
		return err
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	ctx = logger.WithLogger(ctx, l)

	db, err := sqldb.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			l.Error("failed to close database", "error", err)
		}
	}()

	if err := sqldb.Migrate(ctx, db); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	application, err := app.New(cfg, db, l)
	if err != nil {
		return err
	}

	addr := opts.addr
	if addr == "" {
		addr = fmt.Sprintf(":%d", cfg.Server.Port)
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	return startHTTPServer(ctx, ln, application.Router, l)
}

func loadAppConfig(path string) (*config.Config, error) {
	var loadOpts []config.Option
	if path != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(path))
	}

	cfg, err := config.Load(loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver)
	return cfg, nil
}
