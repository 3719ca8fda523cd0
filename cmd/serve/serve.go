package serve

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"golang.org/x/sync/errgroup"

	"github.com/sig-0/vesdash/cmd/env"
	"github.com/sig-0/vesdash/connectivity"
	"github.com/sig-0/vesdash/history"
	"github.com/sig-0/vesdash/refresh"
	"github.com/sig-0/vesdash/server"
	"github.com/sig-0/vesdash/server/config"
	"github.com/sig-0/vesdash/state"
	"github.com/sig-0/vesdash/upstream"
)

const upstreamTimeout = time.Second * 30

// serveCfg wraps the serve configuration
type serveCfg struct {
	config *config.Config

	configPath string
}

// NewServeCmd creates the serve subcommand
func NewServeCmd() *ffcli.Command {
	cfg := &serveCfg{
		config: config.DefaultConfig(),
	}

	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "serve",
		ShortUsage: "serve [flags]",
		LongHelp:   "Serves the vesdash dashboard",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			// Allow using ENV variables
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *serveCfg) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(
		&c.config.ListenAddress,
		"listen",
		config.DefaultListenAddress,
		"the IP:PORT URL for the dashboard server",
	)

	fs.StringVar(
		&c.config.APIBaseURL,
		"api-base",
		config.DefaultAPIBaseURL,
		"the base URL of the upstream rate aggregation API",
	)

	fs.StringVar(
		&c.config.RefreshInterval,
		"refresh-interval",
		config.DefaultRefreshInterval,
		"the interval between automatic silent rate refreshes",
	)

	fs.StringVar(
		&c.configPath,
		"config",
		"",
		"the path to the dashboard TOML configuration, if any",
	)
}

func (c *serveCfg) exec(ctx context.Context, _ []string) error {
	// Read the dashboard configuration, if any
	if c.configPath != "" {
		dashCfg, err := config.Read(c.configPath)
		if err != nil {
			return fmt.Errorf("unable to read dashboard config, %w", err)
		}

		c.config = dashCfg
	}

	if err := config.ValidateConfig(c.config); err != nil {
		return fmt.Errorf("invalid dashboard config, %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load .env
	if err := godotenv.Load(); err != nil {
		logger.Warn("unable to load .env file")
	}

	// Create the upstream API client
	client := upstream.NewClient(c.config.APIBaseURL, upstreamTimeout)

	// Create the rate state manager
	manager := state.NewManager(
		client,
		state.WithLogger(logger),
		state.WithNotifier(state.NewLogNotifier(logger)),
	)

	// Create the historical query controller
	controller := history.NewController(
		client,
		history.WithLogger(logger),
	)

	// Create the dashboard server
	s, err := server.New(
		manager,
		controller,
		server.WithLogger(logger),
		server.WithConfig(c.config),
	)
	if err != nil {
		return fmt.Errorf("unable to create server, %w", err)
	}

	runCtx, cancelFn := signal.NotifyContext(
		ctx,
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancelFn()

	// Wire up the background jobs
	monitor := connectivity.NewMonitor(client, c.config.ProbeIntervalDuration())
	manager.WatchConnectivity(runCtx, monitor)

	scheduler := refresh.New(refresh.WithLogger(logger))

	refreshJob := refresh.NewFuncJob(
		"rates-refresh",
		c.config.RefreshIntervalDuration(),
		func(jobCtx context.Context) error {
			// Silent, non-manual, exempt from the manual rate limit
			manager.RefreshRates(jobCtx, false, false)

			return nil
		},
	)

	if err := scheduler.Register(refreshJob); err != nil {
		return fmt.Errorf("unable to register refresh job, %w", err)
	}

	if err := scheduler.Register(monitor); err != nil {
		return fmt.Errorf("unable to register connectivity probe, %w", err)
	}

	// Trigger the one automatic initial load
	manager.Activate(runCtx)

	group, gCtx := errgroup.WithContext(runCtx)

	group.Go(func() error {
		return scheduler.Start(gCtx)
	})

	group.Go(func() error {
		return s.Serve(gCtx)
	})

	return group.Wait()
}
