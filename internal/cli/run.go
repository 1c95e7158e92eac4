package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comalice/tablefsm"
	"github.com/comalice/tablefsm/internal/config"
	"github.com/comalice/tablefsm/metrics"
	"github.com/comalice/tablefsm/realtime"
)

// runOptions holds options for the run command. Zero flag values fall back
// to the table file.
type runOptions struct {
	configPath  string
	tick        time.Duration
	maxTicks    uint64
	logLevel    string
	metricsAddr string
	quiet       bool
}

func (a *App) newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a table file",
		Long: `Run a state table until interrupted or until max ticks is reached.

Examples:
  # Run with the tick rate from the file
  tablefsm run -c traffic.yaml

  # Run 20 fast ticks and expose metrics
  tablefsm run -c traffic.yaml --tick 10ms --max-ticks 20 --metrics-addr :9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to table file")
	cmd.Flags().DurationVar(&opts.tick, "tick", 0, "Tick interval (overrides the file)")
	cmd.Flags().Uint64Var(&opts.maxTicks, "max-ticks", 0, "Stop after this many ticks (overrides the file)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Do not print transitions")

	return cmd
}

func (a *App) run(ctx context.Context, opts *runOptions) error {
	if opts.configPath == "" {
		return errors.New("table file path is required (-c flag)")
	}

	logger, err := a.newLogger(opts.logLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	table, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	states, err := table.Build()
	if err != nil {
		return err
	}

	cfg := realtime.Config{
		TickRate: table.Tick,
		MaxTicks: table.MaxTicks,
		ID:       table.Name,
	}
	if cfg.ID == "" {
		// Logs and metrics share the machine label.
		cfg.ID = uuid.NewString()
	}
	if opts.tick > 0 {
		cfg.TickRate = opts.tick
	}
	if opts.maxTicks > 0 {
		cfg.MaxTicks = opts.maxTicks
	}

	rtOpts := []realtime.Option{realtime.WithLogger(logger)}
	if !opts.quiet {
		rtOpts = append(rtOpts, realtime.WithObserver(realtime.ObserverFunc(a.printTick)))
	}

	var srv *http.Server
	if opts.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		collector, err := metrics.NewCollector(reg, cfg.ID)
		if err != nil {
			return err
		}
		rtOpts = append(rtOpts, realtime.WithObserver(collector))

		ln, err := net.Listen("tcp", opts.metricsAddr)
		if err != nil {
			return fmt.Errorf("listen %s: %w", opts.metricsAddr, err)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
		logger.Info("serving metrics", zap.String("addr", ln.Addr().String()))
	}

	rt := realtime.NewRuntime(tablefsm.New(states), cfg, rtOpts...)
	if err := rt.Start(ctx); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
	case <-rt.Done():
	}
	if err := rt.Stop(); err != nil {
		return err
	}

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown metrics server: %w", err)
		}
	}

	fmt.Fprintf(a.stdout, "stopped after %d ticks in %s\n", rt.TickNumber(), stateLabel(rt.CurrentIndex(), rt.Current()))
	return nil
}

func (a *App) printTick(info realtime.TickInfo) {
	if info.Outcome != tablefsm.Transitioned {
		return
	}
	fmt.Fprintf(a.stdout, "tick %d: %s -> %s\n", info.Tick, info.FromName, info.ToName)
}

func stateLabel(index int, s *tablefsm.State) string {
	if s == nil {
		return "no state"
	}
	return fmt.Sprintf("%s (%d)", s, index)
}
