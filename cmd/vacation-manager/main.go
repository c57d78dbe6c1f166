package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	"vacation-manager/internal/config"
	"vacation-manager/internal/handler"
	"vacation-manager/internal/metrics"
	"vacation-manager/internal/ops"
	"vacation-manager/internal/scheduler"
	"vacation-manager/pkg/businessdays"
	"vacation-manager/pkg/closures"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var (
	cfg    *config.Config
	logger *logrus.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vacation-manager",
		Short: "Vacation request tracker",
		Long:  "Tracks vacation requests and texts supervisors before their employees leave",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.GetConfig()
			logger = config.NewLogger(cfg.LogLevel)
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd(), sweepCmd(), durationCmd(), holidaysCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the reminder scheduler and the ops endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cfg, logger)
			if err != nil {
				return err
			}
			defer a.close()

			metrics.Init()

			sched := scheduler.New(a.dispatcher, cfg.Location(), logger)
			a.withScheduler(sched)
			if err := a.preferences.RescheduleAll(); err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              cfg.OpsAddr,
				Handler:           ops.NewRouter(sched),
				ReadHeaderTimeout: 5 * time.Second,
			}
			go func() {
				logger.WithField("addr", cfg.OpsAddr).Info("Ops endpoint listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.WithError(err).Error("Ops endpoint stopped")
				}
			}()

			if a.telegram != nil {
				botHandler := handler.NewHandler(
					a.telegram,
					cfg.BaseAdminChatID,
					sched,
					a.services(),
					cfg.NonWorkingDaysFile,
					logger,
				)
				go botHandler.HandleUpdates(a.telegram.Updates())
			}

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

			logger.Info("Vacation manager started. Press Ctrl+C to stop.")
			<-stop

			sched.Stop()
			if a.telegram != nil {
				a.telegram.StopUpdates()
			}

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.WithError(err).Warn("Ops endpoint shutdown")
			}

			logger.Info("Vacation manager stopped gracefully")
			return nil
		},
	}
}

func sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Run one reminder sweep and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cfg, logger)
			if err != nil {
				return err
			}
			defer a.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			result, err := a.dispatcher.Sweep(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), handler.FormatSweepResult(result.SweepID, result.Sent, result.Failed, result.Skipped))
			return err
		},
	}
}

func durationCmd() *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "duration",
		Short: "Print business days, hours and return date for a vacation",
		Long: `Print business days, hours and return date for a vacation.

Weekends and company holidays are never business days. When NON_WORKING_DAYS_FILE
is set, the plant closures listed in it are skipped as well, so the business days,
total hours and return date can differ from a run without the file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDuration(cmd.OutOrStdout(), cfg.NonWorkingDaysFile, start, end)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First vacation day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Last vacation day (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

// runDuration prints the duration of a vacation, skipping closures from closuresFile when set.
func runDuration(out io.Writer, closuresFile, start, end string) error {
	calc := businessdays.New()

	var applied int
	if closuresFile != "" {
		days, err := closures.ParseFile(closuresFile)
		if err != nil {
			return err
		}
		applied = len(days)
		calc = calc.WithClosures(closures.Dates(days)...)
	}

	duration, err := calc.Calculate(start, end)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Business days: %d\n", duration.BusinessDays)
	fmt.Fprintf(out, "Total hours:   %d\n", duration.TotalHours)
	fmt.Fprintf(out, "Return date:   %s\n", duration.ReturnDate.Format(businessdays.DateLayout))
	if closuresFile != "" {
		fmt.Fprintf(out, "Closures:      %d days from %s\n", applied, closuresFile)
	}
	return nil
}

func holidaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "holidays [year]",
		Short: "List company holidays",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := time.Now().Year()
			if len(args) == 1 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil || parsed < 1 {
					return fmt.Errorf("invalid year %q", args[0])
				}
				year = parsed
			}

			fmt.Fprintln(cmd.OutOrStdout(), handler.FormatHolidays(year))
			return nil
		},
	}
}
