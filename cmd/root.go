package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"marketplace/internal/adapters/in/scenario"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand builds the marketplace CLI. Each invocation gets its own viper instance.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           "marketplace",
		Short:         "Food-delivery marketplace core",
		Long:          `marketplace runs the food-delivery marketplace in memory: generated scenarios or a long-running instance with scheduled jobs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	_ = v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	load := func(cmd *cobra.Command) (*CompositionRoot, error) {
		config, err := LoadConfig(v, cfgFile)
		if err != nil {
			return nil, err
		}
		level, err := config.Level()
		if err != nil {
			return nil, err
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		return NewCompositionRoot(config, logger)
	}

	root.AddCommand(newSimulateCommand(v, load), newServeCommand(load))
	return root
}

func newSimulateCommand(v *viper.Viper, load func(*cobra.Command) (*CompositionRoot, error)) *cobra.Command {
	simulate := &cobra.Command{
		Use:   "simulate",
		Short: "Seed a marketplace and push generated orders through the dispatch protocol",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load(cmd)
			if err != nil {
				return err
			}
			runner, err := app.CreateScenarioRunner(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			report, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	flags := simulate.Flags()
	flags.Int64("seed", 42, "random seed of the generated data")
	flags.Int("orders", 200, "number of orders to deliver")
	flags.Int("restaurants", 5, "number of restaurants")
	flags.Int("customers", 40, "number of customers")
	flags.Int("couriers", 10, "number of couriers")
	flags.Float64("refuse-probability", 0.2, "chance that a courier refuses an offer")
	for key, flag := range map[string]string{
		"scenario.seed":               "seed",
		"scenario.orders":             "orders",
		"scenario.restaurants":        "restaurants",
		"scenario.customers":          "customers",
		"scenario.couriers":           "couriers",
		"scenario.refuse_probability": "refuse-probability",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}
	return simulate
}

func newServeCommand(load func(*cobra.Command) (*CompositionRoot, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Seed a marketplace and run the scheduled jobs until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			runner, err := app.CreateScenarioRunner(io.Discard)
			if err != nil {
				return err
			}
			if _, err = runner.Run(ctx); err != nil {
				return err
			}

			jobManager := app.CreateJobManager()
			if err = jobManager.StartAll(); err != nil {
				return err
			}
			defer jobManager.StopAll()

			<-ctx.Done()
			return nil
		},
	}
}

func printReport(w io.Writer, report scenario.Report) {
	stats := report.Statistics
	fmt.Fprintf(w, "delivered %d orders (%d accepted, %d refused, %d cascaded, %d redispatched)\n",
		report.Delivered, report.Accepted, report.Refused, report.Cascaded, report.Redispatched)
	fmt.Fprintf(w, "customers:           %d\n", stats.Customers)
	fmt.Fprintf(w, "total income:        %s\n", stats.TotalIncome)
	fmt.Fprintf(w, "total profit:        %s\n", stats.TotalProfit)
	fmt.Fprintf(w, "income per customer: %s\n", stats.AverageIncomePerCustomer)

	fmt.Fprintln(w, "most active couriers:")
	for i, c := range report.Ranking.Couriers[:min(3, len(report.Ranking.Couriers))] {
		fmt.Fprintf(w, "  %d. %s (%d)\n", i+1, c.Name, c.Delivered)
	}
	fmt.Fprintln(w, "most active restaurants:")
	for i, r := range report.Ranking.Restaurants[:min(3, len(report.Ranking.Restaurants))] {
		fmt.Fprintf(w, "  %d. %s (%d)\n", i+1, r.Name, r.Delivered)
	}
}

// Execute runs the root command with a background context.
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}
