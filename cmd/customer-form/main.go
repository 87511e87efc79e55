package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/umalmyha/customers-intake/internal/config"
	"github.com/umalmyha/customers-intake/internal/console"
	"github.com/umalmyha/customers-intake/internal/controller"
	"github.com/umalmyha/customers-intake/internal/infra"
)

const DefaultDatabaseOpenTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		// the next interrupt kills the process as usual
		<-ctx.Done()
		stop()
	}()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "customer-form",
		Short:        "Collect customer details and store them in the local database",
		Long:         config.Usage(),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Build()
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func run(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer) error {
	logger, err := infra.Logger(os.Stderr, cfg.LogCfg.Level)
	if err != nil {
		return err
	}

	openCtx, cancel := context.WithTimeout(ctx, DefaultDatabaseOpenTimeout)
	defer cancel()

	db, err := infra.SQLite(openCtx, cfg.StoreCfg.File, infra.ReadWriteCreate)
	if err != nil {
		return err
	}
	defer db.Close()

	customerSvc, err := infra.CustomerService(db, logger)
	if err != nil {
		return err
	}

	if err := customerSvc.InitStore(openCtx); err != nil {
		return err
	}
	logger.WithField("file", cfg.StoreCfg.File).Info("customer store is ready")

	formCtrl := controller.NewFormController(customerSvc, console.NewNotifier(out))
	return console.NewForm(formCtrl, in, out).Run(ctx)
}
