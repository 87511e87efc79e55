package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/umalmyha/customers-intake/internal/config"
	"github.com/umalmyha/customers-intake/internal/console"
	"github.com/umalmyha/customers-intake/internal/controller"
	"github.com/umalmyha/customers-intake/internal/infra"
)

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
		Use:          "customer-viewer",
		Short:        "Browse stored customer records in a sortable table",
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

	// viewer never creates the store, a missing file shows up as read failure on every refresh
	db, err := infra.OpenSQLite(cfg.StoreCfg.File, infra.ReadOnly)
	if err != nil {
		return err
	}
	defer db.Close()

	customerSvc, err := infra.CustomerService(db, logger)
	if err != nil {
		return err
	}

	viewerCtrl := controller.NewViewerController(customerSvc, console.NewNotifier(out))
	return console.NewViewer(viewerCtrl, in, out).Run(ctx)
}
