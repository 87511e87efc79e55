package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/umalmyha/customers-intake/internal/config"
	"github.com/umalmyha/customers-intake/internal/console"
	"github.com/umalmyha/customers-intake/internal/infra"
)

const DefaultDatabaseOpenTimeout = 5 * time.Second

var dumpColumns = []string{"id", "name", "email", "phone", "address", "preferred_contact", "created_at"}

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "customer-dump",
		Short:        "Print every stored customer row, read-only",
		Long:         config.Usage(),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Build()
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
}

func run(ctx context.Context, cfg config.Config, out io.Writer) error {
	logger, err := infra.Logger(os.Stderr, cfg.LogCfg.Level)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultDatabaseOpenTimeout)
	defer cancel()

	db, err := infra.SQLite(ctx, cfg.StoreCfg.File, infra.ReadOnly)
	if err != nil {
		return err
	}
	defer db.Close()

	customerSvc, err := infra.CustomerService(db, logger)
	if err != nil {
		return err
	}

	tbl, err := customerSvc.FindAll(ctx)
	if err != nil {
		return err
	}
	return console.Dump(out, tbl.Project(dumpColumns...))
}
