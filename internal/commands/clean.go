package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/orden-economico/gastos/internal/ledger"
	"github.com/orden-economico/gastos/internal/locale"
	"github.com/orden-economico/gastos/internal/pipeline"
)

func newCleanCommand(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "clean [file]",
		Short: "Write the cleaned ledger as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd, args)
			if err != nil {
				return err
			}

			res, err := pipeline.Clean(cmd.Context(), cfg)
			if err != nil {
				return explain(err, cfg.Input.Path)
			}
			for _, w := range res.Ledger.Warnings {
				fmt.Fprintln(cmd.ErrOrStderr(), "Advertencia:", w)
			}

			return runClean(cmd.OutOrStdout(), output, res, cfg.Policy())
		},
	}

	addInputFlags(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")

	return cmd
}

func runClean(stdout io.Writer, output string, res *pipeline.Result, policy locale.Policy) (err error) {
	w := stdout
	if output != "" {
		f, ferr := os.Create(output)
		if ferr != nil {
			return fmt.Errorf("creating %s: %w", output, ferr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing %s: %w", output, cerr)
			}
		}()
		w = f
	}

	if err := ledger.WriteCSV(w, res.Ledger.Expenses, policy); err != nil {
		return fmt.Errorf("writing cleaned ledger: %w", err)
	}
	slog.Info("ledger written", "expenses", len(res.Ledger.Expenses), "output", output)
	return nil
}
