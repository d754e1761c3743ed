package commands

import (
	"github.com/spf13/cobra"

	"github.com/orden-economico/gastos/internal/pipeline"
)

func newAnalyzeCommand(a *app) *cobra.Command {
	var preview bool

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Clean the ledger, draw both charts and print the spending summary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd, args)
			if err != nil {
				return err
			}
			if _, err := pipeline.Run(cmd.Context(), cfg, cmd.OutOrStdout(), preview); err != nil {
				return explain(err, cfg.Input.Path)
			}
			return nil
		},
	}

	addInputFlags(cmd.Flags())
	cmd.Flags().String("category-chart", "", "category bar chart file (default: Gasto_por_categoria.png)")
	cmd.Flags().String("daily-chart", "", "daily line chart file (default: Gasto_en_el_tiempo.png)")
	cmd.Flags().BoolVar(&preview, "preview", false, "print the first raw and cleaned rows before the summary")
	cmd.Flags().Int("preview-rows", 5, "rows shown by --preview")

	return cmd
}
