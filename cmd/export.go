package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chrisdamba/roaddash/internal/dashboard"
	"github.com/chrisdamba/roaddash/internal/export"
	"github.com/chrisdamba/roaddash/internal/logger"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the dashboard as JSON, an XLSX workbook and PNG charts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := logger.WithAction(cmd.Context(), "export")
		outDir, _ := cmd.Flags().GetString("out")
		forecast, _ := cmd.Flags().GetBool("forecast")

		p, err := newPipeline(ctx, cfg, log)
		if err != nil {
			return err
		}
		payload, err := p.assembler.Build(ctx, dashboard.Options{IncludeForecast: forecast})
		if err != nil {
			log.Error(ctx, "failed to build dashboard", err)
			return err
		}

		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}

		jsonPath := filepath.Join(outDir, "dashboard.json")
		f, err := os.Create(jsonPath)
		if err != nil {
			return err
		}
		if err := export.WriteJSON(f, payload); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}

		xlsxPath := filepath.Join(outDir, "dashboard.xlsx")
		if err := export.WriteWorkbook(xlsxPath, payload); err != nil {
			return err
		}

		charts, err := export.WriteCharts(filepath.Join(outDir, "charts"), payload.Charts)
		if err != nil {
			return err
		}

		log.Info(ctx, "dashboard exported", "json", jsonPath, "workbook", xlsxPath, "charts", len(charts))
		return nil
	},
}

func init() {
	exportCmd.Flags().String("out", "export", "output directory")
	exportCmd.Flags().Bool("forecast", true, "include the accident forecast")
	rootCmd.AddCommand(exportCmd)
}
