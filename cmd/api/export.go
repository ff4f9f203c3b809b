package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"timesheet-backend/internal/usecase/export"
)

const dayLayout = "2006-01-02"

func exportCmd() *cobra.Command {
	var (
		formID, from, to, format, out string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a form's submissions to a CSV or XLSX file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var r export.Range
			var err error
			if from != "" {
				if r.From, err = time.Parse(dayLayout, from); err != nil {
					return fmt.Errorf("invalid --from %q", from)
				}
			}
			if to != "" {
				if r.To, err = time.Parse(dayLayout, to); err != nil {
					return fmt.Errorf("invalid --to %q", to)
				}
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close(cmd.Context())

			res, err := a.exporter.Export(cmd.Context(), formID, r, export.Format(format))
			if err != nil {
				return err
			}

			path := filepath.Join(out, res.Filename)
			if err := os.WriteFile(path, res.Body, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			log.Info("export written", zap.String("path", path), zap.Int("rows", res.Rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&formID, "form", "", "form template id")
	cmd.Flags().StringVar(&from, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last day, YYYY-MM-DD")
	cmd.Flags().StringVar(&format, "format", string(export.FormatCSV), "csv or xlsx")
	cmd.Flags().StringVar(&out, "out", ".", "output directory")
	_ = cmd.MarkFlagRequired("form")
	return cmd
}
