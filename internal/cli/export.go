package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"purchases/internal/export"
	"purchases/internal/services"
)

var flagExportOut string

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&flagExportOut, "out", "purchases.xlsx", "output workbook path")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger as an XLSX report",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *services.LedgerService, rate float64) error {
			records, err := svc.List(ctx, rate)
			if err != nil {
				return err
			}
			if err := export.WriteReport(flagExportOut, records); err != nil {
				return err
			}
			fmt.Printf("Exported %d record(s) to %s\n", len(records), flagExportOut)
			return nil
		})
	},
}
