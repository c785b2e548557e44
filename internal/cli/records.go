package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"purchases/internal/core"
	"purchases/internal/services"
)

var (
	flagDate     string
	flagName     string
	flagPhone    string
	flagProduct  string
	flagPrice    string
	flagQuantity string
)

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)

	addCmd.Flags().StringVar(&flagDate, "date", "", "purchase date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVar(&flagName, "name", "", "customer full name")
	addCmd.Flags().StringVar(&flagPhone, "phone", "", "customer phone number")
	addCmd.Flags().StringVar(&flagProduct, "product", "", "product name")
	addCmd.Flags().StringVar(&flagPrice, "price", "0", "unit price")
	addCmd.Flags().StringVar(&flagQuantity, "quantity", "1", "quantity")
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a purchase record",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *services.LedgerService, rate float64) error {
			rec, err := svc.AddRecord(ctx, services.AddRecordInput{
				Date:          flagDate,
				CustomerName:  flagName,
				CustomerPhone: flagPhone,
				ProductName:   flagProduct,
				UnitPrice:     flagPrice,
				Quantity:      flagQuantity,
			}, rate)
			if err != nil {
				return err
			}
			fmt.Printf("Added record %s: %s, cumulative %s, bonus %s\n",
				rec.ID, rec.LineTotal, rec.CumulativeSpend, rec.BonusPoints)
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete RECORD_ID...",
	Short: "Delete purchase records by ID",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *services.LedgerService, rate float64) error {
			deleted, err := svc.DeleteRecords(ctx, args, rate)
			if errors.Is(err, core.ErrEmptySelection) {
				fmt.Println("Nothing selected, nothing deleted.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d record(s)\n", deleted)
			return nil
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all purchase records",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *services.LedgerService, rate float64) error {
			records, err := svc.List(ctx, rate)
			if err != nil {
				return err
			}
			printRecords(records)
			return nil
		})
	},
}

var searchCmd = &cobra.Command{
	Use:   "search PHONE_SUBSTRING",
	Short: "Search records by phone number substring",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		return withService(func(ctx context.Context, svc *services.LedgerService, rate float64) error {
			records, err := svc.Search(ctx, query, rate)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No matching records.")
				return nil
			}
			printRecords(records)
			return nil
		})
	},
}

// withService runs fn against a fully wired ledger service and tears it
// down afterwards.
func withService(fn func(context.Context, *services.LedgerService, float64) error) error {
	LoadEnvFile()
	logger := SetupLogger()

	cfg, err := LoadAndValidateConfig()
	if err != nil {
		return err
	}
	svc, err := OpenService(cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	return fn(context.Background(), svc, cfg.BonusRatePercent)
}

func printRecords(records []core.PurchaseRecord) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tNAME\tPHONE\tPRODUCT\tPRICE\tQTY\tTOTAL\tCUMULATIVE\tBONUS\tID")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			r.Date, r.CustomerName, r.CustomerPhone, r.ProductName,
			r.UnitPrice, r.Quantity, r.LineTotal, r.CumulativeSpend,
			r.BonusPoints, r.ID)
	}
	w.Flush()
}
