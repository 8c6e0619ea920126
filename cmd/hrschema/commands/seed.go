package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"hrschema/cmd/hrschema/output"
	"hrschema/pkg/hr"
	"hrschema/pkg/runtime"
	"hrschema/pkg/store"
)

// seedCmd loads the sample dataset
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample dataset",
	Long: `Load the sample HR dataset into a migrated, empty database. Rows are
inserted in dependency order; department managers are assigned after the
employees exist.

Examples:
  hrschema seed --db postgres://localhost/hr`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed()
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed() error {
	if err := requireDB(); err != nil {
		return err
	}

	ctx := context.Background()

	db, err := runtime.ConnectWithURL(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	st := store.New(db)

	output.Section("Seeding Sample Data")
	if err := st.Seed(ctx); err != nil {
		output.Error("Seed failed: %v", err)
		return err
	}

	tables, err := hr.Tables()
	if err != nil {
		return err
	}
	for _, t := range tables {
		count, err := st.CountRows(ctx, t.Name)
		if err != nil {
			return fmt.Errorf("failed to count %s: %w", t.Name, err)
		}
		output.Muted("  %-12s %d rows", t.Name, count)
	}

	fmt.Println()
	output.Success("Sample data loaded")
	return nil
}
