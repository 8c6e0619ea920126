package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"hrschema/cmd/hrschema/output"
	"hrschema/pkg/migration"
)

// verifyCmd checks a live database against the declared schema
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check a live database against the declared schema",
	Long: `Verify that a live database matches the declared HR schema: every
table, column, key, foreign key, index, sequence, and the employee details
view. Reports drift without modifying anything.

Examples:
  hrschema verify --db postgres://localhost/hr
  hrschema verify --db postgres://localhost/hr --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerify()
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify() error {
	if err := requireDB(); err != nil {
		return err
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	s, err := buildSchema()
	if err != nil {
		return err
	}

	verifier := migration.NewVerifier(pool)
	findings, err := verifier.Verify(ctx, s)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if findings == nil {
			findings = []migration.Finding{}
		}
		if err := enc.Encode(findings); err != nil {
			return err
		}
		if len(findings) > 0 {
			os.Exit(1)
		}
		return nil
	}

	if len(findings) == 0 {
		output.Success("Database matches the declared schema")
		return nil
	}

	output.Section("Schema Drift")
	for _, f := range findings {
		output.Error("%s", f.String())
	}
	fmt.Println()
	return fmt.Errorf("%d discrepanc(ies) found", len(findings))
}
