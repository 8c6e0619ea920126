package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"hrschema/cmd/hrschema/output"
	"hrschema/pkg/migration"
)

var (
	// Generate flags
	migrationName string
)

// generateCmd writes the schema DDL as a versioned migration file pair
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate migration files",
	Long: `Generate timestamped up/down SQL migration files from the declared
HR schema.

Examples:
  hrschema generate --name create_hr_schema
  hrschema generate --name create_hr_schema --migrations-dir ./db/migrations`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate()
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&migrationName, "name", "n", "create_hr_schema", "Migration name")
}

func runGenerate() error {
	s, err := buildSchema()
	if err != nil {
		return err
	}

	planner := migration.NewPlanner()
	up, down := planner.GenerateSchema(s)

	generator := migration.NewGenerator(migrationsDir)
	migrationFile, err := generator.Generate(migrationName, up, down)
	if err != nil {
		return fmt.Errorf("failed to generate migration: %w", err)
	}

	output.Success("Created migration: %s", migrationFile.Version)
	output.Muted("  Up:   %s", migrationFile.UpPath)
	output.Muted("  Down: %s", migrationFile.DownPath)
	fmt.Println()
	output.Info("Review the generated SQL files before applying the migration.")

	return nil
}
