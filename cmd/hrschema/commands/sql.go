package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"hrschema/pkg/hr"
	"hrschema/pkg/migration"
	"hrschema/pkg/schema"
)

var (
	// SQL flags
	downSQL       bool
	noIfNotExists bool
)

// sqlCmd prints the schema DDL
var sqlCmd = &cobra.Command{
	Use:   "sql",
	Short: "Print the schema DDL",
	Long: `Print the full DDL of the HR schema: sequences, tables in dependency
order, the deferred manager constraint, indexes, the employee details view,
and comments.

Examples:
  hrschema sql                 # Print the up DDL
  hrschema sql --down          # Print the down DDL
  hrschema sql --no-if-not-exists`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSQL()
	},
}

func init() {
	rootCmd.AddCommand(sqlCmd)

	sqlCmd.Flags().BoolVar(&downSQL, "down", false, "Print the down (teardown) DDL instead")
	sqlCmd.Flags().BoolVar(&noIfNotExists, "no-if-not-exists", false, "Omit IF NOT EXISTS from CREATE statements")
}

// buildSchema assembles the declared HR schema for the planner.
func buildSchema() (*migration.Schema, error) {
	tables, err := hr.Tables()
	if err != nil {
		return nil, fmt.Errorf("failed to build schema metadata: %w", err)
	}
	return &migration.Schema{
		Tables:    tables,
		Sequences: hr.Sequences(),
		Views:     []schema.ViewMetadata{hr.View()},
	}, nil
}

func runSQL() error {
	s, err := buildSchema()
	if err != nil {
		return err
	}

	planner := migration.NewPlannerWithOptions(migration.PlannerOptions{
		IfNotExists: !noIfNotExists,
	})
	up, down := planner.GenerateSchema(s)

	if downSQL {
		fmt.Print(down)
	} else {
		fmt.Print(up)
	}
	return nil
}
