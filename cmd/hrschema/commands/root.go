package commands

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dbURL         string
	migrationsDir string
	verbose       bool
	jsonOutput    bool

	logger zerolog.Logger
)

// envConfig carries settings read from the environment when flags are not
// given. A .env file in the working directory is loaded first if present.
type envConfig struct {
	DatabaseURL   string `env:"HR_DATABASE_URL"`
	MigrationsDir string `env:"HR_MIGRATIONS_DIR"`
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hrschema",
	Short: "HR schema toolkit for PostgreSQL",
	Long: `hrschema manages the Human Resources reference schema on PostgreSQL:
seven related tables, their sequences, indexes, constraints, comments, and
the employee details view.

Commands:
  sql       - Print the schema DDL
  generate  - Write the DDL as versioned migration files
  migrate   - Apply, rollback, and inspect migrations
  verify    - Check a live database against the declared schema
  seed      - Load the sample dataset`,
	Version: "1.2.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional; a missing file is not an error.
		_ = godotenv.Load()

		var cfg envConfig
		if err := env.Parse(&cfg); err == nil {
			if dbURL == "" {
				dbURL = cfg.DatabaseURL
			}
			if !cmd.Flags().Changed("migrations-dir") && cfg.MigrationsDir != "" {
				migrationsDir = cfg.MigrationsDir
			}
		}

		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (defaults to HR_DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&migrationsDir, "migrations-dir", "./migrations", "Directory for migration files")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

func requireDB() error {
	if dbURL == "" {
		return fmt.Errorf("--db flag or HR_DATABASE_URL is required")
	}
	return nil
}
