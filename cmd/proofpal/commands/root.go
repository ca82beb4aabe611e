package commands

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/erazemk/proofpal/cmd/proofpal/output"
	"github.com/erazemk/proofpal/internal/config"
	"github.com/erazemk/proofpal/internal/db"
	"github.com/erazemk/proofpal/internal/settings"
)

var (
	// Global flags.
	dataDir string
	dbPath  string
	logPath string
)

var rootCmd = &cobra.Command{
	Use:   "proofpal",
	Short: "ProofPal - personal purchase and warranty tracker",
	Long: `ProofPal tracks purchases, their return and warranty deadlines,
attaches proof-of-purchase files to a content-addressed archive,
raises reminders when a deadline arrives, and exports a summary
dossier per item.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. setupLogger receives the resolved log
// path before any command runs.
func Execute(setupLogger func(logPath string) (func(), error)) {
	cobra.OnInitialize(func() {
		if logPath == "" {
			logPath = os.Getenv("PROOFPAL_LOG")
		}
		cleanup, err := setupLogger(logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		cobra.OnFinalize(cleanup)
	})

	if err := rootCmd.Execute(); err != nil {
		output.Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (default: <data-dir>/proofpal.db)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "Log file path (default: stdout/stderr only)")
}

// openEnv resolves the configuration, prepares the data directories and
// opens the database, touching the last-opened preference on the way.
func openEnv() (*config.Config, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
		cfg.DatabasePath = filepath.Join(dataDir, "proofpal.db")
	}
	if dbPath != "" {
		cfg.DatabasePath = dbPath
	}

	if err := cfg.EnsureDirs(); err != nil {
		return nil, nil, err
	}

	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	if err := db.EnsureSchema(database); err != nil {
		database.Close()
		return nil, nil, err
	}

	// Preferences must never fail a command; the timestamp is best-effort.
	prefs := settings.Load(cfg.SettingsPath())
	prefs.LastOpened = time.Now().UTC().Format(time.RFC3339)
	if err := settings.Save(prefs, cfg.SettingsPath()); err != nil {
		output.Warning("could not save preferences: %v", err)
	}

	return cfg, database, nil
}

// parseDate parses a YYYY-MM-DD command-line value.
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", value)
	}
	return t, nil
}
