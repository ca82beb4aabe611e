package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/erazemk/proofpal/cmd/proofpal/output"
	"github.com/erazemk/proofpal/internal/config"
	"github.com/erazemk/proofpal/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change user preferences",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		prefs := settings.Load(cfg.SettingsPath())

		fmt.Printf("theme:           %s\n", prefs.Theme)
		fmt.Printf("return_days:     %d\n", prefs.ReturnDays)
		fmt.Printf("warranty_months: %d\n", prefs.WarrantyMonths)
		if prefs.LastOpened != "" {
			fmt.Printf("last_opened:     %s\n", prefs.LastOpened)
		}
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a preference (theme, return_days, warranty_months)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		prefs := settings.Load(cfg.SettingsPath())

		key, value := args[0], args[1]
		switch key {
		case "theme":
			if value != "light" && value != "dark" {
				return fmt.Errorf("theme must be light or dark")
			}
			prefs.Theme = value
		case "return_days":
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return fmt.Errorf("return_days must be a positive number")
			}
			prefs.ReturnDays = n
		case "warranty_months":
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return fmt.Errorf("warranty_months must be a positive number")
			}
			prefs.WarrantyMonths = n
		default:
			return fmt.Errorf("unknown preference %q", key)
		}

		if err := settings.Save(prefs, cfg.SettingsPath()); err != nil {
			return err
		}
		output.Success("%s set to %s", key, value)
		return nil
	},
}

// loadConfig resolves paths without opening the database; the preferences
// file lives beside it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return cfg, nil
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
