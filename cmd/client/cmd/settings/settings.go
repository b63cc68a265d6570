// cmd/client/cmd/settings/settings.go
package settings

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"questflow/internal/app/client"
)

var (
	setAPIURL   string
	setAPIKey   bool
	setAutoSync string
	setDarkMode string
)

var SettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change client settings",
	Long: `Without flags the current settings are printed. Flags change the
corresponding setting; every change is persisted immediately.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)
		if app == nil {
			return fmt.Errorf("application not initialized")
		}

		changed, err := applyFlags(cmd, app)
		if err != nil {
			return err
		}
		if changed {
			fmt.Println("Settings saved.")
			return nil
		}
		return printSettings(app)
	},
}

func applyFlags(cmd *cobra.Command, app *client.App) (bool, error) {
	changed := false

	if cmd.Flags().Changed("api-url") {
		if err := app.Settings().Update(func(s *client.Settings) {
			s.APIURL = setAPIURL
		}); err != nil {
			return false, err
		}
		changed = true
	}

	if setAPIKey {
		fmt.Print("API key: ")
		key, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return false, fmt.Errorf("read api key: %w", err)
		}
		if err := app.Settings().Update(func(s *client.Settings) {
			s.APIKey = string(key)
		}); err != nil {
			return false, err
		}
		changed = true
	}

	if cmd.Flags().Changed("auto-sync") {
		v, err := parseBool(setAutoSync)
		if err != nil {
			return false, fmt.Errorf("--auto-sync: %w", err)
		}
		if err := app.Settings().Update(func(s *client.Settings) {
			s.AutoSync = v
		}); err != nil {
			return false, err
		}
		changed = true
	}

	if cmd.Flags().Changed("dark-mode") {
		v, err := parseBool(setDarkMode)
		if err != nil {
			return false, fmt.Errorf("--dark-mode: %w", err)
		}
		if err := app.Settings().Update(func(s *client.Settings) {
			s.DarkMode = v
		}); err != nil {
			return false, err
		}
		changed = true
	}

	return changed, nil
}

func printSettings(app *client.App) error {
	s := app.Settings().Get()

	fmt.Printf("Endpoint:   %s\n", valueOr(s.APIURL, "(not set)"))
	fmt.Printf("API key:    %s\n", maskKey(s.APIKey))
	fmt.Printf("Auto sync:  %v\n", s.AutoSync)
	fmt.Printf("Dark mode:  %v\n", s.DarkMode)
	fmt.Printf("Directory:  %s\n", valueOr(s.DirectoryName, "(fallback file)"))
	if s.LastSyncTime != nil {
		fmt.Printf("Last sync:  %s\n", s.LastSyncTime.Format("2006-01-02 15:04:05"))
	} else {
		fmt.Printf("Last sync:  never\n")
	}
	return nil
}

func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func parseBool(v string) (bool, error) {
	switch v {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", v)
}

func init() {
	SettingsCmd.Flags().StringVar(&setAPIURL, "api-url", "", "remote endpoint base URL")
	SettingsCmd.Flags().BoolVar(&setAPIKey, "api-key", false, "prompt for the API key (input is hidden)")
	SettingsCmd.Flags().StringVar(&setAutoSync, "auto-sync", "", "enable automatic sync (on/off)")
	SettingsCmd.Flags().StringVar(&setDarkMode, "dark-mode", "", "enable dark mode (on/off)")
}
