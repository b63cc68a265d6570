// cmd/client/cmd/data/clear.go
package data

import (
	"fmt"

	"github.com/spf13/cobra"

	"questflow/internal/app/client"
)

var clearYes bool

var ClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all questions and reset settings",
	Long: `Remove every question (including stored media) and reset settings to
defaults. The remote endpoint and credential are kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)
		if app == nil {
			return fmt.Errorf("application not initialized")
		}

		if !clearYes && !app.Confirm("Clear All Data",
			"This removes every question and its media files. This cannot be undone.",
			"Clear", "Cancel") {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := app.ClearData(); err != nil {
			return err
		}
		fmt.Println("All data cleared.")
		return nil
	},
}

func init() {
	ClearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip confirmation")
}
