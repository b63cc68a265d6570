// cmd/client/cmd/data/import.go
package data

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"questflow/internal/app/client"
)

var ImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import questions from an exported JSON file",
	Long: `Merge an exported question set into the local collection.

Questions with unknown ids are inserted. For known ids the newer version
wins; on equal timestamps the local copy is kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)
		if app == nil {
			return fmt.Errorf("application not initialized")
		}

		payload, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}

		merged, err := app.Store().ImportJSON(payload)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d questions.\n", merged)
		return nil
	},
}
