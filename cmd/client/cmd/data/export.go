// cmd/client/cmd/data/export.go
package data

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"questflow/internal/app/client"
)

var exportOutput string

var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all questions to a JSON file",
	Long: `Export the whole collection as one ordered JSON array. Media is
represented by its descriptors only; attachment bytes are not embedded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)
		if app == nil {
			return fmt.Errorf("application not initialized")
		}

		payload, err := app.Store().ExportJSON()
		if err != nil {
			return err
		}
		if err := os.WriteFile(exportOutput, payload, 0o600); err != nil {
			return fmt.Errorf("write export file: %w", err)
		}
		fmt.Printf("Exported %d questions to %s\n", app.Store().Count(), exportOutput)
		return nil
	},
}

func init() {
	ExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "questflow_export.json", "output file")
}
