// cmd/client/cmd/data/usedir.go
package data

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"questflow/internal/app/client"
)

var UseDirCmd = &cobra.Command{
	Use:   "use-dir <path>",
	Short: "Store questions in a directory with full media support",
	Long: `Switch the persistence root to the given directory. Each question is
kept as its own JSON file and attachment bytes are written under media/.
Whatever the directory already holds becomes the working collection;
the previous collection is not carried over.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)
		if app == nil {
			return fmt.Errorf("application not initialized")
		}

		root, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolve path: %w", err)
		}

		if err := app.UseDirectory(root); err != nil {
			return err
		}
		fmt.Printf("Now using %s (%d questions loaded).\n", root, app.Store().Count())
		return nil
	},
}
