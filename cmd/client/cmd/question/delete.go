// cmd/client/cmd/question/delete.go
package question

import (
	"fmt"

	"github.com/spf13/cobra"

	"questflow/internal/app/client"
)

var deleteYes bool

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)
		if app == nil {
			return fmt.Errorf("application not initialized")
		}

		if !deleteYes && !app.Confirm("Delete Question",
			fmt.Sprintf("Delete question %s and its media files?", args[0]),
			"Delete", "Cancel") {
			fmt.Println("Cancelled.")
			return nil
		}

		deleted, err := app.Store().Delete(args[0])
		if err != nil {
			return err
		}
		if !deleted {
			fmt.Println("No such question.")
			return nil
		}
		fmt.Println("Question deleted.")
		return nil
	},
}

func init() {
	DeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip confirmation")
}
