// cmd/client/cmd/question/get.go
package question

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"questflow/internal/app/client"
)

var GetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)
		if app == nil {
			return fmt.Errorf("application not initialized")
		}

		q, err := app.Store().Get(args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(q)
	},
}
