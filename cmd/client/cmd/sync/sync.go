// cmd/client/cmd/sync/sync.go
package sync

import (
	"fmt"

	"github.com/spf13/cobra"

	"questflow/internal/app/client"
)

var (
	syncStatus bool
	syncForce  bool
)

var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push pending changes to the remote service",
	Long: `Drain the pending sync queue against the configured endpoint. With
--force every question is re-sent regardless of the queue contents.
--status prints queue state without sending anything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)
		if app == nil {
			return fmt.Errorf("application not initialized")
		}

		if syncStatus {
			return printStatus(app)
		}

		if syncForce {
			if err := app.ForceSync(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Full sync complete.")
			return nil
		}

		pending := app.Queue().Len()
		if pending == 0 {
			fmt.Println("Nothing to sync.")
			return nil
		}
		if err := app.SyncNow(cmd.Context()); err != nil {
			return err
		}
		if remaining := app.Queue().Len(); remaining > 0 {
			fmt.Printf("Sync finished with %d items still pending.\n", remaining)
		} else {
			fmt.Printf("Synced %d items.\n", pending)
		}
		return nil
	},
}

func printStatus(app *client.App) error {
	s := app.Settings().Get()

	fmt.Printf("Endpoint:     %s\n", valueOr(s.APIURL, "(not set)"))
	fmt.Printf("Auto sync:    %v\n", s.AutoSync)
	fmt.Printf("Pending:      %d\n", app.Queue().Len())
	fmt.Printf("Draining:     %v\n", app.Queue().IsDraining())
	if s.LastSyncTime != nil {
		fmt.Printf("Last sync:    %s\n", s.LastSyncTime.Format("2006-01-02 15:04:05"))
	} else {
		fmt.Printf("Last sync:    never\n")
	}
	if app.Online() {
		fmt.Printf("Server:       reachable\n")
	} else {
		fmt.Printf("Server:       unreachable\n")
	}
	return nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func init() {
	SyncCmd.Flags().BoolVar(&syncStatus, "status", false, "show queue state without syncing")
	SyncCmd.Flags().BoolVar(&syncForce, "force", false, "re-send every question")
}
