// cmd/client/cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/exp/slog"

	"questflow/internal/app/client"
	"questflow/internal/app/client/config"
	"questflow/internal/notify"
	"questflow/internal/utils/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfg    *config.Config
	log    *slog.Logger
	app    *client.App
	apiURL string
)

var rootCmd = &cobra.Command{
	Use:   "questflow",
	Short: "QuestFlow - local-first quiz question manager",
	Long: `QuestFlow manages quiz questions with optional media attachments.

Questions are stored locally (in a chosen directory, or a serialized
fallback file when none is chosen) and synchronized opportunistically
with a remote service when one is configured.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	viper.AutomaticEnv()
	cfg = config.MustLoad()

	log = logger.New(cfg.Env)

	notifier := notify.NewTerminalNotifier(os.Stderr)
	confirmer := notify.NewTerminalConfirmer(os.Stdin, os.Stdout)

	var err error
	app, err = client.New(cfg, log, notifier, confirmer)
	if err != nil {
		return fmt.Errorf("could not initialize the application: %w", err)
	}

	// The flag wins over the persisted endpoint and is written through.
	if apiURL != "" {
		if err := app.Settings().Update(func(s *client.Settings) {
			s.APIURL = apiURL
		}); err != nil {
			return err
		}
	}

	cmd.SetContext(context.WithValue(cmd.Context(), "app", app))
	return nil
}

func init() {
	cobra.OnInitialize()

	rootCmd.PersistentFlags().StringVar(&apiURL, "server", "", "sync API base URL")
}
