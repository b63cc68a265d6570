// cmd/client/cmd/question/update.go
package question

import (
	"fmt"

	"github.com/spf13/cobra"

	"questflow/internal/app/client"
	"questflow/internal/domain/question"
)

var (
	updateKind    string
	updateBody    string
	updateChoices []string
	updateAnswer  int
)

var UpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a question",
	Long:  `Update fields of an existing question. Only the provided flags are applied.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)
		if app == nil {
			return fmt.Errorf("application not initialized")
		}

		var patch question.Patch
		if cmd.Flags().Changed("kind") {
			kind := question.Kind(updateKind)
			if err := kind.Validate(); err != nil {
				return err
			}
			patch.Kind = &kind
		}
		if cmd.Flags().Changed("text") {
			patch.Body = &updateBody
		}
		if cmd.Flags().Changed("choice") {
			patch.Choices = &updateChoices
		}
		if cmd.Flags().Changed("answer") {
			patch.Answer = &updateAnswer
		}

		updated, err := app.Store().Update(args[0], patch)
		if err != nil {
			return err
		}

		fmt.Printf("Question updated: %s\n", updated.ID)
		return nil
	},
}

func init() {
	UpdateCmd.Flags().StringVar(&updateKind, "kind", "", "question kind")
	UpdateCmd.Flags().StringVar(&updateBody, "text", "", "question text")
	UpdateCmd.Flags().StringSliceVar(&updateChoices, "choice", nil, "answer option (repeatable)")
	UpdateCmd.Flags().IntVar(&updateAnswer, "answer", 0, "index of the correct option")
}
