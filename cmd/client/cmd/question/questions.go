package question

import (
	"github.com/spf13/cobra"
)

// QuestionCmd is the parent command for all question operations.
var QuestionCmd = &cobra.Command{
	Use:   "question",
	Short: "Manage quiz questions",
	Long:  `Create, view, update and delete quiz questions.`,
}
