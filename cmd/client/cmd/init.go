// cmd/client/cmd/init.go
package cmd

import (
	"questflow/cmd/client/cmd/data"
	"questflow/cmd/client/cmd/question"
	"questflow/cmd/client/cmd/settings"
	"questflow/cmd/client/cmd/sync"
)

func init() {
	rootCmd.AddCommand(question.QuestionCmd)
	question.QuestionCmd.AddCommand(question.ListCmd)
	question.QuestionCmd.AddCommand(question.GetCmd)
	question.QuestionCmd.AddCommand(question.CreateCmd)
	question.QuestionCmd.AddCommand(question.UpdateCmd)
	question.QuestionCmd.AddCommand(question.DeleteCmd)

	rootCmd.AddCommand(data.DataCmd)
	data.DataCmd.AddCommand(data.ExportCmd)
	data.DataCmd.AddCommand(data.ImportCmd)
	data.DataCmd.AddCommand(data.ClearCmd)
	data.DataCmd.AddCommand(data.UseDirCmd)

	rootCmd.AddCommand(sync.SyncCmd)
	rootCmd.AddCommand(settings.SettingsCmd)
}
