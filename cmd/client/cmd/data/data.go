package data

import (
	"github.com/spf13/cobra"
)

// DataCmd is the parent command for bulk data operations.
var DataCmd = &cobra.Command{
	Use:   "data",
	Short: "Export, import and manage stored data",
}
