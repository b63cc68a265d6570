// cmd/client/cmd/question/list.go
package question

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"questflow/internal/app/client"
	"questflow/internal/domain/question"
)

var listFormat string

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)
		if app == nil {
			return fmt.Errorf("application not initialized")
		}

		questions := app.Store().List()

		switch listFormat {
		case "json":
			return printJSON(questions)
		default:
			return printTable(questions)
		}
	},
}

func printJSON(questions []*question.Question) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(questions)
}

func printTable(questions []*question.Question) error {
	if len(questions) == 0 {
		fmt.Println("No questions yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tQUESTION\tMEDIA\tUPDATED")
	for _, q := range questions {
		body := q.Body
		if len(body) > 40 {
			body = body[:37] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			q.ID, q.Kind, body, len(q.Media), q.UpdatedAt.Format(time.RFC3339))
	}
	return w.Flush()
}

func init() {
	ListCmd.Flags().StringVar(&listFormat, "format", "table", "output format: table, json")
}
