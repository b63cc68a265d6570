// cmd/client/cmd/question/create.go
package question

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"questflow/internal/app/client"
	"questflow/internal/domain/question"
)

var (
	createKind    string
	createBody    string
	createChoices []string
	createAnswer  int
	createMedia   []string
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new question",
	Long: `Create a new quiz question.

Supported kinds:
- multiple_choice - question with several options, one correct
- true_false      - statement judged true or false
- fill_blank      - free-text answer, no options

Media files (images, audio) are attached with --media and stored next to
the question when a storage directory has been chosen.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)
		if app == nil {
			return fmt.Errorf("application not initialized")
		}

		kind := question.Kind(createKind)
		if err := kind.Validate(); err != nil {
			return err
		}
		if createBody == "" {
			return fmt.Errorf("question text is required (--text)")
		}

		draft := &question.Question{
			Kind:    kind,
			Body:    createBody,
			Choices: createChoices,
		}
		if kind.HasChoices() {
			if createAnswer < 0 || createAnswer >= len(createChoices) {
				return fmt.Errorf("answer index %d is out of range", createAnswer)
			}
			answer := createAnswer
			draft.Answer = &answer
		}

		for _, path := range createMedia {
			media, err := loadDraftMedia(path)
			if err != nil {
				return err
			}
			draft.Media = append(draft.Media, media)
		}

		created, err := app.Store().Create(draft)
		if err != nil {
			return err
		}

		fmt.Printf("Question created: %s\n", created.ID)
		return nil
	},
}

func loadDraftMedia(path string) (question.Media, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return question.Media{}, fmt.Errorf("read media file: %w", err)
	}
	mediaType := mime.TypeByExtension(filepath.Ext(path))
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	return question.NewDraftMedia(mediaType, filepath.Base(path), data), nil
}

func init() {
	CreateCmd.Flags().StringVar(&createKind, "kind", "multiple_choice", "question kind")
	CreateCmd.Flags().StringVar(&createBody, "text", "", "question text")
	CreateCmd.Flags().StringSliceVar(&createChoices, "choice", nil, "answer option (repeatable)")
	CreateCmd.Flags().IntVar(&createAnswer, "answer", 0, "index of the correct option")
	CreateCmd.Flags().StringSliceVar(&createMedia, "media", nil, "media file to attach (repeatable)")
}
