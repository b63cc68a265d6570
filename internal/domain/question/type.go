package question

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
)

type Kind string

const (
	KindMultipleChoice Kind = "multiple_choice"
	KindTrueFalse      Kind = "true_false"
	KindFillBlank      Kind = "fill_blank"
)

func (Kind) Schema() huma.Schema {
	return huma.Schema{
		Type: "string",
		Enum: []any{
			string(KindMultipleChoice),
			string(KindTrueFalse),
			string(KindFillBlank),
		},
		Description: "Question kind",
		Examples:    []any{KindMultipleChoice},
	}
}

// Validate implements huma.Validatable.
func (k Kind) Validate() error {
	switch k {
	case KindMultipleChoice, KindTrueFalse, KindFillBlank:
		return nil
	}
	return fmt.Errorf("unknown question kind: %s", k)
}

// HasChoices reports whether the kind carries selectable options.
func (k Kind) HasChoices() bool {
	return k == KindMultipleChoice || k == KindTrueFalse
}

// String returns the wire value of the kind.
func (k Kind) String() string {
	return string(k)
}

// DisplayName returns a human-readable name for the kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindMultipleChoice:
		return "Multiple choice"
	case KindTrueFalse:
		return "True / False"
	case KindFillBlank:
		return "Fill in the blank"
	default:
		return "Unknown"
	}
}
