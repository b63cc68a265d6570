package question

import (
	domain "questflow/internal/domain/question"
)

type mutateInput struct {
	Body domain.Question
}

type mutateOutput struct {
	Body response
}

type response struct {
	ID     string `json:"id,omitempty"`
	Status string `json:"status"`
}

type listOutput struct {
	Body []*domain.Question
}
