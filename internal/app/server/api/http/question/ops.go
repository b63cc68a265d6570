package question

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "questions-create",
		Method:      http.MethodPost,
		Path:        "/api/v1/create",
		Summary:     "Receive a created question",
		Tags:        []string{"questions"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "questions-update",
		Method:      http.MethodPost,
		Path:        "/api/v1/update",
		Summary:     "Receive an updated question",
		Tags:        []string{"questions"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "questions-delete",
		Method:      http.MethodPost,
		Path:        "/api/v1/delete",
		Summary:     "Receive a question deletion",
		Tags:        []string{"questions"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "questions-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/questions",
		Summary:     "List received questions",
		Tags:        []string{"questions"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
