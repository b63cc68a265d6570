package health

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) healthCheckOp() huma.Operation {
	return huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/v1/health",
		Summary:     "Reachability probe",
		Description: "Answers OK when the sync server is up. Clients ping this before draining.",
		Tags:        []string{"health"},
		Middlewares: h.middleware,
	}
}
