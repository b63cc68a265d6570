package question

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	store      *memStore
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		store:      newMemStore(),
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.listOp(), h.list)
}

func (h *Handler) create(_ context.Context, input *mutateInput) (*mutateOutput, error) {
	if input.Body.ID == "" {
		return nil, huma.Error422UnprocessableEntity("question id is required")
	}
	h.store.upsert(&input.Body)
	h.log.Info("question received", "id", input.Body.ID, "kind", input.Body.Kind)

	return &mutateOutput{Body: response{ID: input.Body.ID, Status: "Ok"}}, nil
}

func (h *Handler) update(_ context.Context, input *mutateInput) (*mutateOutput, error) {
	if input.Body.ID == "" {
		return nil, huma.Error422UnprocessableEntity("question id is required")
	}
	h.store.upsert(&input.Body)
	h.log.Info("question updated", "id", input.Body.ID)

	return &mutateOutput{Body: response{ID: input.Body.ID, Status: "Ok"}}, nil
}

// delete accepts the same snapshot shape the client enqueues for the other
// actions; only the id matters here.
func (h *Handler) delete(_ context.Context, input *mutateInput) (*mutateOutput, error) {
	if !h.store.remove(input.Body.ID) {
		h.log.Debug("delete for unknown question", "id", input.Body.ID)
	}
	return &mutateOutput{Body: response{ID: input.Body.ID, Status: "Ok"}}, nil
}

func (h *Handler) list(_ context.Context, _ *struct{}) (*listOutput, error) {
	return &listOutput{Body: h.store.list()}, nil
}
