// Development sync server. Clients drain their sync queues against it:
//
//	GET  /api/v1/health     # reachability probe (public)
//	POST /api/v1/create     # receive a created question (auth)
//	POST /api/v1/update     # receive an updated question (auth)
//	POST /api/v1/delete     # receive a question deletion (auth)
//	GET  /api/v1/questions  # inspect what the server has received (auth)
package api

import (
	"net/http"
	"strings"

	healthAPI "questflow/internal/app/server/api/http/health"
	questionAPI "questflow/internal/app/server/api/http/question"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

// New builds a *chi.Mux with all operations registered through huma.Register.
// An empty apiKey disables the bearer check.
func New(apiKey string, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("QuestFlow Sync API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	authMW := bearerMiddleware(API, apiKey)

	healthHandler := healthAPI.NewHandler(log, huma.Middlewares{})
	healthHandler.SetupRoutes(API)

	questionHandler := questionAPI.NewHandler(log, huma.Middlewares{authMW})
	questionHandler.SetupRoutes(API)

	return mux
}

func bearerMiddleware(api huma.API, apiKey string) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if apiKey != "" {
			token := strings.TrimPrefix(ctx.Header("Authorization"), "Bearer ")
			if token != apiKey {
				huma.WriteErr(api, ctx, http.StatusUnauthorized, "Unauthorized")
				return
			}
		}
		next(ctx)
	}
}
