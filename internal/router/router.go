package router

import (
	"github.com/fasthttp/router"

	apiHandler "github.com/taskboard/backend/api/handler"
	gql "github.com/taskboard/backend/api/graphql"
	"github.com/taskboard/backend/internal/ws"
)

type Handlers struct {
	GraphQL       *gql.Handler
	Subscriptions *ws.Handler
	Upload        *apiHandler.UploadHandler
	Health        *apiHandler.HealthHandler
}

// New wires the gateway surface: one HTTP endpoint for queries and
// mutations, one persistent-connection endpoint for subscriptions.
func New(handlers Handlers) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.POST("/api", handlers.GraphQL.Serve)
	r.GET("/api/subscriptions", handlers.Subscriptions.Upgrade)

	r.POST("/upload", handlers.Upload.Upload)

	return r
}
