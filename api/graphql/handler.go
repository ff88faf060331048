package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskboard/backend/pkg/httpcontext"
	appLogger "github.com/taskboard/backend/pkg/logger"
)

// Request is the standard GraphQL HTTP request body.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler serves queries and mutations over a single POST endpoint.
type Handler struct {
	schema  graphql.Schema
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func NewHandler(schema graphql.Schema, adapter *httpcontext.Adapter, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		schema:  schema,
		adapter: adapter,
		logger:  logger,
	}
}

func (h *Handler) Serve(ctx *fasthttp.RequestCtx) {
	var req Request
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respond(ctx, http.StatusBadRequest, map[string]interface{}{
			"errors": []map[string]string{{"message": "malformed request body"}},
		})
		return
	}

	stdCtx, cancel := h.adapter.Attach(ctx)
	defer cancel()

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        stdCtx,
	})

	if result.HasErrors() {
		appLogger.WithRequestID(stdCtx, h.logger).Debug("graphql operation returned errors",
			zap.String("operation", req.OperationName),
			zap.Int("errors", len(result.Errors)),
		)
	}

	// Per GraphQL-over-HTTP convention resolver errors still travel in a
	// 200 response body.
	h.respond(ctx, http.StatusOK, result)
}

func (h *Handler) respond(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, err := json.Marshal(payload)
	if err != nil {
		ctx.SetStatusCode(http.StatusInternalServerError)
		return
	}
	ctx.SetBody(body)
}
