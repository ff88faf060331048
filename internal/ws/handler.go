package ws

import (
	"time"

	"github.com/fasthttp/websocket"
	"github.com/graphql-go/graphql"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Config tunes the subscription transport.
type Config struct {
	KeepAlive      time.Duration
	WriteTimeout   time.Duration
	ReadLimitBytes int64
}

// Handler upgrades HTTP requests into subscription connections.
type Handler struct {
	schema   graphql.Schema
	cfg      Config
	logger   *zap.Logger
	upgrader websocket.FastHTTPUpgrader
}

func NewHandler(schema graphql.Schema, cfg Config, logger *zap.Logger) *Handler {
	if cfg.KeepAlive <= 0 {
		cfg.KeepAlive = 9 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if cfg.ReadLimitBytes <= 0 {
		cfg.ReadLimitBytes = 1 << 20
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		schema: schema,
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.FastHTTPUpgrader{
			Subprotocols: []string{"graphql-ws"},
			CheckOrigin:  func(ctx *fasthttp.RequestCtx) bool { return true },
		},
	}
}

// Upgrade switches the request onto the subscription protocol.
func (h *Handler) Upgrade(ctx *fasthttp.RequestCtx) {
	err := h.upgrader.Upgrade(ctx, func(conn *websocket.Conn) {
		h.logger.Debug("subscription client connected", zap.String("remote", conn.RemoteAddr().String()))
		c := newClient(conn, h.schema, h.cfg, h.logger)
		c.run()
		h.logger.Debug("subscription client disconnected", zap.String("remote", conn.RemoteAddr().String()))
	})
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
	}
}
