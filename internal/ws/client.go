package ws

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/fasthttp/websocket"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

// client owns one WebSocket connection and the subscription operations
// started over it. A protocol violation is reported on this connection
// only; other connections are unaffected.
type client struct {
	conn   *websocket.Conn
	schema graphql.Schema
	cfg    Config
	logger *zap.Logger

	send chan Message

	root   context.Context
	cancel context.CancelFunc

	mu  sync.Mutex
	ops map[string]*operation
}

// operation identifies one running subscription. The pointer identity
// marks ownership of its id slot, so a finished operation cannot tear
// down a replacement started under the same id.
type operation struct {
	cancel context.CancelFunc
}

func newClient(conn *websocket.Conn, schema graphql.Schema, cfg Config, logger *zap.Logger) *client {
	root, cancel := context.WithCancel(context.Background())
	return &client{
		conn:   conn,
		schema: schema,
		cfg:    cfg,
		logger: logger,
		send:   make(chan Message, 256),
		root:   root,
		cancel: cancel,
		ops:    make(map[string]*operation),
	}
}

// run services the connection until the peer disconnects. Closing the
// socket cancels every operation context, which deregisters the bus
// subscriptions behind them.
func (c *client) run() {
	go c.writePump()
	c.readLoop()
	c.cancel()
	c.conn.Close()
}

func (c *client) readLoop() {
	c.conn.SetReadLimit(c.cfg.ReadLimitBytes)

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket read failed", zap.Error(err))
			}
			return
		}

		msg, err := ParseMessage(raw)
		if err != nil {
			c.queue(errorFrame("", "malformed message"))
			continue
		}

		switch msg.Type {
		case MsgConnectionInit:
			c.queue(Message{Type: MsgConnectionAck})
		case MsgStart:
			c.startOperation(msg)
		case MsgStop:
			c.stopOperation(msg.ID)
		case MsgConnectionTerminate:
			return
		default:
			c.queue(errorFrame(msg.ID, "unsupported message type: "+msg.Type))
		}
	}
}

func (c *client) startOperation(msg Message) {
	if msg.ID == "" {
		c.queue(errorFrame("", "start frame requires an id"))
		return
	}
	payload, err := msg.ParseStartPayload()
	if err != nil || strings.TrimSpace(payload.Query) == "" {
		c.queue(errorFrame(msg.ID, "malformed start payload"))
		return
	}

	opCtx, cancel := context.WithCancel(c.root)
	op := &operation{cancel: cancel}

	c.mu.Lock()
	if prev, exists := c.ops[msg.ID]; exists {
		prev.cancel()
	}
	c.ops[msg.ID] = op
	c.mu.Unlock()

	results := graphql.Subscribe(graphql.Params{
		Schema:         c.schema,
		RequestString:  payload.Query,
		VariableValues: payload.Variables,
		OperationName:  payload.OperationName,
		Context:        opCtx,
	})

	go func() {
		defer c.finishOperation(msg.ID, op)
		for result := range results {
			body, err := json.Marshal(result)
			if err != nil {
				c.queue(errorFrame(msg.ID, "failed to encode result"))
				continue
			}
			c.queue(Message{ID: msg.ID, Type: MsgData, Payload: body})
		}
	}()
}

func (c *client) stopOperation(id string) {
	c.mu.Lock()
	op, ok := c.ops[id]
	c.mu.Unlock()
	if ok {
		op.cancel()
	}
}

// finishOperation releases the id slot once the result stream of op has
// drained. If another operation took over the id in the meantime the
// slot is left alone and no complete frame is sent for it.
func (c *client) finishOperation(id string, op *operation) {
	c.mu.Lock()
	owner := c.ops[id] == op
	if owner {
		delete(c.ops, id)
	}
	c.mu.Unlock()

	op.cancel()
	if owner && c.root.Err() == nil {
		c.queue(Message{ID: id, Type: MsgComplete})
	}
}

// queue hands a frame to the write pump. A client that cannot keep up
// is disconnected rather than allowed to block publishers.
func (c *client) queue(msg Message) {
	select {
	case c.send <- msg:
	default:
		c.logger.Warn("websocket send buffer full, dropping client")
		c.cancel()
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(c.cfg.KeepAlive)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
			if err := c.conn.WriteJSON(msg); err != nil {
				c.cancel()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
			if err := c.conn.WriteJSON(Message{Type: MsgKeepAlive}); err != nil {
				c.cancel()
				return
			}
		case <-c.root.Done():
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
