package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/internal/bus"
)

func newSubscriptionSchema(t *testing.T) (graphql.Schema, *bus.Bus) {
	t.Helper()

	b := bus.New(nil)
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"ok": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return true, nil
				},
			},
		},
	})
	subscription := graphql.NewObject(graphql.ObjectConfig{
		Name: "Subscription",
		Fields: graphql.Fields{
			"projectCreated": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source, nil
				},
				Subscribe: func(p graphql.ResolveParams) (interface{}, error) {
					return b.Subscribe(p.Context, domain.EventProjectCreated), nil
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:        query,
		Subscription: subscription,
	})
	if err != nil {
		t.Fatalf("building schema: %v", err)
	}
	return schema, b
}

func newTestClient(t *testing.T, schema graphql.Schema) *client {
	t.Helper()

	c := newClient(nil, schema, Config{
		KeepAlive:      time.Minute,
		WriteTimeout:   time.Second,
		ReadLimitBytes: 1 << 20,
	}, zap.NewNop())
	t.Cleanup(c.cancel)
	return c
}

func startFrame(id string) Message {
	return Message{
		ID:      id,
		Type:    MsgStart,
		Payload: json.RawMessage(`{"query":"subscription { projectCreated }"}`),
	}
}

func waitForSubscribers(t *testing.T, b *bus.Bus, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for b.SubscriberCount() < want {
		if time.Now().After(deadline) {
			t.Fatalf("subscription never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// Restarting an operation id must leave the replacement subscription
// live: the torn-down operation may not cancel the new one or emit a
// complete frame for the id it no longer owns.
func TestRestartedOperationKeepsReceiving(t *testing.T) {
	schema, b := newSubscriptionSchema(t)
	c := newTestClient(t, schema)

	c.startOperation(startFrame("1"))
	waitForSubscribers(t, b, 1)
	c.startOperation(startFrame("1"))

	// Publishing has no replay, so keep publishing until the replacement
	// subscription is registered and a data frame comes through.
	deadline := time.Now().Add(2 * time.Second)
	for {
		b.Publish(domain.EventProjectCreated, "after-restart")
		select {
		case frame := <-c.send:
			if frame.Type == MsgComplete {
				t.Fatalf("restart must not complete the live operation")
			}
			if frame.Type == MsgData && frame.ID == "1" {
				return
			}
		case <-time.After(50 * time.Millisecond):
		}
		if time.Now().After(deadline) {
			t.Fatalf("replacement subscription never received data")
		}
	}
}

func TestStopCompletesAndDeregisters(t *testing.T) {
	schema, b := newSubscriptionSchema(t)
	c := newTestClient(t, schema)

	c.startOperation(startFrame("1"))
	waitForSubscribers(t, b, 1)
	c.stopOperation("1")

	select {
	case frame := <-c.send:
		if frame.Type != MsgComplete || frame.ID != "1" {
			t.Fatalf("expected a complete frame for id 1, got %+v", frame)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("stop never produced a complete frame")
	}

	c.mu.Lock()
	_, held := c.ops["1"]
	c.mu.Unlock()
	if held {
		t.Fatalf("operation slot must be released after stop")
	}

	deadline := time.Now().Add(2 * time.Second)
	for b.SubscriberCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("subscription never deregistered after stop")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
