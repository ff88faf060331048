// Package bus implements the in-process publish/subscribe router that
// decouples mutation handlers from subscription delivery.
package bus

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/taskboard/backend/domain"
)

// Bus routes published events to every subscription registered for the
// same kind. Delivery is fire-and-forget: publishing never blocks on a
// slow consumer, there is no replay for late subscribers, and events of
// one kind reach each subscriber in publish order.
type Bus struct {
	logger *zap.Logger

	mu     sync.Mutex
	subs   map[domain.EventKind]map[uint64]*subscriber
	nextID uint64
}

type subscriber struct {
	mu    sync.Mutex
	queue []interface{}
	wake  chan struct{}
	out   chan interface{}
}

// New creates an empty bus. The instance is meant to be constructed at
// process start and injected wherever events are published or consumed.
func New(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		logger: logger,
		subs:   make(map[domain.EventKind]map[uint64]*subscriber),
	}
}

// Publish delivers payload to every subscriber currently registered for
// kind. With zero subscribers it is a no-op.
func (b *Bus) Publish(kind domain.EventKind, payload interface{}) {
	b.mu.Lock()
	targets := make([]*subscriber, 0, len(b.subs[kind]))
	for _, sub := range b.subs[kind] {
		targets = append(targets, sub)
	}
	b.mu.Unlock()

	for _, sub := range targets {
		sub.mu.Lock()
		sub.queue = append(sub.queue, payload)
		sub.mu.Unlock()
		select {
		case sub.wake <- struct{}{}:
		default:
		}
	}

	b.logger.Debug("event published",
		zap.String("kind", string(kind)),
		zap.Int("subscribers", len(targets)),
	)
}

// Subscribe registers an independent subscription for kind and returns
// the channel it is delivered on. The channel is closed and the
// subscription deregistered when ctx is cancelled. The returned channel
// is bidirectional so it can be handed to the GraphQL subscription
// executor; callers must only receive from it.
func (b *Bus) Subscribe(ctx context.Context, kind domain.EventKind) chan interface{} {
	sub := &subscriber{
		wake: make(chan struct{}, 1),
		out:  make(chan interface{}),
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	if b.subs[kind] == nil {
		b.subs[kind] = make(map[uint64]*subscriber)
	}
	b.subs[kind][id] = sub
	b.mu.Unlock()

	go b.pump(ctx, kind, id, sub)

	return sub.out
}

// SubscriberCount reports the number of live subscriptions across all
// kinds. Used by the health monitor.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	total := 0
	for _, byID := range b.subs {
		total += len(byID)
	}
	return total
}

// pump drains the subscriber queue into its delivery channel, keeping
// publish order per kind. It exits when ctx is cancelled.
func (b *Bus) pump(ctx context.Context, kind domain.EventKind, id uint64, sub *subscriber) {
	defer func() {
		b.remove(kind, id)
		close(sub.out)
	}()

	for {
		sub.mu.Lock()
		for len(sub.queue) == 0 {
			sub.mu.Unlock()
			select {
			case <-ctx.Done():
				return
			case <-sub.wake:
			}
			sub.mu.Lock()
		}
		next := sub.queue[0]
		sub.queue = sub.queue[1:]
		sub.mu.Unlock()

		select {
		case sub.out <- next:
		case <-ctx.Done():
			return
		}
	}
}

func (b *Bus) remove(kind domain.EventKind, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if byID, ok := b.subs[kind]; ok {
		delete(byID, id)
		if len(byID) == 0 {
			delete(b.subs, kind)
		}
	}
}
