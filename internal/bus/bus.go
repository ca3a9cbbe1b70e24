package bus

// Package bus provides the in-process session event bus. Publish is a
// synchronous fan-out to all listeners registered on a channel, in
// registration order, each invoked at most once per publish. A panicking
// listener never stops later listeners and never fails the publisher.

import (
	"log/slog"
	"sync"

	domainauth "github.com/opsgate/console/internal/domain/auth"
	"github.com/opsgate/console/internal/ports"
)

type subscription struct {
	id int
	fn ports.Listener
}

// Bus is the default EventBus implementation.
type Bus struct {
	logger *slog.Logger

	mu     sync.Mutex
	nextID int
	subs   map[string][]subscription
}

// New creates an event bus.
func New(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		logger: logger,
		subs:   make(map[string][]subscription),
	}
}

// Subscribe registers fn on the named channel and returns an unsubscribe
// function. Unsubscribing twice is a no-op.
func (b *Bus) Subscribe(channel string, fn ports.Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[channel] = append(b.subs[channel], subscription{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		entries := b.subs[channel]
		for i, sub := range entries {
			if sub.id == id {
				b.subs[channel] = append(entries[:i:i], entries[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers evt to every listener currently registered on the
// channel. Listeners registered during delivery see the next publish, not
// this one.
func (b *Bus) Publish(channel string, evt domainauth.SessionEvent) {
	b.mu.Lock()
	entries := make([]subscription, len(b.subs[channel]))
	copy(entries, b.subs[channel])
	b.mu.Unlock()

	for _, sub := range entries {
		b.invoke(channel, sub, evt)
	}
}

func (b *Bus) invoke(channel string, sub subscription, evt domainauth.SessionEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("session event listener panicked",
				"channel", channel,
				"listener_id", sub.id,
				"panic", r)
		}
	}()
	sub.fn(evt)
}

var _ ports.EventBus = (*Bus)(nil)
