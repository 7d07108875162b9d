package captcha

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gatekeeper/internal/domain"
)

func TestDispatcher_RoutesToMatchingWatcher(t *testing.T) {
	d := NewDispatcher()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msg := MessageRef{ChatID: 1, MessageID: 10}
	ch := d.Watch(ctx, func(cb Callback) bool { return cb.Message == msg })

	cb := Callback{User: domain.User{ID: 7}, Message: msg, Data: "tok"}
	assert.True(t, d.Dispatch(cb))

	select {
	case got := <-ch:
		assert.Equal(t, cb, got)
	case <-time.After(time.Second):
		t.Fatal("callback never delivered")
	}
}

func TestDispatcher_IgnoresUnmatched(t *testing.T) {
	d := NewDispatcher()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d.Watch(ctx, func(cb Callback) bool { return cb.Message.MessageID == 10 })

	assert.False(t, d.Dispatch(Callback{Message: MessageRef{MessageID: 99}}))
}

func TestDispatcher_AtMostOneWatcherTakesIt(t *testing.T) {
	d := NewDispatcher()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := d.Watch(ctx, func(cb Callback) bool { return cb.Message.MessageID == 10 })
	second := d.Watch(ctx, func(cb Callback) bool { return cb.Message.MessageID == 11 })

	assert.True(t, d.Dispatch(Callback{Message: MessageRef{MessageID: 10}}))

	select {
	case <-first:
	case <-time.After(time.Second):
		t.Fatal("matching watcher never got the callback")
	}
	select {
	case <-second:
		t.Fatal("non-matching watcher got the callback")
	default:
	}
}

func TestDispatcher_UnregistersOnCancel(t *testing.T) {
	d := NewDispatcher()
	ctx, cancel := context.WithCancel(context.Background())

	d.Watch(ctx, func(Callback) bool { return true })
	assert.Equal(t, 1, d.Pending())

	cancel()
	assert.Eventually(t, func() bool {
		return d.Pending() == 0
	}, time.Second, 10*time.Millisecond)

	assert.False(t, d.Dispatch(Callback{Data: "anything"}))
}

func TestDispatcher_DropsWhenBufferFull(t *testing.T) {
	d := NewDispatcher()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := d.Watch(ctx, func(Callback) bool { return true })

	// nobody consumes; the buffer fills and extra presses are dropped
	// without blocking the dispatch loop
	for i := 0; i < watchBuffer*2; i++ {
		assert.True(t, d.Dispatch(Callback{Data: "spam"}))
	}

	assert.Len(t, ch, watchBuffer)
}
