package captcha

import (
	"context"
	"sync"
)

// watchBuffer bounds how many unprocessed presses a single task may queue.
// A flood beyond that is dropped rather than blocking the dispatch loop.
const watchBuffer = 8

// Filter decides whether a watcher wants a callback
type Filter func(Callback) bool

type watcher struct {
	filter Filter
	ch     chan Callback
}

// Dispatcher routes each inbound callback to at most one pending watcher.
// Callbacks that match no watcher are ignored by the captcha subsystem.
type Dispatcher struct {
	mu       sync.Mutex
	nextID   int
	watchers map[int]*watcher
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{watchers: make(map[int]*watcher)}
}

// Watch registers a filtered subscription. The returned channel receives
// matching callbacks until ctx is cancelled; each task consumes its channel
// from a single goroutine, which serializes callback handling per task.
func (d *Dispatcher) Watch(ctx context.Context, filter Filter) <-chan Callback {
	ch := make(chan Callback, watchBuffer)

	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.watchers[id] = &watcher{filter: filter, ch: ch}
	d.mu.Unlock()

	go func() {
		<-ctx.Done()
		d.mu.Lock()
		delete(d.watchers, id)
		d.mu.Unlock()
	}()

	return ch
}

// Dispatch delivers the callback to the first watcher whose filter matches
// and reports whether anyone took it. Delivery never blocks: a watcher with
// a full buffer drops the press.
func (d *Dispatcher) Dispatch(cb Callback) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, w := range d.watchers {
		if !w.filter(cb) {
			continue
		}
		select {
		case w.ch <- cb:
		default:
		}
		return true
	}
	return false
}

// Pending returns the number of registered watchers
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.watchers)
}
