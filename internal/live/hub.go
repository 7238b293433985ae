// Package live turns periodic reads of the content database into a stream
// of collection snapshots.
package live

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/example/portfolio-admin/internal/db"
)

var ErrClosed = errors.New("live hub is closed")

const pollTimeout = 10 * time.Second

// Snapshot is the full value of a collection at one point in time.
type Snapshot struct {
	Collection string          `json:"collection"`
	Version    uint64          `json:"version"`
	Data       json.RawMessage `json:"data"`
	At         time.Time       `json:"at"`
}

type watcher struct {
	collection string
	subs       map[int]chan Snapshot
	last       *Snapshot
	touch      chan struct{}
	stop       chan struct{}
}

// Hub polls each watched collection and fans snapshots out to subscribers.
// A collection is polled only while it has subscribers.
type Hub struct {
	db       db.Database
	interval time.Duration
	logger   *zap.Logger
	onChange func(collection string)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	watchers map[string]*watcher
	nextID   int
	closed   bool
}

// NewHub creates a hub reading from d every interval. d should bypass any
// read cache so that outside changes are seen.
func NewHub(d db.Database, interval time.Duration, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		db:       d,
		interval: interval,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		watchers: make(map[string]*watcher),
	}
}

// OnChange registers fn to be called after a collection changes. It must be
// set before the first Subscribe.
func (h *Hub) OnChange(fn func(collection string)) {
	h.onChange = fn
}

// Subscribe returns a channel carrying the current snapshot of collection and
// every later change. The channel holds only the newest snapshot. The
// subscription ends when ctx is done or cancel is called; cancel may be
// called more than once.
func (h *Hub) Subscribe(ctx context.Context, collection string) (<-chan Snapshot, func(), error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, nil, ErrClosed
	}

	w, ok := h.watchers[collection]
	if !ok {
		w = &watcher{
			collection: collection,
			subs:       make(map[int]chan Snapshot),
			touch:      make(chan struct{}, 1),
			stop:       make(chan struct{}),
		}
		h.watchers[collection] = w
		h.wg.Add(1)
		go h.run(w)
	}

	id := h.nextID
	h.nextID++
	ch := make(chan Snapshot, 1)
	if w.last != nil {
		ch <- *w.last
	}
	w.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() { h.unsubscribe(w, id) })
	}
	context.AfterFunc(ctx, cancel)
	return ch, cancel, nil
}

func (h *Hub) unsubscribe(w *watcher, id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch, ok := w.subs[id]
	if !ok {
		return
	}
	delete(w.subs, id)
	close(ch)
	if len(w.subs) == 0 && h.watchers[w.collection] == w {
		delete(h.watchers, w.collection)
		close(w.stop)
	}
}

// Touch asks for an immediate poll of collection, typically after a local
// write.
func (h *Hub) Touch(collection string) {
	h.mu.Lock()
	w := h.watchers[collection]
	h.mu.Unlock()
	if w == nil {
		return
	}
	select {
	case w.touch <- struct{}{}:
	default:
	}
}

func (h *Hub) run(w *watcher) {
	defer h.wg.Done()
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	h.poll(w)
	for {
		select {
		case <-w.stop:
			return
		case <-h.ctx.Done():
			return
		case <-ticker.C:
		case <-w.touch:
		}
		h.poll(w)
	}
}

func (h *Hub) poll(w *watcher) {
	ctx, cancel := context.WithTimeout(h.ctx, pollTimeout)
	defer cancel()
	raw, err := h.db.GetRaw(ctx, w.collection)
	if err != nil {
		if h.ctx.Err() == nil {
			h.logger.Warn("Failed to poll collection", zap.String("collection", w.collection), zap.Error(err))
		}
		return
	}
	if db.IsNull(raw) {
		raw = json.RawMessage("null")
	}
	version := xxhash.Sum64(raw)

	h.mu.Lock()
	changed := w.last != nil && w.last.Version != version
	if w.last == nil || changed {
		snap := Snapshot{Collection: w.collection, Version: version, Data: raw, At: time.Now().UTC()}
		w.last = &snap
		for _, ch := range w.subs {
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
	h.mu.Unlock()

	if changed && h.onChange != nil {
		h.onChange(w.collection)
	}
}

// Close stops every poller and closes all subscriber channels.
func (h *Hub) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	for name, w := range h.watchers {
		for id, ch := range w.subs {
			delete(w.subs, id)
			close(ch)
		}
		close(w.stop)
		delete(h.watchers, name)
	}
	h.mu.Unlock()

	h.cancel()
	h.wg.Wait()
	return nil
}
