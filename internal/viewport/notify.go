package viewport

import (
	"sort"
	"sync"
)

// Size is a viewport size in device-independent pixels.
type Size struct {
	Width, Height float64
}

// Notifier turns the host's size reports into resize notifications.
// Observe is called by the host whenever it learns the current size (ebiten
// does so every frame from Layout); subscribers only hear about changes.
// Every change is delivered; there is no debouncing or coalescing.
type Notifier struct {
	mu    sync.Mutex
	subs  map[uint64]func(Size)
	next  uint64
	size  Size
	known bool
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[uint64]func(Size))}
}

// Observe records the current size and notifies subscribers if it differs
// from the previous one. It reports whether a notification was sent.
func (n *Notifier) Observe(width, height float64) bool {
	size := Size{Width: width, Height: height}

	n.mu.Lock()
	if n.known && n.size == size {
		n.mu.Unlock()
		return false
	}
	n.size, n.known = size, true
	fns := n.snapshot()
	n.mu.Unlock()

	for _, fn := range fns {
		fn(size)
	}
	return true
}

// Size returns the last observed size and whether one was observed at all.
func (n *Notifier) Size() (Size, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.size, n.known
}

// Subscribe registers fn for future changes. It does not replay the current
// size.
func (n *Notifier) Subscribe(fn func(Size)) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[uint64]func(Size))
	}
	id := n.next
	n.next++
	n.subs[id] = fn
	return &Subscription{cancel: func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}}
}

// Subscribers returns how many subscriptions are live.
func (n *Notifier) Subscribers() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}

// snapshot must be called with n.mu held. Subscribers run in subscription
// order.
func (n *Notifier) snapshot() []func(Size) {
	ids := make([]uint64, 0, len(n.subs))
	for id := range n.subs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]func(Size), len(ids))
	for i, id := range ids {
		fns[i] = n.subs[id]
	}
	return fns
}

// Subscription is a cancellable registration.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Cancel stops further notifications. Calling it more than once is a no-op.
func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}
