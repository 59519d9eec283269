package assets

import "context"

// Pending is an in-flight load. The game loop polls it from Update so that a
// slow retrieval never stalls a frame.
type Pending[T any] struct {
	Name string

	done  chan struct{}
	value T
	err   error
}

func start[T any](ctx context.Context, name string, load func(context.Context, string) (T, error)) *Pending[T] {
	p := &Pending[T]{Name: name, done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.value, p.err = load(ctx, name)
	}()
	return p
}

// Start begins LoadBitmap in the background.
func (l *Loader) Start(ctx context.Context, name string) *Pending[*Bitmap] {
	return start(ctx, name, l.LoadBitmap)
}

// StartAnimation begins LoadAnimation in the background.
func (l *Loader) StartAnimation(ctx context.Context, name string) *Pending[*Animation] {
	return start(ctx, name, l.LoadAnimation)
}

func (p *Pending[T]) Done() <-chan struct{} { return p.done }

// Poll reports whether the load has finished and, if so, its outcome.
func (p *Pending[T]) Poll() (value T, done bool, err error) {
	select {
	case <-p.done:
		return p.value, true, p.err
	default:
		var zero T
		return zero, false, nil
	}
}

// Wait blocks until the load finishes or ctx ends.
func (p *Pending[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
