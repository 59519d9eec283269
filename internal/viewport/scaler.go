package viewport

import (
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidLogicalSize = errors.New("logical size must be positive")
	ErrAlreadyAttached    = errors.New("scaler already attached")
)

// Config is the design resolution the UI is authored against. It does not
// change for the lifetime of a Scaler.
type Config struct {
	LogicalWidth  int
	LogicalHeight int
}

func (c Config) Validate() error {
	if c.LogicalWidth <= 0 || c.LogicalHeight <= 0 {
		return fmt.Errorf("%dx%d: %w", c.LogicalWidth, c.LogicalHeight, ErrInvalidLogicalSize)
	}
	return nil
}

// Scaler keeps one element scaled to the current viewport.
type Scaler struct {
	cfg Config
	el  Element
	log log.FieldLogger

	mu       sync.Mutex
	last     float64
	applied  bool
	attached bool
}

func NewScaler(cfg Config, el Element, logger log.FieldLogger) (*Scaler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if el == nil {
		return nil, errors.New("viewport: nil element")
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Scaler{cfg: cfg, el: el, log: logger}, nil
}

func (s *Scaler) Config() Config { return s.cfg }

// Scale returns the last computed factor, or 0 before the first resize.
func (s *Scaler) Scale() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// OnResize recomputes the scale for size and applies it. The element is only
// written when the factor differs from the previous one.
func (s *Scaler) OnResize(size Size) float64 {
	scale := ComputeScale(size.Width, size.Height,
		float64(s.cfg.LogicalWidth), float64(s.cfg.LogicalHeight))

	s.mu.Lock()
	defer s.mu.Unlock()

	fields := log.Fields{
		"width":  size.Width,
		"height": size.Height,
		"scale":  scale,
	}
	if s.applied && s.last == scale {
		return scale
	}
	s.last, s.applied = scale, true

	if !(Transform{Scale: scale}).Drawable() {
		s.log.WithFields(fields).Warn("viewport too small, hiding container")
	} else {
		s.log.WithFields(fields).Debug("viewport resized")
	}
	ApplyScale(s.el, scale)
	return scale
}

// Attach subscribes OnResize to n. A Scaler can be attached once; the
// returned Subscription detaches it. If n already knows the viewport size
// the scale is applied straight away.
func (s *Scaler) Attach(n *Notifier) (*Subscription, error) {
	s.mu.Lock()
	if s.attached {
		s.mu.Unlock()
		return nil, ErrAlreadyAttached
	}
	s.attached = true
	s.mu.Unlock()

	sub := n.Subscribe(func(size Size) { s.OnResize(size) })
	if size, ok := n.Size(); ok {
		s.OnResize(size)
	}
	return sub, nil
}
