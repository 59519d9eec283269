package viewport

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var ErrNoSuchElement = errors.New("no such element")

// Document is an id -> Element registry, the host-side lookup the
// initialization routine uses to find its container.
type Document struct {
	mu       sync.RWMutex
	elements map[string]Element
}

func NewDocument() *Document {
	return &Document{elements: make(map[string]Element)}
}

// Register adds el under id, replacing any previous element with that id.
func (d *Document) Register(id string, el Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements[id] = el
}

func (d *Document) Lookup(id string) (Element, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	el, ok := d.elements[id]
	if !ok {
		return nil, fmt.Errorf("lookup %q: %w", id, ErrNoSuchElement)
	}
	return el, nil
}

// IDs returns the registered ids in sorted order.
func (d *Document) IDs() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ids := make([]string, 0, len(d.elements))
	for id := range d.elements {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Style is an in-memory Element recording what was applied to it. Hosts
// without a real surface (headless runs, tests) use it as the container.
type Style struct {
	mu        sync.Mutex
	transform Transform
	hidden    bool
	writes    int
}

func (s *Style) SetTransform(t Transform) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transform = t
	s.writes++
}

func (s *Style) SetVisible(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hidden = !v
}

// Transform returns the CSS-style transform string, empty if none was set.
func (s *Style) Transform() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writes == 0 {
		return ""
	}
	return s.transform.String()
}

func (s *Style) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.hidden
}

// Writes counts SetTransform calls.
func (s *Style) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
