package stage

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"planewar/internal/viewport"
)

// Stage owns the containers and exposes them to the viewport as a Document.
type Stage struct {
	doc        *viewport.Document
	containers map[string]*Container
}

func New() *Stage {
	return &Stage{
		doc:        viewport.NewDocument(),
		containers: make(map[string]*Container),
	}
}

// Add registers c under its ID.
func (s *Stage) Add(c *Container) {
	s.containers[c.ID] = c
	s.doc.Register(c.ID, c)
}

func (s *Stage) Container(id string) (*Container, bool) {
	c, ok := s.containers[id]
	return c, ok
}

func (s *Stage) Document() *viewport.Document { return s.doc }

// Present draws every container, in id order.
func (s *Stage) Present(screen *ebiten.Image) {
	ids := make([]string, 0, len(s.containers))
	for id := range s.containers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		s.containers[id].Present(screen)
	}
}
