package viewport

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Options names the container to scale.
type Options struct {
	ContainerID string
}

// Host is what the initialization routine needs from its environment.
type Host struct {
	Document *Document
	Resize   *Notifier
	Logical  Config
	Log      log.FieldLogger
}

// View is the handle returned by Init. Close detaches it from resize
// notifications; the container keeps its last transform.
type View struct {
	ID        string
	Container Element
	Scaler    *Scaler

	sub *Subscription
}

// Init locates the container, builds a Scaler for it and subscribes it to
// resize notifications.
func Init(opts Options, host Host) (*View, error) {
	if host.Document == nil || host.Resize == nil {
		return nil, errors.New("viewport: host needs a document and a resize notifier")
	}
	logger := host.Log
	if logger == nil {
		logger = log.StandardLogger()
	}
	logger = logger.WithField("container", opts.ContainerID)
	logger.Infof("constructing game engine on container %s", opts.ContainerID)

	el, err := host.Document.Lookup(opts.ContainerID)
	if err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	scaler, err := NewScaler(host.Logical, el, logger)
	if err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	sub, err := scaler.Attach(host.Resize)
	if err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	return &View{
		ID:        opts.ContainerID,
		Container: el,
		Scaler:    scaler,
		sub:       sub,
	}, nil
}

func (v *View) Close() {
	v.sub.Cancel()
}
