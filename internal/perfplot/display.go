package perfplot

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/skratchdot/open-golang/open"
)

// Displayer shows a saved graph to the user.
type Displayer interface {
	Display(path string) error
}

// NewDisplayer returns the system viewer when 'show' is set and a no-op
// otherwise.
func NewDisplayer(show bool) Displayer {
	if show {
		return systemViewer{start: open.Start}
	}
	return noDisplay{}
}

type noDisplay struct{}

func (noDisplay) Display(string) error { return nil }

// systemViewer hands the file to the desktop's default image viewer and
// returns without waiting for the window to close.
type systemViewer struct {
	start func(path string) error
}

func (v systemViewer) Display(path string) error {
	if err := v.start(path); err != nil {
		return errors.Wrapf(err, "opening viewer for %s", path)
	}
	log.WithField("path", path).Debug("opened viewer")
	return nil
}
