//go:build !windows

package langpref

import "github.com/enovales/winres/errors"

type osThread struct{}

// OSThread returns an Accessor for the calling OS thread's preferred UI
// languages. Only Windows keeps such a list; elsewhere every call fails
// with errors.ErrUnsupported.
func OSThread() Accessor {
	return osThread{}
}

func (osThread) Get() ([]string, error) {
	return nil, errors.Unsupported(errors.PhaseLanguage, "thread UI languages require Windows")
}

func (osThread) Set([]string) error {
	return errors.Unsupported(errors.PhaseLanguage, "thread UI languages require Windows")
}
