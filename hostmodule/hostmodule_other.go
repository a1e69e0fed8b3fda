//go:build !windows

package hostmodule

import (
	"github.com/enovales/winres/errors"
	"github.com/enovales/winres/resource"
)

// Module is a module loaded by the host platform. Without a Windows loader
// it is never valid.
type Module struct {
	path string
}

// Open reports errors.ErrUnsupported.
func Open(path string) (*Module, error) {
	return nil, errors.Unsupported(errors.PhaseHost, "loading "+path+" requires the Windows loader")
}

func (m *Module) Path() string {
	if m == nil {
		return ""
	}
	return m.path
}

func (m *Module) Valid() bool  { return false }
func (m *Module) Close() error { return nil }

func (m *Module) EnumTypes(func(resource.ID) bool) error {
	return unavailable(errors.PhaseEnumerate)
}

func (m *Module) EnumNames(resource.ID, func(resource.ID) bool) error {
	return unavailable(errors.PhaseEnumerate)
}

func (m *Module) EnumLanguages(_, _ resource.ID, _ func(resource.LangID) bool) error {
	return unavailable(errors.PhaseEnumerate)
}

func (m *Module) FindResource(_, _ resource.ID, _ resource.LangID) (resource.Handle, error) {
	return 0, unavailable(errors.PhaseFind)
}

func (m *Module) FindResourceFallback(_, _ resource.ID, _ []string) (resource.Handle, error) {
	return 0, unavailable(errors.PhaseFind)
}

func (m *Module) SizeofResource(h resource.Handle) (uint32, error) {
	return 0, errors.InvalidHandle(errors.PhaseLoad, h)
}

func (m *Module) LoadResource(h resource.Handle) ([]byte, error) {
	return nil, errors.InvalidHandle(errors.PhaseLoad, h)
}

func unavailable(phase errors.Phase) error {
	return errors.DirectoryUnavailable(phase, "host modules require Windows", nil)
}
