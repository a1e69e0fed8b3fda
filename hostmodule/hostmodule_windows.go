//go:build windows

package hostmodule

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"

	"github.com/enovales/winres/errors"
	"github.com/enovales/winres/langpref"
	"github.com/enovales/winres/resource"
)

const (
	errResourceDataNotFound = windows.Errno(1812)
	errResourceTypeNotFound = windows.Errno(1813)
	errResourceNameNotFound = windows.Errno(1814)
	errResourceLangNotFound = windows.Errno(1815)
	errResourceEnumUserStop = windows.Errno(15106)
)

var (
	modkernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procEnumResourceTypesW     = modkernel32.NewProc("EnumResourceTypesW")
	procEnumResourceNamesW     = modkernel32.NewProc("EnumResourceNamesW")
	procEnumResourceLanguagesW = modkernel32.NewProc("EnumResourceLanguagesW")
	procFindResourceExW        = modkernel32.NewProc("FindResourceExW")
	procSizeofResource         = modkernel32.NewProc("SizeofResource")
)

// The runtime caps the number of callbacks a process can create, so each
// trampoline exists once and lParam selects the sink.
var (
	enumTypeProc = windows.NewCallback(func(_ windows.Handle, typ, lparam uintptr) uintptr {
		return dispatch(lparam, typ)
	})
	enumNameProc = windows.NewCallback(func(_ windows.Handle, _, name, lparam uintptr) uintptr {
		return dispatch(lparam, name)
	})
	enumLangProc = windows.NewCallback(func(_ windows.Handle, _, _, lang, lparam uintptr) uintptr {
		return dispatch(lparam, lang&0xFFFF)
	})
)

var registry struct {
	sinks map[uintptr]func(uintptr) bool
	next  uintptr
	sync.Mutex
}

func register(sink func(uintptr) bool) uintptr {
	registry.Lock()
	defer registry.Unlock()
	if registry.sinks == nil {
		registry.sinks = make(map[uintptr]func(uintptr) bool)
	}
	registry.next++
	registry.sinks[registry.next] = sink
	return registry.next
}

func unregister(id uintptr) {
	registry.Lock()
	delete(registry.sinks, id)
	registry.Unlock()
}

func dispatch(id, arg uintptr) uintptr {
	registry.Lock()
	sink := registry.sinks[id]
	registry.Unlock()
	if sink == nil || !sink(arg) {
		return 0
	}
	return 1
}

// Module is a module loaded by the Windows loader.
type Module struct {
	table  *resource.Table
	path   string
	h      windows.Handle
	mu     sync.Mutex
	active int
	owned  bool
	closed bool
	freed  bool
}

// Open maps the image at path for resource access only. The returned module
// owns the mapping; Close releases it.
func Open(path string) (*Module, error) {
	h, err := windows.LoadLibraryEx(path, 0,
		windows.LOAD_LIBRARY_AS_DATAFILE|windows.LOAD_LIBRARY_AS_IMAGE_RESOURCE)
	if err != nil {
		return nil, errors.DirectoryUnavailable(errors.PhaseHost, "load "+path, err)
	}
	Logger().Debug("module opened", zap.String("path", path))
	return newModule(h, path, true), nil
}

// FromHandle wraps a module the process already has loaded. Close on the
// result invalidates handles but leaves the module loaded.
func FromHandle(h windows.Handle) *Module {
	path := fmt.Sprintf("%#x", uintptr(h))
	buf := make([]uint16, windows.MAX_LONG_PATH)
	if n, err := windows.GetModuleFileName(h, &buf[0], uint32(len(buf))); err == nil {
		path = windows.UTF16ToString(buf[:n])
	}
	return newModule(h, path, false)
}

func newModule(h windows.Handle, path string, owned bool) *Module {
	m := &Module{
		table: resource.NewTable(),
		path:  path,
		h:     h,
		owned: owned,
	}
	m.table.Subscribe(handleLog{path: path})
	return m
}

// Path returns the file the module was loaded from.
func (m *Module) Path() string {
	return m.path
}

// Handle returns the underlying module handle.
func (m *Module) Handle() windows.Handle {
	return m.h
}

// Valid reports whether the module is still usable.
func (m *Module) Valid() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.closed && m.h != 0
}

// Close invalidates all handles issued by m. A module from Open is unmapped
// once no enumeration is running on it. Views obtained from the module must
// not be read after Close.
func (m *Module) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	free := m.active == 0
	m.mu.Unlock()

	Logger().Debug("module closed",
		zap.String("path", m.path), zap.Int("handles", m.table.Len()), zap.Bool("deferred", !free))
	_ = m.table.Close()
	if free {
		return m.free()
	}
	return nil
}

func (m *Module) free() error {
	m.mu.Lock()
	if !m.owned || m.freed {
		m.mu.Unlock()
		return nil
	}
	m.freed = true
	m.mu.Unlock()

	Logger().Debug("module released", zap.String("path", m.path))
	if err := windows.FreeLibrary(m.h); err != nil {
		return errors.Wrap(errors.PhaseHost, errors.KindDirectoryUnavailable, err, "free "+m.path)
	}
	return nil
}

func (m *Module) acquire() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.h == 0 {
		return false
	}
	m.active++
	return true
}

func (m *Module) release() {
	m.mu.Lock()
	m.active--
	free := m.closed && m.active == 0
	m.mu.Unlock()
	if free {
		if err := m.free(); err != nil {
			Logger().Warn("deferred module release failed", zap.Error(err))
		}
	}
}

// EnumTypes calls fn for each resource type in the module.
func (m *Module) EnumTypes(fn func(resource.ID) bool) error {
	return m.enumerate("EnumResourceTypesW", func(lp uintptr) (uintptr, error) {
		r, _, err := procEnumResourceTypesW.Call(uintptr(m.h), enumTypeProc, lp)
		return r, err
	}, func(arg uintptr) bool {
		return fn(idFromPtr(arg))
	})
}

// EnumNames calls fn for each name under typ.
func (m *Module) EnumNames(typ resource.ID, fn func(resource.ID) bool) error {
	t, tk, ok := idArg(typ)
	if !ok {
		return nil
	}
	defer runtime.KeepAlive(tk)

	return m.enumerate("EnumResourceNamesW", func(lp uintptr) (uintptr, error) {
		r, _, err := procEnumResourceNamesW.Call(uintptr(m.h), t, enumNameProc, lp)
		return r, err
	}, func(arg uintptr) bool {
		return fn(idFromPtr(arg))
	})
}

// EnumLanguages calls fn for each language of (typ, name).
func (m *Module) EnumLanguages(typ, name resource.ID, fn func(resource.LangID) bool) error {
	t, tk, ok := idArg(typ)
	if !ok {
		return nil
	}
	n, nk, ok := idArg(name)
	if !ok {
		return nil
	}
	defer runtime.KeepAlive(tk)
	defer runtime.KeepAlive(nk)

	return m.enumerate("EnumResourceLanguagesW", func(lp uintptr) (uintptr, error) {
		r, _, err := procEnumResourceLanguagesW.Call(uintptr(m.h), t, n, enumLangProc, lp)
		return r, err
	}, func(arg uintptr) bool {
		return fn(resource.LangID(arg))
	})
}

func (m *Module) enumerate(what string, call func(lparam uintptr) (uintptr, error), fn func(uintptr) bool) error {
	if !m.acquire() {
		return errors.DirectoryUnavailable(errors.PhaseEnumerate, "module closed", nil)
	}
	defer m.release()

	var stopped, lost bool
	id := register(func(arg uintptr) bool {
		if !m.Valid() {
			lost = true
			return false
		}
		if !fn(arg) {
			stopped = true
			return false
		}
		return true
	})
	defer unregister(id)

	r, err := call(id)
	switch {
	case lost:
		return errors.DirectoryUnavailable(errors.PhaseEnumerate, "module closed during "+what, nil)
	case r != 0, stopped:
		return nil
	}
	switch err {
	case errResourceDataNotFound, errResourceTypeNotFound, errResourceNameNotFound,
		errResourceLangNotFound, errResourceEnumUserStop:
		return nil
	}
	return errors.DirectoryUnavailable(errors.PhaseEnumerate, what, err)
}

// FindResource locates an exact (typ, name, lang) entry.
func (m *Module) FindResource(typ, name resource.ID, lang resource.LangID) (resource.Handle, error) {
	if !m.acquire() {
		return 0, errors.DirectoryUnavailable(errors.PhaseFind, "module closed", nil)
	}
	defer m.release()

	t, tk, ok1 := idArg(typ)
	n, nk, ok2 := idArg(name)
	if !ok1 || !ok2 {
		return 0, errors.NotFound(errors.PhaseFind, typ.Label(), name.String(), lang.String())
	}
	r, _, err := procFindResourceExW.Call(uintptr(m.h), t, n, uintptr(lang))
	runtime.KeepAlive(tk)
	runtime.KeepAlive(nk)
	if r == 0 {
		return 0, findErr(err, typ, name, lang.String())
	}
	return m.issue(windows.Handle(r))
}

// FindResourceFallback runs the loader's language search for (typ, name).
// A non-nil prefs is installed as the calling thread's preferred UI
// languages for the duration of the search.
func (m *Module) FindResourceFallback(typ, name resource.ID, prefs []string) (resource.Handle, error) {
	if !m.acquire() {
		return 0, errors.DirectoryUnavailable(errors.PhaseFind, "module closed", nil)
	}
	defer m.release()

	resType, ok1 := resArg(typ)
	resName, ok2 := resArg(name)
	if !ok1 || !ok2 {
		return 0, errors.NotFound(errors.PhaseFind, typ.Label(), name.String(), "")
	}

	if prefs != nil {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		th := langpref.OSThread()
		prev, err := th.Get()
		if err != nil {
			return 0, err
		}
		if err := th.Set(prefs); err != nil {
			return 0, err
		}
		defer func() {
			if err := th.Set(prev); err != nil {
				Logger().Warn("restoring thread UI languages failed", zap.Error(err))
			}
		}()
	}

	info, err := windows.FindResource(m.h, resName, resType)
	if err != nil {
		return 0, findErr(err, typ, name, "")
	}
	return m.issue(info)
}

// SizeofResource returns the byte length behind h.
func (m *Module) SizeofResource(h resource.Handle) (uint32, error) {
	info, err := m.resolve(h)
	if err != nil {
		return 0, err
	}
	r, _, e := procSizeofResource.Call(uintptr(m.h), uintptr(info))
	if r == 0 && e != windows.Errno(0) {
		return 0, errors.LoadFailed("SizeofResource", e)
	}
	return uint32(r), nil
}

// LoadResource returns the bytes behind h. They live in the module's
// mapping and stay readable until Close.
func (m *Module) LoadResource(h resource.Handle) ([]byte, error) {
	size, err := m.SizeofResource(h)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return []byte{}, nil
	}
	info, err := m.resolve(h)
	if err != nil {
		return nil, err
	}
	global, err := windows.LoadResource(m.h, info)
	if err != nil {
		return nil, errors.LoadFailed("LoadResource", err)
	}
	addr, err := windows.LockResource(global)
	if err != nil {
		return nil, errors.LoadFailed("LockResource", err)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func (m *Module) issue(info windows.Handle) (resource.Handle, error) {
	h, err := m.table.Insert(info, info)
	if err != nil {
		return 0, errors.DirectoryUnavailable(errors.PhaseFind, "module closed", err)
	}
	return h, nil
}

func (m *Module) resolve(h resource.Handle) (windows.Handle, error) {
	v, ok := m.table.Get(h)
	if !ok {
		if h != 0 && !m.table.Owns(h) {
			return 0, errors.ForeignHandle(errors.PhaseLoad, h)
		}
		return 0, errors.InvalidHandle(errors.PhaseLoad, h)
	}
	return v.(windows.Handle), nil
}

func findErr(err error, typ, name resource.ID, lang string) error {
	switch err {
	case errResourceDataNotFound, errResourceTypeNotFound, errResourceNameNotFound, errResourceLangNotFound:
		return errors.NotFound(errors.PhaseFind, typ.Label(), name.String(), lang)
	}
	return errors.New(errors.PhaseFind, errors.KindDirectoryUnavailable).
		Resource(typ.Label(), name.String(), lang).
		Cause(err).
		Build()
}

// idArg converts id to the pointer-or-ordinal form kernel32 expects. The
// returned pointer must stay reachable until the call returns.
func idArg(id resource.ID) (uintptr, *uint16, bool) {
	if s, ok := id.Name(); ok {
		p, err := windows.UTF16PtrFromString(s)
		if err != nil {
			return 0, nil, false
		}
		return uintptr(unsafe.Pointer(p)), p, true
	}
	n, ok := id.Number()
	if !ok || n == 0 || n > 0xFFFF {
		return 0, nil, false
	}
	return uintptr(n), nil, true
}

func resArg(id resource.ID) (windows.ResourceIDOrString, bool) {
	if s, ok := id.Name(); ok {
		return s, true
	}
	n, ok := id.Number()
	if !ok || n == 0 || n > 0xFFFF {
		return nil, false
	}
	return windows.ResourceID(n), true
}

// idFromPtr decodes an enumeration argument: an ordinal when the high bits
// are clear, otherwise a NUL-terminated UTF-16 name.
func idFromPtr(p uintptr) resource.ID {
	if p>>16 == 0 {
		return resource.Num(uint32(p))
	}
	return resource.Name(windows.UTF16PtrToString((*uint16)(unsafe.Pointer(p))))
}
