package winres

import "github.com/enovales/winres/resource"

// Directory is the host platform's three-level resource index of a loaded module.
// Enumeration callbacks return false to stop; a type or name absent from the
// module produces no callbacks and a nil error.
type Directory interface {
	EnumTypes(fn func(typ resource.ID) bool) error
	EnumNames(typ resource.ID, fn func(name resource.ID) bool) error
	EnumLanguages(typ, name resource.ID, fn func(lang resource.LangID) bool) error
}

// Locator resolves coordinates to handles and reads through them.
type Locator interface {
	// FindResource locates an entry with an explicit language.
	FindResource(typ, name resource.ID, lang resource.LangID) (resource.Handle, error)

	// FindResourceFallback runs the host's language fallback search with prefs
	// as the preferred UI language list. A nil prefs uses the host default.
	FindResourceFallback(typ, name resource.ID, prefs []string) (resource.Handle, error)

	// SizeofResource returns the byte length of the resource data.
	SizeofResource(h resource.Handle) (uint32, error)

	// LoadResource returns the resource bytes. The slice aliases host memory
	// and must not be written.
	LoadResource(h resource.Handle) ([]byte, error)
}

// Module is a borrowed reference to a loaded module. winres never loads,
// reloads or releases a Module.
type Module interface {
	Directory
	Locator

	// Valid reports whether the module is still loaded.
	Valid() bool
}
