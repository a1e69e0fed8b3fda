// Package loader resolves resource coordinates and reads resource bytes.
//
// Retrieval is a three-step chain:
//
//	h, err := loader.FindLanguage(mod, resource.String.ID(), resource.Num(1), 0x0409)
//	size, err := loader.SizeOf(mod, h)
//	view, err := loader.Load(mod, h)
//
// Find without a language defers to the host's fallback search, using the
// preference list carried by the context (see langpref.NewContext), or the
// host default when there is none.
//
// A View borrows module memory. It stays readable only while the module is
// loaded; Copy the bytes to keep them longer.
package loader

import (
	"context"

	"go.uber.org/zap"

	"github.com/enovales/winres"
	"github.com/enovales/winres/errors"
	"github.com/enovales/winres/langpref"
	"github.com/enovales/winres/resource"
)

// FindLanguage resolves an exact (typ, name, lang) coordinate.
func FindLanguage(m winres.Module, typ, name resource.ID, lang resource.LangID) (resource.Handle, error) {
	if err := checkFind(m); err != nil {
		return 0, err
	}
	h, err := m.FindResource(typ, name, lang)
	if err != nil {
		return 0, findErr(err, typ, name, lang.String())
	}
	Logger().Debug("resource found",
		zap.Stringer("type", typ), zap.Stringer("name", name), zap.Stringer("lang", lang))
	return h, nil
}

// Find resolves (typ, name) with the language chosen by the host's fallback
// search. Preferences in ctx must be valid locale names.
func Find(ctx context.Context, m winres.Module, typ, name resource.ID) (resource.Handle, error) {
	if err := checkFind(m); err != nil {
		return 0, err
	}

	prefs, ok := langpref.FromContext(ctx)
	if ok {
		if err := langpref.Validate(prefs); err != nil {
			return 0, err
		}
		if prefs == nil {
			// An explicit empty list still overrides the host default.
			prefs = []string{}
		}
	}

	h, err := m.FindResourceFallback(typ, name, prefs)
	if err != nil {
		return 0, findErr(err, typ, name, "")
	}
	Logger().Debug("resource found by fallback",
		zap.Stringer("type", typ), zap.Stringer("name", name), zap.Strings("prefs", prefs))
	return h, nil
}

// SizeOf returns the byte length of the resource behind h without reading it.
func SizeOf(m winres.Module, h resource.Handle) (uint32, error) {
	if err := checkHandle(m, h); err != nil {
		return 0, err
	}
	size, err := m.SizeofResource(h)
	if err != nil {
		return 0, handleErr(err, h)
	}
	return size, nil
}

// Load returns a read-only view of the resource behind h. The view's length
// equals SizeOf.
func Load(m winres.Module, h resource.Handle) (View, error) {
	if err := checkHandle(m, h); err != nil {
		return View{}, err
	}
	size, err := m.SizeofResource(h)
	if err != nil {
		return View{}, handleErr(err, h)
	}
	data, err := m.LoadResource(h)
	if err != nil {
		if classified(err) {
			return View{}, err
		}
		return View{}, errors.LoadFailed("load resource data", err)
	}
	if uint32(len(data)) < size {
		return View{}, errors.LoadFailed("resource data shorter than its recorded size", nil)
	}
	return View{data: data[:size:size], mod: m}, nil
}

// ReadAll finds (typ, name) by fallback search and returns a private copy of
// its bytes.
func ReadAll(ctx context.Context, m winres.Module, typ, name resource.ID) ([]byte, error) {
	h, err := Find(ctx, m, typ, name)
	if err != nil {
		return nil, err
	}
	return readCopy(m, h)
}

// ReadAllLanguage finds an exact coordinate and returns a private copy of
// its bytes.
func ReadAllLanguage(m winres.Module, typ, name resource.ID, lang resource.LangID) ([]byte, error) {
	h, err := FindLanguage(m, typ, name, lang)
	if err != nil {
		return nil, err
	}
	return readCopy(m, h)
}

func readCopy(m winres.Module, h resource.Handle) ([]byte, error) {
	v, err := Load(m, h)
	if err != nil {
		return nil, err
	}
	return v.Copy()
}

func checkFind(m winres.Module) error {
	if m == nil || !m.Valid() {
		return errors.DirectoryUnavailable(errors.PhaseFind, "module is not loaded", nil)
	}
	return nil
}

func checkHandle(m winres.Module, h resource.Handle) error {
	if h == 0 || m == nil || !m.Valid() {
		return errors.InvalidHandle(errors.PhaseLoad, h)
	}
	return nil
}

// classified reports whether err already carries a Kind, possibly under
// host-added context.
func classified(err error) bool {
	var e *errors.Error
	return errors.As(err, &e)
}

func findErr(err error, typ, name resource.ID, lang string) error {
	if classified(err) {
		return err
	}
	return errors.New(errors.PhaseFind, errors.KindDirectoryUnavailable).
		Resource(typ.Label(), name.String(), lang).
		Cause(err).
		Detail("host lookup failed").
		Build()
}

func handleErr(err error, h resource.Handle) error {
	if classified(err) {
		return err
	}
	return errors.New(errors.PhaseLoad, errors.KindInvalidHandle).
		Value(h).
		Cause(err).
		Detail("host rejected handle").
		Build()
}
