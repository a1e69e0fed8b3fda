package resdir

import (
	"iter"

	"github.com/enovales/winres"
	"github.com/enovales/winres/resource"
)

// Types returns a lazy sequence of the resource types in m. Breaking out of
// the range loop stops the enumeration. A failure is yielded once as the
// final element with a zero ID.
func Types(m winres.Module) iter.Seq2[resource.ID, error] {
	return func(yield func(resource.ID, error) bool) {
		more := true
		_, err := EnumerateTypes(m, func(_ winres.Module, typ resource.ID) (Action, error) {
			more = yield(typ, nil)
			return proceed(more), nil
		})
		if err != nil && more {
			yield(resource.ID{}, err)
		}
	}
}

// Names returns a lazy sequence of the resource names under typ.
func Names(m winres.Module, typ resource.ID) iter.Seq2[resource.ID, error] {
	return func(yield func(resource.ID, error) bool) {
		more := true
		_, err := EnumerateNames(m, typ, func(_ winres.Module, _, name resource.ID) (Action, error) {
			more = yield(name, nil)
			return proceed(more), nil
		})
		if err != nil && more {
			yield(resource.ID{}, err)
		}
	}
}

// Languages returns a lazy sequence of the language variants of (typ, name).
func Languages(m winres.Module, typ, name resource.ID) iter.Seq2[resource.LangID, error] {
	return func(yield func(resource.LangID, error) bool) {
		more := true
		_, err := EnumerateLanguages(m, typ, name, func(_ winres.Module, _, _ resource.ID, lang resource.LangID) (Action, error) {
			more = yield(lang, nil)
			return proceed(more), nil
		})
		if err != nil && more {
			yield(0, err)
		}
	}
}

func proceed(more bool) Action {
	if more {
		return Continue
	}
	return Stop
}

// CollectTypes gathers every type in m. On failure the types seen so far are
// returned with the error.
func CollectTypes(m winres.Module) ([]resource.ID, error) {
	var out []resource.ID
	_, err := EnumerateTypes(m, func(_ winres.Module, typ resource.ID) (Action, error) {
		out = append(out, typ)
		return Continue, nil
	})
	return out, err
}

// CollectNames gathers every name under typ.
func CollectNames(m winres.Module, typ resource.ID) ([]resource.ID, error) {
	var out []resource.ID
	_, err := EnumerateNames(m, typ, func(_ winres.Module, _, name resource.ID) (Action, error) {
		out = append(out, name)
		return Continue, nil
	})
	return out, err
}

// CollectLanguages gathers every language variant of (typ, name).
func CollectLanguages(m winres.Module, typ, name resource.ID) ([]resource.LangID, error) {
	var out []resource.LangID
	_, err := EnumerateLanguages(m, typ, name, func(_ winres.Module, _, _ resource.ID, lang resource.LangID) (Action, error) {
		out = append(out, lang)
		return Continue, nil
	})
	return out, err
}
