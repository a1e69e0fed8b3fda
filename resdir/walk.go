package resdir

import (
	"fmt"
	"iter"

	"github.com/enovales/winres"
	"github.com/enovales/winres/resource"
)

// Entry is one fully-qualified resource coordinate.
type Entry struct {
	Type resource.ID
	Name resource.ID
	Lang resource.LangID
}

func (e Entry) String() string {
	return fmt.Sprintf("%s/%s/%s", e.Type.Label(), e.Name, e.Lang)
}

// EntryVisitor is called for every leaf of the directory tree.
type EntryVisitor func(m winres.Module, e Entry) (Action, error)

// Walk visits every (type, name, language) leaf depth-first. Stop at any
// leaf ends the whole walk.
func Walk(m winres.Module, visit EntryVisitor) (Outcome, error) {
	var halted bool

	outcome, err := EnumerateTypes(m, func(m winres.Module, typ resource.ID) (Action, error) {
		_, err := EnumerateNames(m, typ, func(m winres.Module, typ, name resource.ID) (Action, error) {
			_, err := EnumerateLanguages(m, typ, name, func(m winres.Module, typ, name resource.ID, lang resource.LangID) (Action, error) {
				action, err := visit(m, Entry{Type: typ, Name: name, Lang: lang})
				if action == Stop {
					halted = true
				}
				return action, err
			})
			if err != nil || halted {
				return Stop, err
			}
			return Continue, nil
		})
		if err != nil || halted {
			return Stop, err
		}
		return Continue, nil
	})
	return outcome, err
}

// Entries returns a lazy sequence over every leaf of the directory tree.
func Entries(m winres.Module) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		more := true
		_, err := Walk(m, func(_ winres.Module, e Entry) (Action, error) {
			more = yield(e, nil)
			return proceed(more), nil
		})
		if err != nil && more {
			yield(Entry{}, err)
		}
	}
}

// CollectEntries gathers every leaf of the directory tree.
func CollectEntries(m winres.Module) ([]Entry, error) {
	var out []Entry
	_, err := Walk(m, func(_ winres.Module, e Entry) (Action, error) {
		out = append(out, e)
		return Continue, nil
	})
	return out, err
}
