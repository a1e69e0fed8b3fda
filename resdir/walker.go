package resdir

import (
	"go.uber.org/zap"

	"github.com/enovales/winres"
	"github.com/enovales/winres/errors"
	"github.com/enovales/winres/resource"
)

// Action is a visitor's decision after seeing one child.
type Action uint8

const (
	Continue Action = iota
	Stop
)

func (a Action) String() string {
	if a == Stop {
		return "stop"
	}
	return "continue"
}

// Outcome reports how an enumeration ended.
type Outcome uint8

const (
	// Completed means every child was visited.
	Completed Outcome = iota
	// Stopped means the visitor asked to stop, or failed.
	Stopped
)

func (o Outcome) String() string {
	if o == Stopped {
		return "stopped"
	}
	return "completed"
}

// TypeVisitor is called for each resource type.
type TypeVisitor func(m winres.Module, typ resource.ID) (Action, error)

// NameVisitor is called for each resource name under one type.
type NameVisitor func(m winres.Module, typ, name resource.ID) (Action, error)

// LangVisitor is called for each language variant of one entry.
type LangVisitor func(m winres.Module, typ, name resource.ID, lang resource.LangID) (Action, error)

// EnumerateTypes visits every distinct resource type in m.
func EnumerateTypes(m winres.Module, visit TypeVisitor) (Outcome, error) {
	if err := checkModule(m); err != nil {
		return Stopped, err
	}
	outcome, err := traverse(m.EnumTypes, func(typ resource.ID) (Action, error) {
		return visit(m, typ)
	})
	logOutcome("types", outcome, err)
	return outcome, err
}

// EnumerateNames visits every resource name under typ. A type absent from m
// yields no visits and Completed.
func EnumerateNames(m winres.Module, typ resource.ID, visit NameVisitor) (Outcome, error) {
	if err := checkModule(m); err != nil {
		return Stopped, err
	}
	enum := func(fn func(resource.ID) bool) error {
		return m.EnumNames(typ, fn)
	}
	outcome, err := traverse(enum, func(name resource.ID) (Action, error) {
		return visit(m, typ, name)
	})
	logOutcome("names", outcome, err, zap.Stringer("type", typ))
	return outcome, err
}

// EnumerateLanguages visits every language variant of the (typ, name) entry.
func EnumerateLanguages(m winres.Module, typ, name resource.ID, visit LangVisitor) (Outcome, error) {
	if err := checkModule(m); err != nil {
		return Stopped, err
	}
	enum := func(fn func(resource.LangID) bool) error {
		return m.EnumLanguages(typ, name, fn)
	}
	outcome, err := traverse(enum, func(lang resource.LangID) (Action, error) {
		return visit(m, typ, name, lang)
	})
	logOutcome("languages", outcome, err, zap.Stringer("type", typ), zap.Stringer("name", name))
	return outcome, err
}

// traverse drives one directory level. It suppresses duplicate children,
// ignores host callbacks after a stop, and keeps visitor errors apart from
// host failures.
func traverse[T comparable](enum func(func(T) bool) error, visit func(T) (Action, error)) (Outcome, error) {
	var (
		seen     = make(map[T]struct{})
		stopped  bool
		visitErr error
	)

	hostErr := enum(func(child T) bool {
		if stopped {
			return false
		}
		if _, dup := seen[child]; dup {
			return true
		}
		seen[child] = struct{}{}

		action, err := visit(child)
		if err != nil {
			visitErr = err
			stopped = true
			return false
		}
		if action == Stop {
			stopped = true
			return false
		}
		return true
	})

	if visitErr != nil {
		return Stopped, visitErr
	}
	if hostErr != nil {
		if errors.Is(hostErr, errors.ErrDirectoryUnavailable) {
			return Stopped, hostErr
		}
		return Stopped, errors.DirectoryUnavailable(errors.PhaseEnumerate, "read resource directory", hostErr)
	}
	if stopped {
		return Stopped, nil
	}
	return Completed, nil
}

func checkModule(m winres.Module) error {
	if m == nil {
		return errors.DirectoryUnavailable(errors.PhaseEnumerate, "nil module", nil)
	}
	if !m.Valid() {
		return errors.DirectoryUnavailable(errors.PhaseEnumerate, "module is not loaded", nil)
	}
	return nil
}

func logOutcome(level string, outcome Outcome, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("level", level), zap.Stringer("outcome", outcome))
	if err != nil {
		Logger().Debug("enumeration failed", append(fields, zap.Error(err))...)
		return
	}
	Logger().Debug("enumeration finished", fields...)
}
