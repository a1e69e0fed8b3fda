package langpref

import (
	"context"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/enovales/winres/errors"
)

// Accessor gets and sets one ordered preference list, most-preferred first.
type Accessor interface {
	Get() ([]string, error)
	Set(names []string) error
}

// Validate checks that every name is a well-formed language[-Script][-REGION]
// locale name with a known language subtag. The first offending name is
// reported as errors.ErrInvalidLanguageTag.
func Validate(names []string) error {
	for _, name := range names {
		if _, err := Parse(name); err != nil {
			return err
		}
	}
	return nil
}

// RejectedList reports a list the OS refused even though every name passed
// Validate. The whole list is named since the OS does not say which entry
// it objected to.
func RejectedList(names []string, cause error) error {
	return errors.InvalidLanguageTag(strings.Join(names, ","), cause)
}

// Parse validates one locale name and returns its tag.
func Parse(name string) (language.Tag, error) {
	tag, err := language.Parse(name)
	if err != nil {
		return language.Und, errors.InvalidLanguageTag(name, err)
	}
	// Base guesses a language for "und"; only an explicit subtag is exact.
	if _, conf := tag.Base(); conf != language.Exact {
		return language.Und, errors.InvalidLanguageTag(name, nil)
	}
	if len(tag.Variants()) > 0 || len(tag.Extensions()) > 0 {
		return language.Und, errors.InvalidLanguageTag(name, nil)
	}
	return tag, nil
}

// Thread is one thread's preference list held as an explicit value.
// Distinct Thread values never affect each other. Safe for concurrent use.
type Thread struct {
	langs []string
	mu    sync.RWMutex
}

// NewThread returns a Thread with an empty list.
func NewThread() *Thread {
	return &Thread{}
}

// Get returns a copy of the current list.
func (t *Thread) Get() ([]string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.langs), nil
}

// Set replaces the list. On a validation failure the list is left as it was.
// An empty list clears the preferences.
func (t *Thread) Set(names []string) error {
	if err := Validate(names); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.langs = slices.Clone(names)
	return nil
}

type ctxKey struct{}

// NewContext returns a context carrying prefs for the fallback search.
func NewContext(ctx context.Context, prefs []string) context.Context {
	return context.WithValue(ctx, ctxKey{}, slices.Clone(prefs))
}

// FromContext returns the preference list carried by ctx.
// ok is false when ctx carries none, meaning the host default applies.
func FromContext(ctx context.Context) (prefs []string, ok bool) {
	if ctx == nil {
		return nil, false
	}
	prefs, ok = ctx.Value(ctxKey{}).([]string)
	return prefs, ok
}

// ContextFrom snapshots an Accessor into ctx.
func ContextFrom(ctx context.Context, a Accessor) (context.Context, error) {
	prefs, err := a.Get()
	if err != nil {
		return ctx, err
	}
	return NewContext(ctx, prefs), nil
}
