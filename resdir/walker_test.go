package resdir

import (
	stderrors "errors"
	"slices"
	"testing"

	"github.com/enovales/winres"
	"github.com/enovales/winres/errors"
	"github.com/enovales/winres/memmodule"
	"github.com/enovales/winres/resource"
	"github.com/enovales/winres/strtable"
)

var (
	typString   = resource.String.ID()
	typIcon     = resource.Icon.ID()
	typManifest = resource.Manifest.ID()
	greeting    = resource.Name("GREETING")
)

func greetingModule(t *testing.T) (*memmodule.Module, []byte) {
	t.Helper()
	block, err := strtable.Encode([]string{"Hello, world"})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return memmodule.New().Add(typString, greeting, resource.LangEnglishUS, block), block
}

func richModule() *memmodule.Module {
	return memmodule.New().
		Add(typString, resource.Num(1), 0x0409, []byte("a")).
		Add(typString, resource.Num(1), 0x0407, []byte("b")).
		Add(typString, resource.Num(2), 0x0409, []byte("c")).
		Add(typIcon, resource.Num(1), 0x0000, []byte("d")).
		Add(typManifest, resource.Num(1), 0x0409, []byte("e")).
		Add(resource.Name("LEVEL"), resource.Name("INTRO"), 0x040C, []byte("f"))
}

func TestEnumerate_GreetingScenario(t *testing.T) {
	m, _ := greetingModule(t)

	types, err := CollectTypes(m)
	if err != nil {
		t.Fatalf("CollectTypes failed: %v", err)
	}
	if len(types) != 1 || types[0] != typString {
		t.Fatalf("types = %v, want [STRING]", types)
	}

	names, err := CollectNames(m, typString)
	if err != nil {
		t.Fatalf("CollectNames failed: %v", err)
	}
	if len(names) != 1 || names[0] != greeting {
		t.Fatalf("names = %v, want [GREETING]", names)
	}

	langs, err := CollectLanguages(m, typString, greeting)
	if err != nil {
		t.Fatalf("CollectLanguages failed: %v", err)
	}
	if len(langs) != 1 || langs[0] != resource.LangEnglishUS {
		t.Fatalf("langs = %v, want [en-US]", langs)
	}
}

func TestEnumerateNames_AbsentTypeIsEmpty(t *testing.T) {
	m := richModule()

	for _, typ := range []resource.ID{resource.Bitmap.ID(), resource.Num(4242), resource.Name("NOPE")} {
		calls := 0
		outcome, err := EnumerateNames(m, typ, func(winres.Module, resource.ID, resource.ID) (Action, error) {
			calls++
			return Continue, nil
		})
		if err != nil {
			t.Fatalf("EnumerateNames(%v) error: %v", typ, err)
		}
		if outcome != Completed || calls != 0 {
			t.Fatalf("EnumerateNames(%v) = %v after %d calls", typ, outcome, calls)
		}
	}

	langs, err := CollectLanguages(m, typString, resource.Num(99))
	if err != nil || len(langs) != 0 {
		t.Fatalf("CollectLanguages(missing) = %v, %v", langs, err)
	}
}

func TestEnumerateTypes_EarlyStop(t *testing.T) {
	m := richModule()

	calls := 0
	outcome, err := EnumerateTypes(m, func(winres.Module, resource.ID) (Action, error) {
		calls++
		return Stop, nil
	})
	if err != nil {
		t.Fatalf("early stop must not be an error: %v", err)
	}
	if outcome != Stopped {
		t.Fatalf("outcome = %v, want stopped", outcome)
	}
	if calls != 1 {
		t.Fatalf("visitor called %d times, want 1", calls)
	}
}

func TestEnumerate_EarlyStopAtEveryLevel(t *testing.T) {
	m := richModule()

	var names []resource.ID
	outcome, err := EnumerateNames(m, typString, func(_ winres.Module, _, name resource.ID) (Action, error) {
		names = append(names, name)
		return Stop, nil
	})
	if err != nil || outcome != Stopped || len(names) != 1 {
		t.Fatalf("EnumerateNames = %v, %v, %v", outcome, err, names)
	}

	var langs []resource.LangID
	outcome, err = EnumerateLanguages(m, typString, resource.Num(1), func(_ winres.Module, _, _ resource.ID, l resource.LangID) (Action, error) {
		langs = append(langs, l)
		return Stop, nil
	})
	if err != nil || outcome != Stopped || len(langs) != 1 {
		t.Fatalf("EnumerateLanguages = %v, %v, %v", outcome, err, langs)
	}
}

func TestEnumerateTypes_Idempotent(t *testing.T) {
	m := richModule()

	first, err := CollectTypes(m)
	if err != nil {
		t.Fatalf("CollectTypes failed: %v", err)
	}
	second, err := CollectTypes(m)
	if err != nil {
		t.Fatalf("CollectTypes failed: %v", err)
	}

	key := func(ids []resource.ID) []string {
		out := make([]string, len(ids))
		for i, id := range ids {
			out[i] = id.String()
		}
		slices.Sort(out)
		return out
	}
	if !slices.Equal(key(first), key(second)) {
		t.Fatalf("type sets differ: %v vs %v", first, second)
	}
	if len(first) != 4 {
		t.Fatalf("expected 4 types, got %v", first)
	}
}

func TestEnumerate_VisitorErrorPropagates(t *testing.T) {
	m := richModule()
	boom := stderrors.New("visitor failed")

	var seen []resource.ID
	outcome, err := EnumerateTypes(m, func(_ winres.Module, typ resource.ID) (Action, error) {
		seen = append(seen, typ)
		if len(seen) == 2 {
			return Continue, boom
		}
		return Continue, nil
	})
	if err != boom {
		t.Fatalf("err = %v, want the visitor's error unchanged", err)
	}
	if outcome != Stopped {
		t.Fatalf("outcome = %v, want stopped", outcome)
	}
	if len(seen) != 2 {
		t.Fatalf("visitor ran %d times after failing", len(seen))
	}
	if errors.Is(err, errors.ErrDirectoryUnavailable) {
		t.Fatal("visitor error must stay distinguishable from a broken module")
	}
}

func TestEnumerate_InvalidModule(t *testing.T) {
	m := richModule()
	m.Unload()

	visit := func(winres.Module, resource.ID) (Action, error) { return Continue, nil }
	if _, err := EnumerateTypes(m, visit); !errors.Is(err, errors.ErrDirectoryUnavailable) {
		t.Fatalf("EnumerateTypes(unloaded) = %v, want ErrDirectoryUnavailable", err)
	}
	if _, err := EnumerateTypes(nil, visit); !errors.Is(err, errors.ErrDirectoryUnavailable) {
		t.Fatalf("EnumerateTypes(nil) = %v, want ErrDirectoryUnavailable", err)
	}
	if _, err := CollectNames(m, typString); !errors.Is(err, errors.ErrDirectoryUnavailable) {
		t.Fatalf("CollectNames(unloaded) = %v, want ErrDirectoryUnavailable", err)
	}
	if _, err := CollectLanguages(m, typString, resource.Num(1)); !errors.Is(err, errors.ErrDirectoryUnavailable) {
		t.Fatalf("CollectLanguages(unloaded) = %v, want ErrDirectoryUnavailable", err)
	}
}

func TestEnumerate_HostFailureMidway(t *testing.T) {
	m := richModule()

	var seen []resource.ID
	outcome, err := EnumerateTypes(m, func(mod winres.Module, typ resource.ID) (Action, error) {
		seen = append(seen, typ)
		m.Unload()
		return Continue, nil
	})
	if !errors.Is(err, errors.ErrDirectoryUnavailable) {
		t.Fatalf("err = %v, want ErrDirectoryUnavailable", err)
	}
	if outcome != Stopped || len(seen) != 1 {
		t.Fatalf("outcome = %v after %d visits", outcome, len(seen))
	}
}

func TestCollect_PartialResultsOnFailure(t *testing.T) {
	h := &scriptedHost{Module: richModule(), failAfter: 2}

	types, err := CollectTypes(h)
	if !errors.Is(err, errors.ErrDirectoryUnavailable) {
		t.Fatalf("err = %v, want ErrDirectoryUnavailable", err)
	}
	if len(types) != 2 {
		t.Fatalf("partial results = %v, want 2 entries", types)
	}
}

func TestTraverse_SuppressesDuplicates(t *testing.T) {
	h := &scriptedHost{Module: richModule(), duplicate: true}

	types, err := CollectTypes(h)
	if err != nil {
		t.Fatalf("CollectTypes failed: %v", err)
	}
	if len(types) != 4 {
		t.Fatalf("types = %v, want each type once", types)
	}
}

func TestTraverse_IgnoresCallbacksAfterStop(t *testing.T) {
	h := &scriptedHost{Module: richModule(), ignoreStop: true}

	calls := 0
	outcome, err := EnumerateTypes(h, func(winres.Module, resource.ID) (Action, error) {
		calls++
		return Stop, nil
	})
	if err != nil || outcome != Stopped {
		t.Fatalf("EnumerateTypes = %v, %v", outcome, err)
	}
	if calls != 1 {
		t.Fatalf("visitor called %d times after stop", calls)
	}
}

func TestTraverse_WrapsPlainHostErrors(t *testing.T) {
	h := &scriptedHost{Module: richModule(), plainErr: stderrors.New("EIO")}

	_, err := EnumerateTypes(h, func(winres.Module, resource.ID) (Action, error) { return Continue, nil })
	if !errors.Is(err, errors.ErrDirectoryUnavailable) {
		t.Fatalf("err = %v, want ErrDirectoryUnavailable", err)
	}
	if !stderrors.Is(err, h.plainErr) {
		t.Fatal("host error should remain in the cause chain")
	}
}

func TestVisitorReceivesModule(t *testing.T) {
	m := richModule()
	_, err := EnumerateTypes(m, func(got winres.Module, _ resource.ID) (Action, error) {
		if got != winres.Module(m) {
			t.Fatal("visitor received a different module")
		}
		return Stop, nil
	})
	if err != nil {
		t.Fatalf("EnumerateTypes failed: %v", err)
	}
}

// scriptedHost wraps a memmodule and misbehaves on EnumTypes in
// configurable ways.
type scriptedHost struct {
	*memmodule.Module
	plainErr   error
	failAfter  int
	duplicate  bool
	ignoreStop bool
}

func (h *scriptedHost) EnumTypes(fn func(resource.ID) bool) error {
	if h.plainErr != nil {
		return h.plainErr
	}
	var types []resource.ID
	_ = h.Module.EnumTypes(func(id resource.ID) bool {
		types = append(types, id)
		return true
	})

	for i, typ := range types {
		if h.failAfter > 0 && i == h.failAfter {
			return errors.DirectoryUnavailable(errors.PhaseEnumerate, "scripted failure", nil)
		}
		more := fn(typ)
		if h.duplicate {
			more = fn(typ) && more
		}
		if !more && !h.ignoreStop {
			return nil
		}
	}
	return nil
}
