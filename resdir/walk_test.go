package resdir

import (
	stderrors "errors"
	"testing"

	"github.com/enovales/winres"
	"github.com/enovales/winres/errors"
	"github.com/enovales/winres/resource"
)

func TestWalk_VisitsEveryLeaf(t *testing.T) {
	m := richModule()

	entries, err := CollectEntries(m)
	if err != nil {
		t.Fatalf("CollectEntries failed: %v", err)
	}

	want := []string{
		"STRING/#1/en-US",
		"STRING/#1/de-DE",
		"STRING/#2/en-US",
		"ICON/#1/0x0000",
		"MANIFEST/#1/en-US",
		"LEVEL/INTRO/fr-FR",
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %v", len(entries), len(want), entries)
	}
	for i, e := range entries {
		if e.String() != want[i] {
			t.Errorf("entry %d = %s, want %s", i, e, want[i])
		}
	}
}

func TestWalk_StopEndsEverything(t *testing.T) {
	m := richModule()

	calls := 0
	outcome, err := Walk(m, func(_ winres.Module, e Entry) (Action, error) {
		calls++
		if calls == 2 {
			return Stop, nil
		}
		return Continue, nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if outcome != Stopped {
		t.Fatalf("outcome = %v, want stopped", outcome)
	}
	if calls != 2 {
		t.Fatalf("visitor called %d times, want 2", calls)
	}
}

func TestWalk_ErrorPropagatesUnchanged(t *testing.T) {
	m := richModule()
	boom := stderrors.New("boom")

	var seen []Entry
	outcome, err := Walk(m, func(_ winres.Module, e Entry) (Action, error) {
		seen = append(seen, e)
		if e.Type == typIcon {
			return Continue, boom
		}
		return Continue, nil
	})
	if err != boom {
		t.Fatalf("err = %v, want boom", err)
	}
	if outcome != Stopped {
		t.Fatalf("outcome = %v", outcome)
	}
	if len(seen) != 4 {
		t.Fatalf("visited %d leaves before failing, want 4", len(seen))
	}
}

func TestWalk_UnloadedModule(t *testing.T) {
	m := richModule()
	m.Unload()
	if _, err := CollectEntries(m); !errors.Is(err, errors.ErrDirectoryUnavailable) {
		t.Fatalf("CollectEntries = %v, want ErrDirectoryUnavailable", err)
	}
}

func TestSeq_Types(t *testing.T) {
	m := richModule()

	var got []resource.ID
	for typ, err := range Types(m) {
		if err != nil {
			t.Fatalf("Types yielded error: %v", err)
		}
		got = append(got, typ)
	}
	if len(got) != 4 {
		t.Fatalf("Types yielded %v", got)
	}
}

func TestSeq_BreakStopsEnumeration(t *testing.T) {
	m := richModule()

	count := 0
	for range Types(m) {
		count++
		break
	}
	if count != 1 {
		t.Fatalf("loop body ran %d times", count)
	}

	count = 0
	for range Entries(m) {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Fatalf("loop body ran %d times", count)
	}
}

func TestSeq_NamesAndLanguages(t *testing.T) {
	m := richModule()

	var names []resource.ID
	for name, err := range Names(m, typString) {
		if err != nil {
			t.Fatalf("Names yielded error: %v", err)
		}
		names = append(names, name)
	}
	if len(names) != 2 {
		t.Fatalf("names = %v", names)
	}

	var langs []resource.LangID
	for lang, err := range Languages(m, typString, resource.Num(1)) {
		if err != nil {
			t.Fatalf("Languages yielded error: %v", err)
		}
		langs = append(langs, lang)
	}
	if len(langs) != 2 {
		t.Fatalf("langs = %v", langs)
	}
}

func TestSeq_YieldsErrorLast(t *testing.T) {
	m := richModule()
	m.Unload()

	var errs []error
	for _, err := range Names(m, typString) {
		errs = append(errs, err)
	}
	if len(errs) != 1 || !errors.Is(errs[0], errors.ErrDirectoryUnavailable) {
		t.Fatalf("errs = %v", errs)
	}
}

func TestActionAndOutcomeStrings(t *testing.T) {
	if Continue.String() != "continue" || Stop.String() != "stop" {
		t.Error("Action strings")
	}
	if Completed.String() != "completed" || Stopped.String() != "stopped" {
		t.Error("Outcome strings")
	}
}
