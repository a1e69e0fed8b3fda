package memmodule

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/enovales/winres/errors"
	"github.com/enovales/winres/resource"
	"github.com/enovales/winres/strtable"
)

func TestLoadFixtureFile(t *testing.T) {
	m, err := LoadFixtureFile("testdata/sample.yaml")
	if err != nil {
		t.Fatalf("LoadFixtureFile failed: %v", err)
	}

	types, _ := collect(m.EnumTypes)
	want := []string{"STRING", "MANIFEST", "RCDATA", "LEVELDATA"}
	var got []string
	for _, typ := range types {
		got = append(got, typ.Label())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("types (-want +got):\n%s", diff)
	}

	h, err := m.FindResource(resource.String.ID(), resource.Num(1), 0x0407)
	if err != nil {
		t.Fatalf("FindResource failed: %v", err)
	}
	data, _ := m.LoadResource(h)
	strs, err := strtable.Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if strs[0] != "Hallo" || strs[1] != "Welt" {
		t.Fatalf("strings = %q", strs[:2])
	}

	h, _ = m.FindResource(resource.RCData.ID(), resource.Name("blob"), 0x0409)
	data, _ = m.LoadResource(h)
	if diff := cmp.Diff([]byte{0xde, 0xad, 0xbe, 0xef}, data); diff != "" {
		t.Fatalf("hex content (-want +got):\n%s", diff)
	}

	if _, err := m.FindResource(resource.Name("LEVELDATA"), resource.Name("INTRO"), 0x040C); err != nil {
		t.Fatalf("custom type lookup failed: %v", err)
	}

	// preferences: [de-DE] become the fallback defaults
	h, _ = m.FindResourceFallback(resource.String.ID(), resource.Num(1), nil)
	data, _ = m.LoadResource(h)
	strs, _ = strtable.Decode(data)
	if strs[0] != "Hallo" {
		t.Fatalf("default fallback picked %q", strs[0])
	}
}

func TestLoadFixture_NameSpellingTypeTag(t *testing.T) {
	const src = `resources:
  - type: RCDATA
    name: ICON
    lang: en-US
    text: glyph
  - type: RT_RCDATA
    name: "#3"
    lang: en-US
    text: three
`
	m, err := LoadFixture(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadFixture failed: %v", err)
	}

	var names []resource.ID
	m.EnumNames(resource.RCData.ID(), func(id resource.ID) bool {
		names = append(names, id)
		return true
	})
	if diff := cmp.Diff([]resource.ID{resource.Name("ICON"), resource.Num(3)}, names, cmp.AllowUnexported(resource.ID{})); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}

	h, err := m.FindResource(resource.RCData.ID(), resource.Name("ICON"), 0x0409)
	if err != nil {
		t.Fatalf("FindResource(RCDATA, ICON) failed: %v", err)
	}
	data, _ := m.LoadResource(h)
	if string(data) != "glyph" {
		t.Fatalf("content = %q", data)
	}

	h, err = m.FindResource(resource.RCData.ID(), resource.Num(3), 0x0409)
	if err != nil {
		t.Fatalf("FindResource(RCDATA, #3) failed: %v", err)
	}
	data, _ = m.LoadResource(h)
	if string(data) != "three" {
		t.Fatalf("content = %q", data)
	}
}

func TestLoadFixture_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing name", "resources:\n  - type: RCDATA\n    text: x\n"},
		{"two contents", "resources:\n  - type: RCDATA\n    name: A\n    text: x\n    hex: '00'\n"},
		{"no content", "resources:\n  - type: RCDATA\n    name: A\n"},
		{"bad hex", "resources:\n  - type: RCDATA\n    name: A\n    hex: zz\n"},
		{"bad lang", "resources:\n  - type: RCDATA\n    name: A\n    lang: klingon\n    text: x\n"},
		{"unknown field", "resources:\n  - type: RCDATA\n    name: A\n    colour: red\n    text: x\n"},
		{"not yaml", "resources: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFixture(strings.NewReader(tt.yaml))
			if errors.KindOf(err) != errors.KindInvalidData {
				t.Fatalf("LoadFixture = %v, want invalid data", err)
			}
		})
	}
}

func TestLoadFixture_BadPreferences(t *testing.T) {
	_, err := LoadFixture(strings.NewReader("preferences: [xx-INVALID]\n"))
	if !errors.Is(err, errors.ErrInvalidLanguageTag) {
		t.Fatalf("LoadFixture = %v, want ErrInvalidLanguageTag", err)
	}
}

func TestLoadFixture_Empty(t *testing.T) {
	m, err := LoadFixture(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFixture failed: %v", err)
	}
	types, _ := collect(m.EnumTypes)
	if len(types) != 0 {
		t.Fatalf("types = %v", types)
	}
}

func TestParseLang(t *testing.T) {
	tests := []struct {
		in   string
		want resource.LangID
	}{
		{"", 0},
		{"neutral", 0},
		{"en-US", 0x0409},
		{"0x0407", 0x0407},
		{"1036", 0x040C},
	}
	for _, tt := range tests {
		got, err := ParseLang(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseLang(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}
