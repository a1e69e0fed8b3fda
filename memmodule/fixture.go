package memmodule

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/enovales/winres/errors"
	"github.com/enovales/winres/langpref"
	"github.com/enovales/winres/resource"
	"github.com/enovales/winres/strtable"
)

// Fixture is the YAML description of a module.
//
//	preferences: [fr-FR, en-US]
//	resources:
//	  - type: STRING        # well-known tag, "#n" or a name
//	    name: "#1"          # "#n" or a name, never a type tag
//	    lang: en-US         # locale name, 0x0409, 1033 or "neutral"
//	    strings: [Hello, World]
//	  - type: RCDATA
//	    name: BLOB
//	    lang: neutral
//	    hex: "deadbeef"
type Fixture struct {
	Preferences []string       `yaml:"preferences"`
	Resources   []FixtureEntry `yaml:"resources"`
}

// FixtureEntry is one resource. Exactly one of Text, Hex and Strings
// supplies the content.
type FixtureEntry struct {
	Type    string   `yaml:"type"`
	Name    string   `yaml:"name"`
	Lang    string   `yaml:"lang"`
	Text    *string  `yaml:"text,omitempty"`
	Hex     *string  `yaml:"hex,omitempty"`
	Strings []string `yaml:"strings,omitempty"`
}

// LoadFixture decodes a YAML fixture into a module.
func LoadFixture(r io.Reader) (*Module, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidData, err, "decode fixture")
	}
	return f.Build()
}

// LoadFixtureFile reads a YAML fixture from disk.
func LoadFixtureFile(path string) (*Module, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidInput, err, "open fixture")
	}
	defer file.Close()
	return LoadFixture(file)
}

// Build creates the module described by f.
func (f *Fixture) Build() (*Module, error) {
	m := New()

	if f.Preferences != nil {
		th := langpref.NewThread()
		if err := th.Set(f.Preferences); err != nil {
			return nil, err
		}
		m.SetDefaults(th)
	}

	for i, e := range f.Resources {
		if e.Type == "" || e.Name == "" {
			return nil, fixtureErr(i, "type and name are required")
		}
		lang, err := ParseLang(e.Lang)
		if err != nil {
			return nil, fixtureErr(i, err.Error())
		}
		data, err := e.content()
		if err != nil {
			return nil, fixtureErr(i, err.Error())
		}
		m.Add(resource.ParseID(e.Type), resource.ParseName(e.Name), lang, data)
	}
	return m, nil
}

func (e *FixtureEntry) content() ([]byte, error) {
	set := 0
	for _, ok := range []bool{e.Text != nil, e.Hex != nil, e.Strings != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("exactly one of text, hex, strings is required")
	}

	switch {
	case e.Text != nil:
		return []byte(*e.Text), nil
	case e.Hex != nil:
		return hex.DecodeString(strings.ReplaceAll(*e.Hex, " ", ""))
	default:
		return strtable.Encode(e.Strings)
	}
}

// ParseLang accepts a locale name, "neutral", "0x0409" or "1033".
// An empty string is the neutral language.
func ParseLang(s string) (resource.LangID, error) {
	switch strings.ToLower(s) {
	case "", "neutral":
		return resource.LangNeutral, nil
	}
	if n, err := strconv.ParseUint(s, 0, 16); err == nil {
		return resource.LangID(n), nil
	}
	if l, ok := resource.LangIDFromName(s); ok {
		return l, nil
	}
	return 0, fmt.Errorf("unknown language %q", s)
}

func fixtureErr(i int, detail string) error {
	return errors.InvalidData(errors.PhaseParse, fmt.Sprintf("resource %d: %s", i, detail))
}
