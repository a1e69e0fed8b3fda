package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"

	"github.com/enovales/winres/config"
	"github.com/enovales/winres/resdir"
	"github.com/enovales/winres/resource"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	typeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB"))

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	langStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0E68C"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type idRecord struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

func newIDRecord(id resource.ID) idRecord {
	r := idRecord{ID: id.String()}
	if l := id.Label(); l != r.ID {
		r.Label = l
	}
	return r
}

type langRecord struct {
	Tag     string `json:"tag" yaml:"tag"`
	ID      string `json:"id" yaml:"id"`
	Display string `json:"display,omitempty" yaml:"display,omitempty"`
}

func newLangRecord(l resource.LangID) langRecord {
	r := langRecord{Tag: l.String(), ID: fmt.Sprintf("0x%04X", uint16(l))}
	if t, ok := l.Tag(); ok {
		r.Display = display.English.Tags().Name(t)
	}
	return r
}

type entryRecord struct {
	Type string `json:"type" yaml:"type"`
	Name string `json:"name" yaml:"name"`
	Lang string `json:"lang" yaml:"lang"`
	MIME string `json:"mime" yaml:"mime"`
	Size uint32 `json:"size" yaml:"size"`
}

func newEntryRecord(e resdir.Entry, data []byte) entryRecord {
	return entryRecord{
		Type: e.Type.Label(),
		Name: e.Name.String(),
		Lang: e.Lang.String(),
		MIME: mimetype.Detect(data).String(),
		Size: uint32(len(data)),
	}
}

// humanSize renders n the way listings show it: exact below a kilobyte.
func humanSize(n uint32) string {
	return humanize.Bytes(uint64(n))
}

// emit writes v in the configured structured format, or calls text for
// plain output.
func emit(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}
