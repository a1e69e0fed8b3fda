package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	"github.com/enovales/winres"
	"github.com/enovales/winres/errors"
	"github.com/enovales/winres/loader"
	"github.com/enovales/winres/resdir"
)

type modelState int

const (
	stateSelectEntry modelState = iota
	stateShowEntry
)

// chrome is the number of lines taken by the title and help bar.
const chrome = 4

type browseModel struct {
	err      error
	mod      winres.Module
	title    string
	entries  []resdir.Entry
	preview  viewport.Model
	selected int
	offset   int
	height   int
	width    int
	state    modelState
	loaded   bool
}

type entriesMsg struct {
	err     error
	entries []resdir.Entry
}

type previewMsg struct {
	err     error
	content string
}

func newBrowseModel(mod winres.Module, title string) *browseModel {
	return &browseModel{
		mod:     mod,
		title:   title,
		preview: viewport.New(80, 20),
		height:  24,
		width:   80,
		state:   stateSelectEntry,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return m.loadEntries
}

func (m *browseModel) loadEntries() tea.Msg {
	entries, err := resdir.CollectEntries(m.mod)
	return entriesMsg{entries: entries, err: err}
}

func (m *browseModel) loadPreview() tea.Msg {
	e := m.entries[m.selected]
	data, err := loader.ReadAllLanguage(m.mod, e.Type, e.Name, e.Lang)
	if err != nil {
		return previewMsg{err: err}
	}
	return previewMsg{content: renderPreview(data)}
}

// renderPreview shows textual content as is and everything else as a hex
// dump.
func renderPreview(data []byte) string {
	mt := mimetype.Detect(data)
	header := helpStyle.Render(fmt.Sprintf("%s, %s", mt.String(), humanSize(uint32(len(data))))) + "\n\n"
	for t := mt; t != nil; t = t.Parent() {
		if t.Is("text/plain") {
			return header + string(data)
		}
	}
	return header + hex.Dump(data)
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.preview.Width = msg.Width
		m.preview.Height = max(msg.Height-chrome, 1)
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectEntry && m.selected > 0 {
				m.selected--
				m.scroll()
				return m, nil
			}

		case "down", "j":
			if m.state == stateSelectEntry && m.selected < len(m.entries)-1 {
				m.selected++
				m.scroll()
				return m, nil
			}

		case "enter":
			if m.state == stateSelectEntry && len(m.entries) > 0 {
				return m, m.loadPreview
			}

		case "esc", "backspace":
			if m.state == stateShowEntry {
				m.state = stateSelectEntry
				m.err = nil
				return m, nil
			}
		}

	case entriesMsg:
		m.loaded = true
		m.entries = msg.entries
		m.err = msg.err
		return m, nil

	case previewMsg:
		m.err = msg.err
		m.preview.SetContent(msg.content)
		m.preview.GotoTop()
		m.state = stateShowEntry
		return m, nil
	}

	if m.state == stateShowEntry {
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}
	return m, nil
}

// scroll keeps the selected entry inside the visible window.
func (m *browseModel) scroll() {
	rows := max(m.height-chrome, 1)
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+rows {
		m.offset = m.selected - rows + 1
	}
}

func (m *browseModel) View() string {
	if !m.loaded {
		return "Reading resource directory..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("resdump"))
	b.WriteString(" ")
	b.WriteString(m.title)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectEntry:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n")
		}
		if len(m.entries) == 0 {
			b.WriteString("No resources.\n")
		}
		rows := max(m.height-chrome, 1)
		end := min(m.offset+rows, len(m.entries))
		for i := m.offset; i < end; i++ {
			line := formatEntry(m.entries[i])
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter view • q quit"))

	case stateShowEntry:
		e := m.entries[m.selected]
		b.WriteString(formatEntry(e))
		b.WriteString("\n")
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(m.preview.View())
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll • esc back • q quit"))
	}

	return b.String()
}

func formatEntry(e resdir.Entry) string {
	return typeStyle.Render(e.Type.Label()) + " " + nameStyle.Render(e.Name.String()) + " " + langStyle.Render(e.Lang.String())
}

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse resources interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.module()
			if err != nil {
				return err
			}
			if !isTerminal(cmd.OutOrStdout()) {
				return errors.InvalidInput(errors.PhaseConfig, "browse needs a terminal; use tree instead")
			}
			return runInteractive(m, a.source(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// source names the module being inspected.
func (a *app) source() string {
	if a.fixture != "" {
		return a.fixture
	}
	return a.modPath
}

func runInteractive(mod winres.Module, title string, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(newBrowseModel(mod, title),
		tea.WithAltScreen(), tea.WithInput(in), tea.WithOutput(out))
	_, err := p.Run()
	return err
}
