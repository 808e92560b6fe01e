// Package repl implements the interactive strut session: enter "name :
// expr" to define an expression, or a bare expression to evaluate it
// against everything defined so far. Each input compiles a fresh module
// tree, since compiled modules are single-use.
package repl

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/strut-lang/strut/log"
	"github.com/strut-lang/strut/manifest"
)

const prompt = "➜ "

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

func helpMessage() string {
	return `
Commands:
  :help    Print this cruft
  :list    List defined expressions
  :quit    Exit

Usage:
  name : expr   define an expression
  expr          evaluate against current definitions
  Tab / Shift-Tab cycle completion candidates
  Up/Down navigate history, Ctrl+C or Ctrl+D to exit
`
}

// Run starts the interactive session, optionally preloading definitions
// from a manifest file.
func Run(ctx context.Context, manifestPath string) error {
	var doc *manifest.Document

	if manifestPath != "" {
		var err error

		doc, err = manifest.LoadFile(manifestPath)
		if err != nil {
			return err
		}
	}

	m := newModel(newSession(doc, log.Default()))

	_, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()

	return err
}

// model is the Bubble Tea model for the REPL.
type model struct {
	input textinput.Model
	sess  *session
	hist  *history

	candidates []string
	matches    fuzzy.Matches
	suggIdx    int
	tabActive  bool
	preTab     string // input text before tab-cycling began
}

func newModel(sess *session) *model {
	input := textinput.New()
	input.Prompt = promptStyle.Render(prompt)
	input.Focus()

	return &model{
		input:      input,
		sess:       sess,
		hist:       newHistory(),
		candidates: sess.names(),
	}
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd

		m.input, cmd = m.input.Update(msg)

		return m, cmd
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		return m, tea.Quit

	case tea.KeyEnter:
		return m.submit()

	case tea.KeyTab:
		return m.cycle(1)

	case tea.KeyShiftTab:
		return m.cycle(-1)

	case tea.KeyUp:
		if line, ok := m.hist.prev(); ok {
			m.setInput(line)
		}

		return m, nil

	case tea.KeyDown:
		if line, ok := m.hist.next(); ok {
			m.setInput(line)
		}

		return m, nil
	}

	m.resetCycle()

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.matches = complete(m.input.Value(), m.input.Position(), m.candidates)
	m.suggIdx = 0

	return m, cmd
}

func (m *model) View() string {
	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteByte('\n')

	if len(m.matches) > 0 {
		b.WriteString(m.renderMatches())
		b.WriteByte('\n')
	}

	b.WriteString(hintStyle.Render(":help for help"))
	b.WriteByte('\n')

	return b.String()
}

// submit handles Enter: run a command, record a definition, or evaluate.
func (m *model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())

	m.setInput("")
	m.resetCycle()
	m.matches = nil
	m.hist.add(line)

	if line == "" {
		return m, nil
	}

	echo := promptStyle.Render(prompt) + line

	switch line {
	case ":quit", ":q":
		return m, tea.Sequence(tea.Println(echo), tea.Quit)
	case ":help", ":h":
		return m, tea.Println(echo + "\n" + helpMessage())
	case ":list", ":l":
		return m, tea.Println(echo + "\n" + m.renderList())
	}

	if name, expr, ok := parseDefinition(line); ok {
		if err := m.sess.define(name, expr); err != nil {
			return m, tea.Println(echo + "\n" + errorStyle.Render(err.Error()))
		}

		m.candidates = m.sess.names()

		return m, tea.Println(echo)
	}

	value, err := m.sess.evaluate(line)
	if err != nil {
		return m, tea.Println(echo + "\n" + errorStyle.Render(err.Error()))
	}

	out := resultStyle.Render(strconv.FormatFloat(value, 'g', -1, 64))

	return m, tea.Println(echo + "\n" + out)
}

// cycle steps through completion candidates, replacing the word at the
// cursor. The first Tab press records the pre-completion input so further
// edits restart from it.
func (m *model) cycle(dir int) (tea.Model, tea.Cmd) {
	if !m.tabActive {
		m.preTab = m.input.Value()
		m.matches = complete(m.preTab, m.input.Position(), m.candidates)
		m.suggIdx = 0

		if len(m.matches) == 0 {
			return m, nil
		}

		m.tabActive = true
	} else {
		m.suggIdx = (m.suggIdx + dir + len(m.matches)) % len(m.matches)
	}

	_, start, end := wordBounds(m.preTab, len(m.preTab))

	chosen := m.matches[m.suggIdx].Str
	m.input.SetValue(m.preTab[:start] + chosen + m.preTab[end:])
	m.input.SetCursor(start + len(chosen))

	return m, nil
}

func (m *model) resetCycle() {
	m.tabActive = false
	m.preTab = ""
}

func (m *model) setInput(s string) {
	m.input.SetValue(s)
	m.input.SetCursor(len(s))
}

func (m *model) renderMatches() string {
	const limit = 8

	var b strings.Builder

	for i, match := range m.matches {
		if i == limit {
			b.WriteString(hintStyle.Render(
				fmt.Sprintf(" +%d", len(m.matches)-limit)))

			break
		}

		if i > 0 {
			b.WriteByte(' ')
		}

		if m.tabActive && i == m.suggIdx {
			b.WriteString(selectStyle.Render(match.Str))
		} else {
			b.WriteString(hintStyle.Render(match.Str))
		}
	}

	return b.String()
}

func (m *model) renderList() string {
	names := m.sess.names()
	if len(names) == 0 {
		return hintStyle.Render("no definitions")
	}

	return strings.Join(names, "\n")
}
