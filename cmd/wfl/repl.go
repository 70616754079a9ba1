package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mgomes/wfl/wfl"
	"github.com/spf13/cobra"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	textInput   textinput.Model
	session     *session
	watcher     *scenarioWatcher
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	width       int
	height      int
	showHelp    bool
	showVars    bool
	quitting    bool
	initialized bool
}

type keyMap struct {
	Prev     key.Binding
	Next     key.Binding
	Submit   key.Binding
	Quit     key.Binding
	Clear    key.Binding
	Complete key.Binding
	Locals   key.Binding
	Help     key.Binding
}

var keys = keyMap{
	Prev:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous query")),
	Next:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next query")),
	Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "evaluate")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
	Clear:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
	Complete: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
	Locals:   key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "locals")),
	Help:     key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "help")),
}

func newREPLCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Browse callables interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Reload the scenario when the file changes")
	return cmd
}

func newREPLModel(s *session) replModel {
	ti := textinput.New()
	ti.Placeholder = "me.loc, name = query, query ?? backup"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = "wfl> "

	return replModel{
		textInput:  ti,
		session:    s,
		historyIdx: -1,
	}
}

func (m replModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, tea.EnterAltScreen}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.wait())
	}
	return tea.Batch(cmds...)
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case scenarioChangedMsg:
		m = m.reload(":reload (file changed)")
		return m, m.watcher.wait()

	case watchErrorMsg:
		m.history = append(m.history, historyEntry{output: "watch: " + msg.err.Error(), isErr: true})
		return m, m.watcher.wait()

	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// handleKey reports handled=false for keys that belong to the text input.
func (m replModel) handleKey(msg tea.KeyMsg) (replModel, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit, true
	case key.Matches(msg, keys.Clear):
		m.history = nil
	case key.Matches(msg, keys.Locals):
		m.showVars = !m.showVars
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, keys.Prev):
		m = m.recall(-1)
	case key.Matches(msg, keys.Next):
		m = m.recall(1)
	case key.Matches(msg, keys.Complete):
		m = m.handleAutocomplete()
	case key.Matches(msg, keys.Submit):
		return m.submit()
	default:
		return m, nil, false
	}
	return m, nil, true
}

// recall moves through earlier queries. Moving past the newest one clears
// the input.
func (m replModel) recall(delta int) replModel {
	n := len(m.cmdHistory)
	if n == 0 || (m.historyIdx == -1 && delta > 0) {
		return m
	}
	if m.historyIdx == -1 {
		m.historyIdx = n
	}
	m.historyIdx = max(m.historyIdx+delta, 0)
	if m.historyIdx >= n {
		m.historyIdx = -1
		m.textInput.SetValue("")
	} else {
		m.textInput.SetValue(m.cmdHistory[m.historyIdx])
	}
	m.textInput.CursorEnd()
	return m
}

func (m replModel) submit() (replModel, tea.Cmd, bool) {
	input := strings.TrimSpace(m.textInput.Value())
	if input == "" {
		return m, nil, true
	}
	m.textInput.SetValue("")
	m.historyIdx = -1

	if strings.HasPrefix(input, ":") {
		next, cmd := m.handleCommand(input)
		return next, cmd, true
	}

	output, isErr := m.evaluate(input)
	m.history = append(m.history, historyEntry{input: input, output: output, isErr: isErr})
	m.cmdHistory = append(m.cmdHistory, input)
	return m, nil, true
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = nil
	case ":vars", ":v":
		m.showVars = !m.showVars
	case ":reset", ":r":
		m.session.resetLocals()
		m.history = append(m.history, historyEntry{input: input, output: "Locals reset"})
	case ":reload":
		m = m.reload(input)
	case ":inputs", ":i":
		m = m.inputs(input, strings.Join(parts[1:], " "))
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{
			input:  input,
			output: fmt.Sprintf("Unknown command: %s", cmd),
			isErr:  true,
		})
	}
	return m, nil
}

func (m replModel) reload(input string) replModel {
	if err := m.session.reload(); err != nil {
		m.history = append(m.history, historyEntry{input: input, output: err.Error(), isErr: true})
		return m
	}
	m.history = append(m.history, historyEntry{input: input, output: "Loaded " + m.session.world.Name})
	return m
}

func (m replModel) inputs(input, path string) replModel {
	target := wfl.NewCallable(m.session.scope)
	if path != "" {
		val, err := m.session.run(context.Background(), path)
		if err != nil {
			m.history = append(m.history, historyEntry{input: input, output: err.Error(), isErr: true})
			return m
		}
		target = val
	}
	var b strings.Builder
	describe(&b, target)
	m.history = append(m.history, historyEntry{input: input, output: strings.TrimRight(b.String(), "\n")})
	return m
}

// handleAutocomplete completes the last dotted path in the input from the
// inputs of the callable its prefix resolves to.
func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	if input == "" {
		return m
	}
	words := strings.Fields(input)
	if len(words) == 0 {
		return m
	}
	lastWord := words[len(words)-1]

	parent, partial := "", lastWord
	if i := strings.LastIndex(lastWord, "."); i >= 0 {
		parent, partial = lastWord[:i], lastWord[i+1:]
	}

	var names []string
	if parent == "" {
		for _, in := range m.session.scope.Inputs() {
			names = append(names, in.Name)
		}
	} else {
		val, err := wfl.ResolvePath(m.session.scope, parent)
		if err != nil {
			return m
		}
		names = attributeNames(val)
	}

	var completions []string
	for _, name := range names {
		if strings.HasPrefix(name, partial) {
			completions = append(completions, name)
		}
	}

	if len(completions) == 1 {
		completed := completions[0]
		if parent != "" {
			completed = parent + "." + completed
		}
		prefix := strings.TrimSuffix(input, lastWord)
		m.textInput.SetValue(prefix + completed)
		m.textInput.CursorEnd()
	} else if len(completions) > 1 {
		m.history = append(m.history, historyEntry{
			output: "Completions: " + strings.Join(completions, ", "),
		})
	}

	return m
}

func attributeNames(v wfl.Value) []string {
	switch v.Kind() {
	case wfl.KindCallable:
		var names []string
		for _, in := range v.Callable().Inputs() {
			names = append(names, in.Name)
		}
		return names
	case wfl.KindHash:
		names := make([]string, 0, len(v.Hash()))
		for name := range v.Hash() {
			names = append(names, name)
		}
		slices.Sort(names)
		return names
	}
	return nil
}

func (m replModel) evaluate(input string) (string, bool) {
	result, err := m.session.run(context.Background(), input)
	if err != nil {
		return fmt.Sprintf("%s: %v", wfl.StatusOf(err), err), true
	}
	_ = m.session.locals.Set("_", result)
	if result.IsNil() {
		return "nil", false
	}
	return formatValue(result), false
}

func formatValue(v wfl.Value) string {
	if c := v.Callable(); c != nil {
		if text, err := wfl.Serialize(c); err == nil {
			return text
		}
		return fmt.Sprintf("<%s>", c.Type())
	}
	return v.String()
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}
	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var panels []string
	if m.showVars {
		panels = append(panels, renderVarsPanel(m.session.locals))
	}
	if m.showHelp {
		panels = append(panels, renderHelpPanel())
	}
	used := 8
	for _, p := range panels {
		used += lipgloss.Height(p)
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("wfl") + " " + mutedStyle.Render(m.session.world.Name) + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", max(0, min(m.width-2, 60)))) + "\n\n")
	b.WriteString(renderHistory(m.history, m.height-used))
	for _, p := range panels {
		b.WriteString(p + "\n")
	}
	b.WriteString(m.textInput.View() + "\n\n")
	b.WriteString(renderFooter(m.watcher != nil))
	return b.String()
}

// renderHistory shows the newest entries that fit in limit lines.
func renderHistory(entries []historyEntry, limit int) string {
	var blocks []string
	used := 0
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		var block strings.Builder
		if e.input != "" {
			block.WriteString(mutedStyle.Render("  › ") + e.input + "\n")
		}
		if e.isErr {
			block.WriteString("  " + errorStyle.Render("✗ "+e.output) + "\n")
		} else {
			block.WriteString("  " + resultStyle.Render("→ "+e.output) + "\n")
		}
		block.WriteString("\n")
		used += strings.Count(block.String(), "\n")
		if used > limit && len(blocks) > 0 {
			break
		}
		blocks = append(blocks, block.String())
	}
	slices.Reverse(blocks)
	return strings.Join(blocks, "")
}

func renderFooter(watching bool) string {
	var parts []string
	for _, b := range []key.Binding{keys.Help, keys.Locals, keys.Clear, keys.Quit} {
		h := b.Help()
		parts = append(parts, helpKeyStyle.Render(h.Key)+helpDescStyle.Render(" "+h.Desc))
	}
	footer := strings.Join(parts, "  ")
	if watching {
		footer += mutedStyle.Render("  watching")
	}
	return footer
}

func renderVarsPanel(locals *wfl.Vars) string {
	inputs := locals.Inputs()
	if len(inputs) == 0 {
		return borderStyle.Render(mutedStyle.Render("No locals defined"))
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Locals"))
	varNameStyle := lipgloss.NewStyle().Foreground(highlightColor)
	for _, in := range inputs {
		val, _ := locals.Get(in.Name)
		lines = append(lines, fmt.Sprintf("  %s = %s", varNameStyle.Render(in.Name), formatValue(val)))
	}
	return borderStyle.Render(strings.Join(lines, "\n"))
}

func renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "Navigate query history"},
		{"Tab", "Complete attribute name"},
		{"Enter", "Evaluate query"},
		{"a = q", "Bind a local through set_var"},
		{"q ?? b", "Guard q with safe_call; b sees status, object, current_loc"},
		{":inputs", "List a callable's attributes"},
		{":help", "Toggle this help"},
		{":vars", "Toggle locals panel"},
		{":clear", "Clear history"},
		{":reset", "Drop all locals"},
		{":reload", "Reload the scenario file"},
		{":quit", "Exit REPL"},
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Help"))
	for _, h := range help {
		line := fmt.Sprintf("  %s  %s",
			helpKeyStyle.Render(fmt.Sprintf("%-8s", h.key)),
			helpDescStyle.Render(h.desc))
		lines = append(lines, line)
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}

func runREPL(opts *cliOptions) error {
	s, err := newSession(opts.scenario, opts.me, opts.logger)
	if err != nil {
		return err
	}
	m := newREPLModel(s)
	if opts.watch {
		w, err := newScenarioWatcher(opts.scenario)
		if err != nil {
			return err
		}
		defer w.Close()
		m.watcher = w
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
