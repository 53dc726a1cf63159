// Package repl implements the interactive dice roller.
package repl

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/roll/lang"
	"github.com/ardnew/roll/log"
)

const prompt = "🎲 "

func helpMessage() string {
	return `
Commands:

  :help        Print this help
  :vars        List variables
  :ops EXPR    Show the operations EXPR compiles to
  :seed N      Reseed the random source
  :clear       Clear screen
  :quit        Exit REPL

Usage:
  Type a dice expression to roll it, e.g. 4d6h3 or fish:2d10
  Variables are referenced as $name
  Press Tab / Shift-Tab to cycle through completions
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

// formatCommand formats the echo line with prompt and input styled.
func formatCommand(input string) string {
	return promptStyle.Render(prompt) + inputStyle.Render(input)
}

// Config configures a REPL session.
type Config struct {
	Vars    map[string]lang.Value // bindings shown by :vars and completed after '$'
	Logger  log.Logger
	History string        // history file; empty keeps history in memory
	Options []lang.Option // evaluation options applied to every roll
	Seed    int64         // each roll uses its own stream of Seed
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	logger       log.Logger
	history      *History
	vars         map[string]lang.Value
	varNames     []string
	options      []lang.Option
	seed         int64
	matches      fuzzy.Matches // current fuzzy match results
	historyIdx   int
	rolls        int // number of expressions evaluated
	stream       int // rolls since the last reseed
	wordStart    int // byte offset of current word start
	wordEnd      int // byte offset of current word end
	suggIdx      int // selected candidate index
	preTabCursor int // cursor position before tab-cycling began
	width        int // terminal width for ellipsization
	preTabText   string
	tabActive    bool // whether user is tab-cycling
	quitting     bool
}

// Run starts the REPL and blocks until the user exits.
func Run(ctx context.Context, cfg Config) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	history := NewHistory(cfg.History)
	if err := history.Load(); err != nil {
		cfg.Logger.WarnContext(ctx, "could not load history",
			slog.String("file", cfg.History),
			slog.Any("error", err),
		)
	}

	cfg.Logger.TraceContext(ctx, "repl start",
		slog.String("history", cfg.History),
		slog.Int("entries", history.Len()),
		slog.Int("vars", len(cfg.Vars)),
	)

	_, err = tea.NewProgram(newModel(ctx, cfg, history), tea.WithContext(ctx)).Run()

	return err
}

const defaultWidth = 80

func newModel(ctx context.Context, cfg Config, history *History) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		logger:     cfg.Logger,
		history:    history,
		vars:       cfg.Vars,
		varNames:   slices.Sorted(maps.Keys(cfg.Vars)),
		options:    slices.Clone(cfg.Options),
		seed:       cfg.Seed,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(prompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(m.input.Value()) == "":
		b.WriteString(hintStyle.Render("Type a dice expression or :help"))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.refreshMatches()

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive && len(m.matches) > 0 {
			// Lock in the current candidate without executing.
			m.tabActive = false
			m.refreshMatches()

			return m, nil
		}

		return m.executeInput()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyMove(-1), nil

	case tea.KeyDown:
		return m.historyMove(1), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			m.refreshMatches()
		}

		return m, nil
	}

	// Any other key edits the input.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches()

	return m, cmd
}

// cycle moves the tab selection by step, wrapping around. A single candidate
// is completed immediately.
func (m model) cycle(step int) model {
	n := len(m.matches)

	switch {
	case n == 0:
		return m

	case n == 1:
		m.replaceCurrentWord(m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m

	case m.tabActive:
		m.suggIdx = (m.suggIdx + step + n) % n

	default:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = 0

		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	m.replaceCurrentWord(m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word in the input with
// replacement and moves the cursor after it.
func (m *model) replaceCurrentWord(replacement string) {
	input := m.input.Value()
	cursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(cursor)

	m.wordEnd = cursor
}

// refreshMatches recomputes completions for the current input.
func (m *model) refreshMatches() {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}
}

// historyMove steps through history by delta. Moving past the newest entry
// clears the input.
func (m model) historyMove(delta int) model {
	idx := m.historyIdx + delta

	switch {
	case idx < 0:
		return m

	case idx >= m.history.Len():
		m.historyIdx = m.history.Len()
		m.input.SetValue("")

	default:
		line, err := m.history.Entry(idx)
		if err != nil {
			return m
		}

		m.historyIdx = idx
		m.input.SetValue(line)
		m.input.SetCursor(len(line))
	}

	m.tabActive = false
	m.refreshMatches()

	return m
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Add(input); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not save history",
			slog.Any("error", err),
		)
	}

	m.historyIdx = m.history.Len()

	echo := tea.Println(formatCommand(input))

	if name, ok := strings.CutPrefix(input, commandPrefix); ok {
		return m.executeCommand(echo, name)
	}

	out, err := m.roll(input)
	if err != nil {
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render(out)))
	}

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(out)))
}

// roll evaluates src and returns its formatted report. The error is the
// evaluation error, if any; the report describes it either way.
func (m *model) roll(src string) (string, error) {
	ctx := m.ctxFunc()

	m.rolls++
	m.stream++

	opts := append(slices.Clip(m.options), lang.WithRand(lang.NewStream(m.seed, m.stream)))

	v, trace, err := lang.Evaluate(ctx, src, opts...)

	m.logger.TraceContext(ctx, "repl roll",
		slog.String("source", src),
		slog.Bool("ok", err == nil),
	)

	var sb strings.Builder

	report := lang.Report{
		Source: src,
		Index:  m.rolls,
		Result: v,
		Trace:  trace,
		Err:    err,
	}
	if ferr := report.Format(ctx, &sb); ferr != nil {
		return ferr.Error(), ferr
	}

	return strings.TrimSuffix(sb.String(), "\n"), err
}

func (m model) executeCommand(echo tea.Cmd, line string) (model, tea.Cmd) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	m.logger.TraceContext(m.ctxFunc(), "repl command",
		slog.String("command", name),
		slog.String("arg", arg),
	)

	out, err := m.command(name, arg)

	switch {
	case err != nil:
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render(err.Error())))

	case name == "q" || name == "quit" || name == "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case name == "c" || name == "clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Sequence(echo, tea.Println(out))
	}
}

// command runs the REPL command name and returns its output.
func (m *model) command(name, arg string) (string, error) {
	switch name {
	case "q", "quit", "exit", "c", "clear":
		return "", nil

	case "h", "help":
		return helpMessage(), nil

	case "v", "vars":
		return m.listVars(), nil

	case "o", "ops":
		prog, err := lang.Compile(arg)
		if err != nil {
			return "", err
		}

		return prog.String(), nil

	case "s", "seed":
		seed, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return "", fmt.Errorf("seed %q: %w", arg, err)
		}

		m.seed, m.stream = seed, 0

		return hintStyle.Render("seed " + strconv.FormatInt(seed, 10)), nil

	default:
		return "", fmt.Errorf("%w: %s (try :help)", ErrUnknownCmd, name)
	}
}

func (m model) listVars() string {
	if len(m.varNames) == 0 {
		return hintStyle.Render("  no variables (bind them with --var name=EXPR)")
	}

	var b strings.Builder

	for _, name := range m.varNames {
		fmt.Fprintf(&b, "  $%s %s\n", name, hintStyle.Render(m.vars[name].String()))
	}

	return strings.TrimSuffix(b.String(), "\n")
}
