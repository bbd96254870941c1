package browse

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/catalog/catalog"
	"github.com/ardnew/catalog/log"
)

// reloadMsg is sent when the edited catalog resolved successfully.
type reloadMsg struct{ doc catalog.Document }

// reloadErrorMsg is sent when editing or resolving the catalog failed.
type reloadErrorMsg struct{ err error }

const filterPrompt = "/ "

const helpLine = "↑/↓ select  enter pin  esc clear  ctrl+e edit  ctrl+c quit"

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	keyStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	valueStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("4")).
				Bold(true)
)

type options struct {
	target    string
	source    string
	history   string
	logger    log.Logger
	parseOpts []catalog.Option
	program   []tea.ProgramOption
}

// Option configures [Run].
type Option func(*options)

// WithTarget opens the named section, pinned. A target that names no
// section becomes the initial filter.
func WithTarget(target string) Option {
	return func(o *options) { o.target = target }
}

// WithSource enables editing and reloading the catalog file at path.
func WithSource(path string) Option {
	return func(o *options) { o.source = path }
}

// WithHistory persists pinned sections to the file at path.
func WithHistory(path string) Option {
	return func(o *options) { o.history = path }
}

// WithLogger sets the logger for trace-level diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithParseOptions sets the options used when the catalog is reloaded.
func WithParseOptions(opts ...catalog.Option) Option {
	return func(o *options) { o.parseOpts = opts }
}

// WithProgramOptions passes additional options to the Bubble Tea program,
// such as [tea.WithInputTTY] when standard input held the catalog.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(o *options) { o.program = append(o.program, opts...) }
}

// Run opens the terminal UI over doc and blocks until the user quits.
func Run(ctx context.Context, doc catalog.Document, opts ...Option) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var o options

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	o.logger.TraceContext(
		ctx,
		"browse start",
		slog.Int("sections", len(doc)),
		slog.String("target", o.target),
		slog.String("history", o.history),
		slog.Bool("editable", o.source != ""),
	)

	if len(doc) == 0 {
		return ErrEmptyCatalog
	}

	history := NewHistory(o.history)
	if err := history.Load(); err != nil {
		o.logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	m := newModel(ctx, doc, history, o)

	p := tea.NewProgram(m, append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	}, o.program...)...)

	_, err = p.Run()

	return err
}

const defaultWidth = 80

// model is the Bubble Tea model for the browser.
type model struct {
	ctxFunc   func() context.Context
	logger    log.Logger
	doc       catalog.Document
	names     []string // sorted section names
	input     textinput.Model
	matches   fuzzy.Matches
	selected  int    // index into matches
	pinned    string // section held in the detail pane while filtering
	history   *History
	source    string
	parseOpts []catalog.Option
	status    string
	statusErr bool
	width     int
	height    int
	quitting  bool
}

func newModel(
	ctx context.Context,
	doc catalog.Document,
	history *History,
	o options,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(filterPrompt)
	ti.Placeholder = "filter sections"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = defaultWidth

	m := model{
		ctxFunc:   func() context.Context { return ctx },
		logger:    o.logger,
		doc:       doc,
		names:     doc.Names(),
		input:     ti,
		history:   history,
		source:    o.source,
		parseOpts: o.parseOpts,
		width:     defaultWidth,
	}

	_, exact := doc[o.target]

	switch {
	case exact:
		m.pinned = o.target
	case o.target != "":
		m.input.SetValue(o.target)
	}

	m.refreshMatches()

	switch {
	case m.pinned != "":
		m.selectName(m.pinned)

	case o.target == "":
		if name, ok := history.Recent(func(s string) bool {
			_, ok := doc[s]

			return ok
		}); ok {
			m.selectName(name)
		}
	}

	return m
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
		m.height = msg.Height
		m.input.Width = msg.Width - len(filterPrompt) - 2

		return m, nil

	case reloadMsg:
		m.replace(msg.doc)
		m.setStatus("reloaded "+m.source, false)

		m.logger.TraceContext(
			m.ctxFunc(),
			"browse reload",
			slog.Int("sections", len(m.doc)),
		)

		return m, nil

	case reloadErrorMsg:
		m.setStatus(msg.err.Error(), true)

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

	if len(m.matches) > 0 {
		b.WriteString(renderCandidateBar(m.matches, m.selected, m.width))
	} else {
		b.WriteString(hintStyle.Render("no sections match"))
	}

	b.WriteString("\n\n")

	if name := m.focus(); name != "" {
		// input, bar, blank, status, help
		const chrome = 5

		height := 0
		if m.height > chrome {
			height = m.height - chrome
		}

		b.WriteString(renderDetail(name, m.doc[name], name == m.pinned, m.width, height))
	}

	switch {
	case m.status == "":
	case m.statusErr:
		b.WriteString(errorStyle.Render(truncate(m.status, m.width)))
		b.WriteString("\n")
	default:
		b.WriteString(statusStyle.Render(truncate(m.status, m.width)))
		b.WriteString("\n")
	}

	b.WriteString(hintStyle.Render(truncate(helpLine, m.width)))

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"browse keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		m.quitting = true

		return m, tea.Quit

	case tea.KeyEnter:
		return m.pin()

	case tea.KeyTab, tea.KeyDown:
		m.move(1)

		return m, nil

	case tea.KeyShiftTab, tea.KeyUp:
		m.move(-1)

		return m, nil

	case tea.KeyEsc:
		switch {
		case m.input.Value() != "":
			m.input.SetValue("")
			m.refreshMatches()

			if m.pinned != "" {
				m.selectName(m.pinned)
			}

		case m.pinned != "":
			m.pinned = ""
		}

		m.status = ""

		return m, nil

	case tea.KeyCtrlE:
		return m.edit()
	}

	// Anything else edits the filter.
	var cmd tea.Cmd

	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)

	if m.input.Value() != before {
		m.refreshMatches()
	}

	return m, cmd
}

// focus returns the section shown in the detail pane.
func (m model) focus() string {
	if m.pinned != "" {
		return m.pinned
	}

	if m.selected >= 0 && m.selected < len(m.matches) {
		return m.matches[m.selected].Str
	}

	return ""
}

// refreshMatches recomputes the candidates for the current filter and
// selects the best one.
func (m *model) refreshMatches() {
	m.matches = computeMatches(m.input.Value(), m.names)
	m.selected = 0
}

// selectName moves the selection to name if it is a candidate.
func (m *model) selectName(name string) {
	for i, match := range m.matches {
		if match.Str == name {
			m.selected = i

			return
		}
	}
}

// move advances the selection by delta, wrapping at either end. Moving
// releases a pinned section.
func (m *model) move(delta int) {
	n := len(m.matches)
	if n == 0 {
		return
	}

	m.pinned = ""
	m.selected = ((m.selected+delta)%n + n) % n
}

func (m model) pin() (model, tea.Cmd) {
	if len(m.matches) == 0 {
		return m, nil
	}

	m.pinned = m.matches[m.selected].Str

	if err := m.history.Write(m.pinned); err != nil {
		m.setStatus("could not write history: "+err.Error(), true)
	} else {
		m.status = ""
	}

	m.logger.TraceContext(
		m.ctxFunc(),
		"browse pin",
		slog.String("section", m.pinned),
	)

	return m, nil
}

func (m model) edit() (model, tea.Cmd) {
	if m.source == "" {
		m.setStatus("editing needs a catalog file (not stdin)", true)

		return m, nil
	}

	cmd := &editSourceCommand{
		path:      m.source,
		ctxFunc:   m.ctxFunc,
		parseOpts: m.parseOpts,
		logger:    m.logger,
	}

	return m, tea.Exec(cmd, func(err error) tea.Msg {
		if err != nil {
			return reloadErrorMsg{err: err}
		}

		return reloadMsg{doc: cmd.doc}
	})
}

// replace swaps in a reloaded document, keeping the pinned section and the
// selection where they still exist.
func (m *model) replace(doc catalog.Document) {
	current := m.focus()

	m.doc = doc
	m.names = doc.Names()

	if _, ok := doc[m.pinned]; !ok {
		m.pinned = ""
	}

	m.refreshMatches()
	m.selectName(current)
}

func (m *model) setStatus(status string, isErr bool) {
	m.status = status
	m.statusErr = isErr
}
