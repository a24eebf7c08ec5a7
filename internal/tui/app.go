// Package tui is the interactive terminal front end: a menu of algorithms
// and a play view driven by the step engine.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/engine"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/registry"
	"github.com/san-kum/algoviz/internal/trace"
)

type screen int

const (
	screenMenu screen = iota
	screenPlay
)

// seekJump is how far [ and ] move.
const seekJump = 10

type Options struct {
	Registry *registry.Registry
	Engine   []engine.Option
	// Input replaces the registry sample when the algorithm accepts it.
	Input *algo.Input
	// Algorithm skips the menu and opens the play view directly.
	Algorithm string
}

type menuItem struct {
	name   string
	family string
	desc   string
}

type model struct {
	screen screen
	cursor int
	items  []menuItem

	reg    *registry.Registry
	eng    *engine.Engine
	series *metrics.Series
	input  *algo.Input

	ticking bool
	status  string

	width  int
	height int
}

func New(opts Options) (*model, error) {
	reg := opts.Registry
	if reg == nil {
		reg = registry.NewRegistry()
	}
	m := &model{
		screen: screenMenu,
		reg:    reg,
		series: metrics.NewSeries(metrics.Standard()...),
		input:  opts.Input,
		width:  80,
		height: 24,
	}
	m.eng = engine.New(reg.New, opts.Engine...)
	m.eng.AddObserver(m.series)

	for _, family := range reg.Families() {
		for _, name := range reg.ListFamily(family) {
			e, _ := reg.Get(name)
			m.items = append(m.items, menuItem{name: name, family: family, desc: e.Description})
		}
	}

	if opts.Algorithm != "" {
		if err := m.open(opts.Algorithm); err != nil {
			return nil, err
		}
		for i, it := range m.items {
			if it.name == opts.Algorithm {
				m.cursor = i
			}
		}
	}
	return m, nil
}

func (m model) Init() tea.Cmd { return nil }

type tickMsg time.Time

func (m model) tick() tea.Cmd {
	return tea.Tick(m.eng.Playback().Interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// schedule starts the tick loop unless one is already in flight.
func (m *model) schedule() tea.Cmd {
	if m.ticking || m.eng.State() != engine.Running {
		return nil
	}
	m.ticking = true
	return m.tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		m.ticking = false
		if m.screen != screenPlay || m.eng.State() != engine.Running {
			return m, nil
		}
		if _, err := m.eng.Tick(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, m.schedule()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.screen {
	case screenMenu:
		return m.menuKey(msg)
	case screenPlay:
		return m.playKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter", " ":
		if err := m.open(m.items[m.cursor].name); err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, tea.ClearScreen
	}
	return m, nil
}

func (m model) playKey(msg tea.KeyMsg) (model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.eng.Reset()
		m.screen = screenMenu
		m.status = ""
		return m, tea.ClearScreen
	case " ", "p":
		if m.eng.State() == engine.Running {
			m.apply(m.eng.Pause())
			return m, nil
		}
		m.apply(m.eng.Play())
		return m, m.schedule()
	case "right", "l":
		m.apply(m.eng.Step())
	case "left", "h":
		m.apply(m.eng.Reverse())
	case "f":
		m.apply(m.eng.FastForward())
	case "[":
		m.apply(m.eng.Seek(m.eng.Current().Step - seekJump))
	case "]":
		m.apply(m.eng.Seek(m.eng.Current().Step + seekJump))
	case "r":
		m.eng.Reset()
		if err := m.eng.Reload(); err != nil {
			m.status = err.Error()
		} else {
			m.status = "restarted"
		}
	case "+", "=":
		m.apply(m.eng.Dispatch(engine.Action{Kind: engine.SpeedUp}))
	case "-", "_":
		m.apply(m.eng.Dispatch(engine.Action{Kind: engine.SpeedDown}))
	case "tab":
		m.switchTo(m.nextInFamily())
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.items) {
				m.switchTo(m.items[i].name)
			}
		}
	}
	return m, nil
}

func (m *model) apply(out engine.Outcome, err error) {
	switch {
	case err != nil:
		m.status = err.Error()
	case out == engine.Boundary:
		if m.eng.State() == engine.Finished {
			m.status = "at the end of the run"
		} else if m.eng.Current().Step == 0 {
			m.status = "at the start of the run"
		} else {
			m.status = "limit reached"
		}
	default:
		m.status = ""
	}
}

// open loads name with the configured input, falling back to the registry
// sample when that input does not fit the algorithm.
func (m *model) open(name string) error {
	sample, err := m.reg.Sample(name)
	if err != nil {
		return err
	}
	m.status = ""
	if m.input != nil {
		err := m.eng.Load(name, *m.input)
		if err == nil {
			m.screen = screenPlay
			return nil
		}
		if !errors.Is(err, algo.ErrInvalidInput) {
			return err
		}
		m.status = "input does not fit " + name + ", using sample"
	}
	if err := m.eng.Load(name, sample); err != nil {
		return err
	}
	m.screen = screenPlay
	return nil
}

// switchTo keeps the current input when the target accepts it.
func (m *model) switchTo(name string) {
	if name == "" || name == m.eng.Algorithm() {
		return
	}
	out, err := m.eng.Dispatch(engine.Action{Kind: engine.SelectAlgorithm, Algorithm: name})
	if err == nil {
		m.apply(out, nil)
		m.syncCursor()
		return
	}
	sample, serr := m.reg.Sample(name)
	if serr != nil {
		m.status = serr.Error()
		return
	}
	if err := m.eng.Load(name, sample); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "input does not fit " + name + ", using sample"
	m.syncCursor()
}

func (m *model) syncCursor() {
	for i, it := range m.items {
		if it.name == m.eng.Algorithm() {
			m.cursor = i
		}
	}
}

func (m model) nextInFamily() string {
	e, err := m.reg.Get(m.eng.Algorithm())
	if err != nil {
		return ""
	}
	names := m.reg.ListFamily(e.Family)
	for i, name := range names {
		if name == e.Name {
			return names[(i+1)%len(names)]
		}
	}
	return ""
}

func (m model) View() string {
	switch m.screen {
	case screenMenu:
		return m.viewMenu()
	case screenPlay:
		return m.viewPlay()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("a l g o v i z") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")

	family := ""
	for i, it := range m.items {
		if it.family != family {
			family = it.family
			b.WriteString("\n    " + magenta.Render(family) + "\n")
		}
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-16s", it.name)) + dim.Render(it.desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-16s", it.name)) + dimmer.Render(it.desc) + "\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n      " + red.Render(m.status) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter open   q quit") + "\n")

	return b.String()
}

func (m model) viewPlay() string {
	st := m.eng.Status()
	f := m.eng.Current()
	var b strings.Builder

	icon := "○"
	if st.State == engine.Running {
		icon = "●"
	}
	style := stateStyle(st.State.String())
	b.WriteString(fmt.Sprintf("\n   %s %s  %s  %s\n",
		style.Render(icon), cyan.Render(st.Algorithm), style.Render(st.State.String()),
		dim.Render(fmt.Sprintf("x%d  %s", st.Playback.Speed, st.Rewind))))

	b.WriteString("   " + m.progress(st) + "\n\n")

	body := renderFrame(f, max(m.height-18, 6))
	b.WriteString(indent(panel.Render(body), "   ") + "\n")

	line := white.Render(f.Op)
	if f.Note != "" {
		line += "  " + dim.Render(f.Note)
	}
	b.WriteString("   " + line + "\n")
	b.WriteString("   " + dim.Render(trace.FormatStats(f.Stats)))
	if len(f.Output) > 0 {
		out := make([]string, len(f.Output))
		for i, v := range f.Output {
			out[i] = trace.FormatValue(v)
		}
		b.WriteString("  " + green.Render("out="+strings.Join(out, ",")))
	}
	b.WriteString("\n")

	col := chartColumn(f.Kind)
	if chart := renderChart(m.series.Column(col), col, min(max(m.width-16, 20), 60)); chart != "" {
		b.WriteString("\n" + indent(chart, "   ") + "\n")
	}

	if m.status != "" {
		b.WriteString("\n   " + yellow.Render(m.status) + "\n")
	}
	if st.Err != nil {
		b.WriteString("\n   " + red.Render(st.Err.Error()) + "\n")
	}

	b.WriteString("\n" + dim.Render("   space play  ←→ step  [] seek  f ffwd  ±speed  r restart  tab next  esc menu  q quit") + "\n")
	return b.String()
}

func (m model) progress(st engine.Status) string {
	const barWidth = 36
	if st.Last <= 0 {
		return dim.Render(fmt.Sprintf("step %d  produced %d", st.Step, st.Produced))
	}
	filled := min(st.Step*barWidth/st.Last, barWidth)
	bar := cyan.Render(strings.Repeat("━", filled)) + dimmer.Render(strings.Repeat("─", barWidth-filled))
	return fmt.Sprintf("%s %s", bar, dim.Render(fmt.Sprintf("%d/%d", st.Step, st.Last)))
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
