package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"phpdrift/internal/driver"
)

type progressModel struct {
	title    string
	events   <-chan driver.ScanEvent
	spinner  spinner.Model
	prog     progress.Model
	items    []fileItem
	index    map[string]int
	findings int
	width    int
	done     bool
}

type fileItem struct {
	path     string
	status   string
	findings int
	finished bool
	started  bool
}

type eventMsg driver.ScanEvent
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders scan progress.
// The model quits once the events channel is closed.
func NewProgressModel(title string, files []string, events <-chan driver.ScanEvent) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76 // Default width

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: "queued"})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.ScanEvent(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.findings > 0 {
		header = fmt.Sprintf("%s (%d findings)", header, m.findings)
	}
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}

	// Окно вокруг активных файлов: на большом дереве весь список в
	// терминал не помещается.
	lo, hi := m.visibleWindow()
	if lo > 0 {
		b.WriteString(fmt.Sprintf("  %12s %d earlier files\n", "...", lo))
	}
	for _, item := range m.items[lo:hi] {
		name := truncate(item.path, nameWidth)
		statusStyled := styleStatus(item).Render(fmt.Sprintf("%12s", item.status))
		line := fmt.Sprintf("  %s %s", statusStyled, name)
		b.WriteString(line)
		b.WriteString("\n")
	}
	if hi < len(m.items) {
		b.WriteString(fmt.Sprintf("  %12s %d more queued\n", "...", len(m.items)-hi))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

// visibleWindow возвращает срез списка, оканчивающийся на последнем
// начатом файле. Воркеры берут файлы по порядку, так что активность
// всегда в хвосте окна.
func (m *progressModel) visibleWindow() (lo, hi int) {
	const maxVisible = 16

	last := 0
	for i, item := range m.items {
		if item.started || item.finished {
			last = i
		}
	}

	hi = last + 1
	if hi < maxVisible {
		hi = maxVisible
	}
	if hi > len(m.items) {
		hi = len(m.items)
	}
	lo = hi - maxVisible
	if lo < 0 {
		lo = 0
	}
	return lo, hi
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.ScanEvent) tea.Cmd {
	idx, ok := m.index[ev.Path]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	switch ev.Status {
	case driver.ScanStart:
		item.status = "checking"
		item.started = true
	case driver.ScanDone:
		item.finished = true
		item.findings = ev.Findings
		if ev.Findings > 0 {
			item.status = fmt.Sprintf("%d found", ev.Findings)
		} else {
			item.status = "clean"
		}
		m.findings += ev.Findings
	}

	// Calculate progress
	if len(m.items) > 0 {
		totalProgress := 0.0
		for _, item := range m.items {
			switch {
			case item.finished:
				totalProgress += 1.0
			case item.started:
				totalProgress += 0.5
			}
		}
		pct := totalProgress / float64(len(m.items))
		return m.prog.SetPercent(pct)
	}
	return nil
}

func styleStatus(item fileItem) lipgloss.Style {
	switch {
	case item.finished && item.findings > 0:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case item.finished:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case item.started:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
