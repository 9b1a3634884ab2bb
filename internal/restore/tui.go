package restore

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/winsweep/internal/ui"
)

// ─── Messages ────────────────────────────────────────────────────────────────

type progressMsg struct {
	path     string
	restored int
	total    int
	errs     int
	notFound int
}

type doneMsg struct {
	result Result
	err    error
}

// ─── Model ───────────────────────────────────────────────────────────────────

// progressModel renders a live progress bar while a restore batch runs
// on a worker goroutine.
type progressModel struct {
	bar      progress.Model
	current  progressMsg
	finished bool
	result   Result
	err      error
	width    int
}

func newProgressModel() progressModel {
	return progressModel{
		bar:   progress.New(progress.WithDefaultGradient()),
		width: 80,
	}
}

func (m progressModel) Init() tea.Cmd { return nil }

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = msg.Width - 8
		return m, nil

	case tea.KeyMsg:
		// The batch itself is not interruptible from the view; quitting
		// the view leaves the worker running to completion.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil

	case progressMsg:
		m.current = msg
		return m, nil

	case doneMsg:
		m.finished = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.finished {
		return ""
	}

	var s strings.Builder
	s.WriteString("\n  " + ui.Bold("Restoring from deletion history") + "\n\n")

	processed := m.current.restored + m.current.errs + m.current.notFound
	ratio := 0.0
	if m.current.total > 0 {
		ratio = float64(processed) / float64(m.current.total)
	}
	s.WriteString("  " + m.bar.ViewAs(ratio) + "\n\n")

	if m.current.path != "" {
		path := m.current.path
		if maxW := m.width - 6; maxW > 10 && len(path) > maxW {
			path = "…" + path[len(path)-maxW+1:]
		}
		s.WriteString("  " + ui.Muted(path) + "\n")
	}

	counts := fmt.Sprintf("%d/%d restored", m.current.restored, m.current.total)
	if m.current.errs > 0 {
		counts += ui.Error(fmt.Sprintf("  %d errors", m.current.errs))
	}
	if m.current.notFound > 0 {
		counts += ui.Warn(fmt.Sprintf("  %d not found", m.current.notFound))
	}
	s.WriteString("  " + lipgloss.NewStyle().Faint(true).Render(counts) + "\n")

	return s.String()
}

// RunInteractive executes run under a full-screen progress display. run
// receives a Progress callback fed by the TUI; its result and error are
// returned once the batch completes.
func RunInteractive(run func(Progress) (Result, error)) (Result, error) {
	p := tea.NewProgram(newProgressModel())

	go func() {
		result, err := run(func(path string, restored, total, errs, notFound int) error {
			p.Send(progressMsg{path: path, restored: restored, total: total, errs: errs, notFound: notFound})
			return nil
		})
		p.Send(doneMsg{result: result, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return Result{}, err
	}

	m := final.(progressModel)
	return m.result, m.err
}
