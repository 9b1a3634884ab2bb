package status

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ─── Tabs ────────────────────────────────────────────────────────────────────

// Tab identifies one dashboard section.
type Tab int

const (
	TabOverview Tab = iota
	TabCPU
	TabMemory
	TabDisks
	TabNetwork
	TabProcesses
)

// tabNames is the display label for each tab.
var tabNames = []string{"Overview", "CPU", "Memory", "Disks", "Network", "Processes"}

// ─── Messages ────────────────────────────────────────────────────────────────

type tickMsg time.Time

type metricsMsg struct {
	metrics *SystemMetrics
	err     error
}

// ─── Model ───────────────────────────────────────────────────────────────────

// historyLen caps the sparkline ring buffers.
const historyLen = 60

// Model is the bubbletea model for the system dashboard.
type Model struct {
	Metrics *SystemMetrics
	Tab     Tab
	Err     error

	prevNet         *NetworkMetrics
	width           int
	height          int
	refreshInterval time.Duration
	quitting        bool

	cpuHistory  []float64
	memHistory  []float64
	sendHistory []uint64
	recvHistory []uint64
}

// NewModel creates a dashboard model with the given refresh cadence.
func NewModel(refreshInterval time.Duration) Model {
	if refreshInterval <= 0 {
		refreshInterval = time.Second
	}
	return Model{
		width:           80,
		height:          24,
		refreshInterval: refreshInterval,
	}
}

func (m Model) doTick() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) collect() tea.Cmd {
	prevNet := m.prevNet
	interval := m.refreshInterval
	return func() tea.Msg {
		metrics, err := CollectMetrics(prevNet, interval)
		return metricsMsg{metrics: metrics, err: err}
	}
}

// ─── tea.Model interface ─────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	// Collect immediately; the first metricsMsg starts the tick loop so
	// collection and display stay strictly sequential.
	return m.collect()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "tab", "right", "l":
			m.Tab = (m.Tab + 1) % Tab(len(tabNames))
		case "shift+tab", "left", "h":
			if m.Tab == 0 {
				m.Tab = Tab(len(tabNames) - 1)
			} else {
				m.Tab--
			}
		case "1", "2", "3", "4", "5", "6":
			m.Tab = Tab(msg.String()[0] - '1')
		}
		return m, nil

	case tickMsg:
		return m, m.collect()

	case metricsMsg:
		if msg.err != nil {
			m.Err = msg.err
			return m, m.doTick()
		}
		m.Metrics = msg.metrics
		m.prevNet = &msg.metrics.Network

		m.cpuHistory = pushF64(m.cpuHistory, msg.metrics.CPU.TotalPercent)
		m.memHistory = pushF64(m.memHistory, msg.metrics.Memory.UsedPercent)
		m.sendHistory = pushU64(m.sendHistory, msg.metrics.Network.SendSpeed)
		m.recvHistory = pushU64(m.recvHistory, msg.metrics.Network.RecvSpeed)

		return m, m.doTick()
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// ─── History helpers ─────────────────────────────────────────────────────────

func pushF64(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyLen {
		h = h[1:]
	}
	return h
}

func pushU64(h []uint64, v uint64) []uint64 {
	h = append(h, v)
	if len(h) > historyLen {
		h = h[1:]
	}
	return h
}
