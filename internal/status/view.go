package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/winsweep/internal/core"
	"github.com/lakshaymaurya-felt/winsweep/internal/ui"
)

// ─── Top-level renderer ─────────────────────────────────────────────────────

func (m Model) render() string {
	w := m.width
	if w < 50 {
		w = 50
	}

	var s strings.Builder
	s.WriteString(m.renderTabs(w))
	s.WriteString("\n")

	if m.Metrics == nil {
		s.WriteString(lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true).
			Render("  Collecting metrics…"))
		return s.String()
	}

	switch m.Tab {
	case TabOverview:
		s.WriteString(m.renderOverview(w))
	case TabCPU:
		s.WriteString(m.renderCPU(w))
	case TabMemory:
		s.WriteString(m.renderMemory(w))
	case TabDisks:
		s.WriteString(m.renderDisks(w))
	case TabNetwork:
		s.WriteString(m.renderNetwork(w))
	case TabProcesses:
		s.WriteString(m.renderProcesses(w))
	}

	s.WriteString("\n")
	s.WriteString(ui.Muted("  tab/1-6 switch · q quit"))
	return s.String()
}

// ─── Tab bar ─────────────────────────────────────────────────────────────────

func (m Model) renderTabs(w int) string {
	active := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorPrimary).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(ui.ColorPrimary).
		Padding(0, 2)

	inactive := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		Padding(0, 2)

	var tabs []string
	for i, name := range tabNames {
		label := fmt.Sprintf("%d·%s", i+1, name)
		if Tab(i) == m.Tab {
			tabs = append(tabs, active.Render(label))
		} else {
			tabs = append(tabs, inactive.Render(label))
		}
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
	divider := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		Render(strings.Repeat("─", w))

	return bar + "\n" + divider
}

// ─── Tabs ────────────────────────────────────────────────────────────────────

func (m Model) renderOverview(w int) string {
	met := m.Metrics
	score := HealthScore(met)

	scoreColor := ui.ColorSuccess
	scoreLabel := "EXCELLENT"
	switch {
	case score < 50:
		scoreColor = ui.ColorError
		scoreLabel = "CRITICAL"
	case score < 70:
		scoreColor = ui.ColorWarn
		scoreLabel = "FAIR"
	case score < 90:
		scoreColor = ui.ColorWarn
		scoreLabel = "GOOD"
	}

	var s strings.Builder
	s.WriteString("\n  " + lipgloss.NewStyle().Bold(true).Foreground(scoreColor).
		Render(fmt.Sprintf("Health %d · %s", score, scoreLabel)) + "\n\n")

	s.WriteString(fmt.Sprintf("  Host      %s\n", met.Host.Hostname))
	s.WriteString(fmt.Sprintf("  OS        %s\n", met.Host.OSVersion))
	s.WriteString(fmt.Sprintf("  Uptime    %s\n\n", formatUptime(met.Host.UptimeSeconds)))

	s.WriteString("  CPU       " + gauge(met.CPU.TotalPercent, w-24) +
		fmt.Sprintf(" %5.1f%%\n", met.CPU.TotalPercent))
	s.WriteString("  Memory    " + gauge(met.Memory.UsedPercent, w-24) +
		fmt.Sprintf(" %5.1f%%\n", met.Memory.UsedPercent))

	for _, d := range met.Disks {
		label := d.Mount
		if len(label) > 8 {
			label = label[:8]
		}
		s.WriteString(fmt.Sprintf("  %-8s  %s %5.1f%%\n", label, gauge(d.UsedPercent, w-24), d.UsedPercent))
	}

	for _, g := range met.GPUs {
		s.WriteString("\n  GPU       " + g.Name + "\n")
	}
	return s.String()
}

func (m Model) renderCPU(w int) string {
	met := m.Metrics

	var s strings.Builder
	s.WriteString("\n  " + ui.Bold(met.CPU.Model) + ui.Muted(fmt.Sprintf("  (%d cores)", met.CPU.Cores)) + "\n\n")
	s.WriteString("  Total  " + gauge(met.CPU.TotalPercent, w-20) +
		fmt.Sprintf(" %5.1f%%\n\n", met.CPU.TotalPercent))
	s.WriteString("  " + sparkline(m.cpuHistory, w-4) + "\n\n")

	for i, pct := range met.CPU.PerCore {
		s.WriteString(fmt.Sprintf("  #%-3d  %s %5.1f%%\n", i, gauge(pct, w-20), pct))
	}
	return s.String()
}

func (m Model) renderMemory(w int) string {
	met := m.Metrics

	var s strings.Builder
	s.WriteString("\n  " + ui.Bold("Memory") + "\n\n")
	s.WriteString("  Used   " + gauge(met.Memory.UsedPercent, w-20) +
		fmt.Sprintf(" %5.1f%%\n", met.Memory.UsedPercent))
	s.WriteString(fmt.Sprintf("  %s of %s, %s available\n\n",
		core.FormatSize(int64(met.Memory.Used)),
		core.FormatSize(int64(met.Memory.Total)),
		core.FormatSize(int64(met.Memory.Available))))
	s.WriteString("  " + sparkline(m.memHistory, w-4) + "\n")

	if met.Memory.SwapTotal > 0 {
		swapPct := float64(met.Memory.SwapUsed) / float64(met.Memory.SwapTotal) * 100
		s.WriteString("\n  Swap   " + gauge(swapPct, w-20) + fmt.Sprintf(" %5.1f%%\n", swapPct))
	}
	return s.String()
}

func (m Model) renderDisks(w int) string {
	met := m.Metrics

	var s strings.Builder
	s.WriteString("\n  " + ui.Bold("Disks") + "\n\n")
	for _, d := range met.Disks {
		s.WriteString("  " + ui.Bold(d.Mount) + "\n")
		s.WriteString("    " + gauge(d.UsedPercent, w-22) + fmt.Sprintf(" %5.1f%%\n", d.UsedPercent))
		s.WriteString(ui.Muted(fmt.Sprintf("    %s used · %s free · %s total\n",
			core.FormatSize(int64(d.Used)), core.FormatSize(int64(d.Free)), core.FormatSize(int64(d.Total)))))
	}
	return s.String()
}

func (m Model) renderNetwork(w int) string {
	met := m.Metrics

	var s strings.Builder
	s.WriteString("\n  " + ui.Bold("Network") + "\n\n")
	s.WriteString(fmt.Sprintf("  ↑ %s/s   ↓ %s/s\n\n",
		core.FormatSize(int64(met.Network.SendSpeed)),
		core.FormatSize(int64(met.Network.RecvSpeed))))
	s.WriteString("  Sent  " + sparklineU64(m.sendHistory, w-12) + "\n")
	s.WriteString("  Recv  " + sparklineU64(m.recvHistory, w-12) + "\n\n")
	s.WriteString(ui.Muted(fmt.Sprintf("  Totals: %s sent · %s received\n",
		core.FormatSize(int64(met.Network.BytesSent)),
		core.FormatSize(int64(met.Network.BytesRecv)))))
	return s.String()
}

func (m Model) renderProcesses(w int) string {
	met := m.Metrics

	var s strings.Builder
	s.WriteString("\n  " + ui.Bold("Top processes by memory") + "\n\n")
	s.WriteString(ui.Muted(fmt.Sprintf("  %-8s %-28s %8s %10s\n", "PID", "NAME", "CPU%", "MEM")))
	for _, p := range met.Processes {
		name := p.Name
		if len(name) > 28 {
			name = name[:27] + "…"
		}
		s.WriteString(fmt.Sprintf("  %-8d %-28s %7.1f%% %10s\n",
			p.PID, name, p.CPUPercent, core.FormatSize(int64(p.MemoryRSS))))
	}
	return s.String()
}

// ─── Widgets ─────────────────────────────────────────────────────────────────

// gauge renders a horizontal usage bar colored by pressure.
func gauge(pct float64, width int) string {
	if width < 10 {
		width = 10
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	filled := int(pct / 100 * float64(width))
	color := ui.ColorSuccess
	switch {
	case pct >= 90:
		color = ui.ColorError
	case pct >= 70:
		color = ui.ColorWarn
	}

	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	rest := lipgloss.NewStyle().Foreground(ui.ColorMuted).Render(strings.Repeat("░", width-filled))
	return bar + rest
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkline renders a history of percentages as block characters.
func sparkline(history []float64, width int) string {
	if len(history) == 0 {
		return ""
	}
	if len(history) > width {
		history = history[len(history)-width:]
	}

	var b strings.Builder
	for _, v := range history {
		idx := int(v / 100 * float64(len(sparkRunes)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkRunes) {
			idx = len(sparkRunes) - 1
		}
		b.WriteRune(sparkRunes[idx])
	}
	return lipgloss.NewStyle().Foreground(ui.ColorPrimary).Render(b.String())
}

// sparklineU64 scales raw counters to the observed maximum.
func sparklineU64(history []uint64, width int) string {
	if len(history) == 0 {
		return ""
	}
	var max uint64
	for _, v := range history {
		if v > max {
			max = v
		}
	}
	scaled := make([]float64, len(history))
	for i, v := range history {
		if max > 0 {
			scaled[i] = float64(v) / float64(max) * 100
		}
	}
	return sparkline(scaled, width)
}

func formatUptime(secs uint64) string {
	d := time.Duration(secs) * time.Second
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}
