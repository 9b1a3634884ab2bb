package status

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func TestHealthScore(t *testing.T) {
	idle := &SystemMetrics{}
	require.Equal(t, 100, HealthScore(idle))

	busy := &SystemMetrics{
		CPU:    CPUMetrics{TotalPercent: 90},
		Memory: MemoryMetrics{UsedPercent: 85},
		Disks: []DiskMetrics{
			{UsedPercent: 50},
			{UsedPercent: 95},
		},
	}
	// 100 - 10*1.5 - 10*1.2 - 10*2 = 53
	require.Equal(t, 53, HealthScore(busy))

	pegged := &SystemMetrics{
		CPU:    CPUMetrics{TotalPercent: 100},
		Memory: MemoryMetrics{UsedPercent: 100},
		Disks:  []DiskMetrics{{UsedPercent: 100}},
	}
	require.Equal(t, 0, HealthScore(pegged), "score never goes negative")
}

func TestFormatUptime(t *testing.T) {
	require.Equal(t, "0h 5m", formatUptime(5*60))
	require.Equal(t, "3h 20m", formatUptime(3*3600+20*60))
	require.Equal(t, "2d 1h 0m", formatUptime(49*3600))
}

func TestSparkline(t *testing.T) {
	require.Empty(t, sparkline(nil, 10))

	line := sparkline([]float64{0, 50, 100}, 10)
	require.Equal(t, 3, lipgloss.Width(line))

	// Only the trailing window is rendered.
	line = sparkline([]float64{1, 2, 3, 4, 5}, 3)
	require.Equal(t, 3, lipgloss.Width(line))
}

func TestSparklineU64AllZero(t *testing.T) {
	// A flat zero series must not divide by zero.
	line := sparklineU64([]uint64{0, 0, 0}, 10)
	require.Equal(t, 3, lipgloss.Width(line))
}
