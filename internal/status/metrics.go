// Package status collects live system metrics and renders them as a
// terminal dashboard.
package status

import (
	"sort"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	gnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/lakshaymaurya-felt/winsweep/internal/core"
)

// ─── Metric types ────────────────────────────────────────────────────────────

type HostMetrics struct {
	Hostname      string `json:"hostname"`
	OSVersion     string `json:"os_version"`
	UptimeSeconds uint64 `json:"uptime_seconds"`
}

type CPUMetrics struct {
	Model        string    `json:"model"`
	Cores        int       `json:"cores"`
	TotalPercent float64   `json:"total_percent"`
	PerCore      []float64 `json:"per_core"`
}

type MemoryMetrics struct {
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	Available   uint64  `json:"available"`
	UsedPercent float64 `json:"used_percent"`
	SwapTotal   uint64  `json:"swap_total"`
	SwapUsed    uint64  `json:"swap_used"`
}

type DiskMetrics struct {
	Mount       string  `json:"mount"`
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	Free        uint64  `json:"free"`
	UsedPercent float64 `json:"used_percent"`
}

type NetworkMetrics struct {
	BytesSent uint64 `json:"bytes_sent"`
	BytesRecv uint64 `json:"bytes_recv"`
	// Per-interval rates, bytes per second.
	SendSpeed uint64 `json:"send_speed"`
	RecvSpeed uint64 `json:"recv_speed"`
}

type ProcessMetrics struct {
	PID        int32   `json:"pid"`
	Name       string  `json:"name"`
	CPUPercent float64 `json:"cpu_percent"`
	MemoryRSS  uint64  `json:"memory_rss"`
}

type GPUMetrics struct {
	Name       string `json:"name"`
	DriverInfo string `json:"driver_info,omitempty"`
}

// SystemMetrics is one dashboard snapshot.
type SystemMetrics struct {
	Host      HostMetrics      `json:"host"`
	CPU       CPUMetrics       `json:"cpu"`
	Memory    MemoryMetrics    `json:"memory"`
	Disks     []DiskMetrics    `json:"disks"`
	Network   NetworkMetrics   `json:"network"`
	Processes []ProcessMetrics `json:"processes"`
	GPUs      []GPUMetrics     `json:"gpus,omitempty"`
}

// topProcessCount limits the process table.
const topProcessCount = 10

// CollectMetrics gathers one snapshot. prevNet supplies the previous
// counters for rate derivation; pass nil on the first collection.
func CollectMetrics(prevNet *NetworkMetrics, interval time.Duration) (*SystemMetrics, error) {
	metrics := &SystemMetrics{}

	if info, err := host.Info(); err == nil {
		metrics.Host = HostMetrics{
			Hostname:      info.Hostname,
			OSVersion:     core.OSVersionString(),
			UptimeSeconds: info.Uptime,
		}
	}

	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		metrics.CPU.Model = infos[0].ModelName
	}
	if counts, err := cpu.Counts(true); err == nil {
		metrics.CPU.Cores = counts
	}
	// Non-blocking sample: percentages since the previous call.
	if totals, err := cpu.Percent(0, false); err == nil && len(totals) > 0 {
		metrics.CPU.TotalPercent = totals[0]
	}
	if perCore, err := cpu.Percent(0, true); err == nil {
		metrics.CPU.PerCore = perCore
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		metrics.Memory = MemoryMetrics{
			Total:       vm.Total,
			Used:        vm.Used,
			Available:   vm.Available,
			UsedPercent: vm.UsedPercent,
		}
	}
	if sw, err := mem.SwapMemory(); err == nil {
		metrics.Memory.SwapTotal = sw.Total
		metrics.Memory.SwapUsed = sw.Used
	}

	if parts, err := disk.Partitions(false); err == nil {
		for _, p := range parts {
			usage, err := disk.Usage(p.Mountpoint)
			if err != nil || usage.Total == 0 {
				continue
			}
			metrics.Disks = append(metrics.Disks, DiskMetrics{
				Mount:       p.Mountpoint,
				Total:       usage.Total,
				Used:        usage.Used,
				Free:        usage.Free,
				UsedPercent: usage.UsedPercent,
			})
		}
	}

	if counters, err := gnet.IOCounters(false); err == nil && len(counters) > 0 {
		metrics.Network.BytesSent = counters[0].BytesSent
		metrics.Network.BytesRecv = counters[0].BytesRecv
		if prevNet != nil && interval > 0 {
			secs := interval.Seconds()
			if metrics.Network.BytesSent >= prevNet.BytesSent {
				metrics.Network.SendSpeed = uint64(float64(metrics.Network.BytesSent-prevNet.BytesSent) / secs)
			}
			if metrics.Network.BytesRecv >= prevNet.BytesRecv {
				metrics.Network.RecvSpeed = uint64(float64(metrics.Network.BytesRecv-prevNet.BytesRecv) / secs)
			}
		}
	}

	metrics.Processes = collectProcesses()
	metrics.GPUs = collectGPUs()

	return metrics, nil
}

// collectProcesses returns the topProcessCount processes by memory.
// Individual process errors (exited mid-walk, access denied) are
// skipped.
func collectProcesses() []ProcessMetrics {
	procs, err := process.Processes()
	if err != nil {
		return nil
	}

	var out []ProcessMetrics
	for _, p := range procs {
		name, err := p.Name()
		if err != nil || name == "" {
			continue
		}
		var rss uint64
		if memInfo, err := p.MemoryInfo(); err == nil && memInfo != nil {
			rss = memInfo.RSS
		}
		cpuPct, _ := p.CPUPercent()
		out = append(out, ProcessMetrics{
			PID:        p.Pid,
			Name:       name,
			CPUPercent: cpuPct,
			MemoryRSS:  rss,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].MemoryRSS > out[j].MemoryRSS })
	if len(out) > topProcessCount {
		out = out[:topProcessCount]
	}
	return out
}

// HealthScore condenses a snapshot into 0-100: full marks minus
// pressure penalties for CPU, memory, and the fullest disk.
func HealthScore(m *SystemMetrics) int {
	score := 100.0

	if m.CPU.TotalPercent > 80 {
		score -= (m.CPU.TotalPercent - 80) * 1.5
	}
	if m.Memory.UsedPercent > 75 {
		score -= (m.Memory.UsedPercent - 75) * 1.2
	}
	var fullest float64
	for _, d := range m.Disks {
		if d.UsedPercent > fullest {
			fullest = d.UsedPercent
		}
	}
	if fullest > 85 {
		score -= (fullest - 85) * 2
	}

	if score < 0 {
		score = 0
	}
	return int(score)
}
