//go:build !windows

package status

// collectGPUs is a no-op off Windows; the dashboard omits the GPU row.
func collectGPUs() []GPUMetrics { return nil }
