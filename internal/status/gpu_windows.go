//go:build windows

package status

import "github.com/yusufpapurcu/wmi"

// Win32_VideoController is the WMI class projection for GPU adapters.
// The type name must match the WMI class for wmi.CreateQuery.
type Win32_VideoController struct {
	Name          string
	DriverVersion string
}

// collectGPUs queries video adapters via WMI. Errors degrade to an
// empty list; the dashboard simply omits the GPU row.
func collectGPUs() []GPUMetrics {
	var controllers []Win32_VideoController
	q := wmi.CreateQuery(&controllers, "")
	if err := wmi.QueryNamespace(q, &controllers, `root\CIMV2`); err != nil {
		return nil
	}

	var gpus []GPUMetrics
	for _, c := range controllers {
		if c.Name == "" {
			continue
		}
		gpus = append(gpus, GPUMetrics{Name: c.Name, DriverInfo: c.DriverVersion})
	}
	return gpus
}
