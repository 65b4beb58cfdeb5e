package health

import (
	"context"
	"time"

	"freelance-backend/internal/store"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

type HealthChecker struct {
	store *store.Store
}

type HealthStatus struct {
	Status string      `json:"status"`
	Store  StoreHealth `json:"store"`
}

type StoreHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

// SystemStatus is the detailed view for the monitoring page.
type SystemStatus struct {
	Status        string      `json:"status"`
	Store         StoreHealth `json:"store"`
	CPUPercent    float64     `json:"cpu_percent"`
	MemoryPercent float64     `json:"memory_percent"`
	DiskPercent   float64     `json:"disk_percent"`
	DiskFreeBytes uint64      `json:"disk_free_bytes"`
}

func NewHealthChecker(s *store.Store) *HealthChecker {
	return &HealthChecker{store: s}
}

func (h *HealthChecker) CheckBasic() HealthStatus {
	storeHealth := h.checkStore()

	status := "healthy"
	if storeHealth.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status: status,
		Store:  storeHealth,
	}
}

// CheckDetailed adds host metrics to the basic probe.
func (h *HealthChecker) CheckDetailed(ctx context.Context) SystemStatus {
	basic := h.CheckBasic()
	status := SystemStatus{
		Status: basic.Status,
		Store:  basic.Store,
	}

	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		status.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		status.MemoryPercent = vm.UsedPercent
	}
	if usage, err := disk.UsageWithContext(ctx, h.store.Root()); err == nil {
		status.DiskPercent = usage.UsedPercent
		status.DiskFreeBytes = usage.Free
	}

	return status
}

// checkStore writes and reads back a probe record so the check covers the
// same path real requests use.
func (h *HealthChecker) checkStore() StoreHealth {
	type probe struct {
		At time.Time `json:"at"`
	}

	start := time.Now()
	err := h.store.Write("health", "probe", probe{At: start})
	if err == nil {
		var p probe
		err = h.store.Read("health", "probe", &p)
	}
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return StoreHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
		}
	}

	return StoreHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}
