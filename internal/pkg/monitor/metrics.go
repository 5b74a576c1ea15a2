package monitor

import (
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"

	"neozone/internal/pkg/logger"
)

// HostInfo 主机静态信息
type HostInfo struct {
	Hostname        string
	OS              string
	Platform        string
	PlatformVersion string
	KernelVersion   string
	Arch            string
	CPUCores        int
	MemoryTotal     uint64
	DiskTotal       uint64
}

// SystemMetrics 系统指标
type SystemMetrics struct {
	CPUUsage         float64
	MemoryUsage      float64
	DiskUsage        float64
	NetworkBytesSent int64
	NetworkBytesRecv int64
}

// GetSystemMetrics 获取系统指标
// CPU 使用率需要采样区间，取 100ms，状态接口可以承受这个延迟
func GetSystemMetrics() (*SystemMetrics, error) {
	metrics := &SystemMetrics{}

	// 1. CPU Usage
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		logger.Warnf("Monitor: failed to get CPU usage: %v", err)
	} else if len(cpuPercent) > 0 {
		metrics.CPUUsage = cpuPercent[0]
	}

	// 2. Memory Usage
	vMem, err := mem.VirtualMemory()
	if err != nil {
		logger.Warnf("Monitor: failed to get memory usage: %v", err)
	} else {
		metrics.MemoryUsage = vMem.UsedPercent
	}

	// 3. Disk Usage
	// 取根分区作为代表，Windows 下 gopsutil 会映射到系统盘
	dUsage, err := disk.Usage("/")
	if err != nil {
		dUsage, err = disk.Usage("C:")
	}
	if err != nil {
		logger.Warnf("Monitor: failed to get disk usage: %v", err)
	} else {
		metrics.DiskUsage = dUsage.UsedPercent
	}

	// 4. Network Stats (全接口合计)
	netIO, err := net.IOCounters(false)
	if err != nil {
		logger.Warnf("Monitor: failed to get network stats: %v", err)
	} else if len(netIO) > 0 {
		metrics.NetworkBytesSent = int64(netIO[0].BytesSent)
		metrics.NetworkBytesRecv = int64(netIO[0].BytesRecv)
	}

	return metrics, nil
}

// GetHostInfo 获取主机静态信息
func GetHostInfo() (*HostInfo, error) {
	info := &HostInfo{}

	hInfo, err := host.Info()
	if err != nil {
		logger.Warnf("Monitor: failed to get host info: %v", err)
	} else {
		info.Hostname = hInfo.Hostname
		info.OS = hInfo.OS
		info.Platform = hInfo.Platform
		info.PlatformVersion = hInfo.PlatformVersion
		info.KernelVersion = hInfo.KernelVersion
		info.Arch = hInfo.KernelArch
	}

	// host.Info 失败时退回 runtime 信息
	if info.OS == "" {
		info.OS = runtime.GOOS
	}
	if info.Arch == "" {
		info.Arch = runtime.GOARCH
	}

	cpuInfo, err := cpu.Info()
	if err != nil {
		logger.Warnf("Monitor: failed to get CPU info: %v", err)
		info.CPUCores = runtime.NumCPU()
	} else if len(cpuInfo) > 0 {
		cores := 0
		for _, c := range cpuInfo {
			cores += int(c.Cores)
		}
		if cores == 0 {
			cores = runtime.NumCPU()
		}
		info.CPUCores = cores
	} else {
		info.CPUCores = runtime.NumCPU()
	}

	vMem, err := mem.VirtualMemory()
	if err != nil {
		logger.Warnf("Monitor: failed to get memory info: %v", err)
	} else {
		info.MemoryTotal = vMem.Total
	}

	dUsage, err := disk.Usage("/")
	if err != nil {
		dUsage, err = disk.Usage("C:")
	}
	if err != nil {
		logger.Warnf("Monitor: failed to get disk info: %v", err)
	} else {
		info.DiskTotal = dUsage.Total
	}

	return info, nil
}
